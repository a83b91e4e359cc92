package model

import (
	"encoding/json"
	"fmt"
)

// UserRecord is an account record supplied by the client. The browser owns the
// account store, so the server only interprets email and password and passes
// every other field through untouched.
type UserRecord struct {
	Email    string
	Password string

	hasPassword bool
	extra       map[string]json.RawMessage
}

// NewUserRecord builds a record with only email and password set.
func NewUserRecord(email, password string) UserRecord {
	return UserRecord{Email: email, Password: password, hasPassword: true}
}

// SetPassword overwrites the password field.
func (u *UserRecord) SetPassword(password string) {
	u.Password = password
	u.hasPassword = true
}

// Field returns a pass-through field as raw JSON.
func (u *UserRecord) Field(name string) (json.RawMessage, bool) {
	v, ok := u.extra[name]
	return v, ok
}

func (u *UserRecord) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return fmt.Errorf("user record must be a JSON object")
	}

	*u = UserRecord{}
	if v, ok := raw["email"]; ok {
		if err := json.Unmarshal(v, &u.Email); err != nil {
			return fmt.Errorf("user record email: %w", err)
		}
		delete(raw, "email")
	}
	if v, ok := raw["password"]; ok {
		if err := json.Unmarshal(v, &u.Password); err != nil {
			return fmt.Errorf("user record password: %w", err)
		}
		u.hasPassword = true
		delete(raw, "password")
	}
	u.extra = raw
	return nil
}

func (u UserRecord) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(u.extra)+2)
	for k, v := range u.extra {
		out[k] = v
	}
	out["email"] = u.Email
	if u.hasPassword || u.Password != "" {
		out["password"] = u.Password
	}
	return json.Marshal(out)
}
