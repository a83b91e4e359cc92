package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRecord_PreservesUnknownFields(t *testing.T) {
	in := `{"id":"42","name":"Ada","email":"a@x.com","password":"old","pin":"1234","createdAt":"2025-01-01T00:00:00Z"}`

	var u UserRecord
	require.NoError(t, json.Unmarshal([]byte(in), &u))
	assert.Equal(t, "a@x.com", u.Email)
	assert.Equal(t, "old", u.Password)

	name, ok := u.Field("name")
	require.True(t, ok)
	assert.JSONEq(t, `"Ada"`, string(name))

	u.SetPassword("NewPass1!")
	out, err := json.Marshal(u)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"id":"42","name":"Ada","email":"a@x.com","password":"NewPass1!","pin":"1234","createdAt":"2025-01-01T00:00:00Z"}`,
		string(out))
}

func TestUserRecord_NoPasswordField(t *testing.T) {
	var u UserRecord
	require.NoError(t, json.Unmarshal([]byte(`{"id":"g-1","email":"g@x.com"}`), &u))

	out, err := json.Marshal(u)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"g-1","email":"g@x.com"}`, string(out))
}

func TestUserRecord_RejectsNonObject(t *testing.T) {
	var u UserRecord
	assert.Error(t, json.Unmarshal([]byte(`"a@x.com"`), &u))
	assert.Error(t, json.Unmarshal([]byte(`null`), &u))
	assert.Error(t, json.Unmarshal([]byte(`{"email":5}`), &u))
}
