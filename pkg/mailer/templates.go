package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

const (
	PasswordResetSubject = "Reset Your MindJournal Password"
	OTPSubject           = "Your OTP for MindJournal"
)

type PasswordResetEmail struct {
	Email     string
	ResetLink string
	ExpiresIn time.Duration
	SentAt    time.Time
}

type OTPEmail struct {
	Code     string
	ValidFor time.Duration // zero omits the validity sentence
}

var (
	passwordResetTpl = template.Must(template.New("password_reset").Funcs(templateFuncs).Parse(passwordResetHTML))
	otpTpl           = template.Must(template.New("otp").Funcs(templateFuncs).Parse(otpHTML))
)

var templateFuncs = template.FuncMap{
	"minutes": func(d time.Duration) int { return int(d.Round(time.Minute) / time.Minute) },
	"stamp":   func(t time.Time) string { return t.UTC().Format("2006-01-02 15:04 MST") },
}

// RenderPasswordReset returns the HTML body of the reset email.
func RenderPasswordReset(data PasswordResetEmail) (string, error) {
	return render(passwordResetTpl, data)
}

// RenderOTP returns the HTML body of the verification code email.
func RenderOTP(data OTPEmail) (string, error) {
	return render(otpTpl, data)
}

func render(tpl *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s: %w", tpl.Name(), err)
	}
	return buf.String(), nil
}

const passwordResetHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Reset Your Password</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); padding: 30px; text-align: center; border-radius: 10px 10px 0 0;">
    <h1 style="color: white; margin: 0; font-size: 28px;">MindJournal</h1>
    <p style="color: white; margin: 10px 0 0 0; opacity: 0.9;">Mental Health &amp; Mood Tracking</p>
  </div>
  <div style="background: #f9f9f9; padding: 30px; border-radius: 0 0 10px 10px; border: 1px solid #ddd;">
    <h2 style="color: #333; margin-top: 0;">Reset Your Password</h2>
    <p>Hello,</p>
    <p>We received a request to reset the password of your MindJournal account. If you didn't make this request, you can safely ignore this email.</p>
    <div style="text-align: center; margin: 30px 0;">
      <a href="{{.ResetLink}}" style="background: #667eea; color: white; padding: 15px 30px; text-decoration: none; border-radius: 8px; font-weight: bold; display: inline-block;">Reset My Password</a>
    </div>
    <p style="font-size: 14px; color: #666; background: #fff3cd; padding: 15px; border-radius: 5px; border-left: 4px solid #ffc107;">
      <strong>Important:</strong> This link will expire in {{minutes .ExpiresIn}} minutes.
    </p>
    <p style="font-size: 14px; color: #666;">
      If the button doesn't work, copy and paste this link into your browser:<br>
      <a href="{{.ResetLink}}" style="color: #667eea; word-break: break-all;">{{.ResetLink}}</a>
    </p>
    <hr style="border: none; border-top: 1px solid #ddd; margin: 30px 0;">
    <p style="font-size: 12px; color: #888; text-align: center;">
      <strong>Email:</strong> {{.Email}} | <strong>Time:</strong> {{stamp .SentAt}}
    </p>
  </div>
</body>
</html>
`

const otpHTML = `<p>Your OTP is <b>{{.Code}}</b>.{{if .ValidFor}} It is valid for {{minutes .ValidFor}} minutes.{{end}}</p>
`
