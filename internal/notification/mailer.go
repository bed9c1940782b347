package notification

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
)

var resetCodeTmpl = template.Must(template.New("reset_code").Parse(`
<div style="font-family: Arial, sans-serif; text-align: center; padding: 20px;">
  <h2 style="color: #333;">FIXIT Password Reset</h2>
  <p>Hello {{.Name}},</p>
  <p>Use the OTP below to reset your password:</p>
  <h1 style="background: #f4f4f4; display: inline-block; padding: 10px 20px; border-radius: 5px; letter-spacing: 5px;">{{.Code}}</h1>
  <p style="color: #777; font-size: 14px;">This OTP will expire in {{.ExpiryMinutes}} minutes.</p>
</div>`))

var resetConfirmationTmpl = template.Must(template.New("reset_confirmation").Parse(`
<div style="font-family: Arial, sans-serif; text-align: center; padding: 20px;">
  <h2 style="color: #333;">FIXIT Password Reset Successful</h2>
  <p>Hello {{.Name}},</p>
  <p>Your password has been successfully reset. You can now log in using your new password.</p>
</div>`))

// Mailer renders and sends the account mail the auth flows produce.
type Mailer struct {
	email EmailProvider
}

func NewMailer(email EmailProvider) *Mailer {
	return &Mailer{email: email}
}

func (m *Mailer) SendResetCode(ctx context.Context, to, name, code string, expiryMinutes int) error {
	if name == "" {
		name = "User"
	}
	var body bytes.Buffer
	if err := resetCodeTmpl.Execute(&body, map[string]any{
		"Name":          name,
		"Code":          code,
		"ExpiryMinutes": expiryMinutes,
	}); err != nil {
		return err
	}
	return m.email.Send(ctx, []string{to}, "Your FIXIT Password Reset OTP", body.String())
}

func (m *Mailer) SendResetConfirmation(ctx context.Context, to, name string) error {
	if name == "" {
		name = "User"
	}
	var body bytes.Buffer
	if err := resetConfirmationTmpl.Execute(&body, map[string]any{"Name": name}); err != nil {
		return err
	}
	return m.email.Send(ctx, []string{to}, "Your FIXIT Password Has Been Reset", body.String())
}

// OTPSMSBody is the message sent with a phone verification code.
func OTPSMSBody(code string) string {
	return fmt.Sprintf("This is from FIXIT Service and Your OTP is %s", code)
}
