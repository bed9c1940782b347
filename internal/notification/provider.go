// Package notification dispatches one-time codes and confirmations over
// email and SMS.
package notification

import "context"

type EmailProvider interface {
	Send(ctx context.Context, to []string, subject string, htmlBody string) error
}

type SMSProvider interface {
	Send(ctx context.Context, to string, body string) error
}

// NoOpEmail drops mail. Used when SMTP credentials are absent.
type NoOpEmail struct{}

func (NoOpEmail) Send(ctx context.Context, to []string, subject string, htmlBody string) error {
	return nil
}

// NoOpSMS drops messages. Used when the SMS transport is not configured.
type NoOpSMS struct{}

func (NoOpSMS) Send(ctx context.Context, to string, body string) error {
	return nil
}
