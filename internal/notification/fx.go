package notification

import (
	"github.com/fixitworks/fixit/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func NewEmailFromConfig(cfg config.Config, log *zap.Logger) EmailProvider {
	if cfg.SMTPUsername == "" || cfg.SMTPPassword == "" {
		log.Warn("email credentials missing, mail dispatch disabled")
		return NoOpEmail{}
	}
	return NewSMTP(SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	})
}

func NewSMSFromConfig(cfg config.Config, log *zap.Logger) SMSProvider {
	if cfg.TwilioAccountSID == "" || cfg.TwilioAuthToken == "" || cfg.TwilioFromNumber == "" {
		log.Warn("twilio credentials missing, sms dispatch disabled")
		return NoOpSMS{}
	}
	return NewTwilio(TwilioConfig{
		AccountSID: cfg.TwilioAccountSID,
		AuthToken:  cfg.TwilioAuthToken,
		FromNumber: cfg.TwilioFromNumber,
	})
}

var Module = fx.Module("notification",
	fx.Provide(NewEmailFromConfig),
	fx.Provide(NewSMSFromConfig),
	fx.Provide(NewMailer),
)
