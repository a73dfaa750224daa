package mailer

import (
	"fmt"

	"github.com/diagnosis/elsabor-web/pkg/config"
)

// New picks the transport named by cfg.Driver.
func New(cfg config.EmailConfig) (Service, error) {
	switch cfg.Driver {
	case "smtp":
		return NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.Operator, cfg.Operator, cfg.SMTPPass, cfg.SMTPUseTLS), nil
	case "mailersend":
		return NewMailerSend(cfg.MailerSendKey, cfg.Operator), nil
	case "dev", "":
		return NewDevMailer(cfg.Operator), nil
	default:
		return nil, fmt.Errorf("mailer: unknown driver %q", cfg.Driver)
	}
}
