package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diagnosis/elsabor-web/pkg/config"
)

func TestNew_PicksDriver(t *testing.T) {
	cfg := config.NewTestConfig().Email

	svc, err := New(cfg)
	require.NoError(t, err)
	assert.IsType(t, &DevMailer{}, svc)

	cfg.Driver = "smtp"
	cfg.SMTPHost, cfg.SMTPPort = "smtp.example.com", 587
	svc, err = New(cfg)
	require.NoError(t, err)
	smtpSvc, ok := svc.(*SMTPMailer)
	require.True(t, ok)
	assert.Equal(t, "reservas@elsabor.test", smtpSvc.From)
	assert.Equal(t, "reservas@elsabor.test", smtpSvc.User)

	cfg.Driver = "mailersend"
	cfg.MailerSendKey = "mlsn.test"
	svc, err = New(cfg)
	require.NoError(t, err)
	assert.True(t, svc.(*MailerSend).Enabled)

	cfg.Driver = "carrier-pigeon"
	_, err = New(cfg)
	assert.Error(t, err)
}
