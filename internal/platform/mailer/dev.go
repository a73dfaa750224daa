package mailer

import (
	"context"

	"github.com/google/uuid"

	"github.com/diagnosis/elsabor-web/pkg/logger"
)

// DevMailer prints messages to the log instead of sending them.
type DevMailer struct {
	from string
}

func NewDevMailer(from string) *DevMailer {
	return &DevMailer{from: from}
}

func (d *DevMailer) Send(ctx context.Context, msg Message) (string, error) {
	id := uuid.NewString()
	logger.InfoContext(ctx, "📧 [DEV MAIL]",
		"message_id", id,
		"from", formatAddress(msg.FromName, d.from),
		"to", msg.To,
		"subject", msg.Subject,
		"text", msg.Text,
	)
	return id, nil
}
