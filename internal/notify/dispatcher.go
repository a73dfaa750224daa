// Package notify composes and sends the two emails that follow every
// accepted submission: a summary for the restaurant and an acknowledgement
// for the guest.
//
// The two sends are sequential, operator first. Each message is attempted at
// most once and a failed second send does not undo the first one.
package notify

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/microcosm-cc/bluemonday"

	"github.com/diagnosis/elsabor-web/internal/domain"
	"github.com/diagnosis/elsabor-web/internal/i18n"
	"github.com/diagnosis/elsabor-web/internal/platform/mailer"
	"github.com/diagnosis/elsabor-web/pkg/events"
	"github.com/diagnosis/elsabor-web/pkg/logger"
)

type Dispatcher struct {
	mail     mailer.Service
	catalog  *i18n.Catalog
	events   events.Publisher
	policy   *bluemonday.Policy
	operator string
	timeout  time.Duration
	now      func() time.Time
}

func NewDispatcher(mail mailer.Service, catalog *i18n.Catalog, pub events.Publisher, operator string, timeout time.Duration) *Dispatcher {
	if pub == nil {
		pub = events.Nop{}
	}
	return &Dispatcher{
		mail:     mail,
		catalog:  catalog,
		events:   pub,
		policy:   bluemonday.StrictPolicy(),
		operator: operator,
		timeout:  timeout,
		now:      time.Now,
	}
}

// Reservation sends the operator summary, then the guest acknowledgement.
func (d *Dispatcher) Reservation(ctx context.Context, lang string, r *domain.Reservation) error {
	msgs := d.ReservationMessages(lang, r)
	if err := d.send(ctx, msgs[:]...); err != nil {
		return errors.Wrap(err, "reservation")
	}

	d.publish(ctx, events.ReservationRequested, events.ReservationRequestedEvent{
		Name:        r.Name,
		Email:       r.Email,
		ScheduledAt: r.ScheduledAt,
		PartySize:   r.PartySize,
		Lang:        lang,
		RequestedAt: d.now(),
	})
	return nil
}

// Contact sends the operator copy of the message, then the acknowledgement.
func (d *Dispatcher) Contact(ctx context.Context, lang string, c domain.ContactReq) error {
	msgs := d.ContactMessages(lang, c)
	if err := d.send(ctx, msgs[:]...); err != nil {
		return errors.Wrap(err, "contact")
	}

	d.publish(ctx, events.ContactReceived, events.ContactReceivedEvent{
		Name:       c.Name,
		Email:      c.Email,
		Lang:       lang,
		ReceivedAt: d.now(),
	})
	return nil
}

func (d *Dispatcher) send(ctx context.Context, msgs ...mailer.Message) error {
	for i, msg := range msgs {
		id, err := d.sendOne(ctx, msg)
		if err != nil {
			logger.ErrorContext(ctx, "Failed to send email", "error", err, "to", msg.To, "step", i+1, "of", len(msgs))
			return errors.Mark(errors.Wrapf(err, "send %d/%d to %s", i+1, len(msgs), msg.To), domain.ErrDispatch)
		}
		logger.InfoContext(ctx, "Email sent", "to", msg.To, "message_id", id, "step", i+1)
	}
	return nil
}

func (d *Dispatcher) sendOne(ctx context.Context, msg mailer.Message) (string, error) {
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}
	return d.mail.Send(ctx, msg)
}

func (d *Dispatcher) publish(ctx context.Context, subject string, data interface{}) {
	if err := d.events.Publish(ctx, subject, data); err != nil {
		logger.ErrorContext(ctx, "Failed to publish event", "error", err, "subject", subject)
	}
}
