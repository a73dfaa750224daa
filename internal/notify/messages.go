package notify

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/diagnosis/elsabor-web/internal/domain"
	"github.com/diagnosis/elsabor-web/internal/platform/mailer"
)

// xss neutralizes markup in a user-supplied value before interpolation.
func (d *Dispatcher) xss(s string) string {
	return d.policy.Sanitize(s)
}

// plainText decodes entities in the non-HTML parts. Values arrive
// entity-escaped, which only the HTML body should show as such.
func plainText(m mailer.Message) mailer.Message {
	m.Subject = html.UnescapeString(m.Subject)
	m.Text = html.UnescapeString(m.Text)
	m.ToName = html.UnescapeString(m.ToName)
	return m
}

func (d *Dispatcher) t(lang, id string, data map[string]any) string {
	return d.catalog.T(lang, id, data)
}

// ReservationMessages builds the operator summary (in the default language)
// and the guest acknowledgement (in lang), in send order.
func (d *Dispatcher) ReservationMessages(lang string, r *domain.Reservation) [2]mailer.Message {
	op := d.catalog.Default()
	name := d.xss(r.Name)
	email := d.xss(r.Email)
	party := d.xss(strconv.Itoa(r.PartySize))
	requests := func(l string) string {
		if strings.TrimSpace(r.SpecialRequests) == "" {
			return d.t(l, "none", nil)
		}
		return d.xss(r.SpecialRequests)
	}

	opWhen := d.catalog.DateTime(op, r.ScheduledAt)
	toOperator := mailer.Message{
		FromName: d.t(op, "mail_sender_reservations", nil),
		To:       d.operator,
		Subject:  d.t(op, "mail_reservation_operator_subject", map[string]any{"Name": name}),
		HTML: fmt.Sprintf(`
      <h2>%s</h2>
      <p><strong>%s:</strong> %s</p>
      <p><strong>%s:</strong> %s</p>
      <p><strong>%s:</strong> %s</p>
      <p><strong>%s:</strong> %s</p>
      <p><strong>%s:</strong> %s</p>
    `,
			d.t(op, "mail_reservation_operator_heading", nil),
			d.t(op, "mail_label_name", nil), name,
			d.t(op, "mail_label_email", nil), email,
			d.t(op, "mail_label_datetime", nil), opWhen,
			d.t(op, "mail_label_party", nil), party,
			d.t(op, "mail_label_requests", nil), requests(op),
		),
		Text: fmt.Sprintf("%s: %s\n%s: %s\n%s: %s\n%s: %s\n%s: %s\n",
			d.t(op, "mail_label_name", nil), name,
			d.t(op, "mail_label_email", nil), email,
			d.t(op, "mail_label_datetime", nil), opWhen,
			d.t(op, "mail_label_party", nil), party,
			d.t(op, "mail_label_requests", nil), requests(op),
		),
	}

	when := d.catalog.DateTime(lang, r.ScheduledAt)
	intro := d.t(lang, "mail_reservation_client_intro", map[string]any{"Name": name})
	toGuest := mailer.Message{
		FromName: d.t(lang, "mail_sender_restaurant", nil),
		To:       r.Email,
		ToName:   r.Name,
		Subject:  d.t(lang, "mail_reservation_client_subject", nil),
		HTML: fmt.Sprintf(`
      <h2>%s</h2>
      <p>%s</p>
      <ul>
        <li><strong>%s:</strong> %s</li>
        <li><strong>%s:</strong> %s</li>
        <li><strong>%s:</strong> %s</li>
      </ul>
      <p>%s</p>
    `,
			d.t(lang, "mail_reservation_client_heading", nil),
			intro,
			d.t(lang, "mail_label_datetime", nil), when,
			d.t(lang, "mail_label_party", nil), party,
			d.t(lang, "mail_label_requests", nil), requests(lang),
			d.t(lang, "mail_reservation_client_outro", nil),
		),
		Text: fmt.Sprintf("%s\n\n%s: %s\n%s: %s\n%s: %s\n\n%s\n",
			intro,
			d.t(lang, "mail_label_datetime", nil), when,
			d.t(lang, "mail_label_party", nil), party,
			d.t(lang, "mail_label_requests", nil), requests(lang),
			d.t(lang, "mail_reservation_client_outro", nil),
		),
	}

	return [2]mailer.Message{plainText(toOperator), plainText(toGuest)}
}

// ContactMessages builds the operator copy and the guest acknowledgement.
func (d *Dispatcher) ContactMessages(lang string, c domain.ContactReq) [2]mailer.Message {
	op := d.catalog.Default()
	name := d.xss(c.Name)
	email := d.xss(c.Email)
	message := d.xss(c.Message)

	toOperator := mailer.Message{
		FromName: d.t(op, "mail_sender_contact", nil),
		To:       d.operator,
		Subject:  d.t(op, "mail_contact_operator_subject", map[string]any{"Name": name}),
		HTML: fmt.Sprintf(`
      <h2>%s</h2>
      <p><strong>%s:</strong> %s</p>
      <p><strong>%s:</strong> %s</p>
      <p><strong>%s:</strong><br>%s</p>
    `,
			d.t(op, "mail_contact_operator_heading", nil),
			d.t(op, "mail_label_name", nil), name,
			d.t(op, "mail_label_email", nil), email,
			d.t(op, "mail_label_message", nil), message,
		),
		Text: fmt.Sprintf("%s: %s\n%s: %s\n%s:\n%s\n",
			d.t(op, "mail_label_name", nil), name,
			d.t(op, "mail_label_email", nil), email,
			d.t(op, "mail_label_message", nil), message,
		),
	}

	heading := d.t(lang, "mail_contact_client_heading", map[string]any{"Name": name})
	toGuest := mailer.Message{
		FromName: d.t(lang, "mail_sender_restaurant", nil),
		To:       c.Email,
		ToName:   c.Name,
		Subject:  d.t(lang, "mail_contact_client_subject", nil),
		HTML: fmt.Sprintf(`
      <h2>%s</h2>
      <p>%s</p>
      <blockquote>%s</blockquote>
      <p>%s</p>
    `,
			heading,
			d.t(lang, "mail_contact_client_intro", nil),
			message,
			d.t(lang, "mail_contact_client_outro", nil),
		),
		Text: fmt.Sprintf("%s\n\n%s\n\n> %s\n\n%s\n",
			heading,
			d.t(lang, "mail_contact_client_intro", nil),
			message,
			d.t(lang, "mail_contact_client_outro", nil),
		),
	}

	return [2]mailer.Message{plainText(toOperator), plainText(toGuest)}
}
