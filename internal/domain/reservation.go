package domain

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// Business rules
const (
	MinPartySize     = 1
	MaxPartySize     = 50
	MinMessageLength = 5
	MaxMessageLength = 1000

	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// ReservationReq is a validated and sanitized reservation form.
type ReservationReq struct {
	Name            string
	Email           string
	Date            string
	Time            string
	PartySize       int
	SpecialRequests string
}

// Reservation is a reservation request whose date and time have been resolved
// to a single instant.
type Reservation struct {
	ReservationReq
	ScheduledAt time.Time
}

// ContactReq is a validated and sanitized contact form.
type ContactReq struct {
	Name    string
	Email   string
	Message string
}

// StartOfTomorrow returns 00:00 of the calendar day following now, in now's location.
func StartOfTomorrow(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, now.Location())
}

// ScheduleReservation combines the date and time fields in loc and checks the
// result is strictly after the start of tomorrow relative to now.
func ScheduleReservation(req ReservationReq, now time.Time, loc *time.Location) (*Reservation, error) {
	if loc == nil {
		loc = time.Local
	}
	raw := strings.TrimSpace(req.Date) + " " + strings.TrimSpace(req.Time)
	at, err := time.ParseInLocation(DateLayout+" "+TimeLayout, raw, loc)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "parse reservation date %q", raw), ErrInvalidDateTime)
	}
	if !at.After(StartOfTomorrow(now.In(loc))) {
		return nil, errors.Wrapf(ErrInvalidDateTime, "reservation at %s", at.Format(time.RFC3339))
	}
	return &Reservation{ReservationReq: req, ScheduledAt: at}, nil
}
