package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/diagnosis/elsabor-web/pkg/logger"
)

// Publisher announces facts to other systems. Publishing is best effort:
// callers log failures and carry on.
type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
	Close() error
}

type NATSEventBus struct {
	conn *nats.Conn
}

func NewNATSEventBus(url string) (*NATSEventBus, error) {
	conn, err := nats.Connect(url, nats.Name("elsabor-web"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATSEventBus{conn: conn}, nil
}

func (n *NATSEventBus) Publish(ctx context.Context, subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	logger.DebugContext(ctx, "Publishing event", "subject", subject, "bytes", len(payload))

	return n.conn.Publish(subject, payload)
}

func (n *NATSEventBus) Close() error {
	if err := n.conn.Drain(); err != nil {
		n.conn.Close()
		return err
	}
	return nil
}

// Nop discards every event; used when NATS_URL is not configured.
type Nop struct{}

func (Nop) Publish(context.Context, string, interface{}) error { return nil }
func (Nop) Close() error                                       { return nil }

// Connect returns a NATS publisher for url, or Nop when url is empty.
func Connect(url string) (Publisher, error) {
	if url == "" {
		return Nop{}, nil
	}
	return NewNATSEventBus(url)
}

// Event subjects
const (
	ReservationRequested = "reservation.requested"
	ContactReceived      = "contact.received"
)

// Event payloads
type ReservationRequestedEvent struct {
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	ScheduledAt time.Time `json:"scheduled_at"`
	PartySize   int       `json:"party_size"`
	Lang        string    `json:"lang"`
	RequestedAt time.Time `json:"requested_at"`
}

type ContactReceivedEvent struct {
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Lang       string    `json:"lang"`
	ReceivedAt time.Time `json:"received_at"`
}
