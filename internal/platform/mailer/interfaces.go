package mailer

import "context"

// Message is one outbound email. Bodies are already rendered.
type Message struct {
	FromName string
	To       string
	ToName   string
	Subject  string
	Text     string
	HTML     string
}

// Service delivers a message or fails. Implementations do not retry.
type Service interface {
	Send(ctx context.Context, msg Message) (string, error)
}
