package memory

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Message is one recorded outbound notification.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Transport records every message it is asked to send. With a logger it
// doubles as the dev wiring's console transport; with SetErr it simulates
// an unreachable relay in tests.
type Transport struct {
	mu       sync.Mutex
	messages []Message
	err      error
	l        *zap.Logger
}

func NewTransport(logger *zap.Logger) *Transport {
	return &Transport{l: logger}
}

func (t *Transport) Send(_ context.Context, to, subject, body string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.err != nil {
		return t.err
	}
	t.messages = append(t.messages, Message{To: to, Subject: subject, Body: body})
	if t.l != nil {
		t.l.Info("message_sent",
			zap.String("to", to),
			zap.String("subject", subject),
		)
	}
	return nil
}

// SetErr makes every subsequent Send fail with err (nil restores delivery).
func (t *Transport) SetErr(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.err = err
}

// Messages returns a copy of everything sent so far.
func (t *Transport) Messages() []Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}
