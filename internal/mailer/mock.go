package mailer

import (
	"context"
	"sync"
)

// Mock records outgoing mail so tests can assert on decision
// notifications without an SMTP server.
type Mock struct {
	mu   sync.Mutex
	Sent []Email
	Err  error
}

func (m *Mock) Send(ctx context.Context, e Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, e)
	return m.Err
}
