package natsgath

import (
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"
)

// Publisher is satisfied by *nats.Conn.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// New creates a NATS gatherer that streams run progress to the given subject.
func New(pub Publisher, runUuid string, mode string, subject string) *natsGatherer {
	return &natsGatherer{
		pub:     pub,
		subject: subject,
		runUuid: runUuid,
		mode:    mode,
	}
}

// Connect dials url. The returned close function flushes pending messages.
func Connect(url string) (*nats.Conn, func(), error) {
	nc, err := nats.Connect(url, nats.Name("pal"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to nats at %s: %w", url, err)
	}
	return nc, func() {
		if err := nc.Drain(); err != nil {
			slog.Warn("failed to drain nats connection", "error", err)
		}
	}, nil
}
