// Package bus forwards trick events to NATS.
package bus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/jason-s-yu/onetrick/internal/sim"
)

// SubjectPrefix is followed by the run id; subscribe to SubjectPrefix+"*"
// to follow every run.
const SubjectPrefix = "onetrick.events."

func Subject(runID uuid.UUID) string { return SubjectPrefix + runID.String() }

// Publisher is the subset of *nats.Conn the sink uses.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// NATSSink implements sim.Sink.
type NATSSink struct {
	pub Publisher
}

func NewNATSSink(pub Publisher) *NATSSink { return &NATSSink{pub: pub} }

// Connect dials NATS with the reconnect settings used for game servers.
func Connect(url, name string) (*nats.Conn, error) {
	if url == "" {
		url = nats.DefaultURL
	}
	opts := []nats.Option{
		nats.Name(name),
		nats.Timeout(10 * time.Second),
		nats.ReconnectWait(2 * time.Second),
		nats.MaxReconnects(5),
	}
	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return nc, nil
}

// Record publishes the event as JSON. Publishing is buffered by the client,
// so ctx is only checked up front.
func (s *NATSSink) Record(ctx context.Context, runID uuid.UUID, ev sim.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event %d: %w", ev.Seq, err)
	}
	if err := s.pub.Publish(Subject(runID), data); err != nil {
		return fmt.Errorf("publish event %d: %w", ev.Seq, err)
	}
	return nil
}
