package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SubjectPrefix is the NATS subject namespace for telemetry events.
// Events land on "telemetry.<event>".
const SubjectPrefix = "telemetry"

// Publisher is anything that can publish to a subject; in production
// it is the embedded NatsServer.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// TelemetryEvent is the wire form of a progression telemetry event.
type TelemetryEvent struct {
	ID       string    `json:"id"`
	PlayerID string    `json:"player_id"`
	Event    string    `json:"event"`
	Time     time.Time `json:"time"`
	Payload  any       `json:"payload,omitempty"`
}

// TelemetryPublisher writes progression events to the telemetry bus.
// It implements progression.EventWriter.
type TelemetryPublisher struct {
	pub Publisher
	now func() time.Time
}

type TelemetryOpt func(*TelemetryPublisher)

// WithClock overrides the event timestamp source.
func WithClock(now func() time.Time) TelemetryOpt {
	return func(t *TelemetryPublisher) {
		t.now = now
	}
}

func NewTelemetryPublisher(pub Publisher, opts ...TelemetryOpt) *TelemetryPublisher {
	t := &TelemetryPublisher{
		pub: pub,
		now: time.Now,
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

func (t *TelemetryPublisher) Write(ctx context.Context, playerID, event string, payload any) error {
	data, err := json.Marshal(&TelemetryEvent{
		ID:       uuid.NewString(),
		PlayerID: playerID,
		Event:    event,
		Time:     t.now().UTC(),
		Payload:  payload,
	})
	if err != nil {
		return fmt.Errorf("encoding telemetry event: %w", err)
	}

	err = t.pub.Publish(fmt.Sprintf("%s.%s", SubjectPrefix, event), data)
	if err != nil {
		return fmt.Errorf("publishing telemetry event: %w", err)
	}
	return nil
}
