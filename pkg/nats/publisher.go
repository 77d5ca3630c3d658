package nats

import (
	"context"
	"fmt"
	"time"

	"github.com/abgdnv/gocatalog/pkg/messaging"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// Publisher is the part of jetstream.JetStream used to publish messages.
type Publisher interface {
	PublishMsg(ctx context.Context, msg *nats.Msg, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error)
}

type NatsPublisher struct {
	js      Publisher
	stream  string
	timeout time.Duration
}

func NewNatsPublisher(js Publisher, stream string, timeout time.Duration) *NatsPublisher {
	return &NatsPublisher{js: js, stream: stream, timeout: timeout}
}

func (p *NatsPublisher) Publish(ctx context.Context, event messaging.Event) error {
	data, err := event.Payload()
	if err != nil {
		return fmt.Errorf("failed to get event payload: %w", err)
	}
	msg := nats.NewMsg(event.Subject())
	msg.Data = data
	msg.Header.Set("Content-Type", "application/json")

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	if _, err = p.js.PublishMsg(ctx, msg, jetstream.WithExpectStream(p.stream)); err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.Subject(), err)
	}
	return nil
}
