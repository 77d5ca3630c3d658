package messaging

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/abgdnv/gocatalog/pkg/config"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEvent struct{}

func (testEvent) Subject() string          { return "catalog.test" }
func (testEvent) Payload() ([]byte, error) { return []byte(`{}`), nil }

// countingPublisher fails with err and counts calls. Not thread-safe.
type countingPublisher struct {
	calls int
	err   error
}

func (p *countingPublisher) Publish(context.Context, Event) error {
	p.calls++
	return p.err
}

func breakerConfig() config.CircuitBreakerConfig {
	return config.CircuitBreakerConfig{
		ConsecutiveFailures: 3,
		ErrorRatePercent:    100,
		OpenTimeout:         time.Minute,
	}
}

func Test_BreakerPublisher_OpensAfterConsecutiveFailures(t *testing.T) {
	// given
	brokerDown := errors.New("nats: no responders")
	next := &countingPublisher{err: brokerDown}
	publisher := NewBreakerPublisher(next, breakerConfig())

	// when
	for range 3 {
		err := publisher.Publish(context.Background(), testEvent{})
		require.ErrorIs(t, err, brokerDown)
	}
	err := publisher.Publish(context.Background(), testEvent{})

	// then
	assert.ErrorIs(t, err, ErrPublisherUnavailable)
	assert.Equal(t, 3, next.calls, "open breaker must not reach the broker")
	assert.Equal(t, gobreaker.StateOpen, publisher.State())
}

func Test_BreakerPublisher_PassesThroughSuccess(t *testing.T) {
	// given
	next := &countingPublisher{}
	publisher := NewBreakerPublisher(next, breakerConfig())

	// when
	err := publisher.Publish(context.Background(), testEvent{})

	// then
	require.NoError(t, err)
	assert.Equal(t, 1, next.calls)
	assert.Equal(t, gobreaker.StateClosed, publisher.State())
}

func Test_BreakerPublisher_IgnoresCancellation(t *testing.T) {
	// given
	next := &countingPublisher{err: context.Canceled}
	publisher := NewBreakerPublisher(next, breakerConfig())

	// when
	for range 5 {
		_ = publisher.Publish(context.Background(), testEvent{})
	}

	// then
	assert.Equal(t, gobreaker.StateClosed, publisher.State())
	assert.Equal(t, 5, next.calls)
}

func Test_NoopPublisher(t *testing.T) {
	assert.NoError(t, NoopPublisher{}.Publish(context.Background(), testEvent{}))
}
