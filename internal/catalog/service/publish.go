package service

import (
	"context"
	"log/slog"

	"github.com/abgdnv/gocatalog/pkg/messaging"
)

// notifier publishes change events on a best-effort basis: a failed publish is logged, never returned.
type notifier struct {
	publisher messaging.Publisher
	logger    *slog.Logger
}

func (n notifier) notify(ctx context.Context, event messaging.Event) {
	if err := n.publisher.Publish(ctx, event); err != nil {
		n.logger.WarnContext(ctx, "Failed to publish catalog event", "subject", event.Subject(), "error", err)
	}
}
