package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/assist-dashboard/internal/events"
	"github.com/spec-kit/assist-dashboard/internal/observability"
)

// StartAuditWorker subscribes to every pipeline event, logging it and
// feeding the event counters.
func StartAuditWorker(dispatcher events.Dispatcher, logger *zap.Logger, metrics *observability.Metrics) {
	if dispatcher == nil {
		return
	}
	for _, eventType := range events.AllTypes {
		dispatcher.Subscribe(eventType, func(ctx context.Context, event events.Event) error {
			metrics.RecordEvent(string(event.Type))
			if payload, ok := event.Payload.(events.DatasetLoadedPayload); ok {
				metrics.RecordLoad(payload.CacheHit)
			}
			logger.Info("pipeline event",
				zap.String("event_id", event.ID),
				zap.String("event_type", string(event.Type)),
				zap.Any("payload", event.Payload),
			)
			return nil
		})
	}
}
