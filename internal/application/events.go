package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/exercise-tracker/pkg/events"
)

// EventPublisher delivers creation events; helpers.RabbitPublisher satisfies it.
type EventPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// publish is best effort: the write already happened, so failures are only logged.
func publish(ctx context.Context, pub EventPublisher, logger *logrus.Logger, ev events.Event) {
	if pub == nil {
		return
	}
	ev.OccurredAt = time.Now().UTC()
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := pub.PublishJSON(c, ev); err != nil && logger != nil {
		logger.WithError(err).WithFields(logrus.Fields{"type": ev.Type, "user_id": ev.UserID}).Warn("publish event failed")
	}
}
