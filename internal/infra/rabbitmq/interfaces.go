package rabbitmq

import (
	"context"

	"go.uber.org/zap"
)

type PublisherInterface interface {
	Publish(ctx context.Context, routingKey string, data any) error
}

var (
	_ PublisherInterface = (*Publisher)(nil)
	_ PublisherInterface = (*LogPublisher)(nil)
)

// LogPublisher writes messages to the log instead of a broker. It is used
// when no RabbitMQ URL is configured.
type LogPublisher struct {
	Logger *zap.Logger
}

func (p *LogPublisher) Publish(_ context.Context, pattern string, data any) error {
	msg, body, err := Encode(pattern, data)
	if err != nil {
		return err
	}
	p.Logger.Info("message not sent, no broker configured",
		zap.String("pattern", pattern),
		zap.String("message_id", msg.ID),
		zap.Int("bytes", len(body)))
	return nil
}
