package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"marketledger/internal/logging"
	"marketledger/internal/metrics"
)

// msgPublisher is the subset of *nats.Conn used for publishing.
type msgPublisher interface {
	PublishMsg(m *nats.Msg) error
}

// NATSPublisher publishes catalog events as JSON on a single subject.
type NATSPublisher struct {
	conn    msgPublisher
	subject string
	logger  *zap.Logger
}

func NewNATS(conn msgPublisher, subject string, logger *zap.Logger) *NATSPublisher {
	return &NATSPublisher{conn: conn, subject: subject, logger: logging.OrNop(logger)}
}

func (p *NATSPublisher) Publish(_ context.Context, evt Event) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := &nats.Msg{
		Subject: p.subject,
		Data:    data,
		Header: nats.Header{
			"event_type":   []string{evt.Type},
			"event_id":     []string{evt.ID},
			"product_id":   []string{evt.ProductID},
			"content_type": []string{"application/json"},
		},
	}
	if err := p.conn.PublishMsg(msg); err != nil {
		metrics.EventPublishErrors.WithLabelValues(p.subject).Inc()
		p.logger.Error("events.publish_failed",
			zap.String("subject", p.subject),
			zap.String("event_type", evt.Type),
			zap.String("product_id", evt.ProductID),
			zap.Error(err),
		)
		return err
	}
	p.logger.Debug("events.published",
		zap.String("subject", p.subject),
		zap.String("event_type", evt.Type),
		zap.String("product_id", evt.ProductID),
	)
	return nil
}

// Connect returns a NATS-backed publisher, or Nop when url is empty.
// The returned func drains the connection.
func Connect(url, subject string, logger *zap.Logger) (Publisher, func(), error) {
	if url == "" {
		return Nop{}, func() {}, nil
	}
	nc, err := nats.Connect(url, nats.Name("marketledger"))
	if err != nil {
		return nil, nil, fmt.Errorf("connect nats: %w", err)
	}
	return NewNATS(nc, subject, logger), func() { _ = nc.Drain() }, nil
}
