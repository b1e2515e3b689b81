package notify

import (
	"context"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Rudraa10-bot/Automated-Library-Checkout-System/circulation/internal/model"
	"github.com/Rudraa10-bot/Automated-Library-Checkout-System/pkg/circuit_breaker"
	"github.com/Rudraa10-bot/Automated-Library-Checkout-System/pkg/kafka"
)

// TopicFor routes waitlist notifications apart from circulation events.
func TopicFor(t model.EventType) string {
	if t == model.EventReservationNotified {
		return kafka.NotificationTopic
	}
	return kafka.CirculationTopic
}

// Messages for one item share a partition so consumers see them in order.
func keyFor(ev model.Event) string {
	if ev.Type == model.EventReservationNotified {
		return strconv.FormatInt(ev.BorrowerID, 10)
	}
	return strconv.FormatInt(ev.ItemID, 10)
}

type KafkaPublisher struct {
	enq kafka.Enqueuer
	cb  circuit_breaker.CircuitBreaker
	log *zap.Logger
}

type Option func(p *KafkaPublisher)

func WithBreaker(cb circuit_breaker.CircuitBreaker) Option {
	return func(p *KafkaPublisher) {
		p.cb = cb
	}
}

func NewKafkaPublisher(enq kafka.Enqueuer, log *zap.Logger, opts ...Option) *KafkaPublisher {
	p := &KafkaPublisher{
		enq: enq,
		log: log.Named("notify"),
	}
	p.cb = circuit_breaker.New(20, 30*time.Second, 0.5, 3, circuit_breaker.WithStateChange(p.breakerChanged))
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *KafkaPublisher) Publish(_ context.Context, ev model.Event) error {
	topic := TopicFor(ev.Type)
	err := p.cb.Call(func() error {
		return p.enq.Enqueue(topic, keyFor(ev), ev)
	})
	if err != nil {
		return errors.Wrapf(err, "publish %s to %s", ev.Type, topic)
	}
	p.log.Debug("published", zap.String("topic", topic), zap.String("id", ev.ID.String()))
	return nil
}

func (p *KafkaPublisher) breakerChanged(from, to circuit_breaker.Status) {
	p.log.Warn("publisher breaker", zap.Stringer("from", from), zap.Stringer("to", to))
}

// LogPublisher stands in when no broker is configured.
type LogPublisher struct {
	log *zap.Logger
}

func NewLogPublisher(log *zap.Logger) *LogPublisher {
	return &LogPublisher{log: log.Named("notify")}
}

func (p *LogPublisher) Publish(_ context.Context, ev model.Event) error {
	p.log.Info("event",
		zap.String("type", string(ev.Type)),
		zap.String("id", ev.ID.String()),
		zap.Int64("borrower", ev.BorrowerID),
		zap.Int64("item", ev.ItemID),
		zap.Int64("reservation", ev.ReservationID))
	return nil
}
