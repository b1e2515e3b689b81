package handler

import (
	"context"

	"github.com/IBM/sarama"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Rudraa10-bot/Automated-Library-Checkout-System/circulation/internal/model"
	"github.com/Rudraa10-bot/Automated-Library-Checkout-System/pkg/kafka"
)

type settle func(ctx context.Context, itemID int64) ([]model.Reservation, error)

// Consumer re-drives waitlist settlement from the waitlist.settle topic.
type Consumer struct {
	settleHandler settle
	log           *zap.Logger
	ready         chan bool
}

func NewConsumer(settle settle, log *zap.Logger) *Consumer {
	return &Consumer{
		settleHandler: settle,
		log:           log.Named("consumer"),
		ready:         make(chan bool),
	}
}

// Ready is closed once the first session has been set up.
func (consumer *Consumer) Ready() <-chan bool {
	return consumer.ready
}

func (consumer *Consumer) Setup(sarama.ConsumerGroupSession) error {
	select {
	case <-consumer.ready:
	default:
		close(consumer.ready)
	}
	return nil
}

func (consumer *Consumer) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

// ConsumeClaim stops at the first failed settlement without marking it,
// which ends the session; the group rejoins and the message is
// redelivered from the last committed offset. Settle is idempotent, so
// replaying the messages before it is harmless.
func (consumer *Consumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				consumer.log.Warn("message channel was closed")
				return nil
			}
			var req model.SettleRequest
			if err := kafka.Decode(message.Value, &req); err != nil || req.ItemID <= 0 {
				consumer.log.Error("bad settle request", zap.ByteString("value", message.Value), zap.Error(err))
				session.MarkMessage(message, "")
				continue
			}

			notified, err := consumer.settleHandler(session.Context(), req.ItemID)
			if err != nil {
				consumer.log.Error("consumer.settleHandler", zap.Int64("item", req.ItemID),
					zap.Int64("offset", message.Offset), zap.Error(err))
				return errors.Wrapf(err, "settle item %d", req.ItemID)
			}

			consumer.log.Debug("settled", zap.Int64("item", req.ItemID), zap.Int("notified", len(notified)),
				zap.Time("timestamp", message.Timestamp), zap.String("topic", message.Topic))
			session.MarkMessage(message, "")
		case <-session.Context().Done():
			return nil
		}
	}
}
