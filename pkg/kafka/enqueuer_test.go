package kafka_test

import (
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/require"

	"github.com/Rudraa10-bot/Automated-Library-Checkout-System/pkg/kafka"
)

type payload struct {
	ItemID int64 `json:"itemId"`
}

func TestEnqueuer_Enqueue(t *testing.T) {
	t.Parallel()
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var p payload
		if err := kafka.Decode(val, &p); err != nil {
			return err
		}
		if p.ItemID != 42 {
			return errors.New("unexpected item id")
		}
		return nil
	})

	q := kafka.NewEnqueuer(producer)
	require.NoError(t, q.Enqueue(kafka.SettleTopic, "42", payload{ItemID: 42}))
	require.NoError(t, producer.Close())
}

func TestEnqueuer_EnqueueFail(t *testing.T) {
	t.Parallel()
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	q := kafka.NewEnqueuer(producer)
	err := q.Enqueue(kafka.NotificationTopic, "", payload{ItemID: 1})
	require.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, producer.Close())
}
