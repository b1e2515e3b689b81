package handler_test

import (
	"context"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Rudraa10-bot/Automated-Library-Checkout-System/circulation/internal/handler"
	"github.com/Rudraa10-bot/Automated-Library-Checkout-System/circulation/internal/model"
)

type fakeSession struct {
	sarama.ConsumerGroupSession
	ctx    context.Context
	marked []int64
}

func (s *fakeSession) Context() context.Context { return s.ctx }

func (s *fakeSession) MarkMessage(msg *sarama.ConsumerMessage, _ string) {
	s.marked = append(s.marked, msg.Offset)
}

type fakeClaim struct {
	sarama.ConsumerGroupClaim
	messages chan *sarama.ConsumerMessage
}

func (c *fakeClaim) Messages() <-chan *sarama.ConsumerMessage { return c.messages }

func TestConsumer_ConsumeClaim(t *testing.T) {
	t.Parallel()
	var settled []int64
	consumer := handler.NewConsumer(func(_ context.Context, itemID int64) ([]model.Reservation, error) {
		settled = append(settled, itemID)
		if itemID == 13 {
			return nil, errors.New("db down")
		}
		return []model.Reservation{{ID: 1, ItemID: itemID}}, nil
	}, zap.NewExample())

	claim := &fakeClaim{messages: make(chan *sarama.ConsumerMessage, 4)}
	claim.messages <- &sarama.ConsumerMessage{Offset: 1, Value: []byte(`{"itemId":7}`)}
	claim.messages <- &sarama.ConsumerMessage{Offset: 2, Value: []byte(`not json`)}
	claim.messages <- &sarama.ConsumerMessage{Offset: 3, Value: []byte(`{"itemId":13}`)}
	claim.messages <- &sarama.ConsumerMessage{Offset: 4, Value: []byte(`{"itemId":0}`)}
	close(claim.messages)

	session := &fakeSession{ctx: context.Background()}
	require.NoError(t, consumer.Setup(session))
	<-consumer.Ready()
	err := consumer.ConsumeClaim(session, claim)
	require.Error(t, err)
	require.Contains(t, err.Error(), "db down")

	require.Equal(t, []int64{7, 13}, settled)
	require.Equal(t, []int64{1, 2}, session.marked, "nothing past a failed settlement is marked")
	require.Len(t, claim.messages, 1, "offset 4 is left for the next session")
}

func TestConsumer_ConsumeClaimDrains(t *testing.T) {
	t.Parallel()
	consumer := handler.NewConsumer(func(_ context.Context, itemID int64) ([]model.Reservation, error) {
		return nil, nil
	}, zap.NewNop())

	claim := &fakeClaim{messages: make(chan *sarama.ConsumerMessage, 2)}
	claim.messages <- &sarama.ConsumerMessage{Offset: 10, Value: []byte(`{"itemId":1}`)}
	claim.messages <- &sarama.ConsumerMessage{Offset: 11, Value: []byte(`{"itemId":2}`)}
	close(claim.messages)

	session := &fakeSession{ctx: context.Background()}
	require.NoError(t, consumer.ConsumeClaim(session, claim))
	require.Equal(t, []int64{10, 11}, session.marked)
}
