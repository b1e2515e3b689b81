package kafka_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Rudraa10-bot/Automated-Library-Checkout-System/pkg/kafka"
)

type fakeGroup struct {
	sarama.ConsumerGroup
	calls   atomic.Int32
	consume func(ctx context.Context, n int32) error
}

func (g *fakeGroup) Consume(ctx context.Context, _ []string, _ sarama.ConsumerGroupHandler) error {
	return g.consume(ctx, g.calls.Add(1))
}

func runConsume(t *testing.T, ctx context.Context, group *fakeGroup) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		defer close(done)
		kafka.Consume(ctx, group, nil, zap.NewNop(), kafka.SettleTopic)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Consume did not return")
	}
}

func TestConsume_BacksOffOnError(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	group := &fakeGroup{consume: func(context.Context, int32) error {
		return errors.New("broker unreachable")
	}}
	runConsume(t, ctx, group)

	require.EqualValues(t, 1, group.calls.Load(), "retry waits out the backoff")
}

func TestConsume_RejoinsAfterRebalance(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	group := &fakeGroup{consume: func(_ context.Context, n int32) error {
		if n == 3 {
			cancel()
		}
		return nil
	}}
	runConsume(t, ctx, group)

	require.EqualValues(t, 3, group.calls.Load())
}

func TestConsume_StopsWhenClosed(t *testing.T) {
	t.Parallel()
	group := &fakeGroup{consume: func(context.Context, int32) error {
		return sarama.ErrClosedConsumerGroup
	}}
	runConsume(t, context.Background(), group)

	require.EqualValues(t, 1, group.calls.Load())
}
