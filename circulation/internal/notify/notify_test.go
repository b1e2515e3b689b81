package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Rudraa10-bot/Automated-Library-Checkout-System/circulation/internal/model"
	"github.com/Rudraa10-bot/Automated-Library-Checkout-System/pkg/circuit_breaker"
	"github.com/Rudraa10-bot/Automated-Library-Checkout-System/pkg/kafka"
)

type sent struct {
	topic, key string
	ev         model.Event
}

type fakeEnqueuer struct {
	sent []sent
	err  error
}

func (f *fakeEnqueuer) Enqueue(topic, key string, v any) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sent{topic: topic, key: key, ev: v.(model.Event)})
	return nil
}

func TestKafkaPublisher_Routes(t *testing.T) {
	t.Parallel()
	enq := &fakeEnqueuer{}
	p := NewKafkaPublisher(enq, zap.NewExample())
	item := model.Item{ID: 7, Barcode: "BC-7", Title: "Dune"}
	now := time.Now()

	issued := model.NewEvent(model.EventItemIssued, item, 3, now)
	notified := model.NewEvent(model.EventReservationNotified, item, 4, now)
	require.NoError(t, p.Publish(context.Background(), issued))
	require.NoError(t, p.Publish(context.Background(), notified))

	require.Len(t, enq.sent, 2)
	require.Equal(t, kafka.CirculationTopic, enq.sent[0].topic)
	require.Equal(t, "7", enq.sent[0].key)
	require.Equal(t, issued.ID, enq.sent[0].ev.ID)
	require.Equal(t, kafka.NotificationTopic, enq.sent[1].topic)
	require.Equal(t, "4", enq.sent[1].key)
}

func TestKafkaPublisher_OpensBreaker(t *testing.T) {
	t.Parallel()
	boom := errors.New("out of brokers")
	enq := &fakeEnqueuer{err: boom}
	cb := circuit_breaker.New(2, time.Minute, 0.5, 1)
	p := NewKafkaPublisher(enq, zap.NewExample(), WithBreaker(cb))
	ev := model.NewEvent(model.EventItemReturned, model.Item{ID: 1}, 1, time.Now())

	require.ErrorIs(t, p.Publish(context.Background(), ev), boom)
	require.Equal(t, circuit_breaker.Open, cb.State())
	require.ErrorIs(t, p.Publish(context.Background(), ev), circuit_breaker.ErrOpenCB)
}

func TestKafkaPublisher_LogsBreakerTransitions(t *testing.T) {
	t.Parallel()
	core, logs := observer.New(zap.WarnLevel)
	enq := &fakeEnqueuer{err: errors.New("out of brokers")}
	p := NewKafkaPublisher(enq, zap.New(core))
	ev := model.NewEvent(model.EventItemIssued, model.Item{ID: 1}, 1, time.Now())

	// half of the default window of twenty
	for i := 0; i < 10; i++ {
		require.Error(t, p.Publish(context.Background(), ev))
	}
	require.Equal(t, circuit_breaker.Open, p.cb.State())
	entries := logs.FilterMessage("publisher breaker").All()
	require.Len(t, entries, 1)
	require.Equal(t, "open", entries[0].ContextMap()["to"])
}

func TestLogPublisher(t *testing.T) {
	t.Parallel()
	p := NewLogPublisher(zap.NewExample())
	require.NoError(t, p.Publish(context.Background(), model.NewEvent(model.EventItemIssued, model.Item{ID: 1}, 1, time.Now())))
}
