package circuit_breaker_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Rudraa10-bot/Automated-Library-Checkout-System/pkg/circuit_breaker"
)

func Test_circuitBreaker_Call(t *testing.T) {
	t.Parallel()
	successfulService := func() error {
		return nil
	}
	errService := errors.New("service error")
	failingService := func() error {
		return errService
	}

	cb := circuit_breaker.New(10, 50*time.Millisecond, 0.3, 3)
	for i := 0; i < 20; i++ {
		require.NoError(t, cb.Call(successfulService))
	}
	require.Equal(t, circuit_breaker.Closed, cb.State())

	// three failures out of ten open the breaker
	for i := 0; i < 3; i++ {
		require.ErrorIs(t, cb.Call(failingService), errService)
	}
	require.Equal(t, circuit_breaker.Open, cb.State())
	require.ErrorIs(t, cb.Call(successfulService), circuit_breaker.ErrOpenCB)

	time.Sleep(80 * time.Millisecond)

	// a failure while half-open reopens immediately
	require.ErrorIs(t, cb.Call(failingService), errService)
	require.Equal(t, circuit_breaker.Open, cb.State())

	time.Sleep(80 * time.Millisecond)
	for i := 0; i < 3; i++ {
		require.NoError(t, cb.Call(successfulService))
	}
	require.Equal(t, circuit_breaker.Closed, cb.State())
}

func Test_circuitBreaker_Reset(t *testing.T) {
	t.Parallel()
	cb := circuit_breaker.New(2, time.Hour, 0.5, 1)
	_ = cb.Call(func() error { return errors.New("boom") })
	require.Equal(t, circuit_breaker.Open, cb.State())

	cb.Reset()
	require.Equal(t, circuit_breaker.Closed, cb.State())
	require.NoError(t, cb.Call(func() error { return nil }))
}

func Test_circuitBreaker_StateChange(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	type change struct{ from, to circuit_breaker.Status }
	var changes []change

	cb := circuit_breaker.New(4, time.Minute, 0.5, 2,
		circuit_breaker.WithClock(func() time.Time { return now }),
		circuit_breaker.WithStateChange(func(from, to circuit_breaker.Status) {
			changes = append(changes, change{from, to})
		}),
	)
	fail := func() error { return errors.New("boom") }
	ok := func() error { return nil }

	require.NoError(t, cb.Call(ok))
	require.Error(t, cb.Call(fail))
	require.Empty(t, changes, "one failure in four stays closed")
	require.Error(t, cb.Call(fail))
	require.Equal(t, circuit_breaker.Open, cb.State())

	now = now.Add(30 * time.Second)
	require.ErrorIs(t, cb.Call(ok), circuit_breaker.ErrOpenCB)

	now = now.Add(time.Minute)
	require.NoError(t, cb.Call(ok))
	require.Equal(t, circuit_breaker.HalfOpen, cb.State())
	require.NoError(t, cb.Call(ok))
	require.Equal(t, circuit_breaker.Closed, cb.State())

	// the window was cleared on close
	require.Error(t, cb.Call(fail))
	require.Equal(t, circuit_breaker.Closed, cb.State())

	cb.Reset()
	cb.Reset()
	require.Equal(t, []change{
		{circuit_breaker.Closed, circuit_breaker.Open},
		{circuit_breaker.Open, circuit_breaker.HalfOpen},
		{circuit_breaker.HalfOpen, circuit_breaker.Closed},
	}, changes, "reset of a closed breaker is not a transition")
}
