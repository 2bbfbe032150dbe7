package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type funcProducer struct {
	name string
	run  func(ctx context.Context, emit func(Event)) error
}

func (p funcProducer) Name() string { return p.name }

func (p funcProducer) Run(ctx context.Context, emit func(Event)) error {
	return p.run(ctx, emit)
}

func receive(t *testing.T, q *Queue) Event {
	t.Helper()
	select {
	case ev := <-q.Events():
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

func TestQueue_FanIn(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	q := NewQueue(0, nil)

	q.Attach(ctx, funcProducer{name: "shortcut", run: func(ctx context.Context, emit func(Event)) error {
		emit(ShortcutActivated{Name: DefaultShortcutID})
		<-ctx.Done()
		return ctx.Err()
	}})

	assert.Equal(t, ShortcutActivated{Name: DefaultShortcutID}, receive(t, q))

	cancel()
	q.Close()
}

func TestQueue_ProducerFailureReported(t *testing.T) {
	q := NewQueue(4, nil)
	boom := errors.New("portal unavailable")

	q.Attach(context.Background(), funcProducer{name: "portal", run: func(context.Context, func(Event)) error {
		return boom
	}})

	ev := receive(t, q)
	stopped, ok := ev.(ProducerStopped)
	require.True(t, ok)
	assert.Equal(t, "portal", stopped.Name)
	assert.ErrorIs(t, stopped.Err, boom)
	q.Close()
}

func TestQueue_PushAfterCloseDropped(t *testing.T) {
	q := NewQueue(1, nil)
	q.Close()
	q.Push(TimerTick{})

	select {
	case ev := <-q.Events():
		t.Fatalf("unexpected event %v", ev)
	default:
	}
}

func TestQueue_CloseUnblocksPush(t *testing.T) {
	q := NewQueue(1, nil)
	q.Push(TimerTick{})

	done := make(chan struct{})
	go func() {
		q.Push(TimerTick{})
		close(done)
	}()

	q.Close()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("push still blocked after close")
	}
}

func TestTicker(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	q := NewQueue(8, nil)
	ticker := NewTicker(time.Millisecond)
	q.Attach(ctx, ticker)

	assert.IsType(t, TimerTick{}, receive(t, q))

	ticker.SetPeriod(60 * time.Millisecond)
	assert.IsType(t, TimerTick{}, receive(t, q))

	cancel()
	q.Close()
}

func TestNewTicker_MinimumPeriod(t *testing.T) {
	assert.Equal(t, MinTickPeriod, NewTicker(0).period)
	assert.Equal(t, time.Second, NewTicker(time.Second).period)
	assert.Equal(t, "clock", NewTicker(time.Second).Name())
}

func TestParseControlOp(t *testing.T) {
	op, err := ParseControlOp("toggle")
	require.NoError(t, err)
	assert.Equal(t, ControlToggle, op)

	_, err = ParseControlOp("explode")
	assert.Error(t, err)
}

func TestRole_String(t *testing.T) {
	assert.Equal(t, "bar", RoleBar.String())
	assert.Equal(t, "overlay", RoleOverlay.String())
	assert.Equal(t, "none", RoleNone.String())
}
