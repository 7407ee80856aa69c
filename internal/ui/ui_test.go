package ui

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoopRunsPostedWorkInOrder(t *testing.T) {
	loop := NewLoop(4)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go loop.Run(ctx)

	got := make(chan int, 3)
	for i := 1; i <= 3; i++ {
		i := i
		require.True(t, loop.Post(func() { got <- i }))
	}

	for want := 1; want <= 3; want++ {
		select {
		case v := <-got:
			assert.Equal(t, want, v)
		case <-time.After(time.Second):
			t.Fatal("posted work did not run")
		}
	}
}

func TestLoopRejectsAfterClose(t *testing.T) {
	loop := NewLoop(1)
	go loop.Run(context.Background())

	loop.Close()
	loop.Close()

	select {
	case <-loop.Done():
	case <-time.After(time.Second):
		t.Fatal("loop did not stop")
	}
	assert.False(t, loop.Post(func() {}))
	assert.False(t, loop.Post(nil))
}

func TestLoopStopsOnContext(t *testing.T) {
	loop := NewLoop(0)
	ctx, cancel := context.WithCancel(context.Background())
	go loop.Run(ctx)
	cancel()

	select {
	case <-loop.Done():
	case <-time.After(time.Second):
		t.Fatal("loop did not stop on cancel")
	}
	assert.False(t, loop.Post(func() {}), "post after run exit must report false")
}

func TestLoopCloseWithoutRunIsDone(t *testing.T) {
	loop := NewLoop(1)
	require.True(t, loop.Post(func() {}))

	loop.Close()
	select {
	case <-loop.Done():
	default:
		t.Fatal("closed loop that never ran should be done")
	}
}

func TestTerminalSurfaceText(t *testing.T) {
	var out, notices bytes.Buffer
	s := NewTerminalSurface(&out, &notices)

	s.SetText("Employees (1)\n1. Alice (Engineer)")
	assert.Equal(t, "Employees (1)\n1. Alice (Engineer)", s.Text())
	assert.Equal(t, "Employees (1)\n1. Alice (Engineer)\n", out.String())
	assert.Empty(t, notices.String())
}

func TestTerminalSurfaceNotificationExpires(t *testing.T) {
	var out, notices bytes.Buffer
	s := NewTerminalSurface(&out, &notices)

	s.ShowNotification("Error: 500 Internal Server Error", 30*time.Millisecond)
	assert.Equal(t, "Error: 500 Internal Server Error", s.ActiveNotification())
	assert.Equal(t, "[notice] Error: 500 Internal Server Error\n", notices.String())
	assert.Empty(t, out.String())

	assert.Eventually(t, func() bool { return s.ActiveNotification() == "" }, time.Second, 5*time.Millisecond)
}

func TestTerminalSurfaceNotificationReplaceAndDismiss(t *testing.T) {
	s := NewTerminalSurface(nil, nil)

	s.ShowNotification("first", 20*time.Millisecond)
	s.ShowNotification("second", time.Hour)
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, "second", s.ActiveNotification())

	s.DismissNotification()
	assert.Empty(t, s.ActiveNotification())
}
