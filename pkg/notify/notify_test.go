package notify

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifier_SubscribeUnsubscribe(t *testing.T) {
	n := New(0)

	ch := n.Subscribe()
	require.NotNil(t, ch)
	assert.Equal(t, 1, n.Len())
	assert.Equal(t, DefaultBuffer, cap(ch))

	n.Unsubscribe(ch)
	assert.Equal(t, 0, n.Len())

	_, open := <-ch
	assert.False(t, open, "channel should be closed")

	assert.NotPanics(t, func() { n.Unsubscribe(ch) })
}

func TestNotifier_Publish(t *testing.T) {
	n := New(4)
	ch1 := n.Subscribe()
	ch2 := n.Subscribe()
	defer n.Unsubscribe(ch1)
	defer n.Unsubscribe(ch2)

	e := NewEvent("plan:abc", "hierarchy", 3, false)
	n.Publish(e)

	for _, ch := range []chan Event{ch1, ch2} {
		select {
		case got := <-ch:
			assert.Equal(t, e, got)
		case <-time.After(100 * time.Millisecond):
			t.Fatal("listener did not receive event")
		}
	}
}

func TestNotifier_PublishNonBlocking(t *testing.T) {
	n := New(1)
	ch := n.Subscribe()
	defer n.Unsubscribe(ch)

	n.Publish(NewEvent("a", "hierarchy", 1, false))

	done := make(chan struct{})
	go func() {
		n.Publish(NewEvent("b", "hierarchy", 1, false))
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Publish blocked on a full listener")
	}

	got := <-ch
	assert.Equal(t, "a", got.Key, "full listener keeps the first event")
}

func TestNotifier_Concurrent(t *testing.T) {
	n := New(64)
	ch := n.Subscribe()
	defer n.Unsubscribe(ch)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n.Publish(NewEvent("k", "quadrant", 4, true))
		}()
	}
	wg.Wait()
	assert.Len(t, ch, 32)
}

func TestNewEvent(t *testing.T) {
	a := NewEvent("k", "comparison", 2, true)
	b := NewEvent("k", "comparison", 2, true)
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.True(t, a.Cached)
	assert.False(t, a.Time.IsZero())
}

func TestNop(t *testing.T) {
	var p Publisher = Nop{}
	assert.NotPanics(t, func() { p.Publish(Event{}) })
}
