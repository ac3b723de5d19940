package eventbus

import (
	"testing"
	"time"
)

type planEvent struct {
	Blocks int
}

func TestPublishSubscribe(t *testing.T) {
	b := New[planEvent]()
	defer b.Close()
	sub := b.Subscribe()
	b.Publish(planEvent{Blocks: 4})
	select {
	case ev := <-sub:
		if ev.Blocks != 4 {
			t.Fatalf("unexpected event %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatalf("no event received")
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	b := New[planEvent]()
	defer b.Close()
	sub := b.Subscribe()
	b.Unsubscribe(sub)
	if _, ok := <-sub; ok {
		t.Fatalf("channel should be closed after unsubscribe")
	}
	// Publishing after unsubscribe must not panic.
	b.Publish(planEvent{})
}

func TestCloseIsIdempotent(t *testing.T) {
	b := New[planEvent]()
	sub := b.Subscribe()
	b.Close()
	b.Close()
	if _, ok := <-sub; ok {
		t.Fatalf("channel should be closed")
	}
	// Subscribing after close yields a closed channel.
	if _, ok := <-b.Subscribe(); ok {
		t.Fatalf("post-close subscription should be closed")
	}
	b.Publish(planEvent{})
}

func TestSlowSubscriberDoesNotBlock(t *testing.T) {
	b := New[planEvent]()
	defer b.Close()
	_ = b.Subscribe()
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			b.Publish(planEvent{Blocks: i})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("publish blocked on a slow subscriber")
	}
}
