package engine

import (
	"testing"
	"time"
)

func TestChanPublisher_FanOutAndCancel(t *testing.T) {
	p := NewChanPublisher()
	ch1, cancel1 := p.Subscribe()
	ch2, cancel2 := p.Subscribe()
	defer cancel2()

	p.Publish(Event{Name: "ready"})
	for _, ch := range []<-chan Event{ch1, ch2} {
		select {
		case e := <-ch:
			if e.Name != "ready" {
				t.Fatalf("event = %q, want ready", e.Name)
			}
		case <-time.After(time.Second):
			t.Fatal("subscriber never received event")
		}
	}

	cancel1()
	if _, ok := <-ch1; ok {
		t.Fatal("canceled subscription channel must be closed")
	}
	cancel1() // second cancel is a no-op

	p.Publish(Event{Name: "move_result"})
	select {
	case e := <-ch2:
		if e.Name != "move_result" {
			t.Fatalf("event = %q, want move_result", e.Name)
		}
	case <-time.After(time.Second):
		t.Fatal("remaining subscriber never received event")
	}
}

func TestChanPublisher_SlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	p := NewChanPublisher()
	_, cancel := p.Subscribe()
	defer cancel()
	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriberBuffer*2; i++ {
			p.Publish(Event{Name: "eval_update"})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publisher blocked on a slow subscriber")
	}
}

func TestMemoryPublisher_CopiesEvents(t *testing.T) {
	p := NewMemoryPublisher()
	p.Publish(Event{Name: "a"})
	evts := p.Events()
	evts[0].Name = "mutated"
	if got := p.Events()[0].Name; got != "a" {
		t.Fatalf("stored event mutated via returned slice: %q", got)
	}
}
