package auth

import (
	"testing"
	"time"
)

func TestBrokerPublishSubscribe(t *testing.T) {
	broker := NewBroker()

	events, cancel := broker.Subscribe()
	defer cancel()

	broker.Publish(Event{Type: EventSignedIn, UserID: "user1", SessionID: "sess1"})

	select {
	case event := <-events:
		if event.Type != EventSignedIn || event.UserID != "user1" || event.SessionID != "sess1" {
			t.Errorf("got %+v, want SIGNED_IN for user1/sess1", event)
		}
	case <-time.After(time.Second):
		t.Fatal("no event received")
	}
}

func TestBrokerMultipleSubscribers(t *testing.T) {
	broker := NewBroker()

	first, cancelFirst := broker.Subscribe()
	defer cancelFirst()
	second, cancelSecond := broker.Subscribe()
	defer cancelSecond()

	broker.Publish(Event{Type: EventSignedOut, UserID: "user1"})

	for name, ch := range map[string]<-chan Event{"first": first, "second": second} {
		select {
		case event := <-ch:
			if event.Type != EventSignedOut {
				t.Errorf("%s subscriber got %+v, want SIGNED_OUT", name, event)
			}
		case <-time.After(time.Second):
			t.Fatalf("%s subscriber received nothing", name)
		}
	}
}

func TestBrokerUnsubscribe(t *testing.T) {
	broker := NewBroker()

	events, cancel := broker.Subscribe()
	cancel()

	if _, ok := <-events; ok {
		t.Error("channel should be closed after unsubscribe")
	}

	// Unsubscribing twice must not panic
	cancel()

	// Publishing with no subscribers must not panic
	broker.Publish(Event{Type: EventSignedUp, UserID: "user1"})
}

func TestBrokerDropsWhenSubscriberLags(t *testing.T) {
	broker := NewBroker()

	events, cancel := broker.Subscribe()
	defer cancel()

	// Overfill the subscriber buffer; the publisher must never block
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			broker.Publish(Event{Type: EventTokenRefresh, UserID: "user1"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publisher blocked on a lagging subscriber")
	}

	// Buffered events are still deliverable
	select {
	case event := <-events:
		if event.Type != EventTokenRefresh {
			t.Errorf("got %+v, want TOKEN_REFRESHED", event)
		}
	default:
		t.Error("expected at least one buffered event")
	}
}
