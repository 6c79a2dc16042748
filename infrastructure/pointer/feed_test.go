package pointer

import (
	"testing"

	"hover_reader/domain/entities"
)

func TestFeedDeliversInSubscriptionOrder(t *testing.T) {
	feed := NewFeed()
	var calls []string

	unsubA := feed.Subscribe(func(e entities.PointerEvent) { calls = append(calls, "a") })
	feed.Subscribe(func(e entities.PointerEvent) { calls = append(calls, "b") })

	feed.Move(1, 2)
	if len(calls) != 2 || calls[0] != "a" || calls[1] != "b" {
		t.Fatalf("calls = %v, want [a b]", calls)
	}

	unsubA()
	unsubA()
	if feed.Subscribers() != 1 {
		t.Errorf("subscribers = %d, want 1", feed.Subscribers())
	}

	calls = nil
	feed.Move(3, 4)
	if len(calls) != 1 || calls[0] != "b" {
		t.Errorf("calls = %v, want [b]", calls)
	}
}

func TestFeedPassesCoordinates(t *testing.T) {
	feed := NewFeed()
	var got entities.PointerEvent
	feed.Subscribe(func(e entities.PointerEvent) { got = e })

	feed.Move(12.5, 40)

	if got.ClientX != 12.5 || got.ClientY != 40 {
		t.Errorf("event = %+v", got)
	}
}

func TestFeedWithoutSubscribers(t *testing.T) {
	feed := NewFeed()
	feed.Move(1, 1)
	if feed.Subscribers() != 0 {
		t.Error("expected no subscribers")
	}
}
