package multiplayer

import (
	"context"
	"testing"
	"time"
)

func TestChannelSessionKeepsNewestSnapshot(t *testing.T) {
	s := NewChannelSession("s", 4)
	for tick := range uint64(5) {
		s.Send(SnapshotEvent{MatchID: "m", Tick: tick})
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	evt, ok := s.Next(ctx)
	if !ok {
		t.Fatal("expected a snapshot")
	}
	if snap, isSnap := evt.(SnapshotEvent); !isSnap || snap.Tick != 4 {
		t.Errorf("got %#v, want the snapshot of tick 4", evt)
	}

	short, cancelShort := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancelShort()
	if evt, ok := s.Next(short); ok {
		t.Errorf("stale snapshot delivered: %#v", evt)
	}
}

func TestChannelSessionControlEventsFirst(t *testing.T) {
	s := NewChannelSession("s", 4)
	s.Send(SnapshotEvent{MatchID: "m", Tick: 1})
	s.Send(MatchEndedEvent{MatchID: "m"})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	first, _ := s.Next(ctx)
	if _, ok := first.(MatchEndedEvent); !ok {
		t.Errorf("first event = %T, want MatchEndedEvent", first)
	}
	second, _ := s.Next(ctx)
	if _, ok := second.(SnapshotEvent); !ok {
		t.Errorf("second event = %T, want SnapshotEvent", second)
	}
}

func TestChannelSessionFullBufferDropsOldest(t *testing.T) {
	s := NewChannelSession("s", 2)
	s.Send(LobbyErrorEvent{Message: "one"})
	s.Send(LobbyErrorEvent{Message: "two"})
	s.Send(LobbyErrorEvent{Message: "three"})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	var got []string
	for range 2 {
		evt, ok := s.Next(ctx)
		if !ok {
			t.Fatal("expected an event")
		}
		got = append(got, evt.(LobbyErrorEvent).Message)
	}
	if got[0] != "two" || got[1] != "three" {
		t.Errorf("got %v, want [two three]", got)
	}
}

func TestChannelSessionClosed(t *testing.T) {
	s := NewChannelSession("s", 2)
	s.Close()
	s.Close()
	s.Send(LobbyErrorEvent{Message: "late"})

	if _, ok := s.Next(context.Background()); ok {
		t.Error("a closed session should deliver nothing")
	}
}

func TestSessionRegistry(t *testing.T) {
	r := NewSessionRegistry()
	r.Register(NewChannelSession("a", 1))
	r.Register(NewChannelSession("b", 1))
	if r.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", r.Count())
	}
	if _, ok := r.Get("a"); !ok {
		t.Error("a should be registered")
	}
	r.Unregister("a")
	if _, ok := r.Get("a"); ok {
		t.Error("a should be gone")
	}
}
