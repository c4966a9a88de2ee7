package multiplayer

import (
	"context"
	"sync"
)

// SessionHandle is how the coordinator and matches reach one connected
// player without knowing about SSH or Bubble Tea.
type SessionHandle interface {
	ID() SessionID

	// Send queues an event for the session. It never blocks.
	Send(evt SessionEvent)

	// Done is closed when the session ends.
	Done() <-chan struct{}
}

// ChannelSession delivers events to a Bubble Tea session through channels.
//
// Snapshots and control events travel separately. Only the newest snapshot
// is kept, so a slow terminal skips frames instead of losing a lobby or
// match event behind a queue of stale snapshots.
type ChannelSession struct {
	id        SessionID
	events    chan SessionEvent
	snapshots chan SnapshotEvent
	done      chan struct{}
	doneOnce  sync.Once
}

// NewChannelSession creates a session handle that buffers up to
// eventBufferSize control events.
func NewChannelSession(id SessionID, eventBufferSize int) *ChannelSession {
	if eventBufferSize < 1 {
		eventBufferSize = 64
	}
	return &ChannelSession{
		id:        id,
		events:    make(chan SessionEvent, eventBufferSize),
		snapshots: make(chan SnapshotEvent, 1),
		done:      make(chan struct{}),
	}
}

// ID returns the session identifier.
func (s *ChannelSession) ID() SessionID {
	return s.id
}

// Send queues evt. A snapshot replaces the one still pending; a control
// event pushes out the oldest queued event when the buffer is full.
func (s *ChannelSession) Send(evt SessionEvent) {
	select {
	case <-s.done:
		return
	default:
	}

	if snap, ok := evt.(SnapshotEvent); ok {
		replaceLatest(s.snapshots, snap)
		return
	}

	select {
	case s.events <- evt:
	default:
		select {
		case <-s.events:
		default:
		}
		select {
		case s.events <- evt:
		default:
		}
	}
}

func replaceLatest(ch chan SnapshotEvent, snap SnapshotEvent) {
	for {
		select {
		case ch <- snap:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

// Next blocks until an event is available, the session ends or ctx is
// done. Pending control events are delivered before a pending snapshot.
// ok is false when nothing more will be delivered.
func (s *ChannelSession) Next(ctx context.Context) (evt SessionEvent, ok bool) {
	select {
	case evt := <-s.events:
		return evt, true
	default:
	}

	select {
	case evt := <-s.events:
		return evt, true
	case snap := <-s.snapshots:
		return snap, true
	case <-s.done:
		return nil, false
	case <-ctx.Done():
		return nil, false
	}
}

// Done returns the done channel.
func (s *ChannelSession) Done() <-chan struct{} {
	return s.done
}

// Close ends the session. Safe to call multiple times.
func (s *ChannelSession) Close() {
	s.doneOnce.Do(func() {
		close(s.done)
	})
}

// SessionRegistry tracks connected sessions. Safe for concurrent use.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[SessionID]SessionHandle
}

// NewSessionRegistry creates an empty registry.
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[SessionID]SessionHandle),
	}
}

// Register adds a session, replacing any session with the same ID.
func (r *SessionRegistry) Register(session SessionHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID()] = session
}

// Unregister removes a session.
func (r *SessionRegistry) Unregister(id SessionID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Get looks a session up by ID.
func (r *SessionRegistry) Get(id SessionID) (SessionHandle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Count returns the number of connected sessions.
func (r *SessionRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
