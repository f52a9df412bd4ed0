package round

import "sync"

// HistoryCap bounds the recorded history.
const HistoryCap = 20

// Store holds the pending, current and recorded rounds. It is created once
// at startup and shared by the scheduler (writer) and handlers (readers).
type Store struct {
	mu      sync.RWMutex
	pending *Round
	current *Round
	history []Round
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{history: make([]Round, 0, HistoryCap)}
}

// SetPending stores a generated round that queries must not see yet.
func (s *Store) SetPending(r Round) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = &r
}

// Reveal promotes the pending round to current. It reports false when
// nothing was pending.
func (s *Store) Reveal() (Round, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return Round{}, false
	}
	s.current = s.pending
	s.pending = nil
	return *s.current, true
}

// Record pushes the current round onto the front of history and trims it
// to HistoryCap. It reports false when there is no current round, or when
// its period is already in history (the round is then returned unrecorded).
func (s *Store) Record() (Round, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return Round{}, false
	}
	r := *s.current
	for _, h := range s.history {
		if h.Period == r.Period {
			return r, false
		}
	}
	s.history = append(s.history, Round{})
	copy(s.history[1:], s.history)
	s.history[0] = r
	if len(s.history) > HistoryCap {
		s.history = s.history[:HistoryCap]
	}
	return r, true
}

// History returns a copy of the history, newest first.
func (s *Store) History() []Round {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Round, len(s.history))
	copy(out, s.history)
	return out
}

// Snapshot is a consistent view of the store for rendering. The pending
// round is never included.
type Snapshot struct {
	Current    Round
	HasCurrent bool
	History    []Round
}

// Snapshot returns current and history under one read lock.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{History: make([]Round, len(s.history))}
	copy(snap.History, s.history)
	if s.current != nil {
		snap.Current = *s.current
		snap.HasCurrent = true
	}
	return snap
}
