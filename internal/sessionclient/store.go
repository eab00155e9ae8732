package sessionclient

import "sync"

// State is the locally persisted session slot: the access token, a random
// session identifier minted at login, and a role marker mirrored for drift
// detection. The zero value means "logged out".
type State struct {
	AccessToken string
	SessionID   string
	RoleMarker  string
}

func (s State) Empty() bool {
	return s.AccessToken == "" && s.SessionID == "" && s.RoleMarker == ""
}

// Store holds the session state and notifies watchers on every write.
// Watch channels stand in for cross-context storage-change events: any
// write is observable by every other component holding a watch channel.
//
// Writes are last-write-wins, with one exception carved out for forced
// logout: UpdateToken refuses to apply when the session it was minted for
// is no longer the current one, so a refresh that was in flight when the
// slot was cleared cannot resurrect the session.
type Store struct {
	mu       sync.Mutex
	state    State
	watchers map[int]chan State
	nextID   int
}

func NewStore() *Store {
	return &Store{watchers: make(map[int]chan State)}
}

func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Set replaces the whole slot, e.g. after a fresh login.
func (s *Store) Set(st State) {
	s.mu.Lock()
	s.state = st
	s.notifyLocked()
	s.mu.Unlock()
}

// Clear wipes the slot. Used by logout and every fail-closed path.
func (s *Store) Clear() {
	s.Set(State{})
}

// UpdateToken swaps in a renewed access token, but only while sessionID is
// still the live session. Returns false when the write was dropped.
func (s *Store) UpdateToken(sessionID, token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sessionID == "" || s.state.SessionID != sessionID {
		return false
	}
	s.state.AccessToken = token
	s.notifyLocked()
	return true
}

// Mutate applies fn to the current state under the lock and returns a
// rollback that restores the exact prior state. The rollback is a no-op
// once the slot has been written by anyone else in between, so it cannot
// clobber a forced logout or a newer login.
func (s *Store) Mutate(fn func(*State)) (rollback func()) {
	s.mu.Lock()
	prev := s.state
	fn(&s.state)
	applied := s.state
	s.notifyLocked()
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.state != applied {
			return
		}
		s.state = prev
		s.notifyLocked()
	}
}

// Watch returns a channel that receives the state after every write, and a
// cancel func that must be called to release it. Delivery coalesces: a slow
// reader sees the latest state, not every intermediate one.
func (s *Store) Watch() (<-chan State, func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	ch := make(chan State, 1)
	s.watchers[id] = ch
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.watchers[id]; ok {
			delete(s.watchers, id)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

func (s *Store) notifyLocked() {
	for _, ch := range s.watchers {
		select {
		case ch <- s.state:
		default:
			// Drop the stale pending value so the reader gets the newest.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- s.state:
			default:
			}
		}
	}
}
