package sessionclient

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWatchSeesWrites(t *testing.T) {
	s := NewStore()
	ch, cancel := s.Watch()
	defer cancel()

	s.Set(State{AccessToken: "tok", SessionID: "sid", RoleMarker: "DEVELOPER"})
	got := <-ch
	require.Equal(t, "tok", got.AccessToken)
	require.Equal(t, "sid", got.SessionID)
}

func TestWatchCoalescesToLatest(t *testing.T) {
	s := NewStore()
	ch, cancel := s.Watch()
	defer cancel()

	// No reader between writes: the pending value is replaced, not queued.
	s.Set(State{AccessToken: "one", SessionID: "sid"})
	s.Set(State{AccessToken: "two", SessionID: "sid"})
	s.Set(State{AccessToken: "three", SessionID: "sid"})

	got := <-ch
	require.Equal(t, "three", got.AccessToken)
	select {
	case extra := <-ch:
		t.Fatalf("unexpected queued notification: %+v", extra)
	default:
	}
}

func TestUpdateTokenRefusesStaleSession(t *testing.T) {
	s := NewStore()
	s.Set(State{AccessToken: "tok", SessionID: "sid-1", RoleMarker: "DEVELOPER"})

	// Forced logout happened while a refresh was in flight.
	s.Clear()
	require.False(t, s.UpdateToken("sid-1", "renewed"))
	require.True(t, s.Snapshot().Empty(), "cleared slot must stay cleared")

	// A newer login supersedes the old session the same way.
	s.Set(State{AccessToken: "tok2", SessionID: "sid-2", RoleMarker: "PROJECT_MANAGER"})
	require.False(t, s.UpdateToken("sid-1", "renewed"))
	require.Equal(t, "tok2", s.Snapshot().AccessToken)

	require.True(t, s.UpdateToken("sid-2", "renewed"))
	require.Equal(t, "renewed", s.Snapshot().AccessToken)
}

func TestMutateRollbackRestoresPriorState(t *testing.T) {
	s := NewStore()
	before := State{AccessToken: "tok", SessionID: "sid", RoleMarker: "DEVELOPER"}
	s.Set(before)

	rollback := s.Mutate(func(st *State) { st.AccessToken = "speculative" })
	require.Equal(t, "speculative", s.Snapshot().AccessToken)

	rollback()
	require.Equal(t, before, s.Snapshot())
}

func TestMutateRollbackYieldsToNewerWrite(t *testing.T) {
	s := NewStore()
	s.Set(State{AccessToken: "tok", SessionID: "sid", RoleMarker: "DEVELOPER"})

	rollback := s.Mutate(func(st *State) { st.AccessToken = "speculative" })
	s.Clear()

	rollback()
	require.True(t, s.Snapshot().Empty(), "rollback must not resurrect a cleared session")
}

func TestCanceledWatcherStopsReceiving(t *testing.T) {
	s := NewStore()
	ch, cancel := s.Watch()
	cancel()

	s.Set(State{AccessToken: "tok", SessionID: "sid"})
	_, open := <-ch
	require.False(t, open)
}
