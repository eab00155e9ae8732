package sessionclient

// Monitor watches the store for writes from any component (this context's
// refresh loop, a login elsewhere, a logout) and re-checks that the role
// marker still matches the role inside the stored token. Divergence means
// the session was superseded or tampered with; the monitor clears the slot
// and invokes the logout callback.
//
// The check also runs once at startup so a context that loads with a stale
// marker (a tab left open across a re-login under a different role) is
// logged out before it operates on anything.
//
// This is defense in depth only: the server's authorization gate makes the
// same comparison on every request and rejects drift on its own.
type Monitor struct {
	store    *Store
	onLogout func()
}

func NewMonitor(store *Store, onLogout func()) *Monitor {
	if onLogout == nil {
		onLogout = func() {}
	}
	return &Monitor{store: store, onLogout: onLogout}
}

// Run validates once, then revalidates on every store write until cancel
// is called on the watch (caller does that via the returned stop func).
func (m *Monitor) Run(done <-chan struct{}) {
	ch, cancel := m.store.Watch()
	defer cancel()

	m.validate(m.store.Snapshot())
	for {
		select {
		case <-done:
			return
		case st, ok := <-ch:
			if !ok {
				return
			}
			m.validate(st)
		}
	}
}

// Validate checks a single state and forces logout on divergence. Returns
// false when the session was ended.
func (m *Monitor) Validate() bool {
	return m.validate(m.store.Snapshot())
}

func (m *Monitor) validate(st State) bool {
	if st.Empty() {
		return true
	}
	role, err := Role(st.AccessToken)
	if err != nil || role == "" || role != st.RoleMarker {
		// Clear first: the store write is what stops an in-flight refresh
		// from restoring the token after this point.
		m.store.Clear()
		m.onLogout()
		return false
	}
	return true
}
