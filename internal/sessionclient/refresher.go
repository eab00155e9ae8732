package sessionclient

import (
	"context"
	"sync/atomic"
	"time"
)

// TokenExchanger is the one call the refresh loop needs from the API.
type TokenExchanger interface {
	Refresh(ctx context.Context) (string, error)
}

const (
	defaultInterval  = 5 * time.Minute
	defaultThreshold = 5 * time.Minute
)

// Refresher renews the stored access token before it expires: a check on
// every tick plus one immediately at startup, renewing once less than the
// threshold remains. Any exchange failure ends the session (fail closed).
type Refresher struct {
	store     *Store
	api       TokenExchanger
	onLogout  func()
	interval  time.Duration
	threshold time.Duration
	clock     func() time.Time

	// Guards against a tick firing while a previous exchange is still in
	// flight; the late tick is skipped, not queued.
	inFlight atomic.Bool
}

func NewRefresher(store *Store, api TokenExchanger, onLogout func()) *Refresher {
	if onLogout == nil {
		onLogout = func() {}
	}
	return &Refresher{
		store:     store,
		api:       api,
		onLogout:  onLogout,
		interval:  defaultInterval,
		threshold: defaultThreshold,
		clock:     time.Now,
	}
}

// Run blocks until ctx is done.
func (r *Refresher) Run(ctx context.Context) {
	r.tick(ctx)

	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.tick(ctx)
		}
	}
}

func (r *Refresher) tick(ctx context.Context) {
	if !r.inFlight.CompareAndSwap(false, true) {
		return
	}
	defer r.inFlight.Store(false)

	st := r.store.Snapshot()
	if st.AccessToken == "" {
		return
	}

	exp, err := Expiry(st.AccessToken)
	if err != nil {
		// Undecodable token in the slot: the session is unusable.
		r.endSession()
		return
	}
	if exp.Sub(r.clock()) >= r.threshold {
		return
	}

	token, err := r.api.Refresh(ctx)
	if err != nil {
		r.endSession()
		return
	}

	// Dropped silently if the session was cleared or replaced while the
	// exchange was in flight; the newer write wins.
	r.store.UpdateToken(st.SessionID, token)
}

func (r *Refresher) endSession() {
	r.store.Clear()
	r.onLogout()
}
