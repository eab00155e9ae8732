package sessionclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// The jar must carry the refresh cookie from login to refresh without the
// caller ever touching it, mirroring how a browser holds HttpOnly cookies.
func TestAPICarriesRefreshCookie(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body struct{ Email, Password string }
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body.Password != "correct" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "refresh_token", Value: "rt-1", Path: "/auth", HttpOnly: true})
		json.NewEncoder(w).Encode(map[string]any{
			"accessToken": "at-1",
			"sessionId":   "sid-1",
			"user":        map[string]string{"id": "u1", "email": body.Email, "role": "DEVELOPER"},
		})
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		ck, err := r.Cookie("refresh_token")
		if err != nil || ck.Value != "rt-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"accessToken": "at-2"})
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	api, err := NewAPI(srv.URL)
	require.NoError(t, err)

	ctx := context.Background()

	// Refresh before login: no cookie in the jar yet.
	_, err = api.Refresh(ctx)
	require.ErrorIs(t, err, ErrSessionInvalid)

	res, err := api.Login(ctx, "dev@example.com", "correct")
	require.NoError(t, err)
	require.Equal(t, "at-1", res.AccessToken)
	require.Equal(t, "sid-1", res.SessionID)
	require.Equal(t, "DEVELOPER", res.User.Role)

	token, err := api.Refresh(ctx)
	require.NoError(t, err)
	require.Equal(t, "at-2", token)
}

func TestAPILoginFailureIsSessionInvalid(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	api, err := NewAPI(srv.URL)
	require.NoError(t, err)

	_, err = api.Login(context.Background(), "dev@example.com", "wrong")
	require.ErrorIs(t, err, ErrSessionInvalid)
}
