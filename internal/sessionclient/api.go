package sessionclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"time"
)

// ErrSessionInvalid is what every failed exchange collapses to on the
// client. The server keeps the specific reason; the client only needs to
// know the session is over.
var ErrSessionInvalid = errors.New("session invalid")

// API talks to the auth endpoints. The cookie jar carries the HttpOnly
// refresh cookie between calls the same way a browser would, so callers
// never see or handle the refresh token directly.
type API struct {
	base string
	hc   *http.Client
}

func NewAPI(base string) (*API, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &API{
		base: base,
		hc:   &http.Client{Jar: jar, Timeout: 10 * time.Second},
	}, nil
}

type LoginResult struct {
	AccessToken string `json:"accessToken"`
	SessionID   string `json:"sessionId"`
	User        struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Role  string `json:"role"`
	} `json:"user"`
}

func (a *API) Login(ctx context.Context, email, password string) (LoginResult, error) {
	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.base+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return LoginResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.hc.Do(req)
	if err != nil {
		return LoginResult{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return LoginResult{}, fmt.Errorf("login: %w", ErrSessionInvalid)
	}
	var out LoginResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return LoginResult{}, err
	}
	return out, nil
}

// Refresh exchanges the jar's refresh cookie for a new access token.
func (a *API) Refresh(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.base+"/auth/refresh", nil)
	if err != nil {
		return "", err
	}

	resp, err := a.hc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("refresh: %w", ErrSessionInvalid)
	}
	var out struct {
		AccessToken string `json:"accessToken"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.AccessToken, nil
}

func (a *API) Logout(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.base+"/auth/logout", nil)
	if err != nil {
		return err
	}
	resp, err := a.hc.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}
