package audit

import (
	"context"
	"testing"
)

func TestService_AppendRequiresType(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	if err := svc.Append(context.Background(), Event{}); err == nil {
		t.Fatalf("expected error for missing type")
	}
}

func TestService_LogLoginFailureKeepsEmail(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)

	if err := svc.LogLogin(context.Background(), false, "ghost@example.com", "", "", "1.2.3.4", ""); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	evs := repo.Events()
	if len(evs) != 1 {
		t.Fatalf("expected 1 event")
	}
	if evs[0].Type != EventTypeLoginFailed {
		t.Fatalf("expected login_failed, got %s", evs[0].Type)
	}
	if evs[0].Email != "ghost@example.com" || evs[0].IPAddress != "1.2.3.4" {
		t.Fatalf("expected email and ip captured: %+v", evs[0])
	}
	if evs[0].ID == "" || evs[0].CreatedAt.IsZero() {
		t.Fatalf("expected id and timestamp to be filled")
	}
}

func TestService_LogSessionForcedLogout(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)

	err := svc.LogSession(context.Background(), EventTypeForcedLogout, "u1", "DEVELOPER", "", "sess-1", "role marker drift")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	evs := repo.Events()
	if len(evs) != 1 || evs[0].SessionID != "sess-1" {
		t.Fatalf("expected forced logout event with session id: %+v", evs)
	}
}
