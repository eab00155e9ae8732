package auth

import (
	"context"
	"errors"
)

// Identity is the verified principal injected by the gate.
// Downstream handlers trust it and never re-verify the token.
type Identity struct {
	UserID string
	Email  string
	Role   string
}

type ctxKey int

const (
	ctxUserID ctxKey = iota
	ctxEmail
	ctxRole
)

func WithIdentity(ctx context.Context, id Identity) context.Context {
	ctx = context.WithValue(ctx, ctxUserID, id.UserID)
	ctx = context.WithValue(ctx, ctxEmail, id.Email)
	ctx = context.WithValue(ctx, ctxRole, id.Role)
	return ctx
}

func IdentityFromContext(ctx context.Context) (Identity, error) {
	uid, err := UserIDFromContext(ctx)
	if err != nil {
		return Identity{}, err
	}
	email, err := EmailFromContext(ctx)
	if err != nil {
		return Identity{}, err
	}
	role, err := RoleFromContext(ctx)
	if err != nil {
		return Identity{}, err
	}
	return Identity{UserID: uid, Email: email, Role: role}, nil
}

func UserIDFromContext(ctx context.Context) (string, error) {
	if s, ok := ctx.Value(ctxUserID).(string); ok && s != "" {
		return s, nil
	}
	return "", errors.New("user_id not in context")
}

func EmailFromContext(ctx context.Context) (string, error) {
	if s, ok := ctx.Value(ctxEmail).(string); ok && s != "" {
		return s, nil
	}
	return "", errors.New("email not in context")
}

func RoleFromContext(ctx context.Context) (string, error) {
	if s, ok := ctx.Value(ctxRole).(string); ok && s != "" {
		return s, nil
	}
	return "", errors.New("role not in context")
}
