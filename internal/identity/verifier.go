package identity

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// dummyHash is compared against when the email is unknown, so the
// unknown-email path costs roughly the same as a real bcrypt compare.
var dummyHash = func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("projectdesk-dummy"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return h
}()

// Verifier checks submitted credentials against stored password hashes.
type Verifier struct {
	users Repository
}

func NewVerifier(users Repository) *Verifier {
	return &Verifier{users: users}
}

// Verify returns the principal for a correct email/password pair.
//
// Unknown email and wrong password both return ErrAuthFailed with no
// distinguishing signal. Any storage error is also collapsed into
// ErrAuthFailed; the specific cause belongs in server logs, not responses.
func (v *Verifier) Verify(ctx context.Context, email, password string) (User, error) {
	u, err := v.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			// Burn a compare anyway to keep timing uniform.
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		}
		return User{}, ErrAuthFailed
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return User{}, ErrAuthFailed
	}
	return u, nil
}

// HashPassword produces a bcrypt hash for storage.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}
