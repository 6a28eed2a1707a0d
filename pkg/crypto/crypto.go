package crypto

import (
	"fmt"
	"runtime"

	"golang.org/x/crypto/bcrypt"
)

// Hasher wraps bcrypt with a bounded amount of parallel work. Hashing is
// CPU-heavy, so concurrent calls beyond GOMAXPROCS queue instead of starving
// the scheduler.
type Hasher struct {
	cost int
	sem  chan struct{}
}

func NewHasher(cost int) *Hasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{
		cost: cost,
		sem:  make(chan struct{}, runtime.GOMAXPROCS(0)),
	}
}

// Hash returns a salted bcrypt hash of the plaintext. Every call embeds a
// fresh random salt, so two hashes of the same input differ.
func (h *Hasher) Hash(plaintext string) (string, error) {
	h.sem <- struct{}{}
	defer func() { <-h.sem }()

	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches the stored hash. The comparison is
// constant-time inside bcrypt. A non-nil error means the stored hash itself is
// malformed, not that the password was wrong.
func (h *Hasher) Verify(plaintext, hash string) (bool, error) {
	h.sem <- struct{}{}
	defer func() { <-h.sem }()

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	switch err {
	case nil:
		return true, nil
	case bcrypt.ErrMismatchedHashAndPassword:
		return false, nil
	default:
		return false, fmt.Errorf("verify password: %w", err)
	}
}
