package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/domain"
)

func TestIssueAndValidate(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	signed, err := svc.Issue("user-123", "u@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := svc.Validate(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "u@x.com", claims.Email)
	assert.NotNil(t, claims.ExpiresAt)
	assert.NotNil(t, claims.IssuedAt)
}

func TestValidateExpired(t *testing.T) {
	svc := NewService("test-secret", 0)

	signed, err := svc.Issue("user-123", "u@x.com")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = svc.Validate(signed)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestValidateWrongSecret(t *testing.T) {
	signed, err := NewService("secret-a", time.Hour).Issue("user-123", "u@x.com")
	require.NoError(t, err)

	_, err = NewService("secret-b", time.Hour).Validate(signed)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestValidateMalformed(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	for _, tokenString := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.Validate(tokenString)
		assert.ErrorIs(t, err, domain.ErrUnauthenticated, "token %q", tokenString)
	}
}

func TestValidateTampered(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	signed, err := svc.Issue("user-123", "u@x.com")
	require.NoError(t, err)

	tampered := signed[:len(signed)-2] + "xx"
	_, err = svc.Validate(tampered)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}
