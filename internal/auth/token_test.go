package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_IssueAndVerify(t *testing.T) {
	svc := NewTokenService("test-secret-at-least-32-chars-long!!", time.Hour)

	claims := Claims{UserID: 42, Name: "Ann", Avatar: "https://www.gravatar.com/avatar/abc"}

	token, err := svc.Issue(claims)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	decoded, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, claims.UserID, decoded.UserID)
	assert.Equal(t, claims.Name, decoded.Name)
	assert.Equal(t, claims.Avatar, decoded.Avatar)
}

func TestTokenService_Expiry(t *testing.T) {
	svc := NewTokenService("test-secret-at-least-32-chars-long!!", time.Hour)

	issuedAt := time.Now()
	svc.now = func() time.Time { return issuedAt }

	token, err := svc.Issue(Claims{UserID: 1, Name: "Ann"})
	require.NoError(t, err)

	// Still valid just before the window closes.
	svc.now = func() time.Time { return issuedAt.Add(59 * time.Minute) }
	_, err = svc.Verify(token)
	assert.NoError(t, err)

	// Expired past the window.
	svc.now = func() time.Time { return issuedAt.Add(2 * time.Hour) }
	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenService_WrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-one-that-is-long-enough-here!", time.Hour)
	verifier := NewTokenService("secret-two-that-is-long-enough-here!", time.Hour)

	token, err := issuer.Issue(Claims{UserID: 7, Name: "Bob"})
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenService_Malformed(t *testing.T) {
	svc := NewTokenService("test-secret-at-least-32-chars-long!!", time.Hour)

	_, err := svc.Verify("not-a-jwt")
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestTokenService_EmptySecret(t *testing.T) {
	svc := NewTokenService("", time.Hour)

	_, err := svc.Issue(Claims{UserID: 1})
	assert.Error(t, err)
}
