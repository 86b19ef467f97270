package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenVerifier(t *testing.T) {
	v := NewTokenVerifier(JWTConfig{SecretKey: "secret", TokenIssuer: "engimate-auth"})

	token, err := v.IssueToken("student-1", "a@b.in", true, time.Minute)
	require.NoError(t, err)

	claims, err := v.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "student-1", claims.Subject)
	assert.Equal(t, "a@b.in", claims.Email)

	unverified, err := v.IssueToken("student-2", "c@d.in", false, time.Minute)
	require.NoError(t, err)
	_, err = v.ValidateToken(unverified)
	assert.ErrorIs(t, err, ErrNotVerified)

	expired, err := v.IssueToken("student-3", "e@f.in", true, -time.Minute)
	require.NoError(t, err)
	_, err = v.ValidateToken(expired)
	assert.ErrorIs(t, err, ErrExpiredToken)

	other := NewTokenVerifier(JWTConfig{SecretKey: "other", TokenIssuer: "engimate-auth"})
	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = v.ValidateToken("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractBearerToken(t *testing.T) {
	tok, err := ExtractBearerToken("Bearer a.b.c")
	require.NoError(t, err)
	assert.Equal(t, "a.b.c", tok)

	tok, err = ExtractBearerToken("a.b.c")
	require.NoError(t, err)
	assert.Equal(t, "a.b.c", tok)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = ExtractBearerToken("Basic xyz")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}
