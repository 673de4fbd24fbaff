package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const testIssuer = "go-task-manager-test"

var testSigningKey = []byte("test-signing-key-0123456789abcdef")

func newTestTokenService(ttl time.Duration) TokenService {
	return NewTokenService(zerolog.Nop(), testIssuer, testSigningKey, ttl)
}

func TestTokenService_IssueAndVerify(t *testing.T) {
	svc := newTestTokenService(time.Hour)

	token, expiresAt, err := svc.Issue("user-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	userID, err := svc.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", userID)
}

func TestTokenService_VerifyExpired(t *testing.T) {
	svc := newTestTokenService(-time.Minute)

	token, _, err := svc.Issue("user-1")
	require.NoError(t, err)

	_, err = svc.Verify(token)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenService_VerifyTamperedSignature(t *testing.T) {
	svc := newTestTokenService(time.Hour)

	token, _, err := svc.Issue("user-1")
	require.NoError(t, err)

	tampered := []byte(token)
	last := len(tampered) - 1
	if tampered[last] == 'A' {
		tampered[last] = 'B'
	} else {
		tampered[last] = 'A'
	}

	_, err = svc.Verify(string(tampered))
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenService_VerifyMalformed(t *testing.T) {
	svc := newTestTokenService(time.Hour)

	for _, token := range []string{"", "garbage", "a.b", "a.b.c"} {
		_, err := svc.Verify(token)
		require.ErrorIs(t, err, ErrTokenInvalid, "token %q", token)
	}
}

func TestTokenService_VerifyWrongKey(t *testing.T) {
	other := NewTokenService(zerolog.Nop(), testIssuer, []byte("a-completely-different-key"), time.Hour)

	token, _, err := other.Issue("user-1")
	require.NoError(t, err)

	svc := newTestTokenService(time.Hour)
	_, err = svc.Verify(token)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenService_VerifyWrongIssuer(t *testing.T) {
	other := NewTokenService(zerolog.Nop(), "someone-else", testSigningKey, time.Hour)

	token, _, err := other.Issue("user-1")
	require.NoError(t, err)

	svc := newTestTokenService(time.Hour)
	_, err = svc.Verify(token)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenService_VerifyRejectsUnsignedToken(t *testing.T) {
	// alg=none must never pass, whatever the claims say.
	now := time.Now()
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Issuer:    testIssuer,
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(now),
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	svc := newTestTokenService(time.Hour)
	_, err = svc.Verify(token)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenService_VerifyRejectsMissingSubject(t *testing.T) {
	now := time.Now()
	noSubject := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    testIssuer,
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(now),
	})
	token, err := noSubject.SignedString(testSigningKey)
	require.NoError(t, err)

	svc := newTestTokenService(time.Hour)
	_, err = svc.Verify(token)
	require.ErrorIs(t, err, ErrTokenInvalid)
}
