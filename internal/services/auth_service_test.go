package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickbuy/internal/apperr"
)

func newTestAuthService(secret string) *AuthService {
	return NewAuthService(secret, zerolog.Nop())
}

func TestIssueAndVerifyToken(t *testing.T) {
	svc := newTestAuthService("test-secret")

	token, err := svc.IssueToken(42, "seller")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "seller", claims.Role)
	assert.WithinDuration(t, time.Now().Add(tokenLifetime), claims.ExpiresAt.Time, time.Minute)
}

func TestVerifyTokenWrongKey(t *testing.T) {
	issuer := newTestAuthService("key-one")
	verifier := newTestAuthService("key-two")

	token, err := issuer.IssueToken(1, "customer")
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
}

func TestVerifyTokenMalformed(t *testing.T) {
	svc := newTestAuthService("test-secret")

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.VerifyToken(token)
		require.Error(t, err)
		assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
	}
}

func TestVerifyTokenExpired(t *testing.T) {
	svc := newTestAuthService("test-secret")

	claims := &Claims{
		UserID: 7,
		Role:   "customer",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-25 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
}

func TestVerifyTokenRejectsUnexpectedAlgorithm(t *testing.T) {
	svc := newTestAuthService("test-secret")

	token := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: 1, Role: "admin"})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.VerifyToken(signed)
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
}
