package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, token, secret string) jwt.MapClaims {
	t.Helper()
	tok, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	require.NoError(t, err)
	require.True(t, tok.Valid)

	claims, ok := tok.Claims.(jwt.MapClaims)
	require.True(t, ok)
	return claims
}

func TestIssue_CarriesIdentityClaims(t *testing.T) {
	token, err := Issue("secret", 7, "staff", 24)
	require.NoError(t, err)

	claims := parse(t, token, "secret")
	assert.Equal(t, float64(7), claims["sub"])
	assert.Equal(t, "staff", claims["role"])

	exp, ok := claims["exp"].(float64)
	require.True(t, ok)
	assert.Greater(t, exp, float64(time.Now().Unix()))
}

func TestIssue_WrongSecretRejected(t *testing.T) {
	token, err := Issue("secret", 7, "customer", 24)
	require.NoError(t, err)

	_, err = jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return []byte("other"), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	require.Error(t, err)
}
