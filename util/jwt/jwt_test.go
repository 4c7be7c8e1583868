package jwt

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, token, secret string) (jwt.MapClaims, error) {
	t.Helper()
	tok, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, err
	}
	return tok.Claims.(jwt.MapClaims), nil
}

func TestIssue_Claims(t *testing.T) {
	token, err := Issue("secret", "alice@uni.edu", "student", 1)
	require.NoError(t, err)

	claims, err := parse(t, token, "secret")
	require.NoError(t, err)
	require.Equal(t, "alice@uni.edu", claims["sub"])
	require.Equal(t, "student", claims["role"])
}

func TestIssue_WrongSecretRejected(t *testing.T) {
	token, err := Issue("secret", "alice@uni.edu", "student", 1)
	require.NoError(t, err)

	_, err = parse(t, token, "other-secret")
	require.Error(t, err)
}

func TestIssue_ExpiredToken(t *testing.T) {
	token, err := Issue("secret", "alice@uni.edu", "student", -1)
	require.NoError(t, err)

	_, err = parse(t, token, "secret")
	require.Error(t, err)
}
