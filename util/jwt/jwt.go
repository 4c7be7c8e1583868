// Package jwt issues the HS256 tokens the API hands out on login;
// verification on inbound requests is handled by the echo-jwt middleware.
package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func Issue(secret, email, role string, ttlHours int) (string, error) {
	claims := jwt.MapClaims{
		"sub":  email,
		"role": role,
		"exp":  time.Now().Add(time.Duration(ttlHours) * time.Hour).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}
