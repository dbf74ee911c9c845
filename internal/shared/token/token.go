package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingSecret = errors.New("token: signing secret is empty")
	ErrExpired       = errors.New("token: expired")
	ErrInvalid       = errors.New("token: invalid")
)

// Claims carried by access tokens.
type Claims struct {
	UserID                string `json:"user_id"`
	EmployeeID            string `json:"employee_id"`
	Role                  string `json:"role"`
	CanManageAutoregister bool   `json:"can_manage_autoregister"`
	jwt.RegisteredClaims
}

func Issue(secret string, claims Claims, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", ErrMissingSecret
	}
	now := time.Now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	claims.Subject = claims.UserID

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func Parse(secret, raw string) (*Claims, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if !tok.Valid || claims.UserID == "" || claims.EmployeeID == "" {
		return nil, ErrInvalid
	}
	return claims, nil
}
