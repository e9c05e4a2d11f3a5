// Package jwt implements the signed-token codec used for bearer access
// tokens and email-confirmation tokens.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenExpired is returned for a correctly signed token past its expiry.
	ErrTokenExpired = errors.New("token has expired")

	// ErrTokenInvalid is returned for a malformed token, a bad signature,
	// or a token presented for the wrong purpose.
	ErrTokenInvalid = errors.New("token is invalid")
)

// Claims carries the registered claims plus a purpose tag. The purpose tag
// keeps a confirmation token from being replayed as an access token even
// though both share one signing secret.
type Claims struct {
	jwt.RegisteredClaims
	Purpose string `json:"purpose"`
}

// Codec issues and decodes HS256-signed tokens with a process-wide secret.
type Codec struct {
	secret []byte
}

// NewCodec creates a Codec signing with the given secret.
func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

// Issue creates a signed token carrying the subject and purpose, expiring
// after ttl.
func (c *Codec) Issue(subject, purpose string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Purpose: purpose,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Decode verifies the token's signature and expiry, checks that it was issued
// for the expected purpose, and returns its subject.
func (c *Codec) Decode(tokenStr, purpose string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		// Only HMAC is accepted; an attacker-chosen algorithm is rejected.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}
	if !token.Valid || claims.Purpose != purpose {
		return "", ErrTokenInvalid
	}
	return claims.Subject, nil
}
