// Package token encodes and decodes signed, expiring claims into opaque
// JWT strings. It knows nothing about users or contacts; callers decide
// what a subject means.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Kind distinguishes the two credential roles. Access and refresh tokens
// are signed with distinct keys, so a refresh token can never pass as an
// access token even if kind checking were bypassed.
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpired      = errors.New("token expired")
	ErrWrongKind    = errors.New("unexpected token kind")
)

var (
	ErrKeyRequired     = errors.New("signing key is required")
	ErrKeysNotDistinct = errors.New("access and refresh keys must differ")
)

// Claims are the payload carried by every token amity issues.
type Claims struct {
	UserID string `json:"user_id"`
	Kind   Kind   `json:"token_kind"`
	jwt.RegisteredClaims
}

// Codec signs and verifies tokens. Keys are fixed at construction and
// never mutated, so a Codec is safe for concurrent use.
type Codec struct {
	accessKey  []byte
	refreshKey []byte
}

func New(accessKey, refreshKey []byte) (*Codec, error) {
	if len(accessKey) == 0 || len(refreshKey) == 0 {
		return nil, ErrKeyRequired
	}
	if string(accessKey) == string(refreshKey) {
		return nil, ErrKeysNotDistinct
	}
	return &Codec{accessKey: accessKey, refreshKey: refreshKey}, nil
}

func (c *Codec) keyFor(kind Kind) []byte {
	if kind == KindRefresh {
		return c.refreshKey
	}
	return c.accessKey
}

// Issue produces a signed token embedding the subject, kind, and an
// absolute expiry ttl from now. Pure function of its input and the
// codec's keys.
func (c *Codec) Issue(userID string, kind Kind, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(ttl)

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: userID,
		Kind:   kind,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})

	signed, err := tok.SignedString(c.keyFor(kind))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Decode verifies signature and expiry against the expected kind's key
// and checks the embedded kind. The three failure modes are
// distinguishable so callers can react differently: an expired access
// token can start a refresh flow, a wrong kind is always a hard reject.
func (c *Codec) Decode(tokenString string, expected Kind) (*Claims, error) {
	claims := &Claims{}

	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return c.keyFor(expected), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrInvalidToken
	}
	if !tok.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Kind != expected {
		return nil, ErrWrongKind
	}
	return claims, nil
}
