// Package auth issues and verifies the HS256 access tokens that carry the
// caller's user id. Accounts live elsewhere; this service only trusts the key.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"
	"google.golang.org/grpc/metadata"

	"github.com/and161185/packtrip/internal/errs"
)

const leeway = 30 * time.Second

// Issue signs an access token for userID valid for ttl.
func Issue(key []byte, userID uuid.UUID, ttl time.Duration) (string, time.Time, error) {
	now := time.Now().UTC()
	exp := now.Add(ttl)
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		return "", time.Time{}, err
	}
	return s, exp, nil
}

// Verifier checks tokens signed with one shared key.
type Verifier struct {
	key []byte
}

// NewVerifier returns a Verifier for key.
func NewVerifier(key []byte) *Verifier { return &Verifier{key: key} }

// Verify checks signature and time claims and returns the subject as a UUID.
// Every failure wraps errs.ErrUnauthorized.
func (v *Verifier) Verify(tok string) (uuid.UUID, error) {
	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(tok, &claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return v.key, nil
	}, jwt.WithLeeway(leeway))
	if err != nil || !parsed.Valid {
		return uuid.Nil, fmt.Errorf("%w: invalid token", errs.ErrUnauthorized)
	}
	if claims.ExpiresAt == nil {
		return uuid.Nil, fmt.Errorf("%w: token has no expiry", errs.ErrUnauthorized)
	}
	id, err := uuid.FromString(claims.Subject)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%w: bad subject", errs.ErrUnauthorized)
	}
	return id, nil
}

// FromContext verifies the bearer token in incoming gRPC metadata.
func (v *Verifier) FromContext(ctx context.Context) (uuid.UUID, error) {
	tok, err := BearerToken(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", errs.ErrUnauthorized, err)
	}
	return v.Verify(tok)
}

// BearerToken extracts "authorization: Bearer <JWT>" from incoming metadata.
func BearerToken(ctx context.Context) (string, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", errors.New("no metadata")
	}
	for _, v := range md.Get("authorization") {
		v = strings.TrimSpace(v)
		if len(v) >= 7 && strings.EqualFold(v[:7], "bearer ") {
			t := strings.TrimSpace(v[7:])
			if t != "" {
				return t, nil
			}
		}
	}
	return "", errors.New("no bearer token")
}
