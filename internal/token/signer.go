// Package token mints and parses the signed session credentials: a
// short-lived access token and a long-lived refresh token, HS256-signed
// with distinct secrets.
package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/peoplecare/hrportal/internal/domain"
)

// Claims is the payload embedded in both tokens. No secrets in here;
// everything is visible to the bearer.
type Claims struct {
	Email      string      `json:"email"`
	EmployeeID string      `json:"employeeId"`
	Role       domain.Role `json:"role"`
	Company    *string     `json:"company,omitempty"`
	BU         *string     `json:"bu,omitempty"`
	PG         *string     `json:"pg,omitempty"`
	jwt.RegisteredClaims
}

// UserID decodes the numeric user ID from the subject claim.
func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse subject: %w", err)
	}
	return id, nil
}

type Signer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewSigner(accessSecret, refreshSecret []byte, accessTTL, refreshTTL time.Duration) *Signer {
	return &Signer{
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// SignPair signs the same identity payload twice: once under the access
// secret with the short TTL, once under the refresh secret with the long
// one.
func (s *Signer) SignPair(user *domain.User) (access, refresh string, err error) {
	now := time.Now()

	access, err = s.sign(user, s.accessSecret, now, s.accessTTL)
	if err != nil {
		return "", "", fmt.Errorf("sign access token: %w", err)
	}
	refresh, err = s.sign(user, s.refreshSecret, now, s.refreshTTL)
	if err != nil {
		return "", "", fmt.Errorf("sign refresh token: %w", err)
	}
	return access, refresh, nil
}

func (s *Signer) sign(user *domain.User, secret []byte, now time.Time, ttl time.Duration) (string, error) {
	claims := &Claims{
		Email:      user.Email,
		EmployeeID: user.EmployeeID,
		Role:       user.Role,
		Company:    user.Company,
		BU:         user.BU,
		PG:         user.PG,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: strconv.FormatInt(user.ID, 10),
			// A jti keeps every issued token distinct even within the same
			// second, so rotation always produces a new refresh token.
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseAccess validates an access token and returns its claims.
func (s *Signer) ParseAccess(raw string) (*Claims, error) {
	return parse(raw, s.accessSecret)
}

// ParseRefresh validates a refresh token and returns its claims. A valid
// signature alone does not make the token usable; the caller still has
// to compare it against the stored hash.
func (s *Signer) ParseRefresh(raw string) (*Claims, error) {
	return parse(raw, s.refreshSecret)
}

func parse(raw string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("token is not valid")
	}
	return claims, nil
}
