package domain

import "time"

// MagicLink is a single login-attempt credential. Only the bcrypt hash of
// the token is ever stored; the plaintext lives in the emailed link.
type MagicLink struct {
	ID        int64
	UserID    int64
	TokenHash string
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}

// Live reports whether the link can still authenticate: not yet consumed
// and not past its expiry.
func (m *MagicLink) Live(now time.Time) bool {
	return m.UsedAt == nil && m.ExpiresAt.After(now)
}
