package repository

import (
	"context"
	"time"

	"github.com/peoplecare/hrportal/internal/domain"
)

type MagicLinkRepository interface {
	// Replace deletes every live link owned by the user and inserts a fresh
	// one, atomically. At most one live link per user at any time.
	Replace(ctx context.Context, userID int64, tokenHash string, expiresAt time.Time) (*domain.MagicLink, error)

	// ListLive returns all unused, unexpired links, newest first. The
	// verifier has to scan them: bcrypt hashes cannot be indexed by token.
	ListLive(ctx context.Context) ([]*domain.MagicLink, error)

	// MarkUsed consumes a link. Only ever called once per link.
	MarkUsed(ctx context.Context, id int64, at time.Time) error

	// DeleteDead removes used or expired rows and reports how many went.
	// Dead rows are never matchable, so this is safe at any time.
	DeleteDead(ctx context.Context) (int64, error)
}
