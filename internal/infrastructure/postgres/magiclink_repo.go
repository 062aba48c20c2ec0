package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/peoplecare/hrportal/internal/domain"
)

const magicLinkColumns = `id, user_id, token_hash, expires_at, used_at, created_at`

type MagicLinkRepository struct {
	pool *pgxpool.Pool
}

func NewMagicLinkRepository(pool *pgxpool.Pool) *MagicLinkRepository {
	return &MagicLinkRepository{pool: pool}
}

// Replace runs the delete+insert supersession inside one transaction so
// concurrent requests for the same user cannot leave two live links.
func (r *MagicLinkRepository) Replace(ctx context.Context, userID int64, tokenHash string, expiresAt time.Time) (*domain.MagicLink, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		`DELETE FROM magic_links WHERE user_id = $1 AND used_at IS NULL`, userID)
	if err != nil {
		return nil, fmt.Errorf("delete live links: %w", err)
	}

	row := tx.QueryRow(ctx, `
		INSERT INTO magic_links (user_id, token_hash, expires_at)
		VALUES ($1, $2, $3)
		RETURNING `+magicLinkColumns,
		userID, tokenHash, expiresAt)

	link, err := scanMagicLink(row)
	if err != nil {
		return nil, fmt.Errorf("insert magic link: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return link, nil
}

func (r *MagicLinkRepository) ListLive(ctx context.Context) ([]*domain.MagicLink, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+magicLinkColumns+`
		FROM magic_links
		WHERE used_at IS NULL AND expires_at > NOW()
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list live links: %w", err)
	}
	defer rows.Close()

	var links []*domain.MagicLink
	for rows.Next() {
		l, err := scanMagicLink(rows)
		if err != nil {
			return nil, err
		}
		links = append(links, l)
	}
	return links, rows.Err()
}

func (r *MagicLinkRepository) MarkUsed(ctx context.Context, id int64, at time.Time) error {
	// used_at IS NULL guard makes concurrent verifications of the same link
	// single-winner.
	tag, err := r.pool.Exec(ctx,
		`UPDATE magic_links SET used_at = $2 WHERE id = $1 AND used_at IS NULL`,
		id, at)
	if err != nil {
		return fmt.Errorf("mark link used: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTokenInvalid
	}
	return nil
}

func (r *MagicLinkRepository) DeleteDead(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM magic_links WHERE used_at IS NOT NULL OR expires_at <= NOW()`)
	if err != nil {
		return 0, fmt.Errorf("delete dead links: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanMagicLink(row pgx.Row) (*domain.MagicLink, error) {
	var l domain.MagicLink
	err := row.Scan(&l.ID, &l.UserID, &l.TokenHash, &l.ExpiresAt, &l.UsedAt, &l.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("scan magic link: %w", err)
	}
	return &l, nil
}
