package usecase

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/peoplecare/hrportal/internal/domain"
	"github.com/peoplecare/hrportal/internal/email"
	"github.com/peoplecare/hrportal/internal/hash"
	"github.com/peoplecare/hrportal/internal/metrics"
	"github.com/peoplecare/hrportal/internal/repository"
	"github.com/peoplecare/hrportal/internal/token"
)

const defaultMagicTTL = 15 * time.Minute

// AuthConfig carries the runtime knobs of the auth flow.
type AuthConfig struct {
	MagicTTL   time.Duration
	AppBaseURL string

	// DevMode keeps magic links replayable and exposed in responses.
	// ENV=local only.
	DevMode bool

	// Production withholds the plaintext link from API responses; it only
	// travels through the notifier.
	Production bool
}

type AuthUsecase struct {
	users    repository.UserRepository
	links    repository.MagicLinkRepository
	hasher   hash.Hasher
	signer   *token.Signer
	notifier email.Notifier
	logger   *slog.Logger
	cfg      AuthConfig
}

func NewAuthUsecase(
	users repository.UserRepository,
	links repository.MagicLinkRepository,
	hasher hash.Hasher,
	signer *token.Signer,
	notifier email.Notifier,
	logger *slog.Logger,
	cfg AuthConfig,
) *AuthUsecase {
	if cfg.MagicTTL <= 0 {
		cfg.MagicTTL = defaultMagicTTL
	}
	return &AuthUsecase{
		users:    users,
		links:    links,
		hasher:   hasher,
		signer:   signer,
		notifier: notifier,
		logger:   logger.With("component", "auth_usecase"),
		cfg:      cfg,
	}
}

type MagicRequestResult struct {
	// Link is empty in production; the plaintext only goes out via email.
	Link      string
	ExpiresAt time.Time
}

type SessionResult struct {
	User         *domain.User
	AccessToken  string
	RefreshToken string
}

// RequestMagic issues a fresh single-use login link for the user,
// superseding any link still outstanding.
func (u *AuthUsecase) RequestMagic(ctx context.Context, emailAddr, employeeID string) (*MagicRequestResult, error) {
	user, err := u.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		return nil, err
	}
	if employeeID != "" && user.EmployeeID != employeeID {
		return nil, domain.ErrEmployeeIDMismatch
	}

	raw := make([]byte, 32)
	if _, err = io.ReadFull(rand.Reader, raw); err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	rawToken := hex.EncodeToString(raw)

	tokenHash, err := u.hasher.Hash(rawToken)
	if err != nil {
		return nil, fmt.Errorf("hash token: %w", err)
	}

	expiresAt := time.Now().Add(u.cfg.MagicTTL)
	if _, err = u.links.Replace(ctx, user.ID, tokenHash, expiresAt); err != nil {
		return nil, fmt.Errorf("store magic link: %w", err)
	}

	link := u.cfg.AppBaseURL + "/api/v1/auth/verify-magic?token=" + rawToken
	ttlMinutes := int(u.cfg.MagicTTL.Minutes())

	if err = u.notifier.SendMagicLink(ctx, user.Email, user.EmployeeID, user.DisplayName(), link, ttlMinutes); err != nil {
		// The link row exists but the user never received it; surface the
		// failure so the caller knows delivery did not happen.
		return nil, fmt.Errorf("send magic link: %w", err)
	}

	metrics.MagicLinksIssuedTotal.Inc()

	result := &MagicRequestResult{ExpiresAt: expiresAt}
	if !u.cfg.Production {
		result.Link = link
	}
	return result, nil
}

// VerifyMagic exchanges a clicked link for a session. One generic failure
// covers forged, expired, and already-used tokens, so callers cannot probe
// which it was.
func (u *AuthUsecase) VerifyMagic(ctx context.Context, rawToken string) (*SessionResult, error) {
	if rawToken == "" {
		return nil, domain.ErrTokenRequired
	}

	live, err := u.links.ListLive(ctx)
	if err != nil {
		return nil, fmt.Errorf("load live links: %w", err)
	}

	// bcrypt hashes cannot be looked up by token, so every live candidate
	// is tried, newest first, stopping at the first match.
	var matched *domain.MagicLink
	for _, l := range live {
		if u.hasher.Verify(rawToken, l.TokenHash) {
			matched = l
			break
		}
	}
	if matched == nil {
		metrics.MagicLinkVerificationsTotal.WithLabelValues("rejected").Inc()
		return nil, domain.ErrTokenInvalid
	}

	// Consume the link. Skipped in dev mode so a local link can be clicked
	// repeatedly until it expires or is superseded.
	if !u.cfg.DevMode {
		if err := u.links.MarkUsed(ctx, matched.ID, time.Now()); err != nil {
			metrics.MagicLinkVerificationsTotal.WithLabelValues("rejected").Inc()
			return nil, err
		}
	}

	user, err := u.users.FindByID(ctx, matched.UserID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	access, refresh, err := u.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	metrics.MagicLinkVerificationsTotal.WithLabelValues("verified").Inc()
	return &SessionResult{User: user, AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh exchanges a valid, non-revoked refresh token for a new pair.
// The stored hash matches only the most recently issued token, so a token
// replayed after rotation fails here even with a valid signature.
func (u *AuthUsecase) Refresh(ctx context.Context, rawToken string) (*SessionResult, error) {
	if rawToken == "" {
		return nil, domain.ErrRefreshRequired
	}

	claims, err := u.signer.ParseRefresh(rawToken)
	if err != nil {
		metrics.TokenRefreshesTotal.WithLabelValues("rejected").Inc()
		return nil, domain.ErrRefreshInvalid
	}
	userID, err := claims.UserID()
	if err != nil {
		metrics.TokenRefreshesTotal.WithLabelValues("rejected").Inc()
		return nil, domain.ErrRefreshInvalid
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.RefreshTokenHash == nil {
		metrics.TokenRefreshesTotal.WithLabelValues("revoked").Inc()
		return nil, domain.ErrRefreshRevoked
	}
	if !u.hasher.Verify(refreshDigest(rawToken), *user.RefreshTokenHash) {
		metrics.TokenRefreshesTotal.WithLabelValues("rejected").Inc()
		return nil, domain.ErrRefreshInvalid
	}

	access, refresh, err := u.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	metrics.TokenRefreshesTotal.WithLabelValues("rotated").Inc()
	return &SessionResult{User: user, AccessToken: access, RefreshToken: refresh}, nil
}

// Logout revokes the stored refresh hash. Safe to call twice.
func (u *AuthUsecase) Logout(ctx context.Context, userID int64) error {
	if err := u.users.SetRefreshTokenHash(ctx, userID, nil); err != nil {
		return fmt.Errorf("clear refresh token hash: %w", err)
	}
	metrics.LogoutsTotal.Inc()
	return nil
}

// issueTokens signs a pair and persists the refresh hash. The hash write
// is the last step: no token leaves this function unless the write
// succeeded, otherwise the caller would hold a refresh token that can
// never rotate.
func (u *AuthUsecase) issueTokens(ctx context.Context, user *domain.User) (access, refresh string, err error) {
	access, refresh, err = u.signer.SignPair(user)
	if err != nil {
		return "", "", err
	}

	refreshHash, err := u.hasher.Hash(refreshDigest(refresh))
	if err != nil {
		return "", "", fmt.Errorf("hash refresh token: %w", err)
	}
	if err := u.users.SetRefreshTokenHash(ctx, user.ID, &refreshHash); err != nil {
		return "", "", fmt.Errorf("persist refresh token hash: %w", err)
	}
	return access, refresh, nil
}

// refreshDigest reduces a signed refresh token to a fixed 64-char digest.
// bcrypt rejects inputs over 72 bytes and a JWT is several times that, so
// the token can never be bcrypt-hashed or compared directly.
func refreshDigest(rawToken string) string {
	sum := sha256.Sum256([]byte(rawToken))
	return hex.EncodeToString(sum[:])
}
