package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/peoplecare/hrportal/internal/domain"
	"github.com/peoplecare/hrportal/internal/transport/http/middleware"
	"github.com/peoplecare/hrportal/internal/usecase"
)

// authUsecaser is the subset of AuthUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type authUsecaser interface {
	RequestMagic(ctx context.Context, email, employeeID string) (*usecase.MagicRequestResult, error)
	VerifyMagic(ctx context.Context, rawToken string) (*usecase.SessionResult, error)
	Refresh(ctx context.Context, rawToken string) (*usecase.SessionResult, error)
	Logout(ctx context.Context, userID int64) error
}

type AuthHandler struct {
	auth        authUsecaser
	frontendURL string
	logger      *slog.Logger
}

func NewAuthHandler(auth authUsecaser, frontendURL string, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		auth:        auth,
		frontendURL: frontendURL,
		logger:      logger.With("component", "auth_handler"),
	}
}

type requestMagicRequest struct {
	Email      string `json:"email" binding:"required,email"`
	EmployeeID string `json:"employeeId"`
}

type requestMagicResponse struct {
	OK        bool      `json:"ok"`
	Link      string    `json:"link,omitempty"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// POST /auth/request-magic
func (h *AuthHandler) RequestMagic(c *gin.Context) {
	var req requestMagicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.auth.RequestMagic(c.Request.Context(), req.Email, req.EmployeeID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": errUserNotFound})
		case errors.Is(err, domain.ErrEmployeeIDMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrEmployeeIDMismatch.Error()})
		default:
			h.logger.Error("request magic link", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		}
		return
	}

	c.JSON(http.StatusCreated, requestMagicResponse{
		OK:        true,
		Link:      result.Link,
		ExpiresAt: result.ExpiresAt,
	})
}

type verifyMagicRequest struct {
	Token string `json:"token" binding:"required"`
}

type sessionResponse struct {
	OK           bool          `json:"ok"`
	User         *userResponse `json:"user,omitempty"`
	AccessToken  string        `json:"accessToken"`
	RefreshToken string        `json:"refreshToken"`
}

// POST /auth/verify-magic
func (h *AuthHandler) VerifyMagic(c *gin.Context) {
	var req verifyMagicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.auth.VerifyMagic(c.Request.Context(), req.Token)
	if err != nil {
		h.verifyError(c, err)
		return
	}

	user := toUserResponse(result.User)
	c.JSON(http.StatusOK, sessionResponse{
		OK:           true,
		User:         &user,
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	})
}

// GET /auth/verify-magic?token=<raw>
// The variant email clients hit directly: on success the browser is sent
// to the frontend callback with both tokens in the query string.
func (h *AuthHandler) VerifyMagicRedirect(c *gin.Context) {
	result, err := h.auth.VerifyMagic(c.Request.Context(), c.Query("token"))
	if err != nil {
		h.verifyError(c, err)
		return
	}

	q := url.Values{}
	q.Set("accessToken", result.AccessToken)
	q.Set("refreshToken", result.RefreshToken)
	c.Redirect(http.StatusFound, h.frontendURL+"/magic-callback?"+q.Encode())
}

func (h *AuthHandler) verifyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrTokenRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrTokenRequired.Error()})
	case errors.Is(err, domain.ErrTokenInvalid):
		c.JSON(http.StatusUnauthorized, gin.H{"error": errTokenInvalid})
	default:
		h.logger.Error("verify magic link", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
	}
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// POST /auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRefreshRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrRefreshRequired.Error()})
		case errors.Is(err, domain.ErrRefreshInvalid), errors.Is(err, domain.ErrRefreshRevoked):
			// Revoked and mismatched tokens read the same from outside.
			c.JSON(http.StatusUnauthorized, gin.H{"error": errRefreshInvalid})
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": errUserNotFound})
		default:
			h.logger.Error("refresh tokens", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		}
		return
	}

	c.JSON(http.StatusOK, sessionResponse{
		OK:           true,
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	})
}

// POST /auth/logout. Requires a bearer access token.
func (h *AuthHandler) Logout(c *gin.Context) {
	userID := c.GetInt64(middleware.CtxUserID)

	if err := h.auth.Logout(c.Request.Context(), userID); err != nil {
		h.logger.Error("logout", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
