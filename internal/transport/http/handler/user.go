package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/peoplecare/hrportal/internal/domain"
	"github.com/peoplecare/hrportal/internal/repository"
	"github.com/peoplecare/hrportal/internal/transport/http/middleware"
	"github.com/peoplecare/hrportal/internal/usecase"
)

type UserHandler struct {
	users  *usecase.UserUsecase
	logger *slog.Logger
}

func NewUserHandler(users *usecase.UserUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger.With("component", "user_handler")}
}

type createUserRequest struct {
	Email      string       `json:"email"      binding:"required,email"`
	EmployeeID string       `json:"employeeId" binding:"required"`
	Role       *domain.Role `json:"role"       binding:"omitempty,oneof='system admin' admin manager employee"`
	FirstName  *string      `json:"firstName"`
	LastName   *string      `json:"lastName"`
	BU         *string      `json:"bu"`
	Company    *string      `json:"company"`
	PG         *string      `json:"pg"`
}

// POST /users
func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := usecase.CreateUserInput{
		Email:      req.Email,
		EmployeeID: req.EmployeeID,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		BU:         req.BU,
		Company:    req.Company,
		PG:         req.PG,
	}
	if req.Role != nil {
		input.Role = *req.Role
	}

	user, err := h.users.Create(c.Request.Context(), input)
	if err != nil {
		h.writeError(c, err, "create user")
		return
	}

	c.JSON(http.StatusCreated, toUserResponse(user))
}

// GET /users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list users", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	c.JSON(http.StatusOK, out)
}

// GET /users/me. Identity comes from the bearer token, not the path.
func (h *UserHandler) GetMe(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), c.GetInt64(middleware.CtxUserID))
	if err != nil {
		h.writeError(c, err, "get me")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "user": toUserResponse(user)})
}

// GET /users/:employeeId
func (h *UserHandler) GetByEmployeeID(c *gin.Context) {
	user, err := h.users.GetByEmployeeID(c.Request.Context(), c.Param("employeeId"))
	if err != nil {
		h.writeError(c, err, "get user")
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

type updateUserRequest struct {
	Email      *string      `json:"email"      binding:"omitempty,email"`
	EmployeeID *string      `json:"employeeId"`
	Role       *domain.Role `json:"role"       binding:"omitempty,oneof='system admin' admin manager employee"`
	FirstName  *string      `json:"firstName"`
	LastName   *string      `json:"lastName"`
	BU         *string      `json:"bu"`
	Company    *string      `json:"company"`
	PG         *string      `json:"pg"`
}

// PATCH /users/:employeeId
func (h *UserHandler) Update(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.UpdateByEmployeeID(c.Request.Context(), c.Param("employeeId"), repository.UserUpdate{
		Email:      req.Email,
		EmployeeID: req.EmployeeID,
		Role:       req.Role,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		BU:         req.BU,
		Company:    req.Company,
		PG:         req.PG,
	})
	if err != nil {
		h.writeError(c, err, "update user")
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

// DELETE /users/:employeeId
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.users.DeleteByEmployeeID(c.Request.Context(), c.Param("employeeId")); err != nil {
		h.writeError(c, err, "delete user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *UserHandler) writeError(c *gin.Context, err error, op string) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": errUserNotFound})
	case errors.Is(err, domain.ErrEmailTaken), errors.Is(err, domain.ErrEmployeeIDTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.logger.Error(op, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
	}
}
