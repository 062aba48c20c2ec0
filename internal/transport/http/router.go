package httptransport

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/peoplecare/hrportal/internal/token"
	"github.com/peoplecare/hrportal/internal/transport/http/handler"
	"github.com/peoplecare/hrportal/internal/transport/http/middleware"
	sloggin "github.com/samber/slog-gin"
)

func NewRouter(
	logger *slog.Logger,
	signer *token.Signer,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	chatHandler *handler.ChatHandler,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.Security())

	authed := middleware.Auth(signer)

	api := r.Group("/api/v1")

	auth := api.Group("/auth")
	auth.POST("/request-magic", authHandler.RequestMagic)
	auth.POST("/verify-magic", authHandler.VerifyMagic)
	auth.GET("/verify-magic", authHandler.VerifyMagicRedirect)
	auth.POST("/refresh", authHandler.Refresh)
	auth.POST("/logout", authed, authHandler.Logout)

	users := api.Group("/users")
	users.GET("", userHandler.List)
	users.POST("", userHandler.Create)
	users.GET("/me", authed, userHandler.GetMe)
	users.GET("/:employeeId", userHandler.GetByEmployeeID)
	users.PATCH("/:employeeId", userHandler.Update)
	users.DELETE("/:employeeId", userHandler.Delete)

	chat := api.Group("/chat")
	chat.POST("/ask", authed, chatHandler.Ask)

	return r
}
