package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/peoplecare/hrportal/internal/domain"
	"github.com/peoplecare/hrportal/internal/token"
)

// Context keys set by Auth for downstream handlers.
const (
	CtxUserID     = "userID"
	CtxClaims     = "claims"
	CtxEmployeeID = "employeeID"
)

// Auth validates a Bearer access token and exposes the caller's identity
// in the gin context.
func Auth(signer *token.Signer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": domain.ErrUnauthorized.Error()})
			return
		}

		claims, err := signer.ParseAccess(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": domain.ErrUnauthorized.Error()})
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": domain.ErrUnauthorized.Error()})
			return
		}

		c.Set(CtxUserID, userID)
		c.Set(CtxEmployeeID, claims.EmployeeID)
		c.Set(CtxClaims, claims)
		c.Next()
	}
}
