package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ifnmg/vitrine-projetos/internal/constants"
	apierrors "github.com/ifnmg/vitrine-projetos/internal/errors"
	"github.com/ifnmg/vitrine-projetos/internal/models"
	"github.com/ifnmg/vitrine-projetos/internal/utils"
)

// RequireAuth validates the bearer token and stores the claims in the
// request context.
func RequireAuth(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			apierrors.Unauthorized(c, "Token inválido")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateToken(parts[1])
		if err != nil {
			apierrors.Unauthorized(c, "Token inválido ou expirado")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyClaims, claims)
		c.Set(constants.ContextKeyUserID, claims.UserID)
		c.Next()
	}
}

// RequireAdmin allows only ADMIN users past. Must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, exists := GetClaims(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}
		if claims.Role != models.RoleAdmin {
			apierrors.Forbidden(c, "Apenas administradores podem executar esta ação")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetClaims retrieves the authenticated user's claims from context.
func GetClaims(c *gin.Context) (*utils.Claims, bool) {
	value, exists := c.Get(constants.ContextKeyClaims)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*utils.Claims)
	return claims, ok
}

// GetUserID retrieves the current user ID from context.
func GetUserID(c *gin.Context) (uint64, bool) {
	claims, ok := GetClaims(c)
	if !ok {
		return 0, false
	}
	return claims.UserID, true
}
