package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ifnmg/vitrine-projetos/internal/dto"
	apierrors "github.com/ifnmg/vitrine-projetos/internal/errors"
	"github.com/ifnmg/vitrine-projetos/internal/middleware"
	"github.com/ifnmg/vitrine-projetos/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login authenticates a user and returns a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email string `json:"email" binding:"required,email"`
		Senha string `json:"senha" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Corpo da requisição inválido")
		return
	}

	token, user, err := h.authService.Login(services.LoginInput{
		Email: req.Email,
		Senha: req.Senha,
	})
	if err != nil {
		if errors.Is(err, services.ErrCredenciaisInvalidas) {
			apierrors.Unauthorized(c, err.Error())
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token: token,
		User:  dto.ToUserDTO(*user),
	})
}

// Me returns the claims decoded from the bearer token.
func (h *AuthHandler) Me(c *gin.Context) {
	claims, exists := middleware.GetClaims(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":    claims.UserID,
		"nome":  claims.Nome,
		"email": claims.Email,
		"role":  claims.Role,
	})
}
