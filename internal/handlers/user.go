package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ifnmg/vitrine-projetos/internal/dto"
	apierrors "github.com/ifnmg/vitrine-projetos/internal/errors"
	"github.com/ifnmg/vitrine-projetos/internal/middleware"
	"github.com/ifnmg/vitrine-projetos/internal/models"
	"github.com/ifnmg/vitrine-projetos/internal/repository"
	"github.com/ifnmg/vitrine-projetos/internal/services"
	"github.com/ifnmg/vitrine-projetos/internal/utils"
)

// UserHandler coordinates staff-account HTTP handlers.
type UserHandler struct {
	userService   *services.UserService
	importService *services.ImportService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService, importService *services.ImportService) *UserHandler {
	return &UserHandler{
		userService:   userService,
		importService: importService,
	}
}

// CreateUser registers a new staff user.
func (h *UserHandler) CreateUser(c *gin.Context) {
	type CreateUserRequest struct {
		Nome           string                 `json:"nome" binding:"required,min=3,max=255"`
		Email          string                 `json:"email" binding:"required,email"`
		Senha          string                 `json:"senha" binding:"required,min=6"`
		Role           models.Role            `json:"role" binding:"required,oneof=ADMIN COORDENADOR COORDENADOR_CURSO PROFESSOR"`
		Especializacao *models.Especializacao `json:"especializacao" binding:"omitempty,oneof=INFORMATICA AGROPECUARIA ZOOTECNIA MEIO_AMBIENTE"`
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Corpo da requisição inválido")
		return
	}

	user, err := h.userService.Create(services.CreateUserInput{
		Nome:           req.Nome,
		Email:          req.Email,
		Senha:          req.Senha,
		Role:           req.Role,
		Especializacao: req.Especializacao,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// ListUsers returns staff users with pagination.
func (h *UserHandler) ListUsers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	filter := repository.UserFilter{Pagination: params}
	if roleStr := c.Query("role"); roleStr != "" {
		role := models.Role(roleStr)
		filter.Role = &role
	}

	users, total, err := h.userService.List(filter)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": dto.ToUserDTOs(users),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetUser returns a staff user by ID.
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "ID inválido")
		return
	}

	user, err := h.userService.Get(id)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// UpdateUser updates a staff user.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "ID inválido")
		return
	}

	type UpdateUserRequest struct {
		Nome           *string                `json:"nome" binding:"omitempty,min=3,max=255"`
		Email          *string                `json:"email" binding:"omitempty,email"`
		Role           *models.Role           `json:"role" binding:"omitempty,oneof=ADMIN COORDENADOR COORDENADOR_CURSO PROFESSOR"`
		Especializacao *models.Especializacao `json:"especializacao" binding:"omitempty,oneof=INFORMATICA AGROPECUARIA ZOOTECNIA MEIO_AMBIENTE"`
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Corpo da requisição inválido")
		return
	}

	user, err := h.userService.Update(id, services.UpdateUserInput{
		Nome:           req.Nome,
		Email:          req.Email,
		Role:           req.Role,
		Especializacao: req.Especializacao,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// UpdateSenha replaces a user's password. Admins may change any
// password; other users only their own.
func (h *UserHandler) UpdateSenha(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "ID inválido")
		return
	}

	claims, exists := middleware.GetClaims(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	if claims.Role != models.RoleAdmin && claims.UserID != id {
		apierrors.Forbidden(c, "Não é permitido alterar a senha de outro usuário")
		return
	}

	type UpdateSenhaRequest struct {
		Senha string `json:"senha" binding:"required,min=6"`
	}

	var req UpdateSenhaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Corpo da requisição inválido")
		return
	}

	if err := h.userService.UpdateSenha(id, req.Senha); err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Senha atualizada com sucesso"})
}

// DeleteUser removes a staff user.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "ID inválido")
		return
	}

	actorID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	if err := h.userService.Delete(id, actorID); err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Usuário removido com sucesso"})
}

// ImportUsers imports staff users from a multipart CSV file.
func (h *UserHandler) ImportUsers(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		apierrors.BadRequest(c, "Arquivo CSV ausente")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		apierrors.BadRequest(c, "Falha ao abrir o arquivo")
		return
	}
	defer file.Close()

	result, err := h.importService.ImportUsers(file)
	if err != nil {
		if errors.Is(err, services.ErrCSVInvalido) {
			apierrors.BadRequest(c, err.Error())
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, result)
}

func respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUsuarioNaoEncontrado):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrEmailEmUso):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrSenhaCurta):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrAutoExclusao):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrUsuarioVinculado):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
