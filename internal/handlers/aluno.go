package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ifnmg/vitrine-projetos/internal/dto"
	apierrors "github.com/ifnmg/vitrine-projetos/internal/errors"
	"github.com/ifnmg/vitrine-projetos/internal/repository"
	"github.com/ifnmg/vitrine-projetos/internal/services"
	"github.com/ifnmg/vitrine-projetos/internal/utils"
)

// AlunoHandler coordinates student HTTP handlers.
type AlunoHandler struct {
	alunoService  *services.AlunoService
	importService *services.ImportService
}

// NewAlunoHandler creates a new AlunoHandler.
func NewAlunoHandler(alunoService *services.AlunoService, importService *services.ImportService) *AlunoHandler {
	return &AlunoHandler{
		alunoService:  alunoService,
		importService: importService,
	}
}

// CreateAluno registers a new student.
func (h *AlunoHandler) CreateAluno(c *gin.Context) {
	type CreateAlunoRequest struct {
		Nome  string `json:"nome" binding:"required,min=3,max=255"`
		Turma string `json:"turma" binding:"required,min=3,max=100"`
		Curso string `json:"curso" binding:"required,min=3,max=100"`
	}

	var req CreateAlunoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Corpo da requisição inválido")
		return
	}

	aluno, err := h.alunoService.Create(services.CreateAlunoInput{
		Nome:  req.Nome,
		Turma: req.Turma,
		Curso: req.Curso,
	})
	if err != nil {
		respondAlunoError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToAlunoDTO(*aluno))
}

// ListAlunos returns students with filtering and pagination.
func (h *AlunoHandler) ListAlunos(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	alunos, total, err := h.alunoService.List(repository.AlunoFilter{
		Turma:      c.Query("turma"),
		Curso:      c.Query("curso"),
		Pagination: params,
	})
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"alunos": dto.ToAlunoDTOs(alunos),
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetAluno returns a student by ID.
func (h *AlunoHandler) GetAluno(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "ID inválido")
		return
	}

	aluno, err := h.alunoService.Get(id)
	if err != nil {
		respondAlunoError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAlunoDTO(*aluno))
}

// UpdateAluno updates a student.
func (h *AlunoHandler) UpdateAluno(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "ID inválido")
		return
	}

	type UpdateAlunoRequest struct {
		Nome  *string `json:"nome" binding:"omitempty,min=3,max=255"`
		Turma *string `json:"turma" binding:"omitempty,min=3,max=100"`
		Curso *string `json:"curso" binding:"omitempty,min=3,max=100"`
	}

	var req UpdateAlunoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Corpo da requisição inválido")
		return
	}

	aluno, err := h.alunoService.Update(id, services.UpdateAlunoInput{
		Nome:  req.Nome,
		Turma: req.Turma,
		Curso: req.Curso,
	})
	if err != nil {
		respondAlunoError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAlunoDTO(*aluno))
}

// DeleteAluno removes a student.
func (h *AlunoHandler) DeleteAluno(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "ID inválido")
		return
	}

	if err := h.alunoService.Delete(id); err != nil {
		respondAlunoError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Aluno removido com sucesso"})
}

// ImportAlunos imports students from a multipart CSV file.
func (h *AlunoHandler) ImportAlunos(c *gin.Context) {
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

	result, err := h.importService.ImportAlunos(file)
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

func respondAlunoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAlunoNaoEncontrado):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAlunoDuplicado):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrAlunoVinculado):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
