package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ifnmg/vitrine-projetos/internal/dto"
	apierrors "github.com/ifnmg/vitrine-projetos/internal/errors"
	"github.com/ifnmg/vitrine-projetos/internal/repository"
	"github.com/ifnmg/vitrine-projetos/internal/services"
	"github.com/ifnmg/vitrine-projetos/internal/utils"
)

// TCCHandler handles thesis-related HTTP requests.
type TCCHandler struct {
	tccService *services.TCCService
}

// NewTCCHandler creates a new TCCHandler.
func NewTCCHandler(tccService *services.TCCService) *TCCHandler {
	return &TCCHandler{
		tccService: tccService,
	}
}

// CreateTCC registers a thesis from a multipart form carrying the
// metadata fields plus the PDF under "file".
func (h *TCCHandler) CreateTCC(c *gin.Context) {
	type CreateTCCRequest struct {
		Titulo        string `form:"titulo" binding:"required,min=3,max=255"`
		Curso         string `form:"curso" binding:"required,min=2,max=100"`
		Resumo        string `form:"resumo"`
		DataDefesa    string `form:"dataDefesa" binding:"required"`
		AlunoID       uint64 `form:"alunoId" binding:"required"`
		CoordenadorID uint64 `form:"coordenadorId" binding:"required"`
		Orientador    string `form:"orientador" binding:"required,min=3,max=255"`
	}

	var req CreateTCCRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.BadRequest(c, "Corpo da requisição inválido")
		return
	}

	dataDefesa, err := time.Parse("2006-01-02", req.DataDefesa)
	if err != nil {
		apierrors.BadRequest(c, "dataDefesa inválida (use AAAA-MM-DD)")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		apierrors.BadRequest(c, "Arquivo PDF ausente")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		apierrors.BadRequest(c, "Falha ao abrir o arquivo")
		return
	}
	defer file.Close()

	tcc, err := h.tccService.Create(services.CreateTCCInput{
		Titulo:        req.Titulo,
		Curso:         req.Curso,
		Resumo:        req.Resumo,
		DataDefesa:    dataDefesa,
		AlunoID:       req.AlunoID,
		CoordenadorID: req.CoordenadorID,
		Orientador:    req.Orientador,
		Filename:      fileHeader.Filename,
		ContentType:   fileHeader.Header.Get("Content-Type"),
		Size:          fileHeader.Size,
		Conteudo:      file,
	})
	if err != nil {
		respondTCCError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTCCDTO(*tcc))
}

// ListTCCs returns theses with filtering and pagination.
func (h *TCCHandler) ListTCCs(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	filter := repository.TCCFilter{Pagination: params}
	filter.Curso = c.Query("curso")
	if alunoStr := c.Query("aluno_id"); alunoStr != "" {
		alunoID, err := strconv.ParseUint(alunoStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "aluno_id inválido")
			return
		}
		filter.AlunoID = &alunoID
	}

	tccs, total, err := h.tccService.List(filter)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToTCCListResponse(tccs, params, total))
}

// GetTCC returns a thesis by ID.
func (h *TCCHandler) GetTCC(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "ID inválido")
		return
	}

	tcc, err := h.tccService.Get(id)
	if err != nil {
		respondTCCError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTCCDTO(*tcc))
}

// UpdateTCC updates thesis metadata. The PDF and ownership are fixed at
// creation.
func (h *TCCHandler) UpdateTCC(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "ID inválido")
		return
	}

	type UpdateTCCRequest struct {
		Titulo     *string    `json:"titulo" binding:"omitempty,min=3,max=255"`
		Curso      *string    `json:"curso" binding:"omitempty,min=2,max=100"`
		Resumo     *string    `json:"resumo"`
		DataDefesa *time.Time `json:"data_defesa"`
		Orientador *string    `json:"orientador" binding:"omitempty,min=3,max=255"`
	}

	var req UpdateTCCRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Corpo da requisição inválido")
		return
	}

	tcc, err := h.tccService.Update(id, services.UpdateTCCInput{
		Titulo:     req.Titulo,
		Curso:      req.Curso,
		Resumo:     req.Resumo,
		DataDefesa: req.DataDefesa,
		Orientador: req.Orientador,
	})
	if err != nil {
		respondTCCError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTCCDTO(*tcc))
}

// DeleteTCC removes a thesis and, best-effort, its PDF.
func (h *TCCHandler) DeleteTCC(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "ID inválido")
		return
	}

	if err := h.tccService.Delete(id); err != nil {
		respondTCCError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "TCC removido com sucesso"})
}

func respondTCCError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTCCNaoEncontrado),
		errors.Is(err, services.ErrAlunoNaoEncontrado),
		errors.Is(err, services.ErrServidorNaoEncontrado):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrTCCExistente):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrCoordenadorTCCInvalido),
		errors.Is(err, services.ErrArquivoPDFInvalido),
		errors.Is(err, services.ErrArquivoMuitoGrande):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
