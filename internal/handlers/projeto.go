package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ifnmg/vitrine-projetos/internal/dto"
	apierrors "github.com/ifnmg/vitrine-projetos/internal/errors"
	"github.com/ifnmg/vitrine-projetos/internal/models"
	"github.com/ifnmg/vitrine-projetos/internal/repository"
	"github.com/ifnmg/vitrine-projetos/internal/services"
	"github.com/ifnmg/vitrine-projetos/internal/utils"
)

// ProjetoHandler coordinates project HTTP handlers, including the
// participant links and images a project owns.
type ProjetoHandler struct {
	projetoService *services.ProjetoService
}

// NewProjetoHandler creates a new ProjetoHandler.
func NewProjetoHandler(projetoService *services.ProjetoService) *ProjetoHandler {
	return &ProjetoHandler{
		projetoService: projetoService,
	}
}

// CreateProjeto registers a new project.
func (h *ProjetoHandler) CreateProjeto(c *gin.Context) {
	type CreateProjetoRequest struct {
		Titulo        string               `json:"titulo" binding:"required,min=3,max=255"`
		Descricao     string               `json:"descricao"`
		DataInicio    time.Time            `json:"data_inicio" binding:"required"`
		DataFim       *time.Time           `json:"data_fim"`
		Tipo          models.TipoProjeto   `json:"tipo" binding:"required,oneof=PESQUISA ENSINO EXTENSAO"`
		Status        models.StatusProjeto `json:"status" binding:"omitempty,oneof=ATIVO CONCLUIDO PAUSADO CANCELADO"`
		CoordenadorID uint64               `json:"coordenador_id" binding:"required"`
	}

	var req CreateProjetoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Corpo da requisição inválido")
		return
	}

	projeto, err := h.projetoService.Create(services.CreateProjetoInput{
		Titulo:        req.Titulo,
		Descricao:     req.Descricao,
		DataInicio:    req.DataInicio,
		DataFim:       req.DataFim,
		Tipo:          req.Tipo,
		Status:        req.Status,
		CoordenadorID: req.CoordenadorID,
	})
	if err != nil {
		respondProjetoError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjetoDTO(*projeto))
}

// ListProjetos returns projects with filtering and pagination.
func (h *ProjetoHandler) ListProjetos(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	filter := repository.ProjetoFilter{Pagination: params}
	if tipoStr := c.Query("tipo"); tipoStr != "" {
		tipo := models.TipoProjeto(tipoStr)
		filter.Tipo = &tipo
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status := models.StatusProjeto(statusStr)
		filter.Status = &status
	}
	if coordStr := c.Query("coordenador_id"); coordStr != "" {
		coordID, err := strconv.ParseUint(coordStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "coordenador_id inválido")
			return
		}
		filter.CoordenadorID = &coordID
	}

	projetos, total, err := h.projetoService.List(filter)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, dto.ToProjetoListResponse(projetos, params, total))
}

// GetProjeto returns a project with participants and images.
func (h *ProjetoHandler) GetProjeto(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "ID inválido")
		return
	}

	projeto, err := h.projetoService.Get(id)
	if err != nil {
		respondProjetoError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjetoDTO(*projeto))
}

// UpdateProjeto updates a project.
func (h *ProjetoHandler) UpdateProjeto(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "ID inválido")
		return
	}

	type UpdateProjetoRequest struct {
		Titulo     *string               `json:"titulo" binding:"omitempty,min=3,max=255"`
		Descricao  *string               `json:"descricao"`
		DataInicio *time.Time            `json:"data_inicio"`
		DataFim    *time.Time            `json:"data_fim"`
		// Pointer fields cannot distinguish null from absent, so
		// clearing data_fim takes an explicit flag.
		ClearDataFim bool                  `json:"clear_data_fim"`
		Tipo         *models.TipoProjeto   `json:"tipo" binding:"omitempty,oneof=PESQUISA ENSINO EXTENSAO"`
		Status       *models.StatusProjeto `json:"status" binding:"omitempty,oneof=ATIVO CONCLUIDO PAUSADO CANCELADO"`
	}

	var req UpdateProjetoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Corpo da requisição inválido")
		return
	}

	projeto, err := h.projetoService.Update(id, services.UpdateProjetoInput{
		Titulo:       req.Titulo,
		Descricao:    req.Descricao,
		DataInicio:   req.DataInicio,
		DataFim:      req.DataFim,
		ClearDataFim: req.ClearDataFim,
		Tipo:         req.Tipo,
		Status:       req.Status,
	})
	if err != nil {
		respondProjetoError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjetoDTO(*projeto))
}

// DeleteProjeto removes a project with its participants and images.
func (h *ProjetoHandler) DeleteProjeto(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "ID inválido")
		return
	}

	if err := h.projetoService.Delete(id); err != nil {
		respondProjetoError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Projeto removido com sucesso"})
}

// LinkParticipante links a student or staff user to a project.
func (h *ProjetoHandler) LinkParticipante(c *gin.Context) {
	projetoID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "ID inválido")
		return
	}

	type LinkParticipanteRequest struct {
		ParticipanteID uint64                  `json:"participanteId" binding:"required"`
		Tipo           models.TipoParticipante `json:"tipo" binding:"required,oneof=ALUNO SERVIDOR"`
		Funcao         string                  `json:"funcao" binding:"required,min=2,max=100"`
	}

	var req LinkParticipanteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Corpo da requisição inválido")
		return
	}

	link, err := h.projetoService.LinkParticipante(services.LinkParticipanteInput{
		ProjetoID:      projetoID,
		ParticipanteID: req.ParticipanteID,
		Tipo:           req.Tipo,
		Funcao:         req.Funcao,
	})
	if err != nil {
		respondProjetoError(c, err)
		return
	}

	// Reload with the participant preloaded for the nested summary.
	participantes, err := h.projetoService.ListParticipantes(projetoID)
	if err != nil {
		apierrors.InternalError(c, "")
		return
	}
	for _, p := range participantes {
		if p.ID == link.ID {
			c.JSON(http.StatusCreated, dto.ToParticipanteDTO(p))
			return
		}
	}

	c.JSON(http.StatusCreated, dto.ToParticipanteDTO(*link))
}

// UnlinkParticipante removes a participant from a project.
func (h *ProjetoHandler) UnlinkParticipante(c *gin.Context) {
	projetoID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "ID inválido")
		return
	}

	participanteID, err := strconv.ParseUint(c.Param("participanteId"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "ID inválido")
		return
	}

	if err := h.projetoService.UnlinkParticipante(projetoID, participanteID); err != nil {
		respondProjetoError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Participante desvinculado com sucesso"})
}

// ListParticipantes lists the participants of a project.
func (h *ProjetoHandler) ListParticipantes(c *gin.Context) {
	projetoID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "ID inválido")
		return
	}

	participantes, err := h.projetoService.ListParticipantes(projetoID)
	if err != nil {
		respondProjetoError(c, err)
		return
	}

	dtos := make([]dto.ParticipanteDTO, len(participantes))
	for i, p := range participantes {
		dtos[i] = dto.ToParticipanteDTO(p)
	}

	c.JSON(http.StatusOK, gin.H{"participantes": dtos})
}

// UploadImagem stores a project image. The "principal" query flag makes
// it the project's cover image, demoting any previous one.
func (h *ProjetoHandler) UploadImagem(c *gin.Context) {
	projetoID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "ID inválido")
		return
	}

	fileHeader, err := c.FormFile("imagem")
	if err != nil {
		apierrors.BadRequest(c, "Imagem ausente")
		return
	}

	principal := c.DefaultQuery("principal", "false") == "true"

	file, err := fileHeader.Open()
	if err != nil {
		apierrors.BadRequest(c, "Falha ao abrir o arquivo")
		return
	}
	defer file.Close()

	img, err := h.projetoService.UploadImagem(services.UploadImagemInput{
		ProjetoID:   projetoID,
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Conteudo:    file,
		Principal:   principal,
	})
	if err != nil {
		respondProjetoError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToImagemDTO(*img))
}

// SetImagemPrincipal promotes an image to the project's cover image.
func (h *ProjetoHandler) SetImagemPrincipal(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "ID inválido")
		return
	}

	img, err := h.projetoService.SetImagemPrincipal(id)
	if err != nil {
		respondProjetoError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToImagemDTO(*img))
}

// DeleteImagem removes an image record and, best-effort, its file.
func (h *ProjetoHandler) DeleteImagem(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "ID inválido")
		return
	}

	if err := h.projetoService.RemoveImagem(id); err != nil {
		respondProjetoError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Imagem removida com sucesso"})
}

func respondProjetoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProjetoNaoEncontrado),
		errors.Is(err, services.ErrAlunoNaoEncontrado),
		errors.Is(err, services.ErrServidorNaoEncontrado),
		errors.Is(err, services.ErrImagemNaoEncontrada),
		errors.Is(err, services.ErrParticipanteNaoVinculado):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrParticipanteVinculado):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrCoordenadorInvalido),
		errors.Is(err, services.ErrTipoImagemInvalido),
		errors.Is(err, services.ErrArquivoMuitoGrande):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
