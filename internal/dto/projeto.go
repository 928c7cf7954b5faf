package dto

import (
	"time"

	"github.com/ifnmg/vitrine-projetos/internal/models"
	"github.com/ifnmg/vitrine-projetos/internal/utils"
)

// ImagemDTO represents a project image in API responses
type ImagemDTO struct {
	ID        uint64 `json:"id"`
	ProjetoID uint64 `json:"projeto_id"`
	URL       string `json:"url"`
	Principal bool   `json:"principal"`
}

// ParticipanteResumoDTO is the nested participant summary: always the
// name, plus turma for students and email for staff.
type ParticipanteResumoDTO struct {
	ID    uint64 `json:"id"`
	Nome  string `json:"nome"`
	Turma string `json:"turma,omitempty"`
	Email string `json:"email,omitempty"`
}

// ParticipanteDTO represents a project participant link
type ParticipanteDTO struct {
	ID           uint64                  `json:"id"`
	ProjetoID    uint64                  `json:"projeto_id"`
	Tipo         models.TipoParticipante `json:"tipo"`
	Funcao       string                  `json:"funcao"`
	Participante ParticipanteResumoDTO   `json:"participante"`
}

// ProjetoDTO represents a project in API responses
type ProjetoDTO struct {
	ID            uint64               `json:"id"`
	Titulo        string               `json:"titulo"`
	Descricao     string               `json:"descricao"`
	DataInicio    time.Time            `json:"data_inicio"`
	DataFim       *time.Time           `json:"data_fim"`
	Tipo          models.TipoProjeto   `json:"tipo"`
	Status        models.StatusProjeto `json:"status"`
	CoordenadorID uint64               `json:"coordenador_id"`
	Coordenador   *UserDTO             `json:"coordenador,omitempty"`
	Participantes []ParticipanteDTO    `json:"participantes,omitempty"`
	Imagens       []ImagemDTO          `json:"imagens,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// ProjetoListResponse represents a paginated list of projects
type ProjetoListResponse struct {
	Projetos   []ProjetoDTO             `json:"projetos"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToImagemDTO converts an ImagemProjeto model to ImagemDTO
func ToImagemDTO(img models.ImagemProjeto) ImagemDTO {
	return ImagemDTO{
		ID:        img.ID,
		ProjetoID: img.ProjetoID,
		URL:       img.URL,
		Principal: img.Principal,
	}
}

// ToParticipanteDTO converts a ProjetoParticipante model, including the
// nested participant summary when the relation is preloaded.
func ToParticipanteDTO(p models.ProjetoParticipante) ParticipanteDTO {
	dto := ParticipanteDTO{
		ID:        p.ID,
		ProjetoID: p.ProjetoID,
		Tipo:      p.Tipo,
		Funcao:    p.Funcao,
	}

	switch {
	case p.Tipo == models.ParticipanteAluno && p.Aluno != nil:
		dto.Participante = ParticipanteResumoDTO{
			ID:    p.Aluno.ID,
			Nome:  p.Aluno.Nome,
			Turma: p.Aluno.Turma,
		}
	case p.Tipo == models.ParticipanteServidor && p.User != nil:
		dto.Participante = ParticipanteResumoDTO{
			ID:    p.User.ID,
			Nome:  p.User.Nome,
			Email: p.User.Email,
		}
	}

	return dto
}

// ToProjetoDTO converts a Projeto model to ProjetoDTO
func ToProjetoDTO(projeto models.Projeto) ProjetoDTO {
	dto := ProjetoDTO{
		ID:            projeto.ID,
		Titulo:        projeto.Titulo,
		Descricao:     projeto.Descricao,
		DataInicio:    projeto.DataInicio,
		DataFim:       projeto.DataFim,
		Tipo:          projeto.Tipo,
		Status:        projeto.Status,
		CoordenadorID: projeto.CoordenadorID,
		CreatedAt:     projeto.CreatedAt,
		UpdatedAt:     projeto.UpdatedAt,
	}

	if projeto.Coordenador.ID != 0 {
		coordenador := ToUserDTO(projeto.Coordenador)
		dto.Coordenador = &coordenador
	}

	if len(projeto.Participantes) > 0 {
		dto.Participantes = make([]ParticipanteDTO, len(projeto.Participantes))
		for i, p := range projeto.Participantes {
			dto.Participantes[i] = ToParticipanteDTO(p)
		}
	}

	if len(projeto.Imagens) > 0 {
		dto.Imagens = make([]ImagemDTO, len(projeto.Imagens))
		for i, img := range projeto.Imagens {
			dto.Imagens[i] = ToImagemDTO(img)
		}
	}

	return dto
}

// ToProjetoListResponse converts a page of projects
func ToProjetoListResponse(projetos []models.Projeto, params utils.PaginationParams, total int64) ProjetoListResponse {
	items := make([]ProjetoDTO, len(projetos))
	for i, p := range projetos {
		items[i] = ToProjetoDTO(p)
	}

	return ProjetoListResponse{
		Projetos: items,
		Pagination: utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	}
}
