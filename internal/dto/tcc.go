package dto

import (
	"time"

	"github.com/ifnmg/vitrine-projetos/internal/models"
	"github.com/ifnmg/vitrine-projetos/internal/utils"
)

// TCCDTO represents a thesis record in API responses
type TCCDTO struct {
	ID            uint64    `json:"id"`
	Titulo        string    `json:"titulo"`
	Curso         string    `json:"curso"`
	Resumo        string    `json:"resumo"`
	DataDefesa    time.Time `json:"data_defesa"`
	Arquivo       string    `json:"arquivo"`
	AlunoID       uint64    `json:"aluno_id"`
	CoordenadorID uint64    `json:"coordenador_id"`
	Orientador    string    `json:"orientador"`
	Aluno         *AlunoDTO `json:"aluno,omitempty"`
	Coordenador   *UserDTO  `json:"coordenador,omitempty"`
}

// TCCListResponse represents a paginated list of theses
type TCCListResponse struct {
	TCCs       []TCCDTO                 `json:"tccs"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToTCCDTO converts a TCC model to TCCDTO
func ToTCCDTO(tcc models.TCC) TCCDTO {
	dto := TCCDTO{
		ID:            tcc.ID,
		Titulo:        tcc.Titulo,
		Curso:         tcc.Curso,
		Resumo:        tcc.Resumo,
		DataDefesa:    tcc.DataDefesa,
		Arquivo:       tcc.Arquivo,
		AlunoID:       tcc.AlunoID,
		CoordenadorID: tcc.CoordenadorID,
		Orientador:    tcc.Orientador,
	}

	if tcc.Aluno.ID != 0 {
		aluno := ToAlunoDTO(tcc.Aluno)
		dto.Aluno = &aluno
	}
	if tcc.Coordenador.ID != 0 {
		coordenador := ToUserDTO(tcc.Coordenador)
		dto.Coordenador = &coordenador
	}

	return dto
}

// ToTCCListResponse converts a page of theses
func ToTCCListResponse(tccs []models.TCC, params utils.PaginationParams, total int64) TCCListResponse {
	items := make([]TCCDTO, len(tccs))
	for i, t := range tccs {
		items[i] = ToTCCDTO(t)
	}

	return TCCListResponse{
		TCCs: items,
		Pagination: utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	}
}
