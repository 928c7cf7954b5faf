package models

import "time"

type TipoProjeto string

const (
	TipoPesquisa TipoProjeto = "PESQUISA"
	TipoEnsino   TipoProjeto = "ENSINO"
	TipoExtensao TipoProjeto = "EXTENSAO"
)

type StatusProjeto string

const (
	StatusAtivo     StatusProjeto = "ATIVO"
	StatusConcluido StatusProjeto = "CONCLUIDO"
	StatusPausado   StatusProjeto = "PAUSADO"
	StatusCancelado StatusProjeto = "CANCELADO"
)

// Projeto owns its participantes and imagens; both are removed together
// with the project. The coordenador is only referenced and must keep the
// COORDENADOR role at creation time.
type Projeto struct {
	ID            uint64        `gorm:"primarykey" json:"id"`
	Titulo        string        `gorm:"type:varchar(255);not null" json:"titulo"`
	Descricao     string        `gorm:"type:text" json:"descricao"`
	DataInicio    time.Time     `gorm:"not null" json:"data_inicio"`
	DataFim       *time.Time    `json:"data_fim"`
	Tipo          TipoProjeto   `gorm:"type:varchar(20);not null" json:"tipo"`
	Status        StatusProjeto `gorm:"type:varchar(20);not null;default:'ATIVO'" json:"status"`
	CoordenadorID uint64        `gorm:"not null" json:"coordenador_id"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`

	// Relations
	Coordenador   User                  `gorm:"foreignKey:CoordenadorID;constraint:OnDelete:RESTRICT" json:"coordenador,omitempty"`
	Participantes []ProjetoParticipante `gorm:"foreignKey:ProjetoID;constraint:OnDelete:CASCADE" json:"participantes,omitempty"`
	Imagens       []ImagemProjeto       `gorm:"foreignKey:ProjetoID;constraint:OnDelete:CASCADE" json:"imagens,omitempty"`
}
