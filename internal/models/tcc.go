package models

import "time"

// TCC is an undergraduate thesis record. Each Aluno has at most one,
// enforced by the unique index on AlunoID.
type TCC struct {
	ID            uint64    `gorm:"primarykey" json:"id"`
	Titulo        string    `gorm:"type:varchar(255);not null" json:"titulo"`
	Curso         string    `gorm:"type:varchar(100);not null;index" json:"curso"`
	Resumo        string    `gorm:"type:text" json:"resumo"`
	DataDefesa    time.Time `gorm:"not null" json:"data_defesa"`
	Arquivo       string    `gorm:"type:varchar(500);not null" json:"arquivo"`
	AlunoID       uint64    `gorm:"not null;uniqueIndex" json:"aluno_id"`
	CoordenadorID uint64    `gorm:"not null" json:"coordenador_id"`
	Orientador    string    `gorm:"type:varchar(255);not null" json:"orientador"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Relations
	Aluno       Aluno `gorm:"foreignKey:AlunoID;constraint:OnDelete:RESTRICT" json:"aluno,omitempty"`
	Coordenador User  `gorm:"foreignKey:CoordenadorID;constraint:OnDelete:RESTRICT" json:"coordenador,omitempty"`
}
