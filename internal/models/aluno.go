package models

import "time"

// Aluno is a student record. No two rows may share the same
// (nome, turma, curso) triple, enforced by the composite unique index.
type Aluno struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Nome      string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_aluno_identidade" json:"nome"`
	Turma     string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_aluno_identidade" json:"turma"`
	Curso     string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_aluno_identidade" json:"curso"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Participacoes []ProjetoParticipante `gorm:"foreignKey:AlunoID" json:"-"`
	TCC           *TCC                  `gorm:"foreignKey:AlunoID" json:"-"`
}
