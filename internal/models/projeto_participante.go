package models

import "time"

type TipoParticipante string

const (
	ParticipanteAluno    TipoParticipante = "ALUNO"
	ParticipanteServidor TipoParticipante = "SERVIDOR"
)

// ProjetoParticipante links either an Aluno or a User (servidor) to a
// project. Exactly one of AlunoID/UserID is set, discriminated by Tipo.
// The composite unique indexes keep a participant linked to a project at
// most once even under concurrent link requests.
type ProjetoParticipante struct {
	ID        uint64           `gorm:"primarykey" json:"id"`
	ProjetoID uint64           `gorm:"not null;uniqueIndex:idx_participante_aluno;uniqueIndex:idx_participante_servidor" json:"projeto_id"`
	AlunoID   *uint64          `gorm:"uniqueIndex:idx_participante_aluno" json:"aluno_id,omitempty"`
	UserID    *uint64          `gorm:"uniqueIndex:idx_participante_servidor" json:"user_id,omitempty"`
	Tipo      TipoParticipante `gorm:"type:varchar(10);not null" json:"tipo"`
	Funcao    string           `gorm:"type:varchar(100);not null" json:"funcao"`
	CreatedAt time.Time        `json:"created_at"`

	// Relations
	Projeto Projeto `gorm:"foreignKey:ProjetoID" json:"-"`
	Aluno   *Aluno  `gorm:"foreignKey:AlunoID;constraint:OnDelete:RESTRICT" json:"aluno,omitempty"`
	User    *User   `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"user,omitempty"`
}

// ParticipanteID returns whichever foreign key is set for the row.
func (p *ProjetoParticipante) ParticipanteID() uint64 {
	if p.Tipo == ParticipanteAluno && p.AlunoID != nil {
		return *p.AlunoID
	}
	if p.UserID != nil {
		return *p.UserID
	}
	return 0
}
