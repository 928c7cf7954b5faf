package models

import "time"

type Role string

const (
	RoleAdmin            Role = "ADMIN"
	RoleCoordenador      Role = "COORDENADOR"
	RoleCoordenadorCurso Role = "COORDENADOR_CURSO"
	RoleProfessor        Role = "PROFESSOR"
)

type Especializacao string

const (
	EspecializacaoInformatica  Especializacao = "INFORMATICA"
	EspecializacaoAgropecuaria Especializacao = "AGROPECUARIA"
	EspecializacaoZootecnia    Especializacao = "ZOOTECNIA"
	EspecializacaoMeioAmbiente Especializacao = "MEIO_AMBIENTE"
)

// User is a staff account (servidor). Students live in Aluno.
type User struct {
	ID             uint64          `gorm:"primarykey" json:"id"`
	Nome           string          `gorm:"type:varchar(255);not null" json:"nome"`
	Email          string          `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Senha          string          `gorm:"type:varchar(255);not null" json:"-"`
	Role           Role            `gorm:"type:varchar(30);not null;default:'PROFESSOR'" json:"role"`
	Especializacao *Especializacao `gorm:"type:varchar(40)" json:"especializacao,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`

	// Relations
	Projetos      []Projeto             `gorm:"foreignKey:CoordenadorID" json:"-"`
	Participacoes []ProjetoParticipante `gorm:"foreignKey:UserID" json:"-"`
	TCCs          []TCC                 `gorm:"foreignKey:CoordenadorID" json:"-"`
}

// PodeCoordenarTCC reports whether the role is allowed to own a TCC record.
func (u *User) PodeCoordenarTCC() bool {
	switch u.Role {
	case RoleCoordenador, RoleCoordenadorCurso, RoleAdmin:
		return true
	default:
		return false
	}
}
