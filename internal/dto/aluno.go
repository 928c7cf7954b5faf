package dto

import "github.com/ifnmg/vitrine-projetos/internal/models"

// AlunoDTO represents a student in API responses
type AlunoDTO struct {
	ID    uint64 `json:"id"`
	Nome  string `json:"nome"`
	Turma string `json:"turma"`
	Curso string `json:"curso"`
}

// ToAlunoDTO converts an Aluno model to AlunoDTO
func ToAlunoDTO(aluno models.Aluno) AlunoDTO {
	return AlunoDTO{
		ID:    aluno.ID,
		Nome:  aluno.Nome,
		Turma: aluno.Turma,
		Curso: aluno.Curso,
	}
}

// ToAlunoDTOs converts a slice of alunos
func ToAlunoDTOs(alunos []models.Aluno) []AlunoDTO {
	dtos := make([]AlunoDTO, len(alunos))
	for i, a := range alunos {
		dtos[i] = ToAlunoDTO(a)
	}
	return dtos
}

// ErroLinhaDTO reports the validation errors of a single CSV line
type ErroLinhaDTO struct {
	Linha     int      `json:"linha"`
	Mensagens []string `json:"mensagens"`
}

// ImportacaoDTO is the result of a CSV batch import. TotalRecebido
// always equals TotalInserido + len(Erros).
type ImportacaoDTO struct {
	TotalRecebido int            `json:"totalRecebido"`
	TotalInserido int            `json:"totalInserido"`
	Erros         []ErroLinhaDTO `json:"erros"`
}
