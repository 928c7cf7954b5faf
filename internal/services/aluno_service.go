package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/ifnmg/vitrine-projetos/internal/models"
	"github.com/ifnmg/vitrine-projetos/internal/repository"
)

var (
	ErrAlunoNaoEncontrado = errors.New("aluno não encontrado")
	ErrAlunoDuplicado     = errors.New("aluno já cadastrado com este nome, turma e curso")
	ErrAlunoVinculado     = errors.New("aluno vinculado a projetos ou TCC")
)

// AlunoService handles student business logic.
type AlunoService struct {
	alunoRepo repository.AlunoRepository
}

// NewAlunoService creates a new AlunoService.
func NewAlunoService(alunoRepo repository.AlunoRepository) *AlunoService {
	return &AlunoService{alunoRepo: alunoRepo}
}

// CreateAlunoInput represents input for registering a student.
type CreateAlunoInput struct {
	Nome  string
	Turma string
	Curso string
}

// Create registers a student. The (nome, turma, curso) triple must be
// unique; the pre-check gives a friendly error and the composite unique
// index closes the race.
func (s *AlunoService) Create(input CreateAlunoInput) (*models.Aluno, error) {
	nome := strings.TrimSpace(input.Nome)
	turma := strings.TrimSpace(input.Turma)
	curso := strings.TrimSpace(input.Curso)

	if _, err := s.alunoRepo.FindByIdentidade(nome, turma, curso); err == nil {
		return nil, ErrAlunoDuplicado
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check student: %w", err)
	}

	aluno := &models.Aluno{
		Nome:  nome,
		Turma: turma,
		Curso: curso,
	}

	if err := s.alunoRepo.Create(aluno); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlunoDuplicado
		}
		return nil, fmt.Errorf("failed to create student: %w", err)
	}

	return aluno, nil
}

// Get retrieves a student by ID.
func (s *AlunoService) Get(id uint64) (*models.Aluno, error) {
	aluno, err := s.alunoRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAlunoNaoEncontrado
		}
		return nil, fmt.Errorf("failed to find student: %w", err)
	}
	return aluno, nil
}

// List returns students with filtering and pagination.
func (s *AlunoService) List(filter repository.AlunoFilter) ([]models.Aluno, int64, error) {
	alunos, total, err := s.alunoRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list students: %w", err)
	}
	return alunos, total, nil
}

// UpdateAlunoInput represents input for updating a student.
type UpdateAlunoInput struct {
	Nome  *string
	Turma *string
	Curso *string
}

// Update applies the provided fields to a student.
func (s *AlunoService) Update(id uint64, input UpdateAlunoInput) (*models.Aluno, error) {
	aluno, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if input.Nome != nil {
		aluno.Nome = strings.TrimSpace(*input.Nome)
	}
	if input.Turma != nil {
		aluno.Turma = strings.TrimSpace(*input.Turma)
	}
	if input.Curso != nil {
		aluno.Curso = strings.TrimSpace(*input.Curso)
	}

	if err := s.alunoRepo.Update(aluno); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlunoDuplicado
		}
		return nil, fmt.Errorf("failed to update student: %w", err)
	}

	return aluno, nil
}

// Delete removes a student unless projects or a thesis still reference it.
func (s *AlunoService) Delete(id uint64) error {
	if _, err := s.Get(id); err != nil {
		return err
	}

	if err := s.alunoRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return ErrAlunoVinculado
		}
		return fmt.Errorf("failed to delete student: %w", err)
	}

	return nil
}
