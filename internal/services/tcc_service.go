package services

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/ifnmg/vitrine-projetos/internal/constants"
	"github.com/ifnmg/vitrine-projetos/internal/models"
	"github.com/ifnmg/vitrine-projetos/internal/repository"
	"github.com/ifnmg/vitrine-projetos/internal/utils"
)

var (
	ErrTCCNaoEncontrado       = errors.New("TCC não encontrado")
	ErrTCCExistente           = errors.New("aluno já possui um TCC cadastrado")
	ErrCoordenadorTCCInvalido = errors.New("coordenador de TCC deve ser COORDENADOR, COORDENADOR_CURSO ou ADMIN")
	ErrArquivoPDFInvalido     = errors.New("arquivo deve ser um PDF")
)

// TCCService handles thesis business logic.
type TCCService struct {
	tccRepo   repository.TCCRepository
	alunoRepo repository.AlunoRepository
	userRepo  repository.UserRepository
	store     UploadStore
	logger    *logrus.Logger
	maxUpload int64
}

// NewTCCService creates a new TCCService.
func NewTCCService(
	tccRepo repository.TCCRepository,
	alunoRepo repository.AlunoRepository,
	userRepo repository.UserRepository,
	store UploadStore,
	logger *logrus.Logger,
	maxUpload int64,
) *TCCService {
	return &TCCService{
		tccRepo:   tccRepo,
		alunoRepo: alunoRepo,
		userRepo:  userRepo,
		store:     store,
		logger:    logger,
		maxUpload: maxUpload,
	}
}

// CreateTCCInput represents input for registering a thesis with its PDF.
type CreateTCCInput struct {
	Titulo        string
	Curso         string
	Resumo        string
	DataDefesa    time.Time
	AlunoID       uint64
	CoordenadorID uint64
	Orientador    string
	Filename      string
	ContentType   string
	Size          int64
	Conteudo      io.Reader
}

// Create registers a thesis. Each student has at most one thesis, and
// only COORDENADOR, COORDENADOR_CURSO or ADMIN users may own one.
func (s *TCCService) Create(input CreateTCCInput) (*models.TCC, error) {
	if input.ContentType != constants.PDFContentType {
		return nil, ErrArquivoPDFInvalido
	}
	if input.Size > s.maxUpload {
		return nil, ErrArquivoMuitoGrande
	}

	if _, err := s.alunoRepo.FindByID(input.AlunoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAlunoNaoEncontrado
		}
		return nil, fmt.Errorf("failed to find student: %w", err)
	}

	coordenador, err := s.userRepo.FindByID(input.CoordenadorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServidorNaoEncontrado
		}
		return nil, fmt.Errorf("failed to find coordenador: %w", err)
	}
	if !coordenador.PodeCoordenarTCC() {
		return nil, ErrCoordenadorTCCInvalido
	}

	if _, err := s.tccRepo.FindByAlunoID(input.AlunoID); err == nil {
		return nil, ErrTCCExistente
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing thesis: %w", err)
	}

	url, err := s.store.SaveArquivo(input.Conteudo, utils.StampFilename(input.Filename))
	if err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	tcc := &models.TCC{
		Titulo:        strings.TrimSpace(input.Titulo),
		Curso:         strings.TrimSpace(input.Curso),
		Resumo:        input.Resumo,
		DataDefesa:    input.DataDefesa,
		Arquivo:       url,
		AlunoID:       input.AlunoID,
		CoordenadorID: input.CoordenadorID,
		Orientador:    strings.TrimSpace(input.Orientador),
	}

	if err := s.tccRepo.Create(tcc); err != nil {
		if rmErr := s.store.Remove(url); rmErr != nil {
			s.logger.WithError(rmErr).WithField("url", url).
				Warn("failed to remove orphaned thesis file")
		}
		// Unique index on aluno_id closes the check-then-act race.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrTCCExistente
		}
		return nil, fmt.Errorf("failed to create thesis: %w", err)
	}

	return s.tccRepo.FindByID(tcc.ID)
}

// Get retrieves a thesis by ID.
func (s *TCCService) Get(id uint64) (*models.TCC, error) {
	tcc, err := s.tccRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTCCNaoEncontrado
		}
		return nil, fmt.Errorf("failed to find thesis: %w", err)
	}
	return tcc, nil
}

// List returns theses with filtering and pagination.
func (s *TCCService) List(filter repository.TCCFilter) ([]models.TCC, int64, error) {
	tccs, total, err := s.tccRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list theses: %w", err)
	}
	return tccs, total, nil
}

// UpdateTCCInput represents input for updating a thesis.
type UpdateTCCInput struct {
	Titulo     *string
	Curso      *string
	Resumo     *string
	DataDefesa *time.Time
	Orientador *string
}

// Update applies the provided fields to a thesis.
func (s *TCCService) Update(id uint64, input UpdateTCCInput) (*models.TCC, error) {
	tcc, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if input.Titulo != nil {
		tcc.Titulo = strings.TrimSpace(*input.Titulo)
	}
	if input.Curso != nil {
		tcc.Curso = strings.TrimSpace(*input.Curso)
	}
	if input.Resumo != nil {
		tcc.Resumo = *input.Resumo
	}
	if input.DataDefesa != nil {
		tcc.DataDefesa = *input.DataDefesa
	}
	if input.Orientador != nil {
		tcc.Orientador = strings.TrimSpace(*input.Orientador)
	}

	if err := s.tccRepo.Update(tcc); err != nil {
		return nil, fmt.Errorf("failed to update thesis: %w", err)
	}

	return s.tccRepo.FindByID(id)
}

// Delete removes a thesis. PDF removal is best-effort and never blocks
// the database delete.
func (s *TCCService) Delete(id uint64) error {
	tcc, err := s.Get(id)
	if err != nil {
		return err
	}

	if err := s.store.Remove(tcc.Arquivo); err != nil {
		s.logger.WithError(err).WithField("url", tcc.Arquivo).
			Warn("failed to remove thesis file")
	}

	if err := s.tccRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete thesis: %w", err)
	}

	return nil
}
