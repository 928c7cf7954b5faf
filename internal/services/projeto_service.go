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
	ErrProjetoNaoEncontrado     = errors.New("projeto não encontrado")
	ErrCoordenadorInvalido      = errors.New("coordenador deve ter o papel COORDENADOR")
	ErrServidorNaoEncontrado    = errors.New("servidor não encontrado")
	ErrParticipanteVinculado    = errors.New("participante já vinculado a este projeto")
	ErrParticipanteNaoVinculado = errors.New("participante não vinculado a este projeto")
	ErrImagemNaoEncontrada      = errors.New("imagem não encontrada")
	ErrTipoImagemInvalido       = errors.New("formato de imagem inválido (use JPEG, PNG ou WebP)")
	ErrArquivoMuitoGrande       = errors.New("arquivo excede o tamanho máximo permitido")
)

// UploadStore persists uploaded files and is implemented by storage.Disk.
type UploadStore interface {
	SaveImagem(src io.Reader, filename string) (string, error)
	SaveArquivo(src io.Reader, filename string) (string, error)
	Remove(url string) error
}

// ProjetoService handles project business logic, including the
// participant links and images a project owns.
type ProjetoService struct {
	projetoRepo repository.ProjetoRepository
	alunoRepo   repository.AlunoRepository
	userRepo    repository.UserRepository
	store       UploadStore
	logger      *logrus.Logger
	maxUpload   int64
}

// NewProjetoService creates a new ProjetoService.
func NewProjetoService(
	projetoRepo repository.ProjetoRepository,
	alunoRepo repository.AlunoRepository,
	userRepo repository.UserRepository,
	store UploadStore,
	logger *logrus.Logger,
	maxUpload int64,
) *ProjetoService {
	return &ProjetoService{
		projetoRepo: projetoRepo,
		alunoRepo:   alunoRepo,
		userRepo:    userRepo,
		store:       store,
		logger:      logger,
		maxUpload:   maxUpload,
	}
}

// CreateProjetoInput represents input for creating a project.
type CreateProjetoInput struct {
	Titulo        string
	Descricao     string
	DataInicio    time.Time
	DataFim       *time.Time
	Tipo          models.TipoProjeto
	Status        models.StatusProjeto
	CoordenadorID uint64
}

// Create registers a project after checking that the coordenador exists
// and holds the COORDENADOR role.
func (s *ProjetoService) Create(input CreateProjetoInput) (*models.Projeto, error) {
	coordenador, err := s.userRepo.FindByID(input.CoordenadorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServidorNaoEncontrado
		}
		return nil, fmt.Errorf("failed to find coordenador: %w", err)
	}
	if coordenador.Role != models.RoleCoordenador {
		return nil, ErrCoordenadorInvalido
	}

	if input.Status == "" {
		input.Status = models.StatusAtivo
	}

	projeto := &models.Projeto{
		Titulo:        strings.TrimSpace(input.Titulo),
		Descricao:     input.Descricao,
		DataInicio:    input.DataInicio,
		DataFim:       input.DataFim,
		Tipo:          input.Tipo,
		Status:        input.Status,
		CoordenadorID: input.CoordenadorID,
	}

	if err := s.projetoRepo.Create(projeto); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return s.projetoRepo.FindByID(projeto.ID, "Coordenador")
}

// Get returns a project with its relations.
func (s *ProjetoService) Get(id uint64) (*models.Projeto, error) {
	projeto, err := s.projetoRepo.FindByID(id,
		"Coordenador", "Imagens",
		"Participantes", "Participantes.Aluno", "Participantes.User")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjetoNaoEncontrado
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return projeto, nil
}

// List returns projects with filtering and pagination.
func (s *ProjetoService) List(filter repository.ProjetoFilter) ([]models.Projeto, int64, error) {
	projetos, total, err := s.projetoRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	return projetos, total, nil
}

// UpdateProjetoInput represents input for updating a project.
type UpdateProjetoInput struct {
	Titulo       *string
	Descricao    *string
	DataInicio   *time.Time
	DataFim      *time.Time
	ClearDataFim bool
	Tipo         *models.TipoProjeto
	Status       *models.StatusProjeto
}

// Update applies the provided fields to a project.
func (s *ProjetoService) Update(id uint64, input UpdateProjetoInput) (*models.Projeto, error) {
	projeto, err := s.projetoRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjetoNaoEncontrado
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if input.Titulo != nil {
		projeto.Titulo = strings.TrimSpace(*input.Titulo)
	}
	if input.Descricao != nil {
		projeto.Descricao = *input.Descricao
	}
	if input.DataInicio != nil {
		projeto.DataInicio = *input.DataInicio
	}
	if input.ClearDataFim {
		projeto.DataFim = nil
	} else if input.DataFim != nil {
		projeto.DataFim = input.DataFim
	}
	if input.Tipo != nil {
		projeto.Tipo = *input.Tipo
	}
	if input.Status != nil {
		projeto.Status = *input.Status
	}

	if err := s.projetoRepo.Update(projeto); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return s.Get(id)
}

// Delete removes a project together with the participants and images it
// owns. Uploaded image files are removed best-effort.
func (s *ProjetoService) Delete(id uint64) error {
	projeto, err := s.projetoRepo.FindByID(id, "Imagens")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjetoNaoEncontrado
		}
		return fmt.Errorf("failed to find project: %w", err)
	}

	if err := s.projetoRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	for _, img := range projeto.Imagens {
		if err := s.store.Remove(img.URL); err != nil {
			s.logger.WithError(err).WithField("url", img.URL).
				Warn("failed to remove image file")
		}
	}

	return nil
}

// LinkParticipanteInput represents input for linking a participant.
type LinkParticipanteInput struct {
	ProjetoID      uint64
	ParticipanteID uint64
	Tipo           models.TipoParticipante
	Funcao         string
}

// LinkParticipante links a student or staff user to a project. A given
// participant may be linked to a given project at most once.
func (s *ProjetoService) LinkParticipante(input LinkParticipanteInput) (*models.ProjetoParticipante, error) {
	if _, err := s.projetoRepo.FindByID(input.ProjetoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjetoNaoEncontrado
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	participante := &models.ProjetoParticipante{
		ProjetoID: input.ProjetoID,
		Tipo:      input.Tipo,
		Funcao:    strings.TrimSpace(input.Funcao),
	}

	switch input.Tipo {
	case models.ParticipanteAluno:
		aluno, err := s.alunoRepo.FindByID(input.ParticipanteID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrAlunoNaoEncontrado
			}
			return nil, fmt.Errorf("failed to find student: %w", err)
		}
		participante.AlunoID = &aluno.ID
	case models.ParticipanteServidor:
		user, err := s.userRepo.FindByID(input.ParticipanteID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrServidorNaoEncontrado
			}
			return nil, fmt.Errorf("failed to find staff user: %w", err)
		}
		participante.UserID = &user.ID
	default:
		return nil, fmt.Errorf("tipo de participante inválido: %s", input.Tipo)
	}

	if _, err := s.projetoRepo.FindParticipante(input.ProjetoID, input.ParticipanteID, input.Tipo); err == nil {
		return nil, ErrParticipanteVinculado
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check participant link: %w", err)
	}

	if err := s.projetoRepo.AddParticipante(participante); err != nil {
		// The composite unique index closes the check-then-act race.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrParticipanteVinculado
		}
		return nil, fmt.Errorf("failed to link participant: %w", err)
	}

	return s.projetoRepo.FindParticipante(input.ProjetoID, input.ParticipanteID, input.Tipo)
}

// UnlinkParticipante removes the link between a project and a
// participant, whichever type it is.
func (s *ProjetoService) UnlinkParticipante(projetoID, participanteID uint64) error {
	if _, err := s.projetoRepo.FindByID(projetoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjetoNaoEncontrado
		}
		return fmt.Errorf("failed to find project: %w", err)
	}

	link, err := s.projetoRepo.FindParticipante(projetoID, participanteID, models.ParticipanteAluno)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		link, err = s.projetoRepo.FindParticipante(projetoID, participanteID, models.ParticipanteServidor)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrParticipanteNaoVinculado
		}
		return fmt.Errorf("failed to find participant link: %w", err)
	}

	if err := s.projetoRepo.RemoveParticipante(link.ID); err != nil {
		return fmt.Errorf("failed to unlink participant: %w", err)
	}

	return nil
}

// ListParticipantes lists the participants of a project.
func (s *ProjetoService) ListParticipantes(projetoID uint64) ([]models.ProjetoParticipante, error) {
	if _, err := s.projetoRepo.FindByID(projetoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjetoNaoEncontrado
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return s.projetoRepo.ListParticipantes(projetoID)
}

// UploadImagemInput represents an incoming image upload.
type UploadImagemInput struct {
	ProjetoID   uint64
	Filename    string
	ContentType string
	Size        int64
	Conteudo    io.Reader
	Principal   bool
}

// UploadImagem validates, stores and records a project image. A
// principal upload demotes the previous principal image in the same
// transaction, so each project has at most one principal image.
func (s *ProjetoService) UploadImagem(input UploadImagemInput) (*models.ImagemProjeto, error) {
	if !constants.ImageContentTypes[input.ContentType] {
		return nil, ErrTipoImagemInvalido
	}
	if input.Size > s.maxUpload {
		return nil, ErrArquivoMuitoGrande
	}

	if _, err := s.projetoRepo.FindByID(input.ProjetoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjetoNaoEncontrado
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	url, err := s.store.SaveImagem(input.Conteudo, utils.StampFilename(input.Filename))
	if err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	img := &models.ImagemProjeto{
		ProjetoID: input.ProjetoID,
		URL:       url,
		Principal: input.Principal,
	}

	if err := s.projetoRepo.AddImagem(img); err != nil {
		if rmErr := s.store.Remove(url); rmErr != nil {
			s.logger.WithError(rmErr).WithField("url", url).
				Warn("failed to remove orphaned image file")
		}
		return nil, fmt.Errorf("failed to record image: %w", err)
	}

	return img, nil
}

// SetImagemPrincipal promotes an image to the project's principal image.
func (s *ProjetoService) SetImagemPrincipal(imagemID uint64) (*models.ImagemProjeto, error) {
	img, err := s.projetoRepo.FindImagemByID(imagemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrImagemNaoEncontrada
		}
		return nil, fmt.Errorf("failed to find image: %w", err)
	}

	if err := s.projetoRepo.SetImagemPrincipal(img); err != nil {
		return nil, fmt.Errorf("failed to set principal image: %w", err)
	}

	img.Principal = true
	return img, nil
}

// RemoveImagem deletes an image record. The underlying file removal is
// best-effort: a filesystem failure is logged and never blocks the
// database delete.
func (s *ProjetoService) RemoveImagem(imagemID uint64) error {
	img, err := s.projetoRepo.FindImagemByID(imagemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrImagemNaoEncontrada
		}
		return fmt.Errorf("failed to find image: %w", err)
	}

	if err := s.store.Remove(img.URL); err != nil {
		s.logger.WithError(err).WithField("url", img.URL).
			Warn("failed to remove image file")
	}

	if err := s.projetoRepo.RemoveImagem(img.ID); err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}

	return nil
}
