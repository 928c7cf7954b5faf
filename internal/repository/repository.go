package repository

import (
	"github.com/ifnmg/vitrine-projetos/internal/models"
	"github.com/ifnmg/vitrine-projetos/internal/utils"
)

// UserRepository defines the interface for staff user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// List retrieves users with pagination
	List(filter UserFilter) ([]models.User, int64, error)

	// Update updates a user
	Update(user *models.User) error

	// Delete hard deletes a user; dependent projects or theses make the
	// database report a foreign-key violation
	Delete(id uint64) error
}

// UserFilter holds filtering options for listing users
type UserFilter struct {
	Role       *models.Role
	Pagination utils.PaginationParams
}

// AlunoRepository defines the interface for student data access
type AlunoRepository interface {
	// Create creates a new student
	Create(aluno *models.Aluno) error

	// FindByID finds a student by ID
	FindByID(id uint64) (*models.Aluno, error)

	// FindByIdentidade finds a student by the (nome, turma, curso) triple
	FindByIdentidade(nome, turma, curso string) (*models.Aluno, error)

	// List retrieves students with filtering and pagination
	List(filter AlunoFilter) ([]models.Aluno, int64, error)

	// Update updates a student
	Update(aluno *models.Aluno) error

	// Delete hard deletes a student; participant or thesis references make
	// the database report a foreign-key violation
	Delete(id uint64) error
}

// AlunoFilter holds filtering options for listing students
type AlunoFilter struct {
	Turma      string
	Curso      string
	Pagination utils.PaginationParams
}

// ProjetoRepository defines the interface for project data access,
// including the owned participant links and images
type ProjetoRepository interface {
	// Create creates a new project
	Create(projeto *models.Projeto) error

	// FindByID finds a project by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Projeto, error)

	// List retrieves projects with filtering and pagination
	List(filter ProjetoFilter) ([]models.Projeto, int64, error)

	// Update updates a project
	Update(projeto *models.Projeto) error

	// Delete removes a project together with its participants and images
	Delete(id uint64) error

	// AddParticipante inserts a participant link
	AddParticipante(p *models.ProjetoParticipante) error

	// FindParticipante finds the link of a participant (aluno or user) to
	// a project
	FindParticipante(projetoID, participanteID uint64, tipo models.TipoParticipante) (*models.ProjetoParticipante, error)

	// RemoveParticipante deletes a participant link
	RemoveParticipante(id uint64) error

	// ListParticipantes lists all links of a project with participants preloaded
	ListParticipantes(projetoID uint64) ([]models.ProjetoParticipante, error)

	// AddImagem inserts an image; when principal, the previous principal
	// image of the project is cleared in the same transaction
	AddImagem(img *models.ImagemProjeto) error

	// FindImagemByID finds an image by ID
	FindImagemByID(id uint64) (*models.ImagemProjeto, error)

	// SetImagemPrincipal atomically clears the project's current principal
	// image and promotes the given one
	SetImagemPrincipal(img *models.ImagemProjeto) error

	// RemoveImagem deletes an image row
	RemoveImagem(id uint64) error
}

// ProjetoFilter holds filtering options for listing projects
type ProjetoFilter struct {
	Tipo          *models.TipoProjeto
	Status        *models.StatusProjeto
	CoordenadorID *uint64
	Pagination    utils.PaginationParams
}

// TCCRepository defines the interface for thesis data access
type TCCRepository interface {
	// Create creates a new thesis record
	Create(tcc *models.TCC) error

	// FindByID finds a thesis by ID with relations preloaded
	FindByID(id uint64) (*models.TCC, error)

	// FindByAlunoID finds the thesis of a student
	FindByAlunoID(alunoID uint64) (*models.TCC, error)

	// List retrieves theses with filtering and pagination
	List(filter TCCFilter) ([]models.TCC, int64, error)

	// Update updates a thesis
	Update(tcc *models.TCC) error

	// Delete hard deletes a thesis
	Delete(id uint64) error
}

// TCCFilter holds filtering options for listing theses
type TCCFilter struct {
	Curso      string
	AlunoID    *uint64
	Pagination utils.PaginationParams
}
