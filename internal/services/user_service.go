package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/ifnmg/vitrine-projetos/internal/constants"
	"github.com/ifnmg/vitrine-projetos/internal/models"
	"github.com/ifnmg/vitrine-projetos/internal/repository"
	"github.com/ifnmg/vitrine-projetos/internal/utils"
)

var (
	ErrUsuarioNaoEncontrado = errors.New("usuário não encontrado")
	ErrEmailEmUso           = errors.New("e-mail já cadastrado")
	ErrSenhaCurta           = errors.New("senha muito curta")
	ErrAutoExclusao         = errors.New("usuário não pode excluir a própria conta")
	ErrUsuarioVinculado     = errors.New("usuário vinculado a projetos ou TCCs")
)

// UserService handles staff account business logic.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateUserInput represents input for creating a staff user.
type CreateUserInput struct {
	Nome           string
	Email          string
	Senha          string
	Role           models.Role
	Especializacao *models.Especializacao
}

// Create registers a new staff user with a hashed password.
func (s *UserService) Create(input CreateUserInput) (*models.User, error) {
	if len(input.Senha) < constants.MinPasswordLength {
		return nil, ErrSenhaCurta
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailEmUso
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := utils.HashPassword(input.Senha)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Nome:           strings.TrimSpace(input.Nome),
		Email:          email,
		Senha:          hash,
		Role:           input.Role,
		Especializacao: input.Especializacao,
	}

	if err := s.userRepo.Create(user); err != nil {
		// Backstop for the unique index under concurrent creates.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailEmUso
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Get retrieves a user by ID.
func (s *UserService) Get(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUsuarioNaoEncontrado
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// List returns users with pagination.
func (s *UserService) List(filter repository.UserFilter) ([]models.User, int64, error) {
	users, total, err := s.userRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

// UpdateUserInput represents input for updating a staff user.
type UpdateUserInput struct {
	Nome           *string
	Email          *string
	Role           *models.Role
	Especializacao *models.Especializacao
}

// Update applies the provided fields to a user.
func (s *UserService) Update(id uint64, input UpdateUserInput) (*models.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if input.Nome != nil {
		user.Nome = strings.TrimSpace(*input.Nome)
	}
	if input.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*input.Email))
	}
	if input.Role != nil {
		user.Role = *input.Role
	}
	if input.Especializacao != nil {
		user.Especializacao = input.Especializacao
	}

	if err := s.userRepo.Update(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailEmUso
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// UpdateSenha replaces a user's password.
func (s *UserService) UpdateSenha(id uint64, senha string) error {
	if len(senha) < constants.MinPasswordLength {
		return ErrSenhaCurta
	}

	user, err := s.Get(id)
	if err != nil {
		return err
	}

	hash, err := utils.HashPassword(senha)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.Senha = hash
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

// Delete removes a user. The actor cannot delete their own account, and
// a user referenced by projects or theses is reported as still linked.
func (s *UserService) Delete(id, actorID uint64) error {
	if id == actorID {
		return ErrAutoExclusao
	}

	if _, err := s.Get(id); err != nil {
		return err
	}

	if err := s.userRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return ErrUsuarioVinculado
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}
