package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ifnmg/vitrine-projetos/internal/models"
	"github.com/ifnmg/vitrine-projetos/internal/repository"
	"github.com/ifnmg/vitrine-projetos/internal/utils"
)

var (
	ErrCredenciaisInvalidas = errors.New("e-mail ou senha inválidos")
)

// AuthService handles authentication business logic.
type AuthService struct {
	userRepo   repository.UserRepository
	jwtManager *utils.JWTManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, jwtManager *utils.JWTManager) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
	}
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email string
	Senha string
}

// Login verifies the credentials and issues a signed bearer token.
func (s *AuthService) Login(input LoginInput) (string, *models.User, error) {
	user, err := s.userRepo.FindByEmail(input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrCredenciaisInvalidas
		}
		return "", nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := utils.CheckPassword(input.Senha, user.Senha); err != nil {
		return "", nil, ErrCredenciaisInvalidas
	}

	token, err := s.jwtManager.GenerateToken(user)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return token, user, nil
}
