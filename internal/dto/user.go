package dto

import "github.com/ifnmg/vitrine-projetos/internal/models"

// UserDTO represents a staff user in API responses
type UserDTO struct {
	ID             uint64                 `json:"id"`
	Nome           string                 `json:"nome"`
	Email          string                 `json:"email"`
	Role           models.Role            `json:"role"`
	Especializacao *models.Especializacao `json:"especializacao,omitempty"`
}

// LoginResponse carries the issued bearer token
type LoginResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:             user.ID,
		Nome:           user.Nome,
		Email:          user.Email,
		Role:           user.Role,
		Especializacao: user.Especializacao,
	}
}

// ToUserDTOs converts a slice of users
func ToUserDTOs(users []models.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, u := range users {
		dtos[i] = ToUserDTO(u)
	}
	return dtos
}
