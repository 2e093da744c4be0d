package dto

import "github.com/yukikurage/taskhive/internal/models"

// UserDTO represents a user in API responses. Password material is never included.
type UserDTO struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	UserDTO
	Token string `json:"token"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}

// referenceUser returns the preloaded user, or a bare id when the relation was not loaded
func referenceUser(id uint64, user models.User) UserDTO {
	if user.ID == 0 {
		return UserDTO{ID: id}
	}
	return ToUserDTO(user)
}

// ToAuthResponse converts a user and their token to AuthResponse
func ToAuthResponse(user models.User, token string) AuthResponse {
	return AuthResponse{
		UserDTO: ToUserDTO(user),
		Token:   token,
	}
}
