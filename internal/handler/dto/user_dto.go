package dto

import "github.com/yourusername/contest-api/internal/domain/entity"

// UserResponse представляет пользователя в ответах API
type UserResponse struct {
	ID                  string `json:"id"`
	Email               string `json:"email"`
	Role                string `json:"role"`
	DisplayName         string `json:"displayName"`
	Bio                 string `json:"bio"`
	PhotoURL            string `json:"photoURL"`
	TotalParticipations int64  `json:"totalParticipations"`
	TotalWins           int64  `json:"totalWins"`
}

// NewUserResponse преобразует пользователя в DTO
func NewUserResponse(user *entity.User) *UserResponse {
	return &UserResponse{
		ID:                  user.ID,
		Email:               user.Email,
		Role:                user.Role,
		DisplayName:         user.DisplayName,
		Bio:                 user.Bio,
		PhotoURL:            user.PhotoURL,
		TotalParticipations: user.TotalParticipations,
		TotalWins:           user.TotalWins,
	}
}

// NewListUserResponse преобразует список пользователей в DTO
func NewListUserResponse(users []entity.User) []*UserResponse {
	out := make([]*UserResponse, len(users))
	for i := range users {
		out[i] = NewUserResponse(&users[i])
	}
	return out
}
