package response

import (
	"tutorhub/internal/usecase/commands"
	"tutorhub/internal/usecase/queries"
)

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func FromLoginResult(r *commands.LoginResult) *LoginResponse {
	return &LoginResponse{
		AccessToken: r.AccessToken,
		User: UserResponse{
			ID:    r.UserID.String(),
			Email: r.Email,
			Role:  r.Role.String(),
		},
	}
}

func FromAuthorizedUser(u *queries.AuthorizedUserView) *UserResponse {
	return &UserResponse{
		ID:    u.ID.String(),
		Email: u.Email,
		Role:  u.Role,
	}
}
