package request

import "lendit/internal/usecase/commands"

type RegisterUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

func (r RegisterUserRequest) ToCommand() commands.RegisterUserRequest {
	return commands.RegisterUserRequest{
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
	}
}

type UpdateUserRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty" binding:"omitempty,email"`
}

func (r UpdateUserRequest) ToCommand() commands.UpdateUserRequest {
	return commands.UpdateUserRequest{
		Name:  r.Name,
		Email: r.Email,
	}
}
