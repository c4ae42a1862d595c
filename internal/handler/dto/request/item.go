package request

import "lendit/internal/usecase/commands"

type CreateItemRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Available   *bool  `json:"available" binding:"required"`
}

func (r CreateItemRequest) ToCommand() commands.CreateItemRequest {
	return commands.CreateItemRequest{
		Name:        r.Name,
		Description: r.Description,
		Available:   *r.Available,
	}
}

type UpdateItemRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Available   *bool   `json:"available,omitempty"`
}

func (r UpdateItemRequest) ToCommand() commands.UpdateItemRequest {
	return commands.UpdateItemRequest{
		Name:        r.Name,
		Description: r.Description,
		Available:   r.Available,
	}
}

type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}
