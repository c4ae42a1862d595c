package commands

import (
	"context"

	"lendit/internal/domain/user"
	"lendit/internal/pkg/errs"
	"lendit/internal/pkg/jwt"
	"lendit/internal/pkg/password"
	"lendit/internal/usecase/queries"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials   = errs.New("invalid credentials")
	ErrAuthenticationFailed = errs.New("authentication failed")
	ErrTokenGeneration      = errs.New("token generation failed")
)

type LoginResult struct {
	UserID uuid.UUID
	Token  string
}

type AuthCommands interface {
	Login(ctx context.Context, email, rawPassword string) (*LoginResult, error)
}

type authCommandsImpl struct {
	readStore  queries.UserReadStore
	jwtService *jwt.Service
}

func NewAuthCommands(readStore queries.UserReadStore, jwtService *jwt.Service) AuthCommands {
	return &authCommandsImpl{readStore: readStore, jwtService: jwtService}
}

func (a *authCommandsImpl) Login(ctx context.Context, email, rawPassword string) (*LoginResult, error) {
	credentials, err := user.NewCredentials(email, rawPassword)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	view, hash, err := a.readStore.FindAuthByEmail(ctx, credentials.Email().Value())
	if err != nil {
		// Same error as a password mismatch to prevent user enumeration.
		return nil, ErrInvalidCredentials
	}
	if err := password.ComparePassword(hash, credentials.Password().Value()); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := a.jwtService.GenerateToken(view.ID)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}
	return &LoginResult{UserID: view.ID, Token: token}, nil
}
