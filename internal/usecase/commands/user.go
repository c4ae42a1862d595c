package commands

import (
	"context"

	"lendit/internal/domain/user"
	"lendit/internal/infra"
	"lendit/internal/pkg/errs"
	"lendit/internal/pkg/password"

	"github.com/google/uuid"
)

var ErrEmailTaken = errs.New("email already in use")

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	Update(ctx context.Context, u *user.User) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type RegisterUserRequest struct {
	Name     string
	Email    string
	Password string
}

type UpdateUserRequest struct {
	Name  *string
	Email *string
}

type UserCommands interface {
	Register(ctx context.Context, req RegisterUserRequest) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateUserRequest) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type userCommandsImpl struct {
	repo  UserRepository
	reads CommandReads
}

func NewUserCommands(repo UserRepository, reads CommandReads) UserCommands {
	return &userCommandsImpl{repo: repo, reads: reads}
}

func (c *userCommandsImpl) Register(ctx context.Context, req RegisterUserRequest) (uuid.UUID, error) {
	email, err := user.NewEmail(req.Email)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}
	rawPassword, err := user.NewPassword(req.Password)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}
	hash, err := password.HashPassword(rawPassword.Value())
	if err != nil {
		return uuid.Nil, errs.Wrap(err, "failed to hash password")
	}

	entity, err := user.NewUser(req.Name, email, hash)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}
	if err := c.repo.Create(ctx, entity); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return uuid.Nil, ErrEmailTaken
		}
		return uuid.Nil, errs.Wrap(err, "failed to create user")
	}
	return entity.ID(), nil
}

func (c *userCommandsImpl) Update(ctx context.Context, id uuid.UUID, req UpdateUserRequest) error {
	snap, err := c.reads.UserByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrUserNotFound
		}
		return errs.Wrap(err, "failed to find user")
	}

	var email *user.Email
	if req.Email != nil {
		parsed, perr := user.NewEmail(*req.Email)
		if perr != nil {
			return errs.Mark(perr, ErrDomainValidation)
		}
		email = &parsed
	}

	storedEmail, err := user.NewEmail(snap.Email)
	if err != nil {
		return errs.Wrap(err, "stored email is malformed")
	}
	entity := user.ReconstructUser(snap.ID, snap.Name, storedEmail, snap.PasswordHash, snap.CreatedAt, snap.UpdatedAt)
	if err := entity.Patch(req.Name, email); err != nil {
		return errs.Mark(err, ErrDomainValidation)
	}
	if err := c.repo.Update(ctx, entity); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return ErrEmailTaken
		}
		return errs.Wrap(err, "failed to update user")
	}
	return nil
}

func (c *userCommandsImpl) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := c.repo.Delete(ctx, id)
	if err != nil {
		return errs.Wrap(err, "failed to delete user")
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}
