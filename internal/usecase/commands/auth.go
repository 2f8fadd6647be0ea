package commands

import (
	"context"

	"tutorhub/internal/domain/user"
	"tutorhub/internal/infra"
	"tutorhub/internal/pkg/errs"
	"tutorhub/internal/pkg/jwt"
	"tutorhub/internal/pkg/password"
	"tutorhub/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrInvalidCredentials = errs.New("invalid email or password")

type LoginResult struct {
	UserID      uuid.UUID
	Email       string
	Role        user.Role
	AccessToken string
}

type AuthCommands interface {
	Login(ctx context.Context, email, plainPassword string) (*LoginResult, error)
}

type authCommandsImpl struct {
	uow shared.UnitOfWork
	jwt *jwt.Service
}

func NewAuthCommands(uow shared.UnitOfWork, jwtService *jwt.Service) AuthCommands {
	return &authCommandsImpl{uow: uow, jwt: jwtService}
}

func (uc *authCommandsImpl) Login(ctx context.Context, email, plainPassword string) (*LoginResult, error) {
	snap, err := uc.uow.CommandReads().UserByEmail(ctx, email)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrInvalidCredentials)
		}
		return nil, err
	}

	if err := password.ComparePassword(snap.PasswordHash, plainPassword); err != nil {
		return nil, errs.Mark(err, ErrInvalidCredentials)
	}

	role, err := user.NewRole(snap.Role)
	if err != nil {
		return nil, err
	}

	token, err := uc.jwt.GenerateToken(snap.ID, role)
	if err != nil {
		return nil, errs.Wrap(err, "failed to generate token")
	}

	return &LoginResult{
		UserID:      snap.ID,
		Email:       snap.Email,
		Role:        role,
		AccessToken: token,
	}, nil
}
