package readstore

import (
	"context"

	"tutorhub/internal/infra"
	"tutorhub/internal/usecase/queries"
	"tutorhub/internal/usecase/shared"

	"github.com/google/uuid"
)

const findUserByEmailSQL = `
SELECT id, email, password_hash, role
FROM users
WHERE email = $1`

const findUserByIDSQL = `
SELECT id, email, role
FROM users
WHERE id = $1`

type UserReadStore struct {
	db infra.DBTX
}

func NewUserReadStore(db infra.DBTX) *UserReadStore {
	return &UserReadStore{db: db}
}

func (s *UserReadStore) FindByEmail(ctx context.Context, email string) (*shared.UserSnapshot, error) {
	var snap shared.UserSnapshot
	err := s.db.QueryRow(ctx, findUserByEmailSQL, email).Scan(
		&snap.ID,
		&snap.Email,
		&snap.PasswordHash,
		&snap.Role,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find user by email", err)
	}
	return &snap, nil
}

func (s *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	var view queries.AuthorizedUserView
	err := s.db.QueryRow(ctx, findUserByIDSQL, id).Scan(
		&view.ID,
		&view.Email,
		&view.Role,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find user by id", err)
	}
	return &view, nil
}
