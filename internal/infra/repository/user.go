package repository

import (
	"context"

	"washbook/internal/infra"
	"washbook/internal/infra/db"

	"github.com/google/uuid"
)

type UserRepository struct {
	db db.DBTX
}

func NewUserRepository(dbtx db.DBTX) *UserRepository {
	return &UserRepository{db: dbtx}
}

const createUserSQL = `
INSERT INTO users (id, email, password_hash, name, phone, role, is_active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, true, now(), now())
RETURNING id`

func (r *UserRepository) Create(ctx context.Context, tx db.DBTX, email, passwordHash, name, phone, role string) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, createUserSQL, uuid.New(), email, passwordHash, name, phone, role).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create user", err)
	}
	return id, nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, tx db.DBTX, userID uuid.UUID) error {
	_, err := tx.Exec(ctx, `UPDATE users SET last_login_at = now(), updated_at = now() WHERE id = $1`, userID)
	if err != nil {
		return infra.WrapRepoErr("failed to update last login", err)
	}
	return nil
}
