package user

import (
	"context"
	"database/sql"
	"errors"

	"storevista-be/internal/db"
	"storevista-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, username, password, fullName string) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
}

type repository struct {
	db db.Querier
}

func NewRepository(q db.Querier) Repository {
	return &repository{db: q}
}

func (r *repository) Create(ctx context.Context, username, password, fullName string) (*User, error) {
	var u User
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (username, password, full_name)
		VALUES ($1, $2, $3)
		RETURNING id, username, password, full_name, created_at
	`, username, password, fullName).
		Scan(&u.ID, &u.Username, &u.Password, &u.FullName, &u.CreatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return nil, ErrUsernameTaken
		}
		logger.FromCtx(ctx).Error("db: failed to insert user",
			zap.String("username", username),
			zap.Error(err),
		)
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindByUsername(ctx context.Context, username string) (*User, error) {
	var u User
	err := r.db.QueryRowContext(ctx, `
		SELECT id, username, password, full_name, created_at
		FROM users
		WHERE LOWER(username) = LOWER($1)
	`, username).Scan(&u.ID, &u.Username, &u.Password, &u.FullName, &u.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
