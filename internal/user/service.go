package user

import (
	"context"
	"errors"
	"strings"

	"storevista-be/internal/logger"

	"go.uber.org/zap"
)

const minPasswordLength = 6

type Service interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, input LoginInput) (*AuthResult, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Register"),
	)

	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, &ValidationError{Message: "username is required"}
	}
	if len(input.Password) < minPasswordLength {
		return nil, &ValidationError{Message: "password must be at least 6 characters"}
	}

	hashed, err := HashPassword(input.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return nil, err
	}

	u, err := s.repo.Create(ctx, username, hashed, strings.TrimSpace(input.FullName))
	if err != nil {
		if !errors.Is(err, ErrUsernameTaken) {
			log.Error("failed to create user", zap.String("username", username), zap.Error(err))
		}
		return nil, err
	}

	token, err := GenerateJWT(*u)
	if err != nil {
		log.Error("failed to generate jwt", zap.Int64("user_id", u.ID), zap.Error(err))
		return nil, err
	}

	log.Info("user registered", zap.Int64("user_id", u.ID))
	return &AuthResult{Token: token, User: *u}, nil
}

func (s *service) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Login"),
	)

	u, err := s.repo.FindByUsername(ctx, strings.TrimSpace(input.Username))
	if errors.Is(err, ErrUserNotFound) {
		log.Info("login with unknown username")
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !CheckPasswordHash(input.Password, u.Password) {
		log.Info("password mismatch", zap.Int64("user_id", u.ID))
		return nil, ErrInvalidCredentials
	}

	token, err := GenerateJWT(*u)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: *u}, nil
}
