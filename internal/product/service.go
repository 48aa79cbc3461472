package product

import (
	"context"
	"errors"
	"strings"

	"storevista-be/internal/logger"
	"storevista-be/internal/store"

	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, ownerID int64, input CreateInput) (*Product, error)
	Update(ctx context.Context, ownerID, productID int64, input UpdateInput) (*Product, error)
	GetByID(ctx context.Context, id int64) (*Product, error)
	List(ctx context.Context, storeSlug string) ([]Product, error)
}

type service struct {
	repo      Repository
	storeRepo store.Repository
}

func NewService(repo Repository, storeRepo store.Repository) Service {
	return &service{repo: repo, storeRepo: storeRepo}
}

// Create adds a product to the caller's store. Callers without a store get
// ErrNoStore before anything is written.
func (s *service) Create(ctx context.Context, ownerID int64, input CreateInput) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateProduct"),
		zap.Int64("owner_id", ownerID),
	)

	st, err := s.storeRepo.GetByOwner(ctx, ownerID)
	if errors.Is(err, store.ErrStoreNotFound) {
		log.Warn("product create without store")
		return nil, ErrNoStore
	}
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, &ValidationError{Message: "product name is required"}
	}
	if input.Price.IsNegative() {
		return nil, &ValidationError{Message: "price cannot be negative"}
	}
	if input.Stock < 0 {
		return nil, &ValidationError{Message: "stock cannot be negative"}
	}

	available := true
	if input.IsAvailable != nil {
		available = *input.IsAvailable
	}

	p := &Product{
		StoreID:     st.ID,
		StoreSlug:   st.Slug,
		StoreName:   st.Name,
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Price:       input.Price.Round(2),
		Stock:       input.Stock,
		IsAvailable: available,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		log.Error("failed to create product", zap.Error(err))
		return nil, err
	}

	log.Info("product created",
		zap.Int64("product_id", p.ID),
		zap.Int64("store_id", st.ID),
	)
	return p, nil
}

func (s *service) Update(ctx context.Context, ownerID, productID int64, input UpdateInput) (*Product, error) {
	p, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	st, err := s.storeRepo.GetByID(ctx, p.StoreID)
	if err != nil {
		return nil, err
	}
	if st.OwnerID != ownerID {
		return nil, ErrForbidden
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, &ValidationError{Message: "product name is required"}
		}
		p.Name = name
	}
	if input.Description != nil {
		p.Description = strings.TrimSpace(*input.Description)
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, &ValidationError{Message: "price cannot be negative"}
		}
		p.Price = input.Price.Round(2)
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, &ValidationError{Message: "stock cannot be negative"}
		}
		p.Stock = *input.Stock
	}
	if input.IsAvailable != nil {
		p.IsAvailable = *input.IsAvailable
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, storeSlug string) ([]Product, error) {
	return s.repo.ListAvailable(ctx, strings.TrimSpace(storeSlug))
}
