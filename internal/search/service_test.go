package search

import (
	"context"
	"errors"
	"testing"

	"storevista-be/internal/product"
	"storevista-be/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, p *product.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, p *product.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductRepository) ListAvailable(ctx context.Context, storeSlug string) ([]product.Product, error) {
	args := m.Called(ctx, storeSlug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]product.Product), args.Error(1)
}

func (m *MockProductRepository) Search(ctx context.Context, filter product.SearchFilter) ([]product.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]product.Product), args.Error(1)
}

func TestChatSearch_EmptyQuery(t *testing.T) {
	repo := new(MockProductRepository)
	svc := NewService(repo)

	res, err := svc.ChatSearch(context.Background(), "   ")

	require.NoError(t, err)
	assert.Empty(t, res.ResponseText)
	assert.Empty(t, res.Products)
	repo.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func TestChatSearch_BuildsFilterAndMessage(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProductRepository)
	svc := NewService(repo)

	found := []product.Product{
		{ID: 1, Name: "Budget Laptop", Price: decimal.NewFromInt(30000)},
		{ID: 2, Name: "Office Laptop", Price: decimal.NewFromInt(42000)},
	}

	repo.On("Search", ctx, mock.MatchedBy(func(f product.SearchFilter) bool {
		return f.Category == store.CategoryElectronics &&
			f.Keyword == "cheap" &&
			f.CheapestFirst &&
			f.Limit == ResultLimit &&
			f.MaxPrice != nil && f.MaxPrice.Equal(decimal.NewFromInt(50000))
	})).Return(found, nil)

	res, err := svc.ChatSearch(ctx, "cheap laptop under 50000")

	require.NoError(t, err)
	assert.Equal(t, "I found 2 electronics items matching 'cheap' under 50000 ETB.", res.ResponseText)
	assert.Len(t, res.Products, 2)
	repo.AssertExpectations(t)
}

func TestChatSearch_CategoryOnly(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProductRepository)
	svc := NewService(repo)

	repo.On("Search", ctx, product.SearchFilter{
		Category: store.CategoryFashion,
		Limit:    ResultLimit,
	}).Return([]product.Product{{ID: 5}}, nil)

	res, err := svc.ChatSearch(ctx, "show me fashion")

	require.NoError(t, err)
	assert.Equal(t, "I found 1 fashion items.", res.ResponseText)
}

func TestChatSearch_NoResults(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProductRepository)
	svc := NewService(repo)

	repo.On("Search", ctx, mock.Anything).Return([]product.Product{}, nil)

	res, err := svc.ChatSearch(ctx, "unicorn saddle")

	require.NoError(t, err)
	assert.Equal(t, NoResultsReply, res.ResponseText)
	assert.Empty(t, res.Products)
}

func TestChatSearch_RepositoryError(t *testing.T) {
	ctx := context.Background()
	repo := new(MockProductRepository)
	svc := NewService(repo)

	repo.On("Search", ctx, mock.Anything).Return(nil, errors.New("db down"))

	_, err := svc.ChatSearch(ctx, "phone")
	assert.ErrorContains(t, err, "db down")
}
