package search

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"storevista-be/internal/logger"
	"storevista-be/internal/product"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	ResultLimit    = 5
	NoResultsReply = "I couldn't find any products matching that criteria. Try browsing our categories directly!"
)

type Result struct {
	ResponseText string            `json:"response_text"`
	Products     []product.Product `json:"products"`
}

type Service interface {
	ChatSearch(ctx context.Context, q string) (*Result, error)
}

type service struct {
	products product.Repository
}

func NewService(products product.Repository) Service {
	return &service{products: products}
}

func (s *service) ChatSearch(ctx context.Context, q string) (*Result, error) {
	if strings.TrimSpace(q) == "" {
		return &Result{Products: []product.Product{}}, nil
	}

	intent := ParseQuery(q)

	filter := product.SearchFilter{
		Category:      intent.Category,
		Keyword:       intent.Keyword,
		CheapestFirst: strings.Contains(strings.ToLower(q), "cheap"),
		Limit:         ResultLimit,
	}
	if intent.MaxPrice != nil {
		ceiling := decimal.NewFromFloat(*intent.MaxPrice)
		filter.MaxPrice = &ceiling
	}

	products, err := s.products.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}

	logger.FromCtx(ctx).Debug("chat search",
		zap.String("query", q),
		zap.String("category", string(intent.Category)),
		zap.String("keyword", intent.Keyword),
		zap.Int("results", len(products)),
	)

	return &Result{
		ResponseText: describe(intent, len(products)),
		Products:     products,
	}, nil
}

func describe(intent Intent, n int) string {
	if n == 0 {
		return NoResultsReply
	}

	var b strings.Builder
	fmt.Fprintf(&b, "I found %d ", n)
	if intent.Category != "" {
		b.WriteString(string(intent.Category) + " ")
	}
	b.WriteString("items")
	if intent.Keyword != "" {
		fmt.Fprintf(&b, " matching '%s'", intent.Keyword)
	}
	if intent.MaxPrice != nil {
		fmt.Fprintf(&b, " under %s ETB", strconv.FormatFloat(*intent.MaxPrice, 'f', -1, 64))
	}
	b.WriteString(".")
	return b.String()
}
