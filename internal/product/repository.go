package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"storevista-be/internal/db"
	"storevista-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id int64) (*Product, error)
	ListAvailable(ctx context.Context, storeSlug string) ([]Product, error)
	Search(ctx context.Context, filter SearchFilter) ([]Product, error)
}

type repository struct {
	db db.Querier
}

func NewRepository(q db.Querier) Repository {
	return &repository{db: q}
}

const selectProduct = `
	SELECT
		p.id, p.store_id, s.slug, s.name,
		p.name, p.description, p.price, p.stock,
		p.is_available, p.created_at
	FROM products p
	JOIN stores s ON s.id = p.store_id
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*Product, error) {
	var p Product
	err := row.Scan(
		&p.ID, &p.StoreID, &p.StoreSlug, &p.StoreName,
		&p.Name, &p.Description, &p.Price, &p.Stock,
		&p.IsAvailable, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) collect(ctx context.Context, query string, args ...any) ([]Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func (r *repository) Create(ctx context.Context, p *Product) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO products (store_id, name, description, price, stock, is_available)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, p.StoreID, p.Name, p.Description, p.Price, p.Stock, p.IsAvailable).
		Scan(&p.ID, &p.CreatedAt)
}

func (r *repository) Update(ctx context.Context, p *Product) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET name = $1, description = $2, price = $3, stock = $4, is_available = $5
		WHERE id = $6
	`, p.Name, p.Description, p.Price, p.Stock, p.IsAvailable, p.ID)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx, selectProduct+" WHERE p.id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	return p, err
}

func (r *repository) ListAvailable(ctx context.Context, storeSlug string) ([]Product, error) {
	query := selectProduct + " WHERE p.is_available = TRUE"
	args := []any{}

	if storeSlug != "" {
		query += " AND s.slug = $1"
		args = append(args, storeSlug)
	}
	query += " ORDER BY p.created_at DESC, p.id DESC"

	return r.collect(ctx, query, args...)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *repository) Search(ctx context.Context, filter SearchFilter) ([]Product, error) {
	query := selectProduct + " WHERE s.is_active = TRUE"
	args := []any{}
	argIndex := 1

	// ---------- FILTERING ----------
	if filter.Category != "" {
		query += fmt.Sprintf(" AND s.category = $%d", argIndex)
		args = append(args, string(filter.Category))
		argIndex++
	}

	if filter.Keyword != "" {
		query += fmt.Sprintf(
			" AND (p.name ILIKE $%d OR p.description ILIKE $%d OR s.name ILIKE $%d)",
			argIndex, argIndex, argIndex,
		)
		args = append(args, "%"+likeEscaper.Replace(filter.Keyword)+"%")
		argIndex++
	}

	if filter.MaxPrice != nil {
		query += fmt.Sprintf(" AND p.price <= $%d", argIndex)
		args = append(args, *filter.MaxPrice)
		argIndex++
	}

	// ---------- SORTING ----------
	if filter.CheapestFirst {
		query += " ORDER BY p.price ASC, p.id ASC"
	} else {
		query += " ORDER BY p.id ASC"
	}

	// ---------- LIMIT ----------
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, filter.Limit)
	}

	logger.FromCtx(ctx).Debug("executing product search query",
		zap.String("query", query),
		zap.Any("args", args),
	)

	return r.collect(ctx, query, args...)
}
