package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"storevista-be/internal/db"
	"storevista-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, s *Store) error
	Update(ctx context.Context, s *Store) error
	GetByID(ctx context.Context, id int64) (*Store, error)
	GetBySlug(ctx context.Context, slug string) (*Store, error)
	GetBySlugAny(ctx context.Context, slug string) (*Store, error)
	GetByOwner(ctx context.Context, ownerID int64) (*Store, error)
	ListActive(ctx context.Context) ([]Store, error)
}

type repository struct {
	db db.Querier
}

func NewRepository(q db.Querier) Repository {
	return &repository{db: q}
}

const storeColumns = `
	id, owner_id, name, slug, category, address,
	latitude, longitude, primary_color, is_active,
	payment_methods, payment_accounts, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStore(row rowScanner) (*Store, error) {
	var (
		s        Store
		lat, lng sql.NullFloat64
		methods  []string
		accounts []byte
	)

	err := row.Scan(
		&s.ID, &s.OwnerID, &s.Name, &s.Slug, &s.Category, &s.Address,
		&lat, &lng, &s.PrimaryColor, &s.IsActive,
		pq.Array(&methods), &accounts, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lat.Valid {
		s.Latitude = &lat.Float64
	}
	if lng.Valid {
		s.Longitude = &lng.Float64
	}

	s.PaymentMethods = make([]PaymentMethod, 0, len(methods))
	for _, m := range methods {
		s.PaymentMethods = append(s.PaymentMethods, PaymentMethod(m))
	}

	s.PaymentAccounts = map[string]string{}
	if len(accounts) > 0 {
		if err := json.Unmarshal(accounts, &s.PaymentAccounts); err != nil {
			return nil, fmt.Errorf("decode payment accounts: %w", err)
		}
	}

	return &s, nil
}

func encodePayment(s *Store) ([]string, []byte, error) {
	methods := make([]string, 0, len(s.PaymentMethods))
	for _, m := range s.PaymentMethods {
		methods = append(methods, string(m))
	}

	accounts := s.PaymentAccounts
	if accounts == nil {
		accounts = map[string]string{}
	}
	raw, err := json.Marshal(accounts)
	if err != nil {
		return nil, nil, err
	}
	return methods, raw, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == PgUniqueViolation
}

func (r *repository) Create(ctx context.Context, s *Store) error {
	methods, accounts, err := encodePayment(s)
	if err != nil {
		return err
	}

	err = r.db.QueryRowContext(ctx, `
		INSERT INTO stores (
			owner_id, name, slug, category, address,
			latitude, longitude, primary_color, is_active,
			payment_methods, payment_accounts
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING id, created_at
	`,
		s.OwnerID, s.Name, s.Slug, s.Category, s.Address,
		s.Latitude, s.Longitude, s.PrimaryColor, s.IsActive,
		pq.Array(methods), accounts,
	).Scan(&s.ID, &s.CreatedAt)

	if isUniqueViolation(err) {
		return ErrSlugTaken
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to insert store",
			zap.String("slug", s.Slug),
			zap.Error(err),
		)
		return err
	}

	return nil
}

func (r *repository) Update(ctx context.Context, s *Store) error {
	methods, accounts, err := encodePayment(s)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE stores
		SET name = $1, category = $2, address = $3,
			latitude = $4, longitude = $5, primary_color = $6,
			is_active = $7, payment_methods = $8, payment_accounts = $9
		WHERE id = $10
	`,
		s.Name, s.Category, s.Address,
		s.Latitude, s.Longitude, s.PrimaryColor,
		s.IsActive, pq.Array(methods), accounts,
		s.ID,
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrStoreNotFound
	}
	return nil
}

func (r *repository) getOne(ctx context.Context, where string, arg any) (*Store, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT"+storeColumns+" FROM stores WHERE "+where+" ORDER BY id LIMIT 1", arg)

	s, err := scanStore(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStoreNotFound
	}
	return s, err
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Store, error) {
	return r.getOne(ctx, "id = $1", id)
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (*Store, error) {
	return r.getOne(ctx, "slug = $1 AND is_active = TRUE", slug)
}

// GetBySlugAny also finds inactive stores, so their owner can reopen them.
func (r *repository) GetBySlugAny(ctx context.Context, slug string) (*Store, error) {
	return r.getOne(ctx, "slug = $1", slug)
}

func (r *repository) GetByOwner(ctx context.Context, ownerID int64) (*Store, error) {
	return r.getOne(ctx, "owner_id = $1", ownerID)
}

func (r *repository) ListActive(ctx context.Context) ([]Store, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT"+storeColumns+" FROM stores WHERE is_active = TRUE ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stores := []Store{}
	for rows.Next() {
		s, err := scanStore(rows)
		if err != nil {
			return nil, err
		}
		stores = append(stores, *s)
	}

	return stores, rows.Err()
}
