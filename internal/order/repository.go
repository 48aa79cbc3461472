package order

import (
	"context"
	"database/sql"
	"errors"

	"storevista-be/internal/db"
	"storevista-be/internal/product"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type Repository interface {
	// RunInTx runs fn in one database transaction. Every write made through
	// the TxRepository is rolled back when fn returns an error.
	RunInTx(ctx context.Context, fn func(tx TxRepository) error) error

	ProductStores(ctx context.Context, productIDs []int64) (map[int64]int64, error)
	GetByReference(ctx context.Context, reference string) (*Order, error)
	GetByID(ctx context.Context, id int64) (*Order, error)
	ListByStore(ctx context.Context, storeID int64) ([]Order, error)
	UpdateStatus(ctx context.Context, id int64, status Status) error
}

// TxRepository holds the writes of a checkout.
type TxRepository interface {
	ReferenceExists(ctx context.Context, reference string) (bool, error)
	InsertOrder(ctx context.Context, o *Order) error
	LockProduct(ctx context.Context, productID int64) (*product.Product, error)
	DecrementStock(ctx context.Context, productID int64, qty int) error
	InsertItem(ctx context.Context, item *OrderItem) error
	UpdateTotal(ctx context.Context, orderID int64, total decimal.Decimal) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(conn *sql.DB) Repository {
	return &repository{db: conn}
}

func (r *repository) RunInTx(ctx context.Context, fn func(tx TxRepository) error) error {
	return db.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		return fn(&txRepository{q: tx})
	})
}

func (r *repository) ProductStores(ctx context.Context, productIDs []int64) (map[int64]int64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT p.id, p.store_id FROM products p
		JOIN stores s ON s.id = p.store_id
		WHERE p.id = ANY($1) AND s.is_active = TRUE`,
		pq.Array(productIDs),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stores := make(map[int64]int64, len(productIDs))
	for rows.Next() {
		var id, storeID int64
		if err := rows.Scan(&id, &storeID); err != nil {
			return nil, err
		}
		stores[id] = storeID
	}
	return stores, rows.Err()
}

const selectOrder = `
	SELECT
		o.id, o.store_id, o.buyer_name, o.buyer_phone, o.order_reference,
		o.total_amount, o.status, o.payment_method, o.created_at,
		(SELECT COUNT(*) FROM order_items i WHERE i.order_id = o.id)
	FROM orders o
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*Order, error) {
	var o Order
	err := row.Scan(
		&o.ID, &o.StoreID, &o.BuyerName, &o.BuyerPhone, &o.Reference,
		&o.TotalAmount, &o.Status, &o.PaymentMethod, &o.CreatedAt,
		&o.ItemsCount,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repository) GetByReference(ctx context.Context, reference string) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx,
		selectOrder+" WHERE UPPER(o.order_reference) = UPPER($1)", reference))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	return o, err
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, selectOrder+" WHERE o.id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	return o, err
}

func (r *repository) ListByStore(ctx context.Context, storeID int64) ([]Order, error) {
	rows, err := r.db.QueryContext(ctx,
		selectOrder+" WHERE o.store_id = $1 ORDER BY o.created_at DESC, o.id DESC", storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []Order{}
	index := map[int64]int{}
	ids := []int64{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		o.Items = []OrderItem{}
		index[o.ID] = len(orders)
		ids = append(ids, o.ID)
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	itemRows, err := r.db.QueryContext(ctx, `
		SELECT i.id, i.order_id, i.product_id, p.name, i.quantity, i.price
		FROM order_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.order_id = ANY($1)
		ORDER BY i.id
	`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var it OrderItem
		if err := itemRows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.Quantity, &it.Price); err != nil {
			return nil, err
		}
		if i, ok := index[it.OrderID]; ok {
			orders[i].Items = append(orders[i].Items, it)
		}
	}
	return orders, itemRows.Err()
}

func (r *repository) UpdateStatus(ctx context.Context, id int64, status Status) error {
	res, err := r.db.ExecContext(ctx, `UPDATE orders SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrOrderNotFound
	}
	return nil
}

type txRepository struct {
	q db.Querier
}

func (t *txRepository) ReferenceExists(ctx context.Context, reference string) (bool, error) {
	var exists bool
	err := t.q.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM orders WHERE order_reference = $1)`, reference).
		Scan(&exists)
	return exists, err
}

func (t *txRepository) InsertOrder(ctx context.Context, o *Order) error {
	return t.q.QueryRowContext(ctx, `
		INSERT INTO orders (
			store_id, buyer_name, buyer_phone, order_reference,
			tracking_token, total_amount, status, payment_method
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id, created_at
	`,
		o.StoreID, o.BuyerName, o.BuyerPhone, o.Reference,
		o.TrackingToken, o.TotalAmount, o.Status, o.PaymentMethod,
	).Scan(&o.ID, &o.CreatedAt)
}

// LockProduct reads the authoritative price and stock and holds the row
// lock until the transaction ends.
func (t *txRepository) LockProduct(ctx context.Context, productID int64) (*product.Product, error) {
	var p product.Product
	err := t.q.QueryRowContext(ctx, `
		SELECT id, store_id, name, price, stock, is_available
		FROM products
		WHERE id = $1
		FOR UPDATE
	`, productID).Scan(&p.ID, &p.StoreID, &p.Name, &p.Price, &p.Stock, &p.IsAvailable)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, product.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (t *txRepository) DecrementStock(ctx context.Context, productID int64, qty int) error {
	res, err := t.q.ExecContext(ctx, `
		UPDATE products
		SET stock = stock - $1
		WHERE id = $2 AND stock >= $1
	`, qty, productID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrInsufficientStock
	}
	return nil
}

func (t *txRepository) InsertItem(ctx context.Context, item *OrderItem) error {
	return t.q.QueryRowContext(ctx, `
		INSERT INTO order_items (order_id, product_id, quantity, price)
		VALUES ($1,$2,$3,$4)
		RETURNING id
	`, item.OrderID, item.ProductID, item.Quantity, item.Price).Scan(&item.ID)
}

func (t *txRepository) UpdateTotal(ctx context.Context, orderID int64, total decimal.Decimal) error {
	_, err := t.q.ExecContext(ctx,
		`UPDATE orders SET total_amount = $1 WHERE id = $2`, total, orderID)
	return err
}
