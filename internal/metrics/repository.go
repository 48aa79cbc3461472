package metrics

import (
	"context"

	"storevista-be/internal/db"

	"github.com/shopspring/decimal"
)

// StoreSummary aggregates a store's orders for the seller dashboard.
// Cancelled orders count in ByStatus but not in revenue or items sold.
type StoreSummary struct {
	StoreID     int64            `json:"store_id"`
	TotalOrders int              `json:"total_orders"`
	ByStatus    map[string]int   `json:"by_status"`
	Revenue     decimal.Decimal  `json:"revenue"`
	ItemsSold   int              `json:"items_sold"`
	AvgOrder    *decimal.Decimal `json:"avg_order_value"`
}

type Repository interface {
	StoreSummary(ctx context.Context, storeID int64) (*StoreSummary, error)
}

type repository struct {
	db db.Querier
}

func NewRepository(q db.Querier) Repository {
	return &repository{db: q}
}

func (r *repository) StoreSummary(ctx context.Context, storeID int64) (*StoreSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT status, COUNT(*), COALESCE(SUM(total_amount), 0)
		FROM orders
		WHERE store_id = $1
		GROUP BY status
		ORDER BY status
	`, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summary := &StoreSummary{
		StoreID:  storeID,
		ByStatus: map[string]int{},
		Revenue:  decimal.Zero,
	}
	paidOrders := 0

	for rows.Next() {
		var (
			status string
			count  int
			total  decimal.Decimal
		)
		if err := rows.Scan(&status, &count, &total); err != nil {
			return nil, err
		}
		summary.ByStatus[status] = count
		summary.TotalOrders += count
		if status != "cancelled" {
			summary.Revenue = summary.Revenue.Add(total)
			paidOrders += count
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	err = r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(i.quantity), 0)
		FROM order_items i
		JOIN orders o ON o.id = i.order_id
		WHERE o.store_id = $1 AND o.status <> 'cancelled'
	`, storeID).Scan(&summary.ItemsSold)
	if err != nil {
		return nil, err
	}

	if paidOrders > 0 {
		avg := summary.Revenue.Div(decimal.NewFromInt(int64(paidOrders))).Round(2)
		summary.AvgOrder = &avg
	}
	return summary, nil
}
