package order

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"storevista-be/internal/store"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

var transitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusCompleted, StatusCancelled},
}

func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	switch st {
	case StatusPending, StatusProcessing, StatusShipped, StatusCompleted, StatusCancelled:
		return st, nil
	}
	return "", &ValidationError{Message: fmt.Sprintf("invalid status %q", s)}
}

// Terminal statuses accept no further transition.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func (s Status) CanTransition(to Status) bool {
	if s.Terminal() {
		return false
	}
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

type PaymentMethod string

const PaymentCOD PaymentMethod = "cod"

// ParsePaymentMethod accepts cash on delivery (the default for an empty
// value) or any store payment method.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" || v == string(PaymentCOD) {
		return PaymentCOD, nil
	}
	m, err := store.ParsePaymentMethod(v)
	if err != nil {
		return "", &ValidationError{Message: fmt.Sprintf("invalid payment method %q", s)}
	}
	return PaymentMethod(m), nil
}

type Order struct {
	ID            int64           `json:"id"`
	StoreID       int64           `json:"store"`
	BuyerName     string          `json:"buyer_name"`
	BuyerPhone    string          `json:"buyer_phone"`
	Reference     string          `json:"order_reference"`
	TrackingToken string          `json:"tracking_token,omitempty"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Status        Status          `json:"status"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	CreatedAt     time.Time       `json:"created_at"`
	Items         []OrderItem     `json:"items"`

	// only filled right after checkout
	PaymentInstructions []string `json:"payment_instructions,omitempty"`

	// only filled by reference lookups
	ItemsCount int `json:"-"`
}

type OrderItem struct {
	ID          int64           `json:"id"`
	OrderID     int64           `json:"order"`
	ProductID   int64           `json:"product"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// Subtotal is the snapshotted price times the quantity.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// LineRequest is one requested product. Client supplied prices and totals
// are never read.
type LineRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// UnmarshalJSON also accepts the product id under "product".
func (l *LineRequest) UnmarshalJSON(data []byte) error {
	var raw struct {
		ProductID *int64 `json:"product_id"`
		Product   *int64 `json:"product"`
		Quantity  int    `json:"quantity"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	l.Quantity = raw.Quantity
	switch {
	case raw.ProductID != nil:
		l.ProductID = *raw.ProductID
	case raw.Product != nil:
		l.ProductID = *raw.Product
	}
	return nil
}

type PlaceOrderInput struct {
	BuyerName     *string       `json:"buyer_name"`
	BuyerPhone    *string       `json:"buyer_phone"`
	PaymentMethod string        `json:"payment_method"`
	Items         []LineRequest `json:"items"`
}

// StatusView is the public projection of an order looked up by reference.
type StatusView struct {
	Found      bool             `json:"found"`
	Reference  string           `json:"reference,omitempty"`
	Status     Status           `json:"status,omitempty"`
	Buyer      string           `json:"buyer,omitempty"`
	Total      *decimal.Decimal `json:"total,omitempty"`
	Date       *time.Time       `json:"date,omitempty"`
	ItemsCount int              `json:"items_count,omitempty"`
	Message    string           `json:"message,omitempty"`
}
