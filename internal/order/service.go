package order

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storevista-be/internal/logger"
	"storevista-be/internal/metrics"
	"storevista-be/internal/payment"
	"storevista-be/internal/product"
	"storevista-be/internal/store"
	"storevista-be/internal/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	GuestBuyerName   = "Guest"
	UnknownPhone     = "N/A"
	referenceRetries = 5
)

type Service interface {
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*Order, error)
	LookupStatus(ctx context.Context, reference string) (*StatusView, error)
	ListStoreOrders(ctx context.Context, ownerID int64) ([]Order, error)
	UpdateStatus(ctx context.Context, ownerID, orderID int64, status Status) (*Order, error)
	Summary(ctx context.Context, ownerID int64) (*metrics.StoreSummary, error)
}

type service struct {
	repo   Repository
	stores store.Repository
	sales  metrics.Repository
	stats  *metrics.OrderStats

	newReference func() string
	newToken     func() string
}

func NewService(repo Repository, stores store.Repository, sales metrics.Repository, stats *metrics.OrderStats) Service {
	if stats == nil {
		stats = metrics.NewOrderStats()
	}
	return &service{
		repo:         repo,
		stores:       stores,
		sales:        sales,
		stats:        stats,
		newReference: utils.GenerateOrderReference,
		newToken:     utils.GenerateTrackingToken,
	}
}

// PlaceOrder creates an order atomically: prices and stock are re-read under
// row locks, stock is decremented, items are written with the snapshotted
// price and the total is stored. Any failure leaves no trace.
func (s *service) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*Order, error) {
	timer := metrics.StartTimer()
	identity := utils.GetIdentity(ctx)

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "PlaceOrder"),
		zap.Bool("authenticated", identity.Authenticated),
	)

	o, err := s.placeOrder(ctx, input, identity)
	if err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			s.stats.Rejected(ctx)
			log.Info("order rejected", zap.String("reason", vErr.Message))
		} else {
			s.stats.Failed(ctx)
			log.Error("order placement failed", zap.Error(err))
		}
		return nil, err
	}

	s.stats.ObservePlacement(ctx, timer.Duration())
	log.Info("order placed",
		zap.Int64("order_id", o.ID),
		zap.String("reference", o.Reference),
		zap.Int64("store_id", o.StoreID),
		zap.String("total", o.TotalAmount.StringFixed(2)),
		zap.Duration("took", timer.Duration()),
	)
	return o, nil
}

func (s *service) placeOrder(ctx context.Context, input PlaceOrderInput, identity utils.Identity) (*Order, error) {
	if len(input.Items) == 0 {
		return nil, invalid("order must contain at least one item")
	}

	ids := make([]int64, 0, len(input.Items))
	for _, line := range input.Items {
		if line.Quantity <= 0 {
			return nil, invalid("quantity for product %d must be at least 1", line.ProductID)
		}
		ids = append(ids, line.ProductID)
	}

	productStores, err := s.repo.ProductStores(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve product stores: %w", err)
	}

	var storeID int64
	for i, id := range ids {
		sid, ok := productStores[id]
		if !ok {
			return nil, invalid("product %d not found", id)
		}
		if i == 0 {
			storeID = sid
		} else if sid != storeID {
			return nil, invalid("all items must be from the same store")
		}
	}

	method, err := ParsePaymentMethod(input.PaymentMethod)
	if err != nil {
		return nil, err
	}
	var account string
	if method != PaymentCOD {
		st, err := s.stores.GetByID(ctx, storeID)
		if err != nil {
			return nil, fmt.Errorf("load store: %w", err)
		}
		if !st.Accepts(string(method)) {
			return nil, invalid("store does not accept %s payments", method)
		}
		account = strings.TrimSpace(st.PaymentAccounts[string(method)])
	}

	o := &Order{
		StoreID:       storeID,
		BuyerName:     buyerName(input.BuyerName, identity),
		BuyerPhone:    utils.FirstNonBlank(utils.PtrString(input.BuyerPhone), UnknownPhone),
		TotalAmount:   decimal.Zero,
		Status:        StatusPending,
		PaymentMethod: method,
	}

	err = s.repo.RunInTx(ctx, func(tx TxRepository) error {
		ref, err := s.uniqueReference(ctx, tx)
		if err != nil {
			return err
		}
		o.Reference = ref
		o.TrackingToken = s.newToken()

		if err := tx.InsertOrder(ctx, o); err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		total := decimal.Zero
		items := make([]OrderItem, 0, len(input.Items))

		for _, line := range input.Items {
			p, err := tx.LockProduct(ctx, line.ProductID)
			if errors.Is(err, product.ErrProductNotFound) {
				return invalid("product %d not found", line.ProductID)
			}
			if err != nil {
				return fmt.Errorf("lock product %d: %w", line.ProductID, err)
			}
			if p.StoreID != storeID {
				return invalid("all items must be from the same store")
			}
			if !p.IsAvailable {
				return invalid("%s is not available", p.Name)
			}
			if !p.InStock(line.Quantity) {
				return insufficientStock(p)
			}

			err = tx.DecrementStock(ctx, p.ID, line.Quantity)
			if errors.Is(err, ErrInsufficientStock) {
				return insufficientStock(p)
			}
			if err != nil {
				return fmt.Errorf("decrement stock of %d: %w", p.ID, err)
			}

			item := OrderItem{
				OrderID:     o.ID,
				ProductID:   p.ID,
				ProductName: p.Name,
				Quantity:    line.Quantity,
				Price:       p.Price,
			}
			if err := tx.InsertItem(ctx, &item); err != nil {
				return fmt.Errorf("insert item: %w", err)
			}

			total = total.Add(item.Subtotal())
			items = append(items, item)
		}

		if err := tx.UpdateTotal(ctx, o.ID, total); err != nil {
			return fmt.Errorf("update total: %w", err)
		}
		o.TotalAmount = total
		o.Items = items
		return nil
	})
	if err != nil {
		return nil, err
	}

	o.PaymentInstructions = payment.Instructions(string(method), payment.InstructionVars{
		payment.VarAmount:    o.TotalAmount.StringFixed(2) + " ETB",
		payment.VarAccount:   account,
		payment.VarReference: o.Reference,
	})
	return o, nil
}

func (s *service) uniqueReference(ctx context.Context, tx TxRepository) (string, error) {
	for i := 0; i < referenceRetries; i++ {
		ref := s.newReference()
		exists, err := tx.ReferenceExists(ctx, ref)
		if err != nil {
			return "", fmt.Errorf("check reference: %w", err)
		}
		if !exists {
			return ref, nil
		}
	}
	return "", ErrReferenceExhausted
}

func buyerName(explicit *string, identity utils.Identity) string {
	var known string
	if identity.Authenticated {
		known = identity.DisplayName()
	}
	return utils.FirstNonBlank(utils.PtrString(explicit), known, GuestBuyerName)
}

func insufficientStock(p *product.Product) error {
	return invalid("Not enough stock for %s. Only %d left.", p.Name, p.Stock)
}

// LookupStatus finds an order by its reference, ignoring case. An unknown
// reference is a normal outcome and yields Found == false.
func (s *service) LookupStatus(ctx context.Context, reference string) (*StatusView, error) {
	ref := strings.TrimSpace(reference)
	if ref == "" {
		return nil, ErrEmptyReference
	}

	o, err := s.repo.GetByReference(ctx, ref)
	if errors.Is(err, ErrOrderNotFound) {
		s.stats.Lookup(ctx, false)
		return &StatusView{Found: false, Message: NotFoundMessage}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup order: %w", err)
	}

	s.stats.Lookup(ctx, true)
	total := o.TotalAmount
	date := o.CreatedAt
	return &StatusView{
		Found:      true,
		Reference:  o.Reference,
		Status:     o.Status,
		Buyer:      o.BuyerName,
		Total:      &total,
		Date:       &date,
		ItemsCount: o.ItemsCount,
	}, nil
}

func (s *service) ListStoreOrders(ctx context.Context, ownerID int64) ([]Order, error) {
	st, err := s.stores.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByStore(ctx, st.ID)
}

func (s *service) UpdateStatus(ctx context.Context, ownerID, orderID int64, status Status) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateStatus"),
		zap.Int64("order_id", orderID),
	)

	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	st, err := s.stores.GetByID(ctx, o.StoreID)
	if err != nil {
		return nil, err
	}
	if st.OwnerID != ownerID {
		log.Warn("status change on foreign order", zap.Int64("owner_id", ownerID))
		return nil, ErrForbidden
	}

	if !o.Status.CanTransition(status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, status)
	}

	if err := s.repo.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, err
	}

	log.Info("order status changed",
		zap.String("from", string(o.Status)),
		zap.String("to", string(status)),
	)
	o.Status = status
	return o, nil
}

// Summary aggregates the orders of the caller's store.
func (s *service) Summary(ctx context.Context, ownerID int64) (*metrics.StoreSummary, error) {
	st, err := s.stores.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	summary, err := s.sales.StoreSummary(ctx, st.ID)
	if err != nil {
		return nil, fmt.Errorf("store summary: %w", err)
	}
	return summary, nil
}
