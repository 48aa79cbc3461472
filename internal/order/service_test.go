package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"storevista-be/internal/metrics"
	"storevista-be/internal/product"
	"storevista-be/internal/store"
	"storevista-be/internal/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- In-memory transactional store ---

type memState struct {
	products map[int64]product.Product
	orders   []Order
	items    []OrderItem
}

func (s memState) clone() memState {
	c := memState{products: map[int64]product.Product{}}
	for k, v := range s.products {
		c.products[k] = v
	}
	c.orders = append(c.orders, s.orders...)
	c.items = append(c.items, s.items...)
	return c
}

type memTx struct {
	state    *memState
	taken    map[string]bool
	failItem bool
	closed   map[int64]bool
}

func (t *memTx) ReferenceExists(_ context.Context, ref string) (bool, error) {
	return t.taken[ref], nil
}

func (t *memTx) InsertOrder(_ context.Context, o *Order) error {
	o.ID = int64(len(t.state.orders) + 1)
	o.CreatedAt = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	t.state.orders = append(t.state.orders, *o)
	return nil
}

func (t *memTx) LockProduct(_ context.Context, id int64) (*product.Product, error) {
	p, ok := t.state.products[id]
	if !ok {
		return nil, product.ErrProductNotFound
	}
	return &p, nil
}

func (t *memTx) DecrementStock(_ context.Context, id int64, qty int) error {
	p := t.state.products[id]
	if p.Stock < qty {
		return ErrInsufficientStock
	}
	p.Stock -= qty
	t.state.products[id] = p
	return nil
}

func (t *memTx) InsertItem(_ context.Context, item *OrderItem) error {
	if t.failItem {
		return errors.New("disk full")
	}
	item.ID = int64(len(t.state.items) + 1)
	t.state.items = append(t.state.items, *item)
	return nil
}

func (t *memTx) UpdateTotal(_ context.Context, orderID int64, total decimal.Decimal) error {
	for i := range t.state.orders {
		if t.state.orders[i].ID == orderID {
			t.state.orders[i].TotalAmount = total
		}
	}
	return nil
}

// MockRepository commits the in-memory state only when the unit of work
// succeeds; the remaining methods are mocked.
type MockRepository struct {
	mock.Mock
	state    memState
	taken    map[string]bool
	failItem bool
	closed   map[int64]bool
}

func (m *MockRepository) RunInTx(ctx context.Context, fn func(tx TxRepository) error) error {
	staged := m.state.clone()
	if err := fn(&memTx{state: &staged, taken: m.taken, failItem: m.failItem}); err != nil {
		return err
	}
	m.state = staged
	return nil
}

func (m *MockRepository) ProductStores(ctx context.Context, ids []int64) (map[int64]int64, error) {
	out := map[int64]int64{}
	for _, id := range ids {
		if p, ok := m.state.products[id]; ok && !m.closed[p.StoreID] {
			out[id] = p.StoreID
		}
	}
	return out, nil
}

func (m *MockRepository) GetByReference(ctx context.Context, reference string) (*Order, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) ListByStore(ctx context.Context, storeID int64) ([]Order, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Order), args.Error(1)
}

func (m *MockRepository) UpdateStatus(ctx context.Context, id int64, status Status) error {
	return m.Called(ctx, id, status).Error(0)
}

type MockStoreRepository struct {
	mock.Mock
}

func (m *MockStoreRepository) Create(ctx context.Context, s *store.Store) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockStoreRepository) Update(ctx context.Context, s *store.Store) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockStoreRepository) GetByID(ctx context.Context, id int64) (*store.Store, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Store), args.Error(1)
}

func (m *MockStoreRepository) GetBySlug(ctx context.Context, slug string) (*store.Store, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Store), args.Error(1)
}

func (m *MockStoreRepository) GetBySlugAny(ctx context.Context, slug string) (*store.Store, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Store), args.Error(1)
}

func (m *MockStoreRepository) GetByOwner(ctx context.Context, ownerID int64) (*store.Store, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Store), args.Error(1)
}

func (m *MockStoreRepository) ListActive(ctx context.Context) ([]store.Store, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.Store), args.Error(1)
}

type MockSalesRepository struct {
	mock.Mock
}

func (m *MockSalesRepository) StoreSummary(ctx context.Context, storeID int64) (*metrics.StoreSummary, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*metrics.StoreSummary), args.Error(1)
}

// --- Fixtures ---

func newCatalog() *MockRepository {
	return &MockRepository{
		taken: map[string]bool{},
		state: memState{products: map[int64]product.Product{
			1: {ID: 1, StoreID: 10, Name: "Laptop", Price: decimal.RequireFromString("45000.00"), Stock: 3, IsAvailable: true},
			2: {ID: 2, StoreID: 10, Name: "Mouse", Price: decimal.RequireFromString("350.50"), Stock: 1, IsAvailable: true},
			3: {ID: 3, StoreID: 20, Name: "Scarf", Price: decimal.RequireFromString("900.00"), Stock: 5, IsAvailable: true},
			4: {ID: 4, StoreID: 10, Name: "Old Phone", Price: decimal.RequireFromString("100.00"), Stock: 5, IsAvailable: false},
			5: {ID: 5, StoreID: 30, Name: "Vase", Price: decimal.RequireFromString("250.00"), Stock: 2, IsAvailable: true},
		}},
		closed: map[int64]bool{30: true},
	}
}

func newTestService(repo *MockRepository, stores *MockStoreRepository) (*service, *metrics.OrderStats) {
	stats := metrics.NewOrderStats()
	svc := NewService(repo, stores, new(MockSalesRepository), stats).(*service)
	n := 0
	svc.newReference = func() string {
		n++
		return fmt.Sprintf("SV-TEST%02d", n)
	}
	svc.newToken = func() string { return "token-1" }
	return svc, stats
}

func snapshot(t *testing.T, stats *metrics.OrderStats) metrics.OrderSnapshot {
	t.Helper()
	snap, err := stats.Snapshot(context.Background())
	require.NoError(t, err)
	return snap
}

func assertValidation(t *testing.T, err error, msg string) {
	t.Helper()
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	if msg != "" {
		assert.Equal(t, msg, vErr.Message)
	}
}

// --- PlaceOrder ---

func TestPlaceOrder_Success(t *testing.T) {
	repo := newCatalog()
	svc, stats := newTestService(repo, new(MockStoreRepository))

	o, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		Items: []LineRequest{{ProductID: 1, Quantity: 2}, {ProductID: 2, Quantity: 1}},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(10), o.StoreID)
	assert.Equal(t, "SV-TEST01", o.Reference)
	assert.Equal(t, "token-1", o.TrackingToken)
	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, PaymentCOD, o.PaymentMethod)
	assert.Equal(t, GuestBuyerName, o.BuyerName)
	assert.Equal(t, UnknownPhone, o.BuyerPhone)
	require.Len(t, o.Items, 2)

	sum := decimal.Zero
	for _, it := range o.Items {
		sum = sum.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	assert.True(t, o.TotalAmount.Equal(sum))
	assert.Equal(t, "90350.50", o.TotalAmount.StringFixed(2))

	assert.Equal(t, 1, repo.state.products[1].Stock)
	assert.Equal(t, 0, repo.state.products[2].Stock)
	require.Len(t, repo.state.orders, 1)
	assert.True(t, repo.state.orders[0].TotalAmount.Equal(sum))
	assert.Equal(t, uint64(1), snapshot(t, stats).Placed)
	assert.Contains(t, o.PaymentInstructions, "Prepare 90350.50 ETB in cash for the courier")
}

func TestPlaceOrder_InsufficientStockRollsBack(t *testing.T) {
	repo := newCatalog()
	svc, stats := newTestService(repo, new(MockStoreRepository))

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		Items: []LineRequest{{ProductID: 1, Quantity: 1}, {ProductID: 2, Quantity: 2}},
	})

	assertValidation(t, err, "Not enough stock for Mouse. Only 1 left.")
	assert.Equal(t, 3, repo.state.products[1].Stock)
	assert.Equal(t, 1, repo.state.products[2].Stock)
	assert.Empty(t, repo.state.orders)
	assert.Empty(t, repo.state.items)
	assert.Equal(t, uint64(1), snapshot(t, stats).Rejected)
}

func TestPlaceOrder_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		input PlaceOrderInput
		msg   string
	}{
		{"No items", PlaceOrderInput{}, "order must contain at least one item"},
		{"Zero quantity", PlaceOrderInput{Items: []LineRequest{{ProductID: 1, Quantity: 0}}}, "quantity for product 1 must be at least 1"},
		{"Missing product", PlaceOrderInput{Items: []LineRequest{{ProductID: 99, Quantity: 1}}}, "product 99 not found"},
		{"Product of a closed store", PlaceOrderInput{Items: []LineRequest{{ProductID: 5, Quantity: 1}}}, "product 5 not found"},
		{"Cross store", PlaceOrderInput{Items: []LineRequest{{ProductID: 1, Quantity: 1}, {ProductID: 3, Quantity: 1}}}, "all items must be from the same store"},
		{"Unavailable product", PlaceOrderInput{Items: []LineRequest{{ProductID: 4, Quantity: 1}}}, "Old Phone is not available"},
		{"Unknown payment method", PlaceOrderInput{PaymentMethod: "paypal", Items: []LineRequest{{ProductID: 1, Quantity: 1}}}, `invalid payment method "paypal"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newCatalog()
			svc, _ := newTestService(repo, new(MockStoreRepository))

			_, err := svc.PlaceOrder(context.Background(), tt.input)

			assertValidation(t, err, tt.msg)
			assert.Empty(t, repo.state.orders)
			assert.Equal(t, 3, repo.state.products[1].Stock)
		})
	}
}

func TestPlaceOrder_BuyerDetails(t *testing.T) {
	lines := []LineRequest{{ProductID: 1, Quantity: 1}}

	t.Run("Authenticated buyer name is used", func(t *testing.T) {
		svc, _ := newTestService(newCatalog(), new(MockStoreRepository))
		ctx := utils.SetUserContext(context.Background(), 5, "abebe", "Abebe Kebede")

		o, err := svc.PlaceOrder(ctx, PlaceOrderInput{Items: lines})
		require.NoError(t, err)
		assert.Equal(t, "Abebe Kebede", o.BuyerName)
	})

	t.Run("Explicit name and phone win", func(t *testing.T) {
		svc, _ := newTestService(newCatalog(), new(MockStoreRepository))
		ctx := utils.SetUserContext(context.Background(), 5, "abebe", "")

		o, err := svc.PlaceOrder(ctx, PlaceOrderInput{
			BuyerName:  utils.StrPtr(" Sara "),
			BuyerPhone: utils.StrPtr("0911000000"),
			Items:      lines,
		})
		require.NoError(t, err)
		assert.Equal(t, "Sara", o.BuyerName)
		assert.Equal(t, "0911000000", o.BuyerPhone)
	})

	t.Run("Blank explicit name falls back to username", func(t *testing.T) {
		svc, _ := newTestService(newCatalog(), new(MockStoreRepository))
		ctx := utils.SetUserContext(context.Background(), 5, "abebe", "")

		o, err := svc.PlaceOrder(ctx, PlaceOrderInput{BuyerName: utils.StrPtr("  "), Items: lines})
		require.NoError(t, err)
		assert.Equal(t, "abebe", o.BuyerName)
	})
}

func TestPlaceOrder_PaymentMethods(t *testing.T) {
	lines := []LineRequest{{ProductID: 1, Quantity: 1}}
	shop := &store.Store{
		ID:              10,
		PaymentMethods:  []store.PaymentMethod{store.PaymentTelebirr},
		PaymentAccounts: map[string]string{"telebirr": "0911223344"},
	}

	t.Run("Accepted store method", func(t *testing.T) {
		stores := new(MockStoreRepository)
		stores.On("GetByID", mock.Anything, int64(10)).Return(shop, nil)
		svc, _ := newTestService(newCatalog(), stores)

		o, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{PaymentMethod: "Telebirr", Items: lines})
		require.NoError(t, err)
		assert.Equal(t, PaymentMethod("telebirr"), o.PaymentMethod)
		assert.Contains(t, o.PaymentInstructions, "Enter the merchant number 0911223344")
		assert.Contains(t, o.PaymentInstructions, "Send 45000.00 ETB and write SV-TEST01 in the remark")
	})

	t.Run("Method the store does not take", func(t *testing.T) {
		stores := new(MockStoreRepository)
		stores.On("GetByID", mock.Anything, int64(10)).Return(shop, nil)
		repo := newCatalog()
		svc, _ := newTestService(repo, stores)

		_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{PaymentMethod: "chapa", Items: lines})
		assertValidation(t, err, "store does not accept chapa payments")
		assert.Empty(t, repo.state.orders)
	})
}

func TestPlaceOrder_ReferenceRetries(t *testing.T) {
	repo := newCatalog()
	repo.taken["SV-TEST01"] = true
	repo.taken["SV-TEST02"] = true
	svc, _ := newTestService(repo, new(MockStoreRepository))

	o, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{Items: []LineRequest{{ProductID: 1, Quantity: 1}}})
	require.NoError(t, err)
	assert.Equal(t, "SV-TEST03", o.Reference)
}

func TestPlaceOrder_ReferenceExhausted(t *testing.T) {
	repo := newCatalog()
	svc, stats := newTestService(repo, new(MockStoreRepository))
	svc.newReference = func() string { return "SV-SAME00" }
	repo.taken["SV-SAME00"] = true

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{Items: []LineRequest{{ProductID: 1, Quantity: 1}}})
	assert.ErrorIs(t, err, ErrReferenceExhausted)
	assert.Equal(t, uint64(1), snapshot(t, stats).Failed)
}

func TestPlaceOrder_WriteFailureRollsBack(t *testing.T) {
	repo := newCatalog()
	repo.failItem = true
	svc, _ := newTestService(repo, new(MockStoreRepository))

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{Items: []LineRequest{{ProductID: 1, Quantity: 2}}})

	require.Error(t, err)
	assert.ErrorContains(t, err, "disk full")
	assert.Equal(t, 3, repo.state.products[1].Stock)
	assert.Empty(t, repo.state.orders)
}

// --- LookupStatus ---

func TestLookupStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Case insensitive match", func(t *testing.T) {
		repo := newCatalog()
		svc, stats := newTestService(repo, new(MockStoreRepository))
		created := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

		repo.On("GetByReference", ctx, "sv-a1b2").Return(&Order{
			Reference:   "SV-A1B2",
			Status:      StatusProcessing,
			BuyerName:   "Sara",
			TotalAmount: decimal.RequireFromString("120.00"),
			CreatedAt:   created,
			ItemsCount:  2,
		}, nil)

		view, err := svc.LookupStatus(ctx, "  sv-a1b2 ")
		require.NoError(t, err)
		assert.True(t, view.Found)
		assert.Equal(t, "SV-A1B2", view.Reference)
		assert.Equal(t, StatusProcessing, view.Status)
		assert.Equal(t, "Sara", view.Buyer)
		assert.Equal(t, "120", view.Total.String())
		assert.Equal(t, created, *view.Date)
		assert.Equal(t, 2, view.ItemsCount)
		assert.Equal(t, uint64(1), snapshot(t, stats).LookupHits)
	})

	t.Run("Unknown reference", func(t *testing.T) {
		repo := newCatalog()
		svc, stats := newTestService(repo, new(MockStoreRepository))
		repo.On("GetByReference", ctx, "SV-NOPE").Return(nil, ErrOrderNotFound)

		view, err := svc.LookupStatus(ctx, "SV-NOPE")
		require.NoError(t, err)
		assert.False(t, view.Found)
		assert.Equal(t, NotFoundMessage, view.Message)
		assert.Equal(t, uint64(1), snapshot(t, stats).LookupMisses)
	})

	t.Run("Blank reference", func(t *testing.T) {
		repo := newCatalog()
		svc, _ := newTestService(repo, new(MockStoreRepository))

		_, err := svc.LookupStatus(ctx, "   ")
		assert.ErrorIs(t, err, ErrEmptyReference)
		repo.AssertNotCalled(t, "GetByReference", mock.Anything, mock.Anything)
	})

	t.Run("Database error", func(t *testing.T) {
		repo := newCatalog()
		svc, _ := newTestService(repo, new(MockStoreRepository))
		repo.On("GetByReference", ctx, "SV-X").Return(nil, errors.New("conn reset"))

		_, err := svc.LookupStatus(ctx, "SV-X")
		assert.ErrorContains(t, err, "conn reset")
	})
}

// --- Seller operations ---

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	shop := &store.Store{ID: 10, OwnerID: 7}

	t.Run("Allowed transition", func(t *testing.T) {
		repo := newCatalog()
		stores := new(MockStoreRepository)
		svc, _ := newTestService(repo, stores)

		repo.On("GetByID", ctx, int64(1)).Return(&Order{ID: 1, StoreID: 10, Status: StatusPending}, nil)
		stores.On("GetByID", ctx, int64(10)).Return(shop, nil)
		repo.On("UpdateStatus", ctx, int64(1), StatusProcessing).Return(nil)

		o, err := svc.UpdateStatus(ctx, 7, 1, StatusProcessing)
		require.NoError(t, err)
		assert.Equal(t, StatusProcessing, o.Status)
	})

	t.Run("Skipping a step is rejected", func(t *testing.T) {
		repo := newCatalog()
		stores := new(MockStoreRepository)
		svc, _ := newTestService(repo, stores)

		repo.On("GetByID", ctx, int64(1)).Return(&Order{ID: 1, StoreID: 10, Status: StatusPending}, nil)
		stores.On("GetByID", ctx, int64(10)).Return(shop, nil)

		_, err := svc.UpdateStatus(ctx, 7, 1, StatusCompleted)
		assert.ErrorIs(t, err, ErrInvalidTransition)
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Foreign store", func(t *testing.T) {
		repo := newCatalog()
		stores := new(MockStoreRepository)
		svc, _ := newTestService(repo, stores)

		repo.On("GetByID", ctx, int64(1)).Return(&Order{ID: 1, StoreID: 10, Status: StatusPending}, nil)
		stores.On("GetByID", ctx, int64(10)).Return(shop, nil)

		_, err := svc.UpdateStatus(ctx, 8, 1, StatusCancelled)
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestListStoreOrders(t *testing.T) {
	ctx := context.Background()

	t.Run("Orders of the caller's store", func(t *testing.T) {
		repo := newCatalog()
		stores := new(MockStoreRepository)
		svc, _ := newTestService(repo, stores)

		stores.On("GetByOwner", ctx, int64(7)).Return(&store.Store{ID: 10, OwnerID: 7}, nil)
		repo.On("ListByStore", ctx, int64(10)).Return([]Order{{ID: 2}, {ID: 1}}, nil)

		orders, err := svc.ListStoreOrders(ctx, 7)
		require.NoError(t, err)
		assert.Len(t, orders, 2)
	})

	t.Run("No store", func(t *testing.T) {
		stores := new(MockStoreRepository)
		svc, _ := newTestService(newCatalog(), stores)
		stores.On("GetByOwner", ctx, int64(9)).Return(nil, store.ErrStoreNotFound)

		_, err := svc.ListStoreOrders(ctx, 9)
		assert.ErrorIs(t, err, store.ErrStoreNotFound)
	})
}

func TestSummary(t *testing.T) {
	ctx := context.Background()

	t.Run("Summary of the caller's store", func(t *testing.T) {
		stores := new(MockStoreRepository)
		svc, _ := newTestService(newCatalog(), stores)
		sales := svc.sales.(*MockSalesRepository)

		stores.On("GetByOwner", ctx, int64(7)).Return(&store.Store{ID: 10, OwnerID: 7}, nil)
		sales.On("StoreSummary", ctx, int64(10)).Return(&metrics.StoreSummary{StoreID: 10, TotalOrders: 3}, nil)

		summary, err := svc.Summary(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, 3, summary.TotalOrders)
	})

	t.Run("No store", func(t *testing.T) {
		stores := new(MockStoreRepository)
		svc, _ := newTestService(newCatalog(), stores)
		stores.On("GetByOwner", ctx, int64(9)).Return(nil, store.ErrStoreNotFound)

		_, err := svc.Summary(ctx, 9)
		assert.ErrorIs(t, err, store.ErrStoreNotFound)
	})

	t.Run("Query failure is wrapped", func(t *testing.T) {
		stores := new(MockStoreRepository)
		svc, _ := newTestService(newCatalog(), stores)
		sales := svc.sales.(*MockSalesRepository)

		stores.On("GetByOwner", ctx, int64(7)).Return(&store.Store{ID: 10, OwnerID: 7}, nil)
		sales.On("StoreSummary", ctx, int64(10)).Return(nil, errors.New("connection reset"))

		_, err := svc.Summary(ctx, 7)
		assert.ErrorContains(t, err, "store summary: connection reset")
	})
}

// --- Model ---

func TestStatus_CanTransition(t *testing.T) {
	allowed := map[Status][]Status{
		StatusPending:    {StatusProcessing, StatusCancelled},
		StatusProcessing: {StatusShipped, StatusCancelled},
		StatusShipped:    {StatusCompleted, StatusCancelled},
	}
	all := []Status{StatusPending, StatusProcessing, StatusShipped, StatusCompleted, StatusCancelled}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, a := range allowed[from] {
				if a == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransition(to), "%s -> %s", from, to)
		}
	}
}

func TestParseStatusAndPaymentMethod(t *testing.T) {
	st, err := ParseStatus(" Shipped ")
	require.NoError(t, err)
	assert.Equal(t, StatusShipped, st)

	_, err = ParseStatus("lost")
	assertValidation(t, err, `invalid status "lost"`)

	m, err := ParsePaymentMethod("")
	require.NoError(t, err)
	assert.Equal(t, PaymentCOD, m)

	m, err = ParsePaymentMethod("MPESA")
	require.NoError(t, err)
	assert.Equal(t, PaymentMethod("mpesa"), m)
}

func TestLineRequest_UnmarshalJSON(t *testing.T) {
	var input PlaceOrderInput
	err := json.Unmarshal([]byte(`{
		"items": [
			{"product_id": 1, "quantity": 2, "price": "0.01"},
			{"product": 3, "quantity": 1}
		],
		"total_amount": 1
	}`), &input)

	require.NoError(t, err)
	assert.Equal(t, []LineRequest{{ProductID: 1, Quantity: 2}, {ProductID: 3, Quantity: 1}}, input.Items)
}
