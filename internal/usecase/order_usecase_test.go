package usecase

import (
	"context"
	"errors"
	"io"
	"sort"
	"testing"
	"time"

	"storefront/internal/domain"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type fakeGateway struct {
	saleCalls []domain.SaleRequest
	result    *domain.PaymentResult
	err       error
	token     string
	tokenErr  error
}

func (f *fakeGateway) Sale(_ context.Context, req domain.SaleRequest) (*domain.PaymentResult, error) {
	f.saleCalls = append(f.saleCalls, req)
	return f.result, f.err
}

func (f *fakeGateway) GenerateClientToken(_ context.Context) (string, error) {
	return f.token, f.tokenErr
}

type fakeOrderRepo struct {
	orders      []domain.Order
	createErr   error
	listErr     error
	updateErr   error
	updateCalls int
}

func (f *fakeOrderRepo) Create(_ context.Context, order *domain.Order) error {
	if f.createErr != nil {
		return f.createErr
	}
	order.ID = primitive.NewObjectID()
	order.CreatedAt = time.Now().UTC()
	f.orders = append(f.orders, *order)
	return nil
}

func (f *fakeOrderRepo) ListByBuyer(_ context.Context, buyer primitive.ObjectID) ([]domain.Order, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []domain.Order
	for _, o := range f.orders {
		if o.Buyer == buyer {
			out = append(out, o)
		}
	}
	return newestFirst(out), nil
}

func (f *fakeOrderRepo) ListAll(_ context.Context) ([]domain.Order, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return newestFirst(append([]domain.Order(nil), f.orders...)), nil
}

// newestFirst mirrors the store's listing contract: createdAt
// descending, ties broken arbitrarily.
func newestFirst(orders []domain.Order) []domain.Order {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, id primitive.ObjectID, status domain.OrderStatus) (*domain.Order, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	for i := range f.orders {
		if f.orders[i].ID == id {
			f.updateCalls++
			f.orders[i].Status = status
			updated := f.orders[i]
			return &updated, nil
		}
	}
	return nil, domain.ErrOrderNotFound
}

type fakeProductRepo struct {
	products map[primitive.ObjectID]domain.Product
}

func (f *fakeProductRepo) List(_ context.Context, _ int64) ([]domain.Product, error) {
	out := []domain.Product{}
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProductRepo) GetBySlug(_ context.Context, slug string) (*domain.Product, error) {
	for _, p := range f.products {
		if p.Slug == slug {
			return &p, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (f *fakeProductRepo) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]domain.Product, error) {
	out := []domain.Product{}
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	users map[primitive.ObjectID]domain.User
}

func (f *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	if u, ok := f.users[id]; ok {
		return &u, nil
	}
	return nil, domain.ErrUserNotFound
}

type fixture struct {
	orders   *fakeOrderRepo
	products *fakeProductRepo
	users    *fakeUserRepo
	gateway  *fakeGateway
	uc       domain.OrderUseCase
}

func setup(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		orders:   &fakeOrderRepo{},
		products: &fakeProductRepo{products: map[primitive.ObjectID]domain.Product{}},
		users:    &fakeUserRepo{users: map[primitive.ObjectID]domain.User{}},
		gateway:  &fakeGateway{result: &domain.PaymentResult{Success: true, Transaction: &domain.TransactionRef{ID: "txn1", Status: "submitted_for_settlement", Amount: "36.25"}}},
	}
	f.uc = NewOrderUseCase(f.orders, f.products, f.users, f.gateway, testLogger())
	return f
}

func cartOf(prices ...float64) []domain.CartItem {
	cart := make([]domain.CartItem, len(prices))
	for i, p := range prices {
		cart[i] = domain.CartItem{ID: primitive.NewObjectID(), Price: p}
	}
	return cart
}

func TestCheckoutAmountFormatting(t *testing.T) {
	tests := []struct {
		name   string
		prices []float64
		want   string
	}{
		{"mixed fractions", []float64{10, 20.5, 5.75}, "36.25"},
		{"integers only", []float64{10, 20}, "30.00"},
		{"single item", []float64{0.1}, "0.10"},
		{"float artifacts", []float64{0.1, 0.2}, "0.30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)
			err := f.uc.Checkout(context.Background(), primitive.NewObjectID(), "nonce", cartOf(tt.prices...))
			require.NoError(t, err)
			require.Len(t, f.gateway.saleCalls, 1)
			assert.Equal(t, tt.want, f.gateway.saleCalls[0].Amount)
		})
	}
}

func TestCheckoutRejectsInvalidPaymentData(t *testing.T) {
	f := setup(t)
	buyer := primitive.NewObjectID()

	err := f.uc.Checkout(context.Background(), buyer, "", cartOf(10))
	assert.ErrorIs(t, err, domain.ErrInvalidPaymentData)

	err = f.uc.Checkout(context.Background(), buyer, "nonce", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidPaymentData)

	err = f.uc.Checkout(context.Background(), buyer, "nonce", []domain.CartItem{})
	assert.ErrorIs(t, err, domain.ErrInvalidPaymentData)

	assert.Empty(t, f.gateway.saleCalls, "gateway must never be called for invalid input")
	assert.Empty(t, f.orders.orders)
}

func TestCheckoutDeclineCreatesNoOrder(t *testing.T) {
	f := setup(t)
	f.gateway.result = &domain.PaymentResult{Success: false, Message: "Result is false"}

	err := f.uc.Checkout(context.Background(), primitive.NewObjectID(), "nonce", cartOf(10, 20))

	var declined *domain.GatewayDeclined
	require.ErrorAs(t, err, &declined)
	assert.Equal(t, "Result is false", declined.Message)
	assert.Empty(t, f.orders.orders, "no order may exist without a successful payment")
}

func TestCheckoutGatewayErrorCreatesNoOrder(t *testing.T) {
	f := setup(t)
	f.gateway.result = nil
	f.gateway.err = errors.New("connection reset")

	err := f.uc.Checkout(context.Background(), primitive.NewObjectID(), "nonce", cartOf(10))

	var gatewayErr *domain.GatewayError
	require.ErrorAs(t, err, &gatewayErr)
	assert.Equal(t, "connection reset", gatewayErr.Message, "the transport error's own wording must pass through unwrapped")
	assert.Empty(t, f.orders.orders)
}

func TestCheckoutPersistsOrderFaithfully(t *testing.T) {
	f := setup(t)
	buyer := primitive.NewObjectID()
	cart := cartOf(10, 20.5, 5.75)

	err := f.uc.Checkout(context.Background(), buyer, "nonce", cart)
	require.NoError(t, err)

	require.Len(t, f.orders.orders, 1)
	order := f.orders.orders[0]
	assert.Equal(t, buyer, order.Buyer)
	require.Len(t, order.Products, len(cart))
	for i, item := range cart {
		assert.Equal(t, item.ID, order.Products[i], "cart order must be preserved")
	}
	assert.Equal(t, domain.StatusNotProcess, order.Status)
	assert.True(t, order.Payment.Success)
	assert.Equal(t, "txn1", order.Payment.Transaction.ID)
}

func TestCheckoutPersistFailureAfterCharge(t *testing.T) {
	f := setup(t)
	f.orders.createErr = errors.New("write concern failed")

	err := f.uc.Checkout(context.Background(), primitive.NewObjectID(), "nonce", cartOf(10))

	require.Error(t, err)
	assert.Len(t, f.gateway.saleCalls, 1, "the charge happened exactly once and is not retried")
}

func TestTransitionStatusEnumClosure(t *testing.T) {
	invalid := []string{
		"deliverd", "cancel",
		"delivered", "DELIVERED",
		"cancelled", "CANCELLED",
		"not process", "PROCESSING",
		"shipped",
		"unknown", " ",
	}

	f := setup(t)
	orderID := primitive.NewObjectID()
	f.orders.orders = []domain.Order{{ID: orderID, Buyer: primitive.NewObjectID(), Status: domain.StatusNotProcess}}

	for _, s := range invalid {
		_, err := f.uc.TransitionStatus(context.Background(), orderID.Hex(), domain.OrderStatus(s))
		assert.ErrorIs(t, err, domain.ErrInvalidStatus, "status %q must be rejected", s)
	}
	assert.Zero(t, f.orders.updateCalls, "no write may happen for an invalid status")

	for _, s := range domain.ValidStatuses {
		view, err := f.uc.TransitionStatus(context.Background(), orderID.Hex(), s)
		require.NoError(t, err, "status %q must be accepted", s)
		assert.Equal(t, s, view.Status)
	}
}

func TestTransitionStatusMissingInputs(t *testing.T) {
	f := setup(t)

	_, err := f.uc.TransitionStatus(context.Background(), "", domain.StatusShipped)
	assert.ErrorIs(t, err, domain.ErrMissingOrderID)

	_, err = f.uc.TransitionStatus(context.Background(), primitive.NewObjectID().Hex(), "")
	assert.ErrorIs(t, err, domain.ErrMissingStatus)

	assert.Zero(t, f.orders.updateCalls)
}

func TestTransitionStatusNotFound(t *testing.T) {
	f := setup(t)

	_, err := f.uc.TransitionStatus(context.Background(), primitive.NewObjectID().Hex(), domain.StatusShipped)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)

	// A malformed id cannot match any document either.
	_, err = f.uc.TransitionStatus(context.Background(), "not-a-hex-id", domain.StatusShipped)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestTransitionStatusIdempotentReset(t *testing.T) {
	f := setup(t)
	buyer := primitive.NewObjectID()
	f.users.users[buyer] = domain.User{ID: buyer, Name: "Alice"}
	orderID := primitive.NewObjectID()
	payment := domain.PaymentResult{Success: true, Transaction: &domain.TransactionRef{ID: "txn9"}}
	f.orders.orders = []domain.Order{{ID: orderID, Buyer: buyer, Status: domain.StatusProcessing, Payment: payment}}

	view, err := f.uc.TransitionStatus(context.Background(), orderID.Hex(), domain.StatusProcessing)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusProcessing, view.Status)
	assert.Equal(t, "Alice", view.Buyer.Name)
	assert.Equal(t, payment, view.Payment, "re-setting the status must not touch other fields")
	assert.Equal(t, 1, f.orders.updateCalls, "a no-op transition still issues a write")
}

func TestOrdersForBuyerIsolation(t *testing.T) {
	f := setup(t)
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()
	f.users.users[alice] = domain.User{ID: alice, Name: "Alice"}
	f.users.users[bob] = domain.User{ID: bob, Name: "Bob"}
	f.orders.orders = []domain.Order{
		{ID: primitive.NewObjectID(), Buyer: alice, Status: domain.StatusNotProcess},
		{ID: primitive.NewObjectID(), Buyer: bob, Status: domain.StatusShipped},
		{ID: primitive.NewObjectID(), Buyer: alice, Status: domain.StatusDelivered},
	}

	views, err := f.uc.OrdersForBuyer(context.Background(), alice)
	require.NoError(t, err)

	require.Len(t, views, 2)
	for _, v := range views {
		assert.Equal(t, "Alice", v.Buyer.Name)
	}

	all, err := f.uc.AllOrders(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestOrdersListedNewestFirst(t *testing.T) {
	f := setup(t)
	buyer := primitive.NewObjectID()
	f.users.users[buyer] = domain.User{ID: buyer, Name: "Alice"}

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	oldest := domain.Order{ID: primitive.NewObjectID(), Buyer: buyer, Status: domain.StatusDelivered, CreatedAt: base}
	middle := domain.Order{ID: primitive.NewObjectID(), Buyer: buyer, Status: domain.StatusShipped, CreatedAt: base.Add(time.Hour)}
	newest := domain.Order{ID: primitive.NewObjectID(), Buyer: buyer, Status: domain.StatusNotProcess, CreatedAt: base.Add(2 * time.Hour)}
	// Inserted out of order; listings must come back newest first.
	f.orders.orders = []domain.Order{middle, newest, oldest}

	views, err := f.uc.OrdersForBuyer(context.Background(), buyer)
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.Equal(t, []primitive.ObjectID{newest.ID, middle.ID, oldest.ID},
		[]primitive.ObjectID{views[0].ID, views[1].ID, views[2].ID})

	all, err := f.uc.AllOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, newest.ID, all[0].ID)
	assert.Equal(t, oldest.ID, all[2].ID)
}

func TestProjectionResolvesReferences(t *testing.T) {
	f := setup(t)
	buyer := primitive.NewObjectID()
	f.users.users[buyer] = domain.User{ID: buyer, Name: "Alice"}

	p1 := domain.Product{ID: primitive.NewObjectID(), Name: "Widget", Slug: "widget", Price: 10}
	p2 := domain.Product{ID: primitive.NewObjectID(), Name: "Gadget", Slug: "gadget", Price: 20.5}
	f.products.products[p1.ID] = p1
	f.products.products[p2.ID] = p2
	dangling := primitive.NewObjectID()

	f.orders.orders = []domain.Order{{
		ID:       primitive.NewObjectID(),
		Buyer:    buyer,
		Products: []primitive.ObjectID{p1.ID, p2.ID, dangling, p1.ID},
		Status:   domain.StatusNotProcess,
	}}

	views, err := f.uc.OrdersForBuyer(context.Background(), buyer)
	require.NoError(t, err)
	require.Len(t, views, 1)

	got := views[0].Products
	require.Len(t, got, 3, "dangling references are dropped, duplicates kept")
	assert.Equal(t, []string{"Widget", "Gadget", "Widget"}, []string{got[0].Name, got[1].Name, got[2].Name})
}

func TestOrdersListingFailureIsAllOrNothing(t *testing.T) {
	f := setup(t)
	f.orders.listErr = errors.New("cursor timeout")

	views, err := f.uc.OrdersForBuyer(context.Background(), primitive.NewObjectID())
	require.Error(t, err)
	assert.Nil(t, views)
}

func TestClientToken(t *testing.T) {
	f := setup(t)
	f.gateway.token = "client-token-abc"

	token, err := f.uc.ClientToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "client-token-abc", token)
}
