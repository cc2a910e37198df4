package usecase

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var _ domain.OrderUseCase = (*orderUseCase)(nil)

type orderUseCase struct {
	orders   domain.OrderRepository
	products domain.ProductRepository
	users    domain.UserRepository
	gateway  domain.PaymentGateway
	log      *logrus.Logger
}

func NewOrderUseCase(
	orders domain.OrderRepository,
	products domain.ProductRepository,
	users domain.UserRepository,
	gateway domain.PaymentGateway,
	logger *logrus.Logger,
) domain.OrderUseCase {
	return &orderUseCase{
		orders:   orders,
		products: products,
		users:    users,
		gateway:  gateway,
		log:      logger,
	}
}

// Checkout authorizes the cart total against the payment gateway and,
// only on success, persists the order. Exactly one sale call and at
// most one order write per invocation; nothing is retried. A failed
// order write after a successful charge is logged and surfaced, not
// compensated.
func (uc *orderUseCase) Checkout(ctx context.Context, buyer primitive.ObjectID, nonce string, cart []domain.CartItem) error {
	if nonce == "" || len(cart) == 0 {
		uc.log.Warnf("Use Case: Rejected checkout for buyer %s: missing nonce or empty cart", buyer.Hex())
		return domain.ErrInvalidPaymentData
	}

	total := decimal.Zero
	for _, item := range cart {
		total = total.Add(decimal.NewFromFloat(item.Price))
	}
	amount := total.StringFixed(2)
	uc.log.Infof("Use Case: Checkout for buyer %s, %d items, amount %s", buyer.Hex(), len(cart), amount)

	result, err := uc.gateway.Sale(ctx, domain.SaleRequest{Amount: amount, Nonce: nonce})
	if err != nil {
		uc.log.Errorf("Use Case: Gateway sale failed for buyer %s: %v", buyer.Hex(), err)
		return &domain.GatewayError{Message: err.Error()}
	}
	if !result.Success {
		uc.log.Warnf("Use Case: Gateway declined sale for buyer %s: %s", buyer.Hex(), result.Message)
		return &domain.GatewayDeclined{Message: result.Message}
	}

	products := make([]primitive.ObjectID, len(cart))
	for i, item := range cart {
		products[i] = item.ID
	}

	order := &domain.Order{
		Products: products,
		Buyer:    buyer,
		Payment:  *result,
		Status:   domain.StatusNotProcess,
	}
	if err := uc.orders.Create(ctx, order); err != nil {
		// Funds are captured at this point with no order record. There
		// is no compensating refund; the failure is surfaced for an
		// operator to reconcile.
		uc.log.Errorf("Use Case: Order write failed AFTER successful charge (buyer %s, transaction %v): %v",
			buyer.Hex(), transactionID(result), err)
		return fmt.Errorf("failed to save order after payment: %w", err)
	}

	uc.log.Infof("Use Case: Order %s created for buyer %s", order.ID.Hex(), buyer.Hex())
	return nil
}

func transactionID(result *domain.PaymentResult) string {
	if result.Transaction == nil {
		return ""
	}
	return result.Transaction.ID
}

func (uc *orderUseCase) ClientToken(ctx context.Context) (string, error) {
	return uc.gateway.GenerateClientToken(ctx)
}

func (uc *orderUseCase) OrdersForBuyer(ctx context.Context, buyer primitive.ObjectID) ([]domain.OrderView, error) {
	orders, err := uc.orders.ListByBuyer(ctx, buyer)
	if err != nil {
		uc.log.Errorf("Use Case: Failed to list orders for buyer %s: %v", buyer.Hex(), err)
		return nil, err
	}
	uc.log.Infof("Use Case: Retrieved %d orders for buyer %s", len(orders), buyer.Hex())
	return uc.project(ctx, orders)
}

func (uc *orderUseCase) AllOrders(ctx context.Context) ([]domain.OrderView, error) {
	orders, err := uc.orders.ListAll(ctx)
	if err != nil {
		uc.log.Errorf("Use Case: Failed to list all orders: %v", err)
		return nil, err
	}
	uc.log.Infof("Use Case: Retrieved %d orders", len(orders))
	return uc.project(ctx, orders)
}

// TransitionStatus validates its inputs before touching storage, then
// updates only the status field. The transition graph is open: any
// valid status may replace any other, including re-setting the current
// value.
func (uc *orderUseCase) TransitionStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.OrderView, error) {
	if orderID == "" {
		return nil, domain.ErrMissingOrderID
	}
	if status == "" {
		return nil, domain.ErrMissingStatus
	}
	if !domain.IsValidStatus(status) {
		uc.log.Warnf("Use Case: Rejected invalid status %q for order %s", status, orderID)
		return nil, fmt.Errorf("%w: status must be one of: %s", domain.ErrInvalidStatus, domain.StatusList())
	}

	id, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		uc.log.Warnf("Use Case: Malformed order id %q: %v", orderID, err)
		return nil, domain.ErrOrderNotFound
	}

	order, err := uc.orders.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	views, err := uc.project(ctx, []domain.Order{*order})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// project resolves each order's product and buyer references into their
// display form: products minus the photo payload, buyer as name only.
// References are fetched in one batch per collection; dangling product
// refs are dropped from the view, a missing buyer leaves the name empty.
func (uc *orderUseCase) project(ctx context.Context, orders []domain.Order) ([]domain.OrderView, error) {
	var productIDs []primitive.ObjectID
	seen := make(map[primitive.ObjectID]bool)
	for _, order := range orders {
		for _, pid := range order.Products {
			if !seen[pid] {
				seen[pid] = true
				productIDs = append(productIDs, pid)
			}
		}
	}

	products, err := uc.products.FindByIDs(ctx, productIDs)
	if err != nil {
		uc.log.Errorf("Use Case: Failed to resolve product references: %v", err)
		return nil, err
	}
	productByID := make(map[primitive.ObjectID]domain.Product, len(products))
	for _, p := range products {
		productByID[p.ID] = p
	}

	buyerByID := make(map[primitive.ObjectID]string)
	views := make([]domain.OrderView, 0, len(orders))
	for _, order := range orders {
		resolved := make([]domain.Product, 0, len(order.Products))
		for _, pid := range order.Products {
			if p, ok := productByID[pid]; ok {
				resolved = append(resolved, p)
			}
		}

		name, ok := buyerByID[order.Buyer]
		if !ok {
			user, err := uc.users.GetByID(ctx, order.Buyer)
			switch {
			case err == nil:
				name = user.Name
			case errors.Is(err, domain.ErrUserNotFound):
				name = ""
			default:
				uc.log.Errorf("Use Case: Failed to resolve buyer %s: %v", order.Buyer.Hex(), err)
				return nil, err
			}
			buyerByID[order.Buyer] = name
		}

		views = append(views, domain.OrderView{
			ID:        order.ID,
			Products:  resolved,
			Buyer:     domain.BuyerRef{Name: name},
			Payment:   order.Payment,
			Status:    order.Status,
			CreatedAt: order.CreatedAt,
		})
	}
	return views, nil
}
