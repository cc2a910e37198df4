package delivery

import (
	"errors"
	"net/http"

	"storefront/internal/domain"
	"storefront/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type OrderHandler struct {
	useCase domain.OrderUseCase
	log     *logrus.Logger
}

func NewOrderHandler(uc domain.OrderUseCase, logger *logrus.Logger) *OrderHandler {
	return &OrderHandler{
		useCase: uc,
		log:     logger,
	}
}

// RegisterRoutes mounts the order/payment surface. signedIn must
// resolve the buyer's identity; admin additionally gates staff routes.
func (h *OrderHandler) RegisterRoutes(router gin.IRouter, signedIn, admin gin.HandlerFunc) {
	router.GET("/braintree/token", signedIn, h.BraintreeToken)
	router.POST("/braintree/payment", signedIn, h.BraintreePayment)
	router.GET("/orders", signedIn, h.GetOrders)
	router.GET("/all-orders", signedIn, admin, h.GetAllOrders)
	router.PUT("/order-status/:orderId", signedIn, admin, h.OrderStatus)
}

type paymentRequest struct {
	Nonce string            `json:"nonce"`
	Cart  []domain.CartItem `json:"cart"`
}

// BraintreePayment handles checkout: validate, authorize the cart total
// against the gateway, persist the order on success.
func (h *OrderHandler) BraintreePayment(c *gin.Context) {
	buyer, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User identification missing"})
		return
	}

	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf("Failed to bind payment request for buyer %s: %v", buyer.Hex(), err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment data"})
		return
	}

	err := h.useCase.Checkout(c.Request.Context(), buyer, req.Nonce, req.Cart)
	if err != nil {
		var declined *domain.GatewayDeclined
		var gatewayErr *domain.GatewayError
		switch {
		case errors.Is(err, domain.ErrInvalidPaymentData):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment data"})
		case errors.As(err, &declined):
			c.JSON(http.StatusInternalServerError, gin.H{"error": declined.Message})
		case errors.As(err, &gatewayErr):
			c.JSON(http.StatusInternalServerError, gin.H{"error": gatewayErr.Message})
		default:
			h.log.Errorf("Checkout failed for buyer %s: %v", buyer.Hex(), err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Save failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// BraintreeToken mints a client token for the browser drop-in form.
func (h *OrderHandler) BraintreeToken(c *gin.Context) {
	token, err := h.useCase.ClientToken(c.Request.Context())
	if err != nil {
		h.log.Errorf("Failed to generate client token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"clientToken": token})
}

func (h *OrderHandler) GetOrders(c *gin.Context) {
	buyer, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "User ID not found in request",
		})
		return
	}

	orders, err := h.useCase.OrdersForBuyer(c.Request.Context(), buyer)
	if err != nil {
		h.log.Errorf("Failed to get orders for buyer %s: %v", buyer.Hex(), err)
		ordersError(c, "Error While Getting Orders", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"orders":  orders,
	})
}

func (h *OrderHandler) GetAllOrders(c *gin.Context) {
	orders, err := h.useCase.AllOrders(c.Request.Context())
	if err != nil {
		h.log.Errorf("Failed to get all orders: %v", err)
		ordersError(c, "Error While Getting Orders", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"orders":  orders,
	})
}

type statusRequest struct {
	Status domain.OrderStatus `json:"status"`
}

// OrderStatus transitions an order to a new status. Each validation
// short-circuits before any storage access.
func (h *OrderHandler) OrderStatus(c *gin.Context) {
	orderID := c.Param("orderId")

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf("Failed to bind status request for order %s: %v", orderID, err)
		statusError(c, http.StatusBadRequest, "Status is required", "Status is required")
		return
	}

	order, err := h.useCase.TransitionStatus(c.Request.Context(), orderID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingOrderID):
			statusError(c, http.StatusBadRequest, "Order ID is required", "Order ID is required")
		case errors.Is(err, domain.ErrMissingStatus):
			statusError(c, http.StatusBadRequest, "Status is required", "Status is required")
		case errors.Is(err, domain.ErrInvalidStatus):
			statusError(c, http.StatusBadRequest, "Invalid status value", "Status must be one of: "+domain.StatusList())
		case errors.Is(err, domain.ErrOrderNotFound):
			statusError(c, http.StatusNotFound, "Order not found", "Order not found")
		default:
			h.log.Errorf("Failed to update status for order %s: %v", orderID, err)
			statusError(c, http.StatusInternalServerError, "Error While Updating Order", err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"order":   order,
	})
}
