package delivery

import (
	"errors"
	"net/http"

	"storefront/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CatalogHandler exposes the read-only product surface the storefront
// consumes. Catalog maintenance is not served here.
type CatalogHandler struct {
	useCase domain.CatalogUseCase
	log     *logrus.Logger
}

func NewCatalogHandler(uc domain.CatalogUseCase, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *CatalogHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/products", h.ListProducts)
	router.GET("/products/:slug", h.GetProduct)
}

func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products, err := h.useCase.ListProducts(c.Request.Context())
	if err != nil {
		h.log.Errorf("Failed to list products: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Error in getting products",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"countTotal": len(products),
		"message":    "All Products",
		"products":   products,
	})
}

func (h *CatalogHandler) GetProduct(c *gin.Context) {
	product, err := h.useCase.GetProduct(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Product not found",
			})
			return
		}
		h.log.Errorf("Failed to get product %q: %v", c.Param("slug"), err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Error while getting single product",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Single Product Fetched",
		"product": product,
	})
}
