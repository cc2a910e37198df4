package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ordersError is the all-or-nothing failure shape of the listing reads:
// a fixed per-operation message plus the underlying error for
// diagnostics. Partial results are never returned.
func ordersError(c *gin.Context, message string, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"message": message,
		"error":   err.Error(),
	})
}

func statusError(c *gin.Context, code int, message, detail string) {
	c.JSON(code, gin.H{
		"success": false,
		"message": message,
		"error":   detail,
	})
}
