package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

const SellerContextKey = "sellerID"

// SellerContext requires the authenticated seller identity forwarded by the
// gateway and stores it in the request context.
func SellerContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		sellerID := c.GetHeader("X-Seller-ID")
		if sellerID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set(SellerContextKey, sellerID)
		c.Next()
	}
}

func GetSellerID(c *gin.Context) (string, error) {
	if val, ok := c.Get(SellerContextKey); ok {
		if id, ok := val.(string); ok && id != "" {
			return id, nil
		}
	}
	return "", errors.New("seller ID not found in context")
}
