package router

import (
	"net/http"

	"behavior-go/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const CspNonceContextKey = "csp_nonce"

// NonceMiddleware creates a fresh nonce for every page so the inline chart
// and slider scripts can run under the Content-Security-Policy.
func NonceMiddleware(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		nonce, err := utils.GenerateSecureToken(16)
		if err != nil {
			log.Error("Failed to generate CSP nonce", zap.Error(err))
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.Set(CspNonceContextKey, nonce)
		c.Next()
	}
}

// ContentSecurityPolicy sets the CSP header on full page loads.
func ContentSecurityPolicy() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("HX-Request") != "true" {
			c.Header("Content-Security-Policy",
				"script-src 'self' https://cdn.jsdelivr.net 'nonce-"+c.GetString(CspNonceContextKey)+"'; "+
					"style-src 'self' 'unsafe-inline'; "+
					"img-src 'self' data:")
		}
		c.Next()
	}
}
