package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
)

var (
	corsAllowHeaders = strings.Join([]string{"Content-Type", "Authorization", HeaderRequestID}, ", ")
	corsAllowMethods = strings.Join([]string{
		http.MethodGet, http.MethodPost, http.MethodPut,
		http.MethodPatch, http.MethodDelete, http.MethodOptions,
	}, ", ")
)

// CORSMiddleware libera o painel e o app do motorista, que rodam em origens
// distintas. Com allowed vazio qualquer origem é refletida.
func CORSMiddleware(allowed []string) gin.HandlerFunc {
	originAllowed := func(origin string) bool {
		if origin == "" {
			return false
		}
		return len(allowed) == 0 || slices.Contains(allowed, origin)
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		if originAllowed(origin) {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Add("Vary", "Origin")
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
			h.Set("Access-Control-Allow-Methods", corsAllowMethods)
			h.Set("Access-Control-Expose-Headers", HeaderRequestID)
		}

		// preflight nunca chega às rotas
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
