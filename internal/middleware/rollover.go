package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type RolloverEnsurer interface {
	EnsureToday(ctx context.Context) error
}

// RolloverGuard garante o fechamento do dia antes de atender o pedido.
// Falhas são registradas e o pedido segue.
func RolloverGuard(r RolloverEnsurer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := r.EnsureToday(c.Request.Context()); err != nil {
			log.Warn().
				Err(err).
				Str("request_id", c.GetString(ContextRequestID)).
				Msg("lazy rollover failed")
		}
		c.Next()
	}
}
