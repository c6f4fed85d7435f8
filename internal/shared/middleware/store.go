package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"contact-manager/internal/shared/response"
)

// StoreConnector is satisfied by *database.Connector
type StoreConnector interface {
	EnsureConnected(ctx context.Context) error
}

// EnsureStore connects the store before the request reaches a handler.
// Used when every request is an independent function invocation.
func EnsureStore(conn StoreConnector) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := conn.EnsureConnected(c.Request.Context()); err != nil {
			log.Error().
				Err(err).
				Str("request_id", c.GetString(RequestIDKey)).
				Msg("Store connection failed")
			response.Abort(c, http.StatusInternalServerError, response.MsgServerError)
			return
		}
		c.Next()
	}
}
