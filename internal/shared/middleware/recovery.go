package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"contact-manager/internal/shared/response"
)

// Recovery turns a panic into 500 "Server error". The panic value is logged only.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Str("request_id", c.GetString(RequestIDKey)).
					Str("method", c.Request.Method).
					Str("path", c.Request.URL.Path).
					Interface("error", err).
					Msg("Panic recovered")

				if c.Writer.Written() {
					c.Abort()
					return
				}
				response.Abort(c, http.StatusInternalServerError, response.MsgServerError)
			}
		}()

		c.Next()
	}
}

// ErrorHandler answers 500 "Server error" for errors handlers pushed with
// c.Error without writing a response.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		for _, e := range c.Errors {
			log.Error().
				Err(e.Err).
				Str("request_id", c.GetString(RequestIDKey)).
				Str("path", c.Request.URL.Path).
				Msg("Unhandled request error")
		}

		if !c.Writer.Written() {
			response.InternalServerError(c, response.MsgServerError)
		}
	}
}
