package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// CORS allows credentialed requests from origins only. Requests carrying any
// other Origin are rejected with 403.
func CORS(origins []string) gin.HandlerFunc {
	allowed := make([]string, 0, len(origins))
	for _, o := range origins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "" {
			continue
		}
		if !strings.HasPrefix(o, "http://") && !strings.HasPrefix(o, "https://") {
			log.Warn().Str("origin", o).Msg("Ignoring CORS origin without http(s) scheme")
			continue
		}
		allowed = append(allowed, o)
	}

	config := cors.Config{
		AllowMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", RequestIDHeader},
		ExposeHeaders:    []string{RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if len(allowed) == 0 {
		// cors.New refuses an empty allow-list
		config.AllowOriginFunc = func(string) bool { return false }
	} else {
		config.AllowOrigins = allowed
	}

	return cors.New(config)
}
