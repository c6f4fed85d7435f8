// Package handler is the serverless entry point: the platform calls Handler
// once per request and may reuse the process between invocations.
package handler

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"contact-manager/internal/config"
	"contact-manager/internal/router"
	"contact-manager/internal/shared/response"
	"contact-manager/pkg/container"
	"contact-manager/pkg/logger"
)

var (
	initOnce sync.Once
	app      http.Handler
	initErr  error
)

func setup() {
	cfg, err := config.Load()
	if err != nil {
		initErr = err
		return
	}

	// Every request is routed as a function invocation
	cfg.App.DeployMode = config.DeployFunction

	logger.Init(cfg.App.Environment, cfg.Log.Level)
	gin.SetMode(gin.ReleaseMode)

	c, err := container.NewContainer(cfg)
	if err != nil {
		initErr = err
		return
	}

	app = router.Setup(c)
}

// Handler serves one request. The store connection is established by the
// first request that needs it and reused while the instance stays warm.
func Handler(w http.ResponseWriter, r *http.Request) {
	initOnce.Do(setup)

	if initErr != nil {
		log.Error().Err(initErr).Msg("Function initialization failed")
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"` + response.MsgServerError + `"}`))
		return
	}

	app.ServeHTTP(w, r)
}
