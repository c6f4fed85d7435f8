package main

import (
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"contact-manager/internal/config"
	"contact-manager/pkg/logger"
)

func main() {
	// ========================================
	// LOAD ENVIRONMENT VARIABLES
	// ========================================
	// .env is optional; production uses the process environment
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Init(cfg.App.Environment, cfg.Log.Level)
	if envErr != nil {
		log.Debug().Msg("No .env file found, using system environment variables")
	}

	// ========================================
	// SET GIN MODE
	// ========================================
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	log.Info().
		Str("environment", cfg.App.Environment).
		Str("deploy_mode", string(cfg.App.DeployMode)).
		Msg("Starting contact manager API")

	// ========================================
	// START SERVER
	// ========================================
	if err := Serve(cfg); err != nil {
		log.Fatal().Err(err).Msg("Server exited with error")
	}
}
