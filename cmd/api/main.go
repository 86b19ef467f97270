package main

import (
	"os"

	"github.com/engimate/backend/internal/pkg/logger"
	"github.com/engimate/backend/internal/server"
)

// @title Engimate Preference API
// @version 1.0
// @description College preference list and admission prediction for Maharashtra engineering admissions
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	srv, err := server.NewServer()
	if err != nil {
		// setup errors are logged inside NewServer
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// blocks until shutdown signal
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
