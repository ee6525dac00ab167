package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/yigit/clubsphere/internal/pkg/logger"
	"github.com/yigit/clubsphere/internal/server"
)

// @title ClubSphere API
// @version 1.0
// @description API for the ClubSphere campus club and event platform
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@clubsphere.local

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Session token as "Bearer <token>"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.NewServer(ctx)
	if err != nil {
		// setup failures are logged in detail by the bootstrap functions
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		stop()
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
