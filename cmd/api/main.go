package main

import (
	"flag"
	"os"

	"github.com/yigit/edutech/internal/bootstrap"
	"github.com/yigit/edutech/internal/pkg/logger"
	"github.com/yigit/edutech/internal/server"
)

// @title EduTech Course Marketplace API
// @version 1.0
// @description Course catalog, wallet and subscription API
// @BasePath /api/v1
// @schemes http https

func main() {
	configPath := flag.String("config", bootstrap.DefaultConfigPath, "path to the YAML configuration file")
	flag.Parse()

	srv, err := server.NewServer(*configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
