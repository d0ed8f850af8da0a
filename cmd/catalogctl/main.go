package main

import (
	"os"

	"github.com/yigit/edutech/internal/pkg/logger"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logger.Error().Err(err).Msg("catalogctl failed")
		os.Exit(1)
	}
}
