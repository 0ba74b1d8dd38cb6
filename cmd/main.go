package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/desertthunder/plx/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("failed to load .env", "error", err)
	}

	runner := NewRunner(RunnerOpts{Logger: logger})
	if err := rootCommand(runner).Run(context.Background(), os.Args); err != nil {
		logger.Fatal("plx failed", "error", err)
	}
}
