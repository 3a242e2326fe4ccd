package main

import (
	"os"

	"github.com/orgball2608/affiliate-post-bot/pkg/logger"
)

func main() {
	log = logger.New(logger.Opts{Env: os.Getenv("APP_ENV")})

	if err := rootCmd.Execute(); err != nil {
		log.Error("Migration command failed", "error", err)
		os.Exit(1)
	}
}
