package main

import (
	"flag"
	"os"

	"github.com/atfs-dev/atfs/internal/config"
	"github.com/atfs-dev/atfs/internal/logger"
	"github.com/atfs-dev/atfs/internal/mailer"
)

// The worker reads one delivery job from stdin, performs the SMTP session and
// writes one reply to stdout. Stdout belongs to the reply protocol, so all
// logging goes to stderr.
func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	logger.InitializeWithWriter(os.Stderr, cfg.Public.LogLevel, cfg.Public.LogJSON)

	worker := mailer.NewWorker(&cfg.Private.Email)
	if err := worker.Run(os.Stdin, os.Stdout); err != nil {
		logger.Log.Error("worker failed to reply", "error", err)
		os.Exit(1)
	}
}
