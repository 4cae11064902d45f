package main

import (
	"log/slog"
	"os"

	"github.com/samber/do/v2"

	"github.com/nfrund/signupboard/internal/app"
	"github.com/nfrund/signupboard/internal/config"
	"github.com/nfrund/signupboard/internal/logging"
	"github.com/nfrund/signupboard/internal/registry"
	"github.com/nfrund/signupboard/internal/server"
)

func main() {
	cfg := config.New()
	logging.New(cfg.GetLogFormat(), cfg.GetLogLevel())

	container := app.NewContainer(cfg)

	s, err := server.New(server.Dependencies{
		Config:   cfg,
		Registry: do.MustInvoke[*registry.Registry](container),
		Modules:  app.NewModules(),
	})
	if err != nil {
		slog.Error("Failed to create server", "error", err)
		os.Exit(1)
	}

	if err := s.Start(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}
