package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/MKhiriev/go-fin-keeper/internal/adapter"
	"github.com/MKhiriev/go-fin-keeper/internal/client"
	"github.com/MKhiriev/go-fin-keeper/internal/config"
	"github.com/MKhiriev/go-fin-keeper/internal/logger"
	"github.com/MKhiriev/go-fin-keeper/internal/service"
	"github.com/MKhiriev/go-fin-keeper/internal/session"
	"github.com/MKhiriev/go-fin-keeper/internal/store"
	"github.com/MKhiriev/go-fin-keeper/internal/tui"
	"github.com/MKhiriev/go-fin-keeper/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Fprint(os.Stderr, buildInfo)

	cfg, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		logger.NewLogger("go-fin-client").Fatal().Err(err).Msg("error getting configs")
	}
	log := logger.NewClientLogger("go-fin-client", cfg.Storage.LogDir)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessionStorage, err := session.NewFileStorage(cfg.Storage.SessionDir, cfg.App.SessionID)
	if err != nil {
		log.Fatal().Err(err).Msg("create session storage")
	}
	keys := session.NewKeyStore(sessionStorage, log)
	sessions := session.NewAuthStore(sessionStorage)

	storages, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	services, err := service.NewClientServices(cfg, serverAdapter, storages, keys, sessions, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create client services")
	}
	services.AuthService.RestoreSession(ctx)

	var in io.Reader
	if term.IsTerminal(int(os.Stdin.Fd())) {
		in = os.Stdin
	}
	ui := tui.New(in, os.Stdout, log)
	app := client.NewApp(services, ui, client.NewTerminalPrompter(os.Stdin, os.Stderr), os.Stdout, buildInfo, log)

	runErr := app.Run(ctx, cfg.Args)
	if err = storages.Close(); err != nil {
		log.Err(err).Msg("close local storage")
	}
	if runErr != nil {
		log.Err(runErr).Msg("command failed")
		fmt.Fprintln(os.Stderr, tui.RenderError(runErr))
		stop()
		os.Exit(1)
	}
}
