package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aifirst/llmdemos/config"
	"github.com/aifirst/llmdemos/pkg/app"
	"github.com/aifirst/llmdemos/pkg/server"
)

const shutdownTimeout = 10 * time.Second

// run is the entrypoint for the llmdemos server
func run() {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		log.Fatalf("Error configuring llmdemos: %s", err)
	}

	handleCLIOptions(cfg)

	log.Infof("Starting llmdemos server version %s", config.VersionString)

	config.SetLogLevel(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	appState := app.NewAppState(cfg)
	appState.Sessions.StartSweeper(ctx, cfg.Session.SweepInterval)

	if cfg.LLM.OpenAIAPIKey == "" {
		log.Info("No OpenAI API key in the environment; users must enter their own")
	}

	srv := server.Create(appState)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Errorf("Error shutting down server: %v", err)
		}
	}()

	log.Infof("Listening on: %s", srv.Addr)
	err = srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	log.Info("Server stopped")
}

// handleCLIOptions handles CLI options that don't require the server to run
func handleCLIOptions(cfg *config.Config) {
	if showVersion {
		fmt.Println(config.VersionString)
		os.Exit(0)
	}
	if dumpConfig {
		b, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			log.Fatalf("Error dumping config: %s", err)
		}
		fmt.Println(string(b))
		os.Exit(0)
	}
}
