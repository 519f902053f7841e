package cli

import (
	"clementus360/edu-copilot/config"
	"clementus360/edu-copilot/handlers"
	"clementus360/edu-copilot/llm"
	"clementus360/edu-copilot/routes"
	"clementus360/edu-copilot/storage"
	"clementus360/edu-copilot/store"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd)
			if err != nil {
				return fatalError(cmd, err)
			}
			if port != "" {
				settings.Port = port
			}
			return serve(cmd.Context(), settings)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "Listen port (overrides PORT)")
	return cmd
}

func serve(parent context.Context, settings *config.Settings) error {
	if parent == nil {
		parent = context.Background()
	}

	backend, err := storage.Open(settings)
	if err != nil {
		config.Logger.Error("Failed to open session storage: ", err)
		return err
	}
	defer func() {
		if closeErr := backend.Close(); closeErr != nil {
			config.Logger.Error("Failed to close session storage: ", closeErr)
		}
	}()

	catalog := llm.DefaultCatalog()
	if settings.PromptsFile != "" {
		catalog, err = llm.LoadCatalog(settings.PromptsFile)
		if err != nil {
			config.Logger.Error("Failed to load prompts: ", err)
			return err
		}
	}

	completer, err := llm.NewCompleter(settings)
	if err != nil {
		return err
	}
	if config.APIKey() == "" {
		config.Logger.Warn("No API key configured; model-backed routes will fail until AI_API_KEY is set")
	}

	h := handlers.NewHandler(completer, catalog, store.NewManager(backend))

	srv := &http.Server{
		Addr:              ":" + settings.Port,
		Handler:           routes.NewRouter(h, settings.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		config.Logger.WithFields(logrus.Fields{
			"port":    settings.Port,
			"storage": settings.StorageDriver,
			"backend": settings.LLMBackend,
			"model":   settings.Model,
		}).Info("Server is running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			config.Logger.Error("Server failed: ", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	config.Logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		config.Logger.Error("Server forced to shutdown: ", err)
		return err
	}
	config.Logger.Info("Server stopped")
	return nil
}
