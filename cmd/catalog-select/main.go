// Command catalog-select serves a paginated remote catalog with a
// selection that persists across pages.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/Sternrassler/catalog-select/pkg/client"
	"github.com/Sternrassler/catalog-select/pkg/logging"
	"github.com/Sternrassler/catalog-select/pkg/pagination"
	"github.com/Sternrassler/catalog-select/pkg/session"
)

// config is the server configuration, read from the environment.
type config struct {
	Port           string
	CatalogURL     string
	UserAgent      string
	PageSize       int
	RequestTimeout time.Duration
	LogLevel       logging.LogLevel
	LogPretty      bool
}

func loadConfig(getenv func(string) string) (config, error) {
	env := func(key, defaultValue string) string {
		if value := getenv(key); value != "" {
			return value
		}
		return defaultValue
	}

	pageSize, err := strconv.Atoi(env("PAGE_SIZE", strconv.Itoa(pagination.DefaultSize)))
	if err != nil {
		return config{}, fmt.Errorf("parse PAGE_SIZE: %w", err)
	}

	timeout, err := time.ParseDuration(env("REQUEST_TIMEOUT", "30s"))
	if err != nil {
		return config{}, fmt.Errorf("parse REQUEST_TIMEOUT: %w", err)
	}

	pretty, err := strconv.ParseBool(env("LOG_PRETTY", "false"))
	if err != nil {
		return config{}, fmt.Errorf("parse LOG_PRETTY: %w", err)
	}

	return config{
		Port:           env("PORT", "8080"),
		CatalogURL:     env("CATALOG_URL", client.DefaultBaseURL),
		UserAgent:      env("USER_AGENT", "catalog-select/0.1.0"),
		PageSize:       pageSize,
		RequestTimeout: timeout,
		LogLevel:       logging.LogLevel(env("LOG_LEVEL", string(logging.LevelInfo))),
		LogPretty:      pretty,
	}, nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "catalog-select: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig(os.Getenv)
	if err != nil {
		return err
	}

	logging.Setup(logging.Config{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Output:  os.Stderr,
		Service: "catalog-select",
	})
	logger := logging.NewLogger("server")

	clientCfg := client.DefaultConfig(cfg.UserAgent)
	clientCfg.BaseURL = cfg.CatalogURL
	clientCfg.Timeout = cfg.RequestTimeout

	catalogClient, err := client.New(clientCfg)
	if err != nil {
		return fmt.Errorf("create catalog client: %w", err)
	}
	defer catalogClient.Close()

	sessionCfg := session.DefaultConfig(catalogClient)
	sessionCfg.PageSize = cfg.PageSize

	sess, err := session.New(sessionCfg)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The first page is loaded eagerly; a failure here is not fatal.
	if err := sess.Navigate(ctx, 0); err != nil {
		logger.Warn().Err(err).Msg("Initial page load failed")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newServer(sess, cfg.RequestTimeout, logger).routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().
			Str("addr", srv.Addr).
			Str("catalog_url", cfg.CatalogURL).
			Str("user_agent", cfg.UserAgent).
			Int("page_size", cfg.PageSize).
			Msg("Starting catalog-select server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("Server failed")
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
