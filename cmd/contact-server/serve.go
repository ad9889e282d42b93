package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"contact-form/internal/config"
	"contact-form/internal/contact"
	"contact-form/internal/logging"
	"contact-form/internal/middleware"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
}

// runServe здесь только:
// - создание зависимостей;
// - настройка middleware;
// - запуск и остановка HTTP-сервера.
func runServe(ctx context.Context, opts *rootOptions) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.Logging, opts.verbose)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	store := contact.NewSessionStore(cfg.SessionTTL(), cfg.Session.MaxSessions, log)
	svc := contact.NewService(store, log)
	handler := contact.NewHandler(svc, contact.HandlerConfig{
		CookieName:     cfg.Session.CookieName,
		RequestTimeout: cfg.RequestTimeout(),
		AdminUser:      cfg.Admin.Username,
		AdminPassword:  cfg.Admin.Password,
	}, log)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           chiWithMiddleware(handler.Router(), log),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout(),
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", cfg.Server.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server start: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down", zap.Int("sessions", store.Len()))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

// chiWithMiddleware навешивает общесервисные middleware на уже собранный роутер,
// не меняя роуты модуля.
func chiWithMiddleware(h http.Handler, log *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	// логирование снаружи Recoverer, чтобы запрос с паникой тоже попал в лог с кодом 500
	r.Use(middleware.LoggingMiddleware(log))
	r.Use(chiMiddleware.Recoverer)

	r.Mount("/", h)
	return r
}
