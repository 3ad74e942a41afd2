package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"libraria/internal/platform/config"
	"libraria/internal/platform/httpserver"
	"libraria/internal/platform/logger"
	"libraria/internal/platform/middleware"
	"libraria/internal/raceresults"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg := config.RacesFromEnv()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	r := chi.NewRouter()
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(log))
	raceresults.NewHandler(raceresults.Season(), log).Register(r)

	srv := httpserver.New(cfg.Addr, r)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("race results listening", "addr", cfg.Addr, "endpoints", []string{"/", "/country", "/name"})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("race results stopped with error", "error", err)
		os.Exit(1)
	}
}
