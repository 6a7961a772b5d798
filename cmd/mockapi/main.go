package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fundry/console/internal/logging"
	"github.com/fundry/console/internal/mockapi"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()

	log := logging.NewDefault()
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	secret := os.Getenv("FUNDRY_JWT_SECRET")
	if secret == "" {
		secret = "dev-only-secret"
		log.Warn(ctx, "FUNDRY_JWT_SECRET not set, using development secret")
	}

	srv := &http.Server{
		Addr:    *addr,
		Handler: mockapi.NewServer(mockapi.NewStore(), []byte(secret)).Router(),
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info(ctx, "mock platform listening", "addr", *addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error(ctx, "server stopped", "err", err)
		os.Exit(1)
	}
}
