package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/deliverylivre/storefront/config"
	"github.com/deliverylivre/storefront/fakebackend"
	"github.com/deliverylivre/storefront/logger"
)

func main() {
	cfg := config.Load()
	logger.Initialize(cfg.Env)
	defer logger.Log.Sync()

	backend := fakebackend.New(fakebackend.WithPixTTL(cfg.PixTTL))
	seed := backend.Seed()
	logger.Info("seeded demo data",
		zap.String("client", seed.Client.Email),
		zap.String("store", seed.Store.Email),
		zap.String("admin", seed.Admin.Email),
	)

	srv := &http.Server{
		Addr:    cfg.FakeBackendAddr,
		Handler: backend.Handler(),
	}

	go func() {
		logger.Info("fake backend listening", zap.String("addr", cfg.FakeBackendAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", err)
	}
}
