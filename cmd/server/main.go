package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/xtding233/gacha-backend/internal/api/grpcapi"
	"github.com/xtding233/gacha-backend/internal/api/httpapi"
	"github.com/xtding233/gacha-backend/internal/app"
	"github.com/xtding233/gacha-backend/internal/config"
)

func main() {
	log.SetPrefix("[GACHA] ")
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a, err := app.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Printf("close store: %v", err)
		}
	}()
	a.Watch()
	log.Printf("game=%s version=%q store=%s", cfg.Game, a.Settings.Version, cfg.Store)

	grpcServer, err := grpcapi.Listen(cfg.GRPCAddr, a.Orchestrator)
	if err != nil {
		return err
	}
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewHandler(a.Orchestrator).Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return grpcServer.Serve(gctx)
	})
	g.Go(func() error {
		log.Printf("http server listening at %s", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
