package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/HarryYanarico/my-proyect/internal/config"
	"github.com/HarryYanarico/my-proyect/internal/infra"
	"github.com/HarryYanarico/my-proyect/internal/repository"
	"github.com/HarryYanarico/my-proyect/internal/router"
	"github.com/HarryYanarico/my-proyect/internal/worker"

	"github.com/rs/zerolog/log"
)

// @title        Lotes API
// @version      1.0
// @description  Ventas de lotes al contado y a crédito, pagos de cuotas y tablero.
// @BasePath     /
// @securityDefinitions.apikey BearerAuth
// @in           header
// @name         Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if err := infra.SetupLogger(cfg.LogLevel, cfg.Env); err != nil {
		log.Fatal().Err(err).Msg("failed to configure logger")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	// Worker handlers are wired here (composition root) so that the pool
	// has access to every infrastructure dependency.
	ventaRepo := repository.NewVentaRepository(db)
	pagoRepo := repository.NewPagoRepository(db)
	dispatcher := worker.NewDispatcher(rdb)
	mailer := infra.NewMailer(cfg, infra.NewCircuitBreaker(infra.DefaultCBConfig("smtp")))

	documentos := worker.NewDocumentoWorker(ventaRepo, pagoRepo, dispatcher, cfg.PDFStoragePath, cfg.EmpresaNombre)
	emails := worker.NewEmailWorker(mailer)
	worker.StartWorkerPool(ctx, rdb, cfg.WorkerPoolSize, map[string]worker.Handler{
		worker.JobDocumentoVenta: documentos.ProcessDocumento,
		worker.JobReciboPago:     documentos.ProcessRecibo,
		worker.JobEmail:          emails.Process,
	})
	worker.StartRetryCron(ctx, worker.RetryCronConfig{
		Documentos:  ventaRepo,
		Despachador: dispatcher,
		RDB:         rdb,
	})

	r, err := router.New(cfg, db, rdb)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build router")
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("lotes API listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	if err := rdb.Close(); err != nil {
		log.Warn().Err(err).Msg("redis close")
	}
	log.Info().Msg("server exited")
}
