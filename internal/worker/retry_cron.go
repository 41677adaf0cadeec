package worker

// retry_cron.go
// Background goroutine that re-queues sale documents still pendiente after
// a grace period. Documents that exhaust MaxDocumentoRetries are marked
// error and copied to the DLQ.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/HarryYanarico/my-proyect/internal/model"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	MaxDocumentoRetries = 5

	retryTickInterval = 30 * time.Second
	retryGracePeriod  = 2 * time.Minute
	retryBatchSize    = 20
)

type documentoPendienteStore interface {
	ListDocumentosPendientes(ctx context.Context, creadosAntes time.Time, limit int) ([]model.DocumentoVenta, error)
	UpdateDocumento(ctx context.Context, d *model.DocumentoVenta) error
}

type documentoEnqueuer interface {
	EncolarDocumentoVenta(ctx context.Context, documentoID uuid.UUID) error
}

// RetryCronConfig holds all dependencies for the retry goroutine.
type RetryCronConfig struct {
	Documentos  documentoPendienteStore
	Despachador documentoEnqueuer
	RDB         *redis.Client
}

// StartRetryCron ticks every 30s until ctx is cancelled.
func StartRetryCron(ctx context.Context, cfg RetryCronConfig) {
	c := retryCron{cfg: cfg, dlq: redisDLQ(cfg.RDB), now: time.Now}
	go func() {
		ticker := time.NewTicker(retryTickInterval)
		defer ticker.Stop()

		log.Info().Msg("retry_cron: started")
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry_cron: shutting down")
				return
			case <-ticker.C:
				c.tick(ctx)
			}
		}
	}()
}

type retryCron struct {
	cfg RetryCronConfig
	dlq dlqFunc
	now func() time.Time
}

func (c retryCron) tick(ctx context.Context) {
	docs, err := c.cfg.Documentos.ListDocumentosPendientes(ctx, c.now().Add(-retryGracePeriod), retryBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("retry_cron: failed to query pending documents")
		return
	}
	if len(docs) == 0 {
		return
	}
	log.Info().Int("count", len(docs)).Msg("retry_cron: processing pending documents")

	for i := range docs {
		doc := &docs[i]
		if doc.RetryCount >= MaxDocumentoRetries {
			c.abandonar(ctx, doc)
			continue
		}

		doc.RetryCount++
		if err := c.cfg.Documentos.UpdateDocumento(ctx, doc); err != nil {
			log.Error().Err(err).Str("documento_id", doc.ID.String()).Msg("retry_cron: update failed")
			continue
		}
		if err := c.cfg.Despachador.EncolarDocumentoVenta(ctx, doc.ID); err != nil {
			log.Warn().Err(err).Str("documento_id", doc.ID.String()).Msg("retry_cron: enqueue failed")
			continue
		}
		log.Debug().
			Str("documento_id", doc.ID.String()).
			Int("retry_count", doc.RetryCount).
			Msg("retry_cron: documento re-encolado")
	}
}

func (c retryCron) abandonar(ctx context.Context, doc *model.DocumentoVenta) {
	doc.Estado = model.DocumentoError
	if err := c.cfg.Documentos.UpdateDocumento(ctx, doc); err != nil {
		log.Error().Err(err).Str("documento_id", doc.ID.String()).Msg("retry_cron: update failed")
		return
	}
	reason := fmt.Sprintf("max retries (%d) exceeded", MaxDocumentoRetries)
	if doc.LastError != nil {
		reason += ": " + *doc.LastError
	}
	payload, _ := json.Marshal(DocumentoJobPayload{DocumentoID: doc.ID.String()})
	c.dlq(ctx, QueueDocumentos, JobDocumentoVenta, payload, reason, doc.RetryCount)
	log.Error().
		Str("documento_id", doc.ID.String()).
		Int("retries", doc.RetryCount).
		Msg("retry_cron: max retries exceeded, documento en error")
}
