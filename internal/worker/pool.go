package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueDocumentos = "jobs:documentos"
	QueueEmail      = "jobs:email"
)

const (
	JobDocumentoVenta = "documento_venta"
	JobReciboPago     = "recibo_pago"
	JobEmail          = "email"
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type DocumentoJobPayload struct {
	DocumentoID string `json:"documento_id"`
}

type ReciboJobPayload struct {
	PagoID string `json:"pago_id"`
}

// Dispatcher enqueues async jobs into Redis lists; the pool dequeues them
// via BRPOP. It is the ledger's post-commit side-effect sink.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

func (d *Dispatcher) EncolarDocumentoVenta(ctx context.Context, documentoID uuid.UUID) error {
	return d.enqueue(ctx, QueueDocumentos, JobDocumentoVenta, DocumentoJobPayload{DocumentoID: documentoID.String()})
}

func (d *Dispatcher) EncolarReciboPago(ctx context.Context, pagoID uuid.UUID) error {
	return d.enqueue(ctx, QueueDocumentos, JobReciboPago, ReciboJobPayload{PagoID: pagoID.String()})
}

func (d *Dispatcher) EnqueueEmail(ctx context.Context, payload EmailJobPayload) error {
	return d.enqueue(ctx, QueueEmail, JobEmail, payload)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	encoded, err := json.Marshal(Job{Type: jobType, Payload: data})
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// Handler processes one job payload.
type Handler func(ctx context.Context, payload json.RawMessage) error

// errReintentoProgramado marks failures whose retry is driven by persisted
// state (the retry cron) rather than the dead letter queue.
var errReintentoProgramado = errors.New("reintento programado")

type pool struct {
	handlers map[string]Handler
	dlq      dlqFunc
}

// StartWorkerPool launches numWorkers goroutines consuming both queues.
// Each goroutine blocks on BRPOP, so idle workers cost no CPU.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, numWorkers int, handlers map[string]Handler) {
	p := &pool{handlers: handlers, dlq: redisDLQ(rdb)}
	for i := 0; i < numWorkers; i++ {
		go p.run(ctx, rdb, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func (p *pool) run(ctx context.Context, rdb *redis.Client, id int) {
	queues := []string{QueueDocumentos, QueueEmail}
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop: waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, queues...).Result()
			if err != nil || len(result) < 2 {
				continue
			}
			p.process(ctx, result[0], result[1])
		}
	}
}

func (p *pool) process(ctx context.Context, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		p.dlq(ctx, queue, "desconocido", json.RawMessage(raw), "payload ilegible: "+err.Error(), 0)
		return
	}
	h, ok := p.handlers[job.Type]
	if !ok {
		log.Error().Str("type", job.Type).Str("queue", queue).Msg("no handler for job type")
		p.dlq(ctx, queue, job.Type, job.Payload, "tipo de job sin handler", 0)
		return
	}

	err := h(ctx, job.Payload)
	switch {
	case err == nil:
		log.Debug().Str("type", job.Type).Str("queue", queue).Msg("job processed")
	case errors.Is(err, errReintentoProgramado):
		log.Warn().Err(err).Str("type", job.Type).Msg("job failed, retry cron will pick it up")
	default:
		p.dlq(ctx, queue, job.Type, job.Payload, err.Error(), 1)
	}
}
