package service

import (
	"context"

	"github.com/google/uuid"
)

// Despachador enqueues document jobs after a ledger transaction commits.
// Failures are logged by the caller and never undo the committed write.
type Despachador interface {
	EncolarDocumentoVenta(ctx context.Context, documentoID uuid.UUID) error
	EncolarReciboPago(ctx context.Context, pagoID uuid.UUID) error
}

// DashboardCache stores rendered dashboard responses. Get reports the cache
// generation it read; Set must be given that generation so a response
// computed before an Invalidar is never served after it. Invalidar is called
// after each committed sale or payment change.
type DashboardCache interface {
	Get(ctx context.Context, key string, dst interface{}) (gen int64, ok bool)
	Set(ctx context.Context, gen int64, key string, v interface{})
	Invalidar(ctx context.Context)
}
