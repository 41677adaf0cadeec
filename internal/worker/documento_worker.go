package worker

// documento_worker.go
// Processes QueueDocumentos jobs: renders the cash-sale document or the
// installment receipt to PDF and, when the buyer has an email, queues it.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/HarryYanarico/my-proyect/internal/infra"
	"github.com/HarryYanarico/my-proyect/internal/model"
	"github.com/HarryYanarico/my-proyect/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// documentoStore is the slice of repository.VentaRepository the worker uses.
type documentoStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error)
	FindDocumento(ctx context.Context, id uuid.UUID) (*model.DocumentoVenta, error)
	FindContadoByDocumento(ctx context.Context, documentoID uuid.UUID) (*model.VentaContado, error)
	UpdateDocumento(ctx context.Context, d *model.DocumentoVenta) error
}

type reciboStore interface {
	FindRecibo(ctx context.Context, id uuid.UUID) (*repository.ReciboPago, error)
	UpdateDatos(ctx context.Context, p *model.PagoCuota) error
}

type emailEnqueuer interface {
	EnqueueEmail(ctx context.Context, payload EmailJobPayload) error
}

type DocumentoWorker struct {
	ventas      documentoStore
	pagos       reciboStore
	emails      emailEnqueuer
	storagePath string
	empresa     string
}

func NewDocumentoWorker(ventas documentoStore, pagos reciboStore, emails emailEnqueuer, storagePath, empresa string) *DocumentoWorker {
	return &DocumentoWorker{
		ventas:      ventas,
		pagos:       pagos,
		emails:      emails,
		storagePath: storagePath,
		empresa:     empresa,
	}
}

// ProcessDocumento handles a documento_venta job:
//  1. Load the document; anything but pendiente was already handled
//  2. Load the sale with buyer and parcel
//  3. Render the PDF and mark the document emitido
//  4. Queue the email when the buyer has an address
//
// Failures record last_error and leave the document pendiente for the retry cron.
func (w *DocumentoWorker) ProcessDocumento(ctx context.Context, raw json.RawMessage) error {
	var payload DocumentoJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("documento_worker: invalid payload: %w", err)
	}
	id, err := uuid.Parse(payload.DocumentoID)
	if err != nil {
		return fmt.Errorf("documento_worker: invalid documento_id %q", payload.DocumentoID)
	}

	doc, err := w.ventas.FindDocumento(ctx, id)
	if err != nil {
		return fmt.Errorf("documento_worker: documento %s: %w", id, err)
	}
	if doc.Estado != model.DocumentoPendiente {
		log.Debug().Str("documento_id", id.String()).Str("estado", doc.Estado).Msg("documento_worker: nothing to do")
		return nil
	}

	contado, err := w.ventas.FindContadoByDocumento(ctx, id)
	if err != nil {
		return w.fallo(ctx, doc, fmt.Errorf("venta al contado: %w", err))
	}
	venta, err := w.ventas.FindByID(ctx, contado.VentaID)
	if err != nil {
		return w.fallo(ctx, doc, fmt.Errorf("venta %s: %w", contado.VentaID, err))
	}

	ruta, err := infra.GenerateDocumentoVentaPDF(infra.DocumentoVentaPDF{
		Empresa:   w.empresa,
		Documento: doc,
		Venta:     venta,
	}, w.storagePath)
	if err != nil {
		return w.fallo(ctx, doc, err)
	}

	doc.ArchivoRuta = &ruta
	doc.Estado = model.DocumentoEmitido
	doc.LastError = nil
	if err := w.ventas.UpdateDocumento(ctx, doc); err != nil {
		return fmt.Errorf("documento_worker: update %s: %w", id, err)
	}
	log.Info().Str("documento_id", id.String()).Str("pdf", ruta).Msg("documento_worker: documento emitido")

	if venta.Cliente != nil {
		w.encolarEmail(ctx, venta.Cliente, EmailJobPayload{
			Subject: fmt.Sprintf("%s: %s", w.empresa, doc.TipoDocumento),
			Body:    fmt.Sprintf("Adjuntamos el documento de la compra del lote.\nTotal: Bs %s", contado.MontoTotal.StringFixed(2)),
			PDFPath: ruta,
		})
	}
	return nil
}

func (w *DocumentoWorker) fallo(ctx context.Context, doc *model.DocumentoVenta, cause error) error {
	msg := cause.Error()
	doc.LastError = &msg
	if err := w.ventas.UpdateDocumento(ctx, doc); err != nil {
		log.Error().Err(err).Str("documento_id", doc.ID.String()).Msg("documento_worker: could not record failure")
	}
	return fmt.Errorf("documento_worker: %s: %v: %w", doc.ID, cause, errReintentoProgramado)
}

// ProcessRecibo handles a recibo_pago job. A deleted payment is not an
// error: the receipt is simply no longer needed.
func (w *DocumentoWorker) ProcessRecibo(ctx context.Context, raw json.RawMessage) error {
	var payload ReciboJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("recibo_worker: invalid payload: %w", err)
	}
	id, err := uuid.Parse(payload.PagoID)
	if err != nil {
		return fmt.Errorf("recibo_worker: invalid pago_id %q", payload.PagoID)
	}

	rec, err := w.pagos.FindRecibo(ctx, id)
	if err != nil {
		log.Warn().Err(err).Str("pago_id", id.String()).Msg("recibo_worker: pago no disponible, recibo omitido")
		return nil
	}

	ruta, err := infra.GenerateReciboPagoPDF(infra.ReciboPagoPDF{
		Empresa: w.empresa,
		Pago:    &rec.Pago,
		Cuota:   &rec.Cuota,
		Cliente: rec.Venta.Cliente,
		Lote:    rec.Venta.Lote,
	}, w.storagePath)
	if err != nil {
		return fmt.Errorf("recibo_worker: %w", err)
	}
	log.Info().Str("pago_id", id.String()).Str("pdf", ruta).Msg("recibo_worker: recibo generado")

	// The generated receipt becomes the payment's comprobante unless the
	// cashier already recorded one.
	if rec.Pago.Comprobante == nil || *rec.Pago.Comprobante == "" {
		rec.Pago.Comprobante = &ruta
		if err := w.pagos.UpdateDatos(ctx, &rec.Pago); err != nil {
			log.Warn().Err(err).Str("pago_id", id.String()).Msg("recibo_worker: comprobante no registrado")
		}
	}

	if rec.Venta.Cliente != nil {
		w.encolarEmail(ctx, rec.Venta.Cliente, EmailJobPayload{
			Subject: fmt.Sprintf("%s: recibo de pago cuota N° %d", w.empresa, rec.Cuota.Numero),
			Body:    fmt.Sprintf("Recibimos su pago de Bs %s. Gracias.", rec.Pago.Monto.StringFixed(2)),
			PDFPath: ruta,
		})
	}
	return nil
}

func (w *DocumentoWorker) encolarEmail(ctx context.Context, c *model.Cliente, job EmailJobPayload) {
	if w.emails == nil || c.Email == nil || *c.Email == "" {
		return
	}
	job.ToEmail = *c.Email
	if err := w.emails.EnqueueEmail(ctx, job); err != nil {
		log.Warn().Err(err).Str("email", job.ToEmail).Msg("documento_worker: failed to enqueue email")
	}
}
