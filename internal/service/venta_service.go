package service

import (
	"context"
	"errors"
	"strings"

	"github.com/HarryYanarico/my-proyect/internal/apperror"
	"github.com/HarryYanarico/my-proyect/internal/dto"
	"github.com/HarryYanarico/my-proyect/internal/model"
	"github.com/HarryYanarico/my-proyect/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VentaService interface {
	CrearVenta(ctx context.Context, req dto.CrearVentaRequest) (*dto.VentaResponse, error)
	ObtenerVenta(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error)
}

type ventaService struct {
	tx          repository.TxRunner
	ventas      repository.VentaRepository
	lotes       repository.LoteRepository
	clientes    repository.ClienteRepository
	empleados   repository.EmpleadoRepository
	planes      *PlanBuilder
	despachador Despachador
	cache       DashboardCache
	reloj       Reloj
}

func NewVentaService(
	tx repository.TxRunner,
	ventas repository.VentaRepository,
	lotes repository.LoteRepository,
	clientes repository.ClienteRepository,
	empleados repository.EmpleadoRepository,
	planes *PlanBuilder,
	despachador Despachador,
	cache DashboardCache,
	reloj Reloj,
) VentaService {
	return &ventaService{
		tx:          tx,
		ventas:      ventas,
		lotes:       lotes,
		clientes:    clientes,
		empleados:   empleados,
		planes:      planes,
		despachador: despachador,
		cache:       cache,
		reloj:       reloj,
	}
}

// ventaInput is a CrearVentaRequest after parsing and validation.
type ventaInput struct {
	venta   model.Venta
	contado *model.VentaContado
	doc     *model.DocumentoVenta
	credito *model.VentaCredito
	plan    PlanSpec
}

// ── CrearVenta ────────────────────────────────────────────────────────────────
//   1. Validate the request (no writes)
//   2. Check empleado, cliente and lote exist; lote must be disponible
//   3. BEGIN TX: lock lote, insert venta + detail (+ plan and cuotas), flip lote to vendido
//   4. COMMIT
//   5. (async) document PDF job, dashboard cache invalidation

func (s *ventaService) CrearVenta(ctx context.Context, req dto.CrearVentaRequest) (*dto.VentaResponse, error) {
	const op = "venta.crear"

	in, err := s.validar(req)
	if err != nil {
		return nil, err
	}
	venta := in.venta

	if _, err := s.empleados.FindByID(ctx, venta.EmpleadoID); err != nil {
		return nil, noEncontrado(op, err, "Empleado no encontrado")
	}
	if _, err := s.clientes.FindByID(ctx, venta.ClienteID); err != nil {
		return nil, noEncontrado(op, err, "Cliente no encontrado")
	}
	lote, err := s.lotes.FindByID(ctx, venta.LoteID)
	if err != nil {
		return nil, noEncontrado(op, err, "Lote no encontrado")
	}
	if lote.Estado != model.LoteDisponible {
		return nil, apperror.Conflicto(op, "El lote no está disponible", nil)
	}

	txErr := s.tx.Run(ctx, func(tx *gorm.DB) error {
		bloqueado, err := s.lotes.FindByIDForUpdate(ctx, tx, venta.LoteID)
		if err != nil {
			return noEncontrado(op, err, "Lote no encontrado")
		}
		if bloqueado.Estado != model.LoteDisponible {
			return apperror.Conflicto(op, "El lote no está disponible", nil)
		}

		if err := s.ventas.CreateTx(ctx, tx, &venta); err != nil {
			return err
		}

		switch venta.TipoVenta {
		case model.TipoContado:
			if err := s.crearContadoTx(ctx, tx, &venta, in); err != nil {
				return err
			}
		case model.TipoCredito:
			if err := s.crearCreditoTx(ctx, tx, &venta, in); err != nil {
				return err
			}
		}

		vendido, err := s.lotes.MarcarVendidoTx(ctx, tx, venta.LoteID)
		if err != nil {
			return err
		}
		if !vendido {
			return apperror.Conflicto(op, "El lote fue vendido por otra operación", nil)
		}
		return nil
	})
	if txErr != nil {
		if !errors.Is(txErr, apperror.ErrValidation) && !errors.Is(txErr, apperror.ErrConflict) && !errors.Is(txErr, apperror.ErrNotFound) {
			log.Error().Err(txErr).Str("lote_id", venta.LoteID.String()).Msg("venta: transacción revertida")
		}
		return nil, txErr
	}

	log.Info().
		Str("venta_id", venta.ID.String()).
		Str("tipo", venta.TipoVenta).
		Str("lote_id", venta.LoteID.String()).
		Msg("venta registrada")

	s.despuesDeCommit(ctx, &venta)
	return ventaToResponse(&venta), nil
}

func (s *ventaService) crearContadoTx(ctx context.Context, tx *gorm.DB, venta *model.Venta, in *ventaInput) error {
	doc := *in.doc
	if err := s.ventas.CreateDocumentoTx(ctx, tx, &doc); err != nil {
		return err
	}
	contado := *in.contado
	contado.VentaID = venta.ID
	contado.DocumentoID = doc.ID
	if err := s.ventas.CreateContadoTx(ctx, tx, &contado); err != nil {
		return err
	}
	contado.Documento = &doc
	venta.Contado = &contado
	return nil
}

func (s *ventaService) crearCreditoTx(ctx context.Context, tx *gorm.DB, venta *model.Venta, in *ventaInput) error {
	credito := *in.credito
	credito.VentaID = venta.ID
	if err := s.ventas.CreateCreditoTx(ctx, tx, &credito); err != nil {
		return err
	}
	plan, err := s.planes.Construir(ctx, tx, credito.ID, in.plan)
	if err != nil {
		return err
	}
	if err := s.ventas.VincularPlanTx(ctx, tx, credito.ID, plan.ID); err != nil {
		return err
	}
	credito.PlanPagoID = &plan.ID
	credito.Plan = plan
	venta.Credito = &credito
	return nil
}

// despuesDeCommit runs best-effort follow-ups; failures are only logged.
func (s *ventaService) despuesDeCommit(ctx context.Context, venta *model.Venta) {
	if s.cache != nil {
		s.cache.Invalidar(ctx)
	}
	if s.despachador == nil || venta.Contado == nil || venta.Contado.Documento == nil {
		return
	}
	doc := venta.Contado.Documento
	if doc.Estado != model.DocumentoPendiente || doc.ArchivoRuta != nil {
		return
	}
	if err := s.despachador.EncolarDocumentoVenta(ctx, doc.ID); err != nil {
		log.Warn().Err(err).Str("documento_id", doc.ID.String()).Msg("venta: no se pudo encolar el documento")
	}
}

// ── Validation ────────────────────────────────────────────────────────────────

func (s *ventaService) validar(req dto.CrearVentaRequest) (*ventaInput, error) {
	const op = "venta.validar"
	loc := s.reloj.Loc

	fecha, err := parseFecha(req.FechaVenta, loc)
	if err != nil {
		return nil, apperror.Validacion(op, "fecha_venta inválida: "+err.Error())
	}
	if fecha.After(s.reloj.Hoy()) {
		return nil, apperror.Validacion(op, "La fecha de venta no puede ser futura")
	}

	ids := make([]uuid.UUID, 3)
	for i, raw := range []string{req.EmpleadoID, req.ClienteID, req.LoteID} {
		id, err := uuid.Parse(raw)
		if err != nil {
			campo := [...]string{"id_empleado", "id_cliente", "id_lote"}[i]
			return nil, apperror.Validacion(op, campo+" inválido")
		}
		ids[i] = id
	}

	in := &ventaInput{venta: model.Venta{
		FechaVenta: fecha,
		TipoVenta:  req.TipoVenta,
		EmpleadoID: ids[0],
		ClienteID:  ids[1],
		LoteID:     ids[2],
	}}

	switch req.TipoVenta {
	case model.TipoContado:
		if req.DatosContado == nil || req.DatosCredito != nil {
			return nil, apperror.Validacion(op, "Una venta al contado requiere datos_contado y no admite datos_credito")
		}
		if err := s.validarContado(req.DatosContado, in); err != nil {
			return nil, err
		}
	case model.TipoCredito:
		if req.DatosCredito == nil || req.DatosContado != nil {
			return nil, apperror.Validacion(op, "Una venta a crédito requiere datos_credito y no admite datos_contado")
		}
		if err := s.validarCredito(req.DatosCredito, in); err != nil {
			return nil, err
		}
	default:
		return nil, apperror.Validacion(op, "tipo_venta debe ser 'contado' o 'credito'")
	}
	return in, nil
}

func (s *ventaService) validarContado(d *dto.DatosContadoRequest, in *ventaInput) error {
	const op = "venta.validar"
	if !d.MontoTotal.IsPositive() {
		return apperror.Validacion(op, "monto_total debe ser mayor a 0")
	}
	if d.Descuento.IsNegative() || d.Impuestos.IsNegative() {
		return apperror.Validacion(op, "descuento e impuestos no pueden ser negativos")
	}
	if err := validarEscala(op, "monto_total, descuento e impuestos", d.MontoTotal, d.Descuento, d.Impuestos); err != nil {
		return err
	}
	if strings.TrimSpace(d.MetodoPago) == "" {
		return apperror.Validacion(op, "metodo_pago es requerido")
	}
	if d.Documento == nil || strings.TrimSpace(d.Documento.TipoDocumento) == "" {
		return apperror.Validacion(op, "El documento de venta es requerido")
	}
	emision, err := parseFecha(d.Documento.FechaEmision, s.reloj.Loc)
	if err != nil {
		return apperror.Validacion(op, "fecha_emision inválida: "+err.Error())
	}

	doc := &model.DocumentoVenta{
		TipoDocumento: d.Documento.TipoDocumento,
		FechaEmision:  emision,
		ArchivoRuta:   d.Documento.ArchivoRuta,
	}
	switch {
	case d.Documento.Estado != nil:
		doc.Estado = *d.Documento.Estado
	case doc.ArchivoRuta != nil && *doc.ArchivoRuta != "":
		doc.Estado = model.DocumentoEmitido
	default:
		doc.ArchivoRuta = nil
		doc.Estado = model.DocumentoPendiente
	}

	in.doc = doc
	in.contado = &model.VentaContado{
		MetodoPago:      d.MetodoPago,
		Descuento:       d.Descuento,
		MontoTotal:      d.MontoTotal,
		ComprobantePago: d.ComprobantePago,
		Impuestos:       d.Impuestos,
		Observaciones:   d.Observaciones,
	}
	return nil
}

func (s *ventaService) validarCredito(d *dto.DatosCreditoRequest, in *ventaInput) error {
	const op = "venta.validar"
	if strings.TrimSpace(d.PlanFinanciamiento) == "" {
		return apperror.Validacion(op, "plan_financiamiento es requerido")
	}
	for _, v := range []decimal.Decimal{d.CuotaInicial, d.SaldoPendiente, d.TasaInteres} {
		if v.IsNegative() {
			return apperror.Validacion(op, "Los montos del crédito no pueden ser negativos")
		}
	}
	if err := validarEscala(op, "cuota_inicial, saldo_pendiente y tasa_interes", d.CuotaInicial, d.SaldoPendiente, d.TasaInteres); err != nil {
		return err
	}
	if d.Plazo < 0 {
		return apperror.Validacion(op, "plazo no puede ser negativo")
	}
	if d.PlanPago == nil {
		return apperror.Validacion(op, "plan_pago es requerido")
	}
	p := d.PlanPago
	inicial, err := parseFecha(p.FechaInicial, s.reloj.Loc)
	if err != nil {
		return apperror.Validacion(op, "fecha_inicial inválida: "+err.Error())
	}
	final, err := parseFecha(p.FechaFinal, s.reloj.Loc)
	if err != nil {
		return apperror.Validacion(op, "fecha_final inválida: "+err.Error())
	}

	spec := PlanSpec{
		CuotaInicial: p.CuotaInicial,
		FechaInicial: inicial,
		FechaFinal:   final,
		PlazoAnios:   p.PlazoAnios,
		MontoFinal:   p.MontoFinal,
		Cuotas:       make([]CuotaSpec, 0, len(p.Cuotas)),
	}
	for _, c := range p.Cuotas {
		venc, err := parseFecha(c.FechaVenc, s.reloj.Loc)
		if err != nil {
			return apperror.Validacion(op, "fecha_venc inválida: "+err.Error())
		}
		spec.Cuotas = append(spec.Cuotas, CuotaSpec{Monto: c.MontoCuota, FechaVenc: venc})
	}
	if err := spec.Validar(); err != nil {
		return err
	}

	in.plan = spec
	in.credito = &model.VentaCredito{
		PlanFinanciamiento: d.PlanFinanciamiento,
		CuotaInicial:       d.CuotaInicial,
		SaldoPendiente:     d.SaldoPendiente,
		Plazo:              d.Plazo,
		TasaInteres:        d.TasaInteres,
		Estado:             model.CreditoPendiente,
	}
	return nil
}

// ── ObtenerVenta ──────────────────────────────────────────────────────────────

func (s *ventaService) ObtenerVenta(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error) {
	v, err := s.ventas.FindByID(ctx, id)
	if err != nil {
		return nil, noEncontrado("venta.obtener", err, "Venta no encontrada")
	}
	return ventaToResponse(v), nil
}
