package service

import (
	"context"
	"errors"
	"fmt"
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

type PagoService interface {
	RegistrarPago(ctx context.Context, empleadoID uuid.UUID, req dto.RegistrarPagoRequest) (*dto.RegistroPagoResponse, error)
	RevertirPago(ctx context.Context, pagoID uuid.UUID) (*dto.ReversionPagoResponse, error)
	ActualizarPago(ctx context.Context, pagoID uuid.UUID, req dto.ActualizarPagoRequest) (*dto.PagoResponse, error)
	ObtenerPago(ctx context.Context, pagoID uuid.UUID) (*dto.PagoResponse, error)
	ListarPorCuota(ctx context.Context, cuotaID uuid.UUID) (*dto.PagoListResponse, error)
	ListarPorVenta(ctx context.Context, ventaID uuid.UUID) (*dto.PagoListResponse, error)
	ListarRecientes(ctx context.Context, limit int) (*dto.PagoListResponse, error)
	ListarCuotasPorLote(ctx context.Context, loteID uuid.UUID) (*dto.CuotaListResponse, error)
}

type pagoService struct {
	tx          repository.TxRunner
	pagos       repository.PagoRepository
	cuotas      repository.CuotaRepository
	planes      repository.PlanPagoRepository
	ventas      repository.VentaRepository
	empleados   repository.EmpleadoRepository
	despachador Despachador
	cache       DashboardCache
	reloj       Reloj
}

func NewPagoService(
	tx repository.TxRunner,
	pagos repository.PagoRepository,
	cuotas repository.CuotaRepository,
	planes repository.PlanPagoRepository,
	ventas repository.VentaRepository,
	empleados repository.EmpleadoRepository,
	despachador Despachador,
	cache DashboardCache,
	reloj Reloj,
) PagoService {
	return &pagoService{
		tx:          tx,
		pagos:       pagos,
		cuotas:      cuotas,
		planes:      planes,
		ventas:      ventas,
		empleados:   empleados,
		despachador: despachador,
		cache:       cache,
		reloj:       reloj,
	}
}

// ── RegistrarPago ─────────────────────────────────────────────────────────────
//   1. Validate monto > 0 with at most 2 decimals, and fecha_pago
//   2. BEGIN TX: lock cuota, check monto ≤ saldo, insert pago, update cuota
//   3. Cuota became pagado → saldo_pendiente of the credit decreases by monto
//   4. COMMIT, then (async) receipt PDF

func (s *pagoService) RegistrarPago(ctx context.Context, empleadoID uuid.UUID, req dto.RegistrarPagoRequest) (*dto.RegistroPagoResponse, error) {
	const op = "pago.registrar"

	cuotaID, err := uuid.Parse(req.CuotaID)
	if err != nil {
		return nil, apperror.Validacion(op, "id_cuota inválido")
	}
	if !req.Monto.IsPositive() {
		return nil, apperror.Validacion(op, "El monto debe ser mayor a 0")
	}
	if err := validarEscala(op, "monto", req.Monto); err != nil {
		return nil, err
	}
	fecha, err := parseFecha(req.FechaPago, s.reloj.Loc)
	if err != nil {
		return nil, apperror.Validacion(op, "fecha_pago inválida: "+err.Error())
	}
	metodo := model.MetodoEfectivo
	if req.MetodoPago != nil && strings.TrimSpace(*req.MetodoPago) != "" {
		metodo = strings.TrimSpace(*req.MetodoPago)
	}

	if _, err := s.empleados.FindByID(ctx, empleadoID); err != nil {
		return nil, noEncontrado(op, err, "Empleado no encontrado")
	}

	var resp *dto.RegistroPagoResponse
	txErr := s.tx.Run(ctx, func(tx *gorm.DB) error {
		cuota, err := s.cuotas.FindByIDForUpdate(ctx, tx, cuotaID)
		if err != nil {
			return noEncontrado(op, err, "Cuota no encontrada")
		}
		if err := cuota.Validar(); err != nil {
			return integridad(op, err)
		}

		restante := cuota.Restante()
		if req.Monto.GreaterThan(restante) {
			return apperror.Validacion(op, fmt.Sprintf("Monto inválido. Saldo pendiente: %s", restante.StringFixed(2)))
		}

		pago := model.PagoCuota{
			CuotaID:     cuota.ID,
			EmpleadoID:  empleadoID,
			Monto:       req.Monto,
			FechaPago:   fecha,
			MetodoPago:  metodo,
			Comprobante: req.Comprobante,
		}
		if err := s.pagos.CreateTx(ctx, tx, &pago); err != nil {
			return err
		}

		anterior := cuota.MontoPagado
		cuota.MontoPagado = anterior.Add(req.Monto)
		cuota.Estado = model.EstadoCuotaPara(cuota.MontoCuota, cuota.MontoPagado)
		cuota.FechaPago = &fecha
		if err := s.cuotas.UpdateSaldoTx(ctx, tx, cuota); err != nil {
			return err
		}

		if cuota.Estado == model.CuotaPagada {
			if err := s.ajustarSaldoCredito(ctx, tx, op, cuota.PlanID, req.Monto.Neg()); err != nil {
				return err
			}
		}

		resp = &dto.RegistroPagoResponse{
			Pago:          pagoToResponse(&pago),
			SaldoAnterior: anterior,
			NuevoSaldo:    cuota.MontoPagado,
			Estado:        cuota.Estado,
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	log.Info().
		Str("pago_id", resp.Pago.ID).
		Str("cuota_id", cuotaID.String()).
		Str("monto", req.Monto.StringFixed(2)).
		Str("estado", resp.Estado).
		Msg("pago registrado")

	if s.cache != nil {
		s.cache.Invalidar(ctx)
	}
	if s.despachador != nil {
		pagoID, _ := uuid.Parse(resp.Pago.ID)
		if err := s.despachador.EncolarReciboPago(ctx, pagoID); err != nil {
			log.Warn().Err(err).Str("pago_id", resp.Pago.ID).Msg("pago: no se pudo encolar el recibo")
		}
	}
	return resp, nil
}

// ── RevertirPago ──────────────────────────────────────────────────────────────
//   1. BEGIN TX: lock pago, lock its cuota
//   2. monto_pagado − monto < 0 → integrity violation, rollback
//   3. Recompute estado; fecha_pago goes back to the latest remaining payment (or NULL)
//   4. Cuota was pagado → saldo_pendiente of the credit increases by monto
//   5. Delete pago, COMMIT

func (s *pagoService) RevertirPago(ctx context.Context, pagoID uuid.UUID) (*dto.ReversionPagoResponse, error) {
	const op = "pago.revertir"

	var resp *dto.ReversionPagoResponse
	txErr := s.tx.Run(ctx, func(tx *gorm.DB) error {
		pago, err := s.pagos.FindByIDForUpdate(ctx, tx, pagoID)
		if err != nil {
			return noEncontrado(op, err, "Pago no encontrado")
		}
		cuota, err := s.cuotas.FindByIDForUpdate(ctx, tx, pago.CuotaID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return integridad(op, fmt.Errorf("pago %s referencia la cuota inexistente %s", pago.ID, pago.CuotaID))
		}
		if err != nil {
			return err
		}

		nuevo := cuota.MontoPagado.Sub(pago.Monto)
		if nuevo.IsNegative() {
			return integridad(op, fmt.Errorf("revertir pago %s dejaría la cuota %s con monto pagado %s",
				pago.ID, cuota.ID, nuevo.StringFixed(2)))
		}
		estadoPrevio := cuota.Estado

		if err := s.pagos.DeleteTx(ctx, tx, pago.ID); err != nil {
			return err
		}

		cuota.MontoPagado = nuevo
		cuota.Estado = model.EstadoCuotaPara(cuota.MontoCuota, nuevo)
		if nuevo.IsZero() {
			cuota.FechaPago = nil
		} else {
			ultimo, err := s.pagos.UltimoPagoTx(ctx, tx, cuota.ID)
			switch {
			case err == nil:
				f := ultimo.FechaPago
				cuota.FechaPago = &f
			case !errors.Is(err, gorm.ErrRecordNotFound):
				return err
			}
		}
		if err := s.cuotas.UpdateSaldoTx(ctx, tx, cuota); err != nil {
			return err
		}

		if estadoPrevio == model.CuotaPagada {
			if err := s.ajustarSaldoCredito(ctx, tx, op, cuota.PlanID, pago.Monto); err != nil {
				return err
			}
		}

		resp = &dto.ReversionPagoResponse{
			PagoID:         pago.ID.String(),
			CuotaID:        cuota.ID.String(),
			MontoRevertido: pago.Monto,
			Estado:         cuota.Estado,
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	log.Info().
		Str("pago_id", resp.PagoID).
		Str("cuota_id", resp.CuotaID).
		Str("monto", resp.MontoRevertido.StringFixed(2)).
		Msg("pago revertido")

	if s.cache != nil {
		s.cache.Invalidar(ctx)
	}
	return resp, nil
}

// ajustarSaldoCredito moves saldo_pendiente of the credit owning planID by delta.
func (s *pagoService) ajustarSaldoCredito(ctx context.Context, tx *gorm.DB, op string, planID uuid.UUID, delta decimal.Decimal) error {
	plan, err := s.planes.FindByIDTx(ctx, tx, planID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return integridad(op, fmt.Errorf("plan de pagos %s inexistente", planID))
	}
	if err != nil {
		return err
	}
	err = s.ventas.AjustarSaldoPendienteTx(ctx, tx, plan.VentaCreditoID, delta)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return integridad(op, fmt.Errorf("venta a crédito %s inexistente", plan.VentaCreditoID))
	}
	return err
}

// integridad logs a ledger invariant violation and returns the error that
// rolls the transaction back.
func integridad(op string, cause error) error {
	log.Error().
		Str("evento", "integridad").
		Str("op", op).
		Err(cause).
		Msg("integridad: invariante del libro de pagos violado")
	return apperror.Inconsistencia(op, "Inconsistencia interna en los saldos de la cuota")
}

// ── ActualizarPago ────────────────────────────────────────────────────────────

func (s *pagoService) ActualizarPago(ctx context.Context, pagoID uuid.UUID, req dto.ActualizarPagoRequest) (*dto.PagoResponse, error) {
	const op = "pago.actualizar"

	metodo := recortar(req.MetodoPago)
	comprobante := recortar(req.Comprobante)
	if metodo == nil && comprobante == nil {
		return nil, apperror.Validacion(op, "Nada que actualizar")
	}

	pago, err := s.pagos.FindByID(ctx, pagoID)
	if err != nil {
		return nil, noEncontrado(op, err, "Pago no encontrado")
	}
	if metodo != nil {
		pago.MetodoPago = *metodo
	}
	if comprobante != nil {
		pago.Comprobante = comprobante
	}
	if err := s.pagos.UpdateDatos(ctx, pago); err != nil {
		return nil, noEncontrado(op, err, "Pago no encontrado")
	}
	resp := pagoToResponse(pago)
	return &resp, nil
}

func recortar(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// ── Listados ──────────────────────────────────────────────────────────────────

func (s *pagoService) ObtenerPago(ctx context.Context, pagoID uuid.UUID) (*dto.PagoResponse, error) {
	pago, err := s.pagos.FindByID(ctx, pagoID)
	if err != nil {
		return nil, noEncontrado("pago.obtener", err, "Pago no encontrado")
	}
	resp := pagoToResponse(pago)
	return &resp, nil
}

func (s *pagoService) ListarPorCuota(ctx context.Context, cuotaID uuid.UUID) (*dto.PagoListResponse, error) {
	const op = "pago.listar_cuota"
	if _, err := s.cuotas.FindByID(ctx, cuotaID); err != nil {
		return nil, noEncontrado(op, err, "Cuota no encontrada")
	}
	pagos, err := s.pagos.ListByCuota(ctx, cuotaID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return pagosToList(pagos), nil
}

func (s *pagoService) ListarPorVenta(ctx context.Context, ventaID uuid.UUID) (*dto.PagoListResponse, error) {
	pagos, err := s.pagos.ListByVenta(ctx, ventaID)
	if err != nil {
		return nil, fmt.Errorf("pago.listar_venta: %w", err)
	}
	return pagosToList(pagos), nil
}

func (s *pagoService) ListarRecientes(ctx context.Context, limit int) (*dto.PagoListResponse, error) {
	if limit <= 0 {
		limit = 10
	}
	pagos, err := s.pagos.ListRecientes(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("pago.listar_recientes: %w", err)
	}
	return pagosToList(pagos), nil
}

func (s *pagoService) ListarCuotasPorLote(ctx context.Context, loteID uuid.UUID) (*dto.CuotaListResponse, error) {
	cuotas, err := s.cuotas.ListByLote(ctx, loteID)
	if err != nil {
		return nil, fmt.Errorf("cuota.listar_lote: %w", err)
	}
	resp := &dto.CuotaListResponse{Data: make([]dto.CuotaResponse, 0, len(cuotas))}
	for i := range cuotas {
		resp.Data = append(resp.Data, cuotaToResponse(&cuotas[i]))
	}
	return resp, nil
}
