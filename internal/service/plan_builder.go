package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/HarryYanarico/my-proyect/internal/apperror"
	"github.com/HarryYanarico/my-proyect/internal/model"
	"github.com/HarryYanarico/my-proyect/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CuotaSpec is one caller-supplied installment. Amounts are taken as given;
// no interest is computed here.
type CuotaSpec struct {
	Monto     decimal.Decimal
	FechaVenc time.Time
}

// PlanSpec describes the schedule of a credit sale.
type PlanSpec struct {
	CuotaInicial decimal.Decimal
	FechaInicial time.Time
	FechaFinal   time.Time
	PlazoAnios   int
	MontoFinal   decimal.Decimal
	Cuotas       []CuotaSpec
}

var errSinTransaccion = errors.New("plan de pagos: se requiere una transacción abierta")

// Validar rejects an empty schedule, amounts finer than cents and
// installments with a non-positive amount or no due date.
func (p PlanSpec) Validar() error {
	const op = "plan.validar"
	if len(p.Cuotas) == 0 {
		return apperror.Validacion(op, "El plan de pagos debe incluir al menos una cuota")
	}
	if p.FechaFinal.Before(p.FechaInicial) {
		return apperror.Validacion(op, "fecha_final no puede ser anterior a fecha_inicial")
	}
	if p.CuotaInicial.IsNegative() || p.MontoFinal.IsNegative() || p.PlazoAnios < 0 {
		return apperror.Validacion(op, "Los montos del plan no pueden ser negativos")
	}
	if err := validarEscala(op, "cuota_inicial y monto_final", p.CuotaInicial, p.MontoFinal); err != nil {
		return err
	}
	for i, c := range p.Cuotas {
		if !c.Monto.IsPositive() {
			return apperror.Validacion(op, fmt.Sprintf("cuota %d: monto_cuota debe ser mayor a 0", i+1))
		}
		if err := validarEscala(op, fmt.Sprintf("cuota %d: monto_cuota", i+1), c.Monto); err != nil {
			return err
		}
		if c.FechaVenc.IsZero() {
			return apperror.Validacion(op, fmt.Sprintf("cuota %d: fecha_venc es requerida", i+1))
		}
	}
	return nil
}

// PlanBuilder materialises a PlanPago and its cuotas inside the caller's
// transaction. It never commits.
type PlanBuilder struct {
	planes repository.PlanPagoRepository
}

func NewPlanBuilder(planes repository.PlanPagoRepository) *PlanBuilder {
	return &PlanBuilder{planes: planes}
}

// Construir inserts the plan header then every cuota in the given order,
// each pendiente with nothing paid.
func (b *PlanBuilder) Construir(ctx context.Context, tx *gorm.DB, ventaCreditoID uuid.UUID, spec PlanSpec) (*model.PlanPago, error) {
	if tx == nil {
		return nil, errSinTransaccion
	}
	if err := spec.Validar(); err != nil {
		return nil, err
	}

	plan := &model.PlanPago{
		VentaCreditoID: ventaCreditoID,
		CuotaInicial:   spec.CuotaInicial,
		FechaInicial:   spec.FechaInicial,
		FechaFinal:     spec.FechaFinal,
		PlazoAnios:     spec.PlazoAnios,
		MontoFinal:     spec.MontoFinal,
	}
	if err := b.planes.CreatePlanTx(ctx, tx, plan); err != nil {
		return nil, fmt.Errorf("crear plan de pagos: %w", err)
	}

	plan.Cuotas = make([]model.Cuota, 0, len(spec.Cuotas))
	for i, c := range spec.Cuotas {
		cuota := model.Cuota{
			PlanID:      plan.ID,
			Numero:      i + 1,
			MontoCuota:  c.Monto,
			FechaVenc:   c.FechaVenc,
			MontoPagado: decimal.Zero,
			Estado:      model.CuotaPendiente,
		}
		if err := b.planes.CreateCuotaTx(ctx, tx, &cuota); err != nil {
			return nil, fmt.Errorf("crear cuota %d: %w", i+1, err)
		}
		plan.Cuotas = append(plan.Cuotas, cuota)
	}
	return plan, nil
}
