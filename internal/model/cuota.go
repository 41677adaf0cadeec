package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Estado de una cuota, always derived from MontoPagado against MontoCuota.
const (
	CuotaPendiente = "pendiente"
	CuotaParcial   = "parcial"
	CuotaPagada    = "pagado"
)

// Cuota is one scheduled installment of a PlanPago.
type Cuota struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PlanID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Numero      int             `gorm:"not null"`
	MontoCuota  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	FechaVenc   time.Time       `gorm:"type:date;not null;index"`
	MontoPagado decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Estado      string          `gorm:"type:varchar(20);not null;default:'pendiente';index"`
	FechaPago   *time.Time      `gorm:"type:date"`
}

func (Cuota) TableName() string { return "cuotas" }

func (c *Cuota) BeforeCreate(*gorm.DB) error { return asignarID(&c.ID) }

// EstadoCuotaPara derives the installment state for a paid amount.
func EstadoCuotaPara(montoCuota, montoPagado decimal.Decimal) string {
	switch {
	case montoPagado.Sign() <= 0:
		return CuotaPendiente
	case montoPagado.GreaterThanOrEqual(montoCuota):
		return CuotaPagada
	default:
		return CuotaParcial
	}
}

// Restante is the amount still owed on the installment.
func (c *Cuota) Restante() decimal.Decimal {
	return c.MontoCuota.Sub(c.MontoPagado)
}

// Validar checks 0 ≤ pagado ≤ monto and that Estado matches the balance.
func (c *Cuota) Validar() error {
	if c.MontoPagado.IsNegative() {
		return fmt.Errorf("cuota %s: monto pagado negativo (%s)", c.ID, c.MontoPagado.StringFixed(2))
	}
	if c.MontoPagado.GreaterThan(c.MontoCuota) {
		return fmt.Errorf("cuota %s: monto pagado %s excede la cuota %s",
			c.ID, c.MontoPagado.StringFixed(2), c.MontoCuota.StringFixed(2))
	}
	if want := EstadoCuotaPara(c.MontoCuota, c.MontoPagado); c.Estado != want {
		return fmt.Errorf("cuota %s: estado %q no corresponde al saldo (esperado %q)", c.ID, c.Estado, want)
	}
	return nil
}
