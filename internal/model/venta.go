package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	TipoContado = "contado"
	TipoCredito = "credito"
)

// Estado de un DocumentoVenta.
const (
	DocumentoPendiente = "pendiente" // PDF not generated yet
	DocumentoEmitido   = "emitido"
	DocumentoError     = "error"
)

const CreditoPendiente = "pendiente"

// Venta is the sale header. It is immutable once created; exactly one of
// Contado / Credito is populated according to TipoVenta.
type Venta struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	FechaVenta time.Time `gorm:"type:date;not null;index"`
	TipoVenta  string    `gorm:"type:varchar(10);not null"`
	ClienteID  uuid.UUID `gorm:"type:uuid;not null;index"`
	EmpleadoID uuid.UUID `gorm:"type:uuid;not null"`
	LoteID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	CreatedAt  time.Time

	Cliente  *Cliente      `gorm:"foreignKey:ClienteID"`
	Empleado *Empleado     `gorm:"foreignKey:EmpleadoID"`
	Lote     *Lote         `gorm:"foreignKey:LoteID"`
	Contado  *VentaContado `gorm:"foreignKey:VentaID"`
	Credito  *VentaCredito `gorm:"foreignKey:VentaID"`
}

func (Venta) TableName() string { return "ventas" }

func (v *Venta) BeforeCreate(*gorm.DB) error { return asignarID(&v.ID) }

// DetalleVenta is the branch of a sale selected by its tipo.
type DetalleVenta interface {
	Tipo() string
}

// Detalle returns the populated branch, or nil when it was not loaded.
func (v *Venta) Detalle() DetalleVenta {
	switch v.TipoVenta {
	case TipoContado:
		if v.Contado != nil {
			return v.Contado
		}
	case TipoCredito:
		if v.Credito != nil {
			return v.Credito
		}
	}
	return nil
}

// DocumentoVenta is the sale document attached to a cash sale.
type DocumentoVenta struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	TipoDocumento string    `gorm:"type:varchar(50);not null"`
	FechaEmision  time.Time `gorm:"type:date;not null"`
	ArchivoRuta   *string
	Estado        string `gorm:"type:varchar(20);not null;default:'emitido';index"`
	RetryCount    int    `gorm:"not null;default:0"`
	LastError     *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (DocumentoVenta) TableName() string { return "documentos_venta" }

func (d *DocumentoVenta) BeforeCreate(*gorm.DB) error { return asignarID(&d.ID) }

// VentaContado is the cash branch of a sale.
type VentaContado struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	VentaID         uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	MetodoPago      string          `gorm:"type:varchar(30);not null"`
	Descuento       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	MontoTotal      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ComprobantePago *string
	Impuestos       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Observaciones   *string
	DocumentoID     uuid.UUID       `gorm:"type:uuid;not null"`
	Documento       *DocumentoVenta `gorm:"foreignKey:DocumentoID"`
}

func (VentaContado) TableName() string { return "venta_contado" }

func (vc *VentaContado) BeforeCreate(*gorm.DB) error { return asignarID(&vc.ID) }

func (*VentaContado) Tipo() string { return TipoContado }

// VentaCredito is the credit branch of a sale. SaldoPendiente tracks the
// amount still owed and moves with installments that become fully paid.
type VentaCredito struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	VentaID            uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	PlanFinanciamiento string          `gorm:"not null"`
	CuotaInicial       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	SaldoPendiente     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Plazo              int             `gorm:"not null"`
	TasaInteres        decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	Estado             string          `gorm:"type:varchar(20);not null;default:'pendiente'"`
	PlanPagoID         *uuid.UUID      `gorm:"type:uuid"`
	Plan               *PlanPago       `gorm:"foreignKey:VentaCreditoID"`
}

func (VentaCredito) TableName() string { return "venta_credito" }

func (vc *VentaCredito) BeforeCreate(*gorm.DB) error { return asignarID(&vc.ID) }

func (*VentaCredito) Tipo() string { return TipoCredito }

// PlanPago is the amortization schedule header of a credit sale.
type PlanPago struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	VentaCreditoID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	CuotaInicial   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	FechaInicial   time.Time       `gorm:"type:date;not null"`
	FechaFinal     time.Time       `gorm:"type:date;not null"`
	PlazoAnios     int             `gorm:"not null"`
	MontoFinal     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt      time.Time
	Cuotas         []Cuota `gorm:"foreignKey:PlanID"`
}

func (PlanPago) TableName() string { return "planes_pago" }

func (p *PlanPago) BeforeCreate(*gorm.DB) error { return asignarID(&p.ID) }
