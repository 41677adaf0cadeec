package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const MetodoEfectivo = "efectivo"

// PagoCuota records money received against a Cuota. Monto and FechaPago are
// fixed once written; only MetodoPago and Comprobante may be edited.
type PagoCuota struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CuotaID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	EmpleadoID  uuid.UUID       `gorm:"type:uuid;not null"`
	Monto       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	FechaPago   time.Time       `gorm:"type:date;not null;index"`
	MetodoPago  string          `gorm:"type:varchar(30);not null;default:'efectivo'"`
	Comprobante *string
	CreatedAt   time.Time
}

func (PagoCuota) TableName() string { return "pagos_cuotas" }

func (p *PagoCuota) BeforeCreate(*gorm.DB) error { return asignarID(&p.ID) }
