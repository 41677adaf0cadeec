package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Estado de un lote. Transitions disponible → vendido exactly once, inside
// the sale transaction that sells it.
const (
	LoteDisponible = "disponible"
	LoteVendido    = "vendido"
)

// Lote is a land parcel offered for sale.
type Lote struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Nombre      string          `gorm:"not null"`
	Ubicacion   *string
	Area        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Precio      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Descripcion *string
	Estado      string `gorm:"type:varchar(20);not null;default:'disponible';index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Lote) TableName() string { return "lotes" }

func (l *Lote) BeforeCreate(*gorm.DB) error { return asignarID(&l.ID) }
