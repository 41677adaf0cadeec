package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cliente is the buyer of a lote. Owned by the clientes module; the ledger
// only reads it.
type Cliente struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Nombre    string    `gorm:"not null"`
	Apellido  string    `gorm:"not null"`
	CINit     string    `gorm:"column:ci_nit;type:varchar(30);index"`
	Telefono  *string
	Direccion *string
	Email     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Cliente) TableName() string { return "clientes" }

func (c *Cliente) BeforeCreate(*gorm.DB) error { return asignarID(&c.ID) }

// NombreCompleto joins nombre and apellido for listings and documents.
func (c *Cliente) NombreCompleto() string {
	if c.Apellido == "" {
		return c.Nombre
	}
	return c.Nombre + " " + c.Apellido
}
