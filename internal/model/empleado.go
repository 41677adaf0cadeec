package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Empleado is a staff member who registers sales and payments.
// Rol: "vendedor" | "administrador"
type Empleado struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Nombre       string    `gorm:"not null"`
	Apellido     string
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Rol          string `gorm:"type:varchar(20);not null"`
	Activo       bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

const (
	RolVendedor      = "vendedor"
	RolAdministrador = "administrador"
)

func (Empleado) TableName() string { return "empleados" }

func (e *Empleado) BeforeCreate(*gorm.DB) error { return asignarID(&e.ID) }
