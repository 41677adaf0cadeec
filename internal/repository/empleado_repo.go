package repository

import (
	"context"

	"github.com/HarryYanarico/my-proyect/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EmpleadoRepository interface {
	Create(ctx context.Context, e *model.Empleado) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Empleado, error)
	FindByEmail(ctx context.Context, email string) (*model.Empleado, error)
}

type empleadoRepo struct{ db *gorm.DB }

func NewEmpleadoRepository(db *gorm.DB) EmpleadoRepository { return &empleadoRepo{db: db} }

func (r *empleadoRepo) Create(ctx context.Context, e *model.Empleado) error {
	return r.db.WithContext(ctx).Create(e).Error
}

// FindByID only returns active employees; a deactivated employee cannot
// register sales or payments.
func (r *empleadoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Empleado, error) {
	var e model.Empleado
	err := r.db.WithContext(ctx).Where("activo = ?", true).First(&e, "id = ?", id).Error
	return &e, err
}

func (r *empleadoRepo) FindByEmail(ctx context.Context, email string) (*model.Empleado, error) {
	var e model.Empleado
	err := r.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&e).Error
	return &e, err
}
