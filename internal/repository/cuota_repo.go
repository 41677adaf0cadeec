package repository

import (
	"context"

	"github.com/HarryYanarico/my-proyect/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CuotaRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cuota, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Cuota, error)
	// UpdateSaldoTx persists monto_pagado, estado and fecha_pago.
	UpdateSaldoTx(ctx context.Context, tx *gorm.DB, c *model.Cuota) error
	ListByLote(ctx context.Context, loteID uuid.UUID) ([]model.Cuota, error)
}

type cuotaRepo struct{ db *gorm.DB }

func NewCuotaRepository(db *gorm.DB) CuotaRepository { return &cuotaRepo{db: db} }

func (r *cuotaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cuota, error) {
	var c model.Cuota
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *cuotaRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Cuota, error) {
	var c model.Cuota
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&c, "id = ?", id).Error
	return &c, err
}

func (r *cuotaRepo) UpdateSaldoTx(ctx context.Context, tx *gorm.DB, c *model.Cuota) error {
	return tx.WithContext(ctx).Model(&model.Cuota{}).
		Where("id = ?", c.ID).
		Updates(map[string]interface{}{
			"monto_pagado": c.MontoPagado,
			"estado":       c.Estado,
			"fecha_pago":   c.FechaPago,
		}).Error
}

func (r *cuotaRepo) ListByLote(ctx context.Context, loteID uuid.UUID) ([]model.Cuota, error) {
	var cuotas []model.Cuota
	err := r.db.WithContext(ctx).
		Joins("JOIN planes_pago ON planes_pago.id = cuotas.plan_id").
		Joins("JOIN venta_credito ON venta_credito.id = planes_pago.venta_credito_id").
		Joins("JOIN ventas ON ventas.id = venta_credito.venta_id").
		Where("ventas.lote_id = ?", loteID).
		Order("cuotas.fecha_venc ASC, cuotas.numero ASC").
		Find(&cuotas).Error
	return cuotas, err
}
