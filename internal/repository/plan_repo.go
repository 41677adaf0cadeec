package repository

import (
	"context"

	"github.com/HarryYanarico/my-proyect/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PlanPagoRepository interface {
	CreatePlanTx(ctx context.Context, tx *gorm.DB, p *model.PlanPago) error
	CreateCuotaTx(ctx context.Context, tx *gorm.DB, c *model.Cuota) error
	FindByIDTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.PlanPago, error)
}

type planPagoRepo struct{ db *gorm.DB }

func NewPlanPagoRepository(db *gorm.DB) PlanPagoRepository { return &planPagoRepo{db: db} }

func (r *planPagoRepo) CreatePlanTx(ctx context.Context, tx *gorm.DB, p *model.PlanPago) error {
	return tx.WithContext(ctx).Omit(clause.Associations).Create(p).Error
}

func (r *planPagoRepo) CreateCuotaTx(ctx context.Context, tx *gorm.DB, c *model.Cuota) error {
	return tx.WithContext(ctx).Create(c).Error
}

func (r *planPagoRepo) FindByIDTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.PlanPago, error) {
	var p model.PlanPago
	err := tx.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}
