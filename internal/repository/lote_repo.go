package repository

import (
	"context"

	"github.com/HarryYanarico/my-proyect/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LoteRepository interface {
	Create(ctx context.Context, l *model.Lote) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Lote, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Lote, error)
	// MarcarVendidoTx flips disponible → vendido. Returns false when the lote
	// was not disponible at update time.
	MarcarVendidoTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error)
}

type loteRepo struct{ db *gorm.DB }

func NewLoteRepository(db *gorm.DB) LoteRepository { return &loteRepo{db: db} }

func (r *loteRepo) Create(ctx context.Context, l *model.Lote) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *loteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Lote, error) {
	var l model.Lote
	err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error
	return &l, err
}

func (r *loteRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Lote, error) {
	var l model.Lote
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&l, "id = ?", id).Error
	return &l, err
}

func (r *loteRepo) MarcarVendidoTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	res := tx.WithContext(ctx).Model(&model.Lote{}).
		Where("id = ? AND estado = ?", id, model.LoteDisponible).
		Update("estado", model.LoteVendido)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
