package repository

import (
	"context"
	"time"

	"github.com/HarryYanarico/my-proyect/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VentaRepository interface {
	CreateTx(ctx context.Context, tx *gorm.DB, v *model.Venta) error
	CreateDocumentoTx(ctx context.Context, tx *gorm.DB, d *model.DocumentoVenta) error
	CreateContadoTx(ctx context.Context, tx *gorm.DB, vc *model.VentaContado) error
	CreateCreditoTx(ctx context.Context, tx *gorm.DB, vc *model.VentaCredito) error
	VincularPlanTx(ctx context.Context, tx *gorm.DB, creditoID, planID uuid.UUID) error
	// AjustarSaldoPendienteTx adds delta (possibly negative) to the credit's saldo_pendiente.
	AjustarSaldoPendienteTx(ctx context.Context, tx *gorm.DB, creditoID uuid.UUID, delta decimal.Decimal) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error)

	FindDocumento(ctx context.Context, id uuid.UUID) (*model.DocumentoVenta, error)
	FindContadoByDocumento(ctx context.Context, documentoID uuid.UUID) (*model.VentaContado, error)
	UpdateDocumento(ctx context.Context, d *model.DocumentoVenta) error
	ListDocumentosPendientes(ctx context.Context, creadosAntes time.Time, limit int) ([]model.DocumentoVenta, error)
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) CreateTx(ctx context.Context, tx *gorm.DB, v *model.Venta) error {
	return tx.WithContext(ctx).Omit(clause.Associations).Create(v).Error
}

func (r *ventaRepo) CreateDocumentoTx(ctx context.Context, tx *gorm.DB, d *model.DocumentoVenta) error {
	return tx.WithContext(ctx).Create(d).Error
}

func (r *ventaRepo) CreateContadoTx(ctx context.Context, tx *gorm.DB, vc *model.VentaContado) error {
	return tx.WithContext(ctx).Omit(clause.Associations).Create(vc).Error
}

func (r *ventaRepo) CreateCreditoTx(ctx context.Context, tx *gorm.DB, vc *model.VentaCredito) error {
	return tx.WithContext(ctx).Omit(clause.Associations).Create(vc).Error
}

func (r *ventaRepo) VincularPlanTx(ctx context.Context, tx *gorm.DB, creditoID, planID uuid.UUID) error {
	return tx.WithContext(ctx).Model(&model.VentaCredito{}).
		Where("id = ?", creditoID).
		Update("plan_pago_id", planID).Error
}

func (r *ventaRepo) AjustarSaldoPendienteTx(ctx context.Context, tx *gorm.DB, creditoID uuid.UUID, delta decimal.Decimal) error {
	res := tx.WithContext(ctx).Model(&model.VentaCredito{}).
		Where("id = ?", creditoID).
		Update("saldo_pendiente", gorm.Expr("saldo_pendiente + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ventaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).
		Preload("Cliente").
		Preload("Lote").
		Preload("Contado.Documento").
		Preload("Credito.Plan.Cuotas", func(db *gorm.DB) *gorm.DB {
			return db.Order("numero ASC")
		}).
		First(&v, "id = ?", id).Error
	return &v, err
}

func (r *ventaRepo) FindDocumento(ctx context.Context, id uuid.UUID) (*model.DocumentoVenta, error) {
	var d model.DocumentoVenta
	err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error
	return &d, err
}

func (r *ventaRepo) FindContadoByDocumento(ctx context.Context, documentoID uuid.UUID) (*model.VentaContado, error) {
	var vc model.VentaContado
	err := r.db.WithContext(ctx).Where("documento_id = ?", documentoID).First(&vc).Error
	return &vc, err
}

func (r *ventaRepo) UpdateDocumento(ctx context.Context, d *model.DocumentoVenta) error {
	return r.db.WithContext(ctx).
		Model(d).
		Select("archivo_ruta", "estado", "retry_count", "last_error", "updated_at").
		Updates(d).Error
}

func (r *ventaRepo) ListDocumentosPendientes(ctx context.Context, creadosAntes time.Time, limit int) ([]model.DocumentoVenta, error) {
	var docs []model.DocumentoVenta
	err := r.db.WithContext(ctx).
		Where("estado = ? AND created_at < ?", model.DocumentoPendiente, creadosAntes).
		Order("created_at ASC").
		Limit(limit).
		Find(&docs).Error
	return docs, err
}
