package repository

import (
	"context"

	"github.com/HarryYanarico/my-proyect/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PagoRepository interface {
	CreateTx(ctx context.Context, tx *gorm.DB, p *model.PagoCuota) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.PagoCuota, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.PagoCuota, error)
	DeleteTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	// UltimoPagoTx returns the most recently registered payment of a cuota,
	// or gorm.ErrRecordNotFound when it has none.
	UltimoPagoTx(ctx context.Context, tx *gorm.DB, cuotaID uuid.UUID) (*model.PagoCuota, error)
	// UpdateDatos writes metodo_pago and comprobante only.
	UpdateDatos(ctx context.Context, p *model.PagoCuota) error
	ListByCuota(ctx context.Context, cuotaID uuid.UUID) ([]model.PagoCuota, error)
	ListByVenta(ctx context.Context, ventaID uuid.UUID) ([]model.PagoCuota, error)
	ListRecientes(ctx context.Context, limit int) ([]model.PagoCuota, error)
	// FindRecibo loads a payment with everything its receipt prints.
	FindRecibo(ctx context.Context, id uuid.UUID) (*ReciboPago, error)
}

// ReciboPago is a payment joined to its installment, sale, buyer and parcel.
type ReciboPago struct {
	Pago  model.PagoCuota
	Cuota model.Cuota
	Venta model.Venta // Cliente and Lote preloaded
}

type pagoRepo struct{ db *gorm.DB }

func NewPagoRepository(db *gorm.DB) PagoRepository { return &pagoRepo{db: db} }

func (r *pagoRepo) CreateTx(ctx context.Context, tx *gorm.DB, p *model.PagoCuota) error {
	return tx.WithContext(ctx).Create(p).Error
}

func (r *pagoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.PagoCuota, error) {
	var p model.PagoCuota
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *pagoRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.PagoCuota, error) {
	var p model.PagoCuota
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&p, "id = ?", id).Error
	return &p, err
}

func (r *pagoRepo) DeleteTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	res := tx.WithContext(ctx).Delete(&model.PagoCuota{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *pagoRepo) UltimoPagoTx(ctx context.Context, tx *gorm.DB, cuotaID uuid.UUID) (*model.PagoCuota, error) {
	var p model.PagoCuota
	err := tx.WithContext(ctx).
		Where("cuota_id = ?", cuotaID).
		Order("created_at DESC").Order("id DESC").
		First(&p).Error
	return &p, err
}

func (r *pagoRepo) UpdateDatos(ctx context.Context, p *model.PagoCuota) error {
	res := r.db.WithContext(ctx).Model(&model.PagoCuota{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"metodo_pago": p.MetodoPago,
			"comprobante": p.Comprobante,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *pagoRepo) ListByCuota(ctx context.Context, cuotaID uuid.UUID) ([]model.PagoCuota, error) {
	var pagos []model.PagoCuota
	err := r.db.WithContext(ctx).
		Where("cuota_id = ?", cuotaID).
		Order("fecha_pago ASC").Order("id ASC").
		Find(&pagos).Error
	return pagos, err
}

func (r *pagoRepo) ListByVenta(ctx context.Context, ventaID uuid.UUID) ([]model.PagoCuota, error) {
	var pagos []model.PagoCuota
	err := r.db.WithContext(ctx).
		Joins("JOIN cuotas ON cuotas.id = pagos_cuotas.cuota_id").
		Joins("JOIN planes_pago ON planes_pago.id = cuotas.plan_id").
		Joins("JOIN venta_credito ON venta_credito.id = planes_pago.venta_credito_id").
		Where("venta_credito.venta_id = ?", ventaID).
		Order("pagos_cuotas.fecha_pago DESC").Order("pagos_cuotas.id DESC").
		Find(&pagos).Error
	return pagos, err
}

func (r *pagoRepo) ListRecientes(ctx context.Context, limit int) ([]model.PagoCuota, error) {
	var pagos []model.PagoCuota
	err := r.db.WithContext(ctx).
		Order("created_at DESC").Order("id DESC").
		Limit(limit).
		Find(&pagos).Error
	return pagos, err
}

func (r *pagoRepo) FindRecibo(ctx context.Context, id uuid.UUID) (*ReciboPago, error) {
	db := r.db.WithContext(ctx)
	var rec ReciboPago
	if err := db.First(&rec.Pago, "id = ?", id).Error; err != nil {
		return nil, err
	}
	if err := db.First(&rec.Cuota, "id = ?", rec.Pago.CuotaID).Error; err != nil {
		return nil, err
	}
	err := db.
		Preload("Cliente").
		Preload("Lote").
		Joins("JOIN venta_credito ON venta_credito.venta_id = ventas.id").
		Joins("JOIN planes_pago ON planes_pago.venta_credito_id = venta_credito.id").
		Where("planes_pago.id = ?", rec.Cuota.PlanID).
		First(&rec.Venta).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
