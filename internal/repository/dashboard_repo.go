package repository

import (
	"context"
	"time"

	"github.com/HarryYanarico/my-proyect/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// VentasMesRow is one sparse month of sale counts.
type VentasMesRow struct {
	Anio    int
	Mes     int
	Contado int64
	Credito int64
}

// CuotaVencidaRow is one overdue installment, already ranked within its month.
type CuotaVencidaRow struct {
	CuotaID     uuid.UUID
	Anio        int
	Mes         int
	Cliente     string
	Lote        string
	Monto       decimal.Decimal
	FechaVenc   time.Time
	DiasVencido int
}

type ResumenRow struct {
	TotalClientes    int64
	LotesDisponibles int64
	LotesVendidos    int64
	VentasMes        int64
	IngresosContado  decimal.Decimal
	IngresosCuotas   decimal.Decimal
	CuotasPendientes int64
	EmpleadosActivos int64
}

type VentaRecienteRow struct {
	VentaID    uuid.UUID
	FechaVenta time.Time
	TipoVenta  string
	Cliente    string
	Lote       string
	Monto      decimal.Decimal
}

// RangoFechas is the [Min, Max] date span of a fact table; both nil when empty.
type RangoFechas struct {
	Min *time.Time
	Max *time.Time
}

type DashboardRepository interface {
	RangoVentas(ctx context.Context) (RangoFechas, error)
	// VentasPorMes groups sales in [desde, hasta) by calendar month.
	VentasPorMes(ctx context.Context, desde, hasta time.Time) ([]VentasMesRow, error)
	RangoCuotasVencidas(ctx context.Context, hoy time.Time) (RangoFechas, error)
	// CuotasVencidasPorMes returns at most porMes overdue installments per
	// month due in [desde, hasta), ordered by month then due date.
	CuotasVencidasPorMes(ctx context.Context, hoy, desde, hasta time.Time, porMes int) ([]CuotaVencidaRow, error)
	Resumen(ctx context.Context, desde, hasta time.Time) (*ResumenRow, error)
	VentasRecientes(ctx context.Context, limit int) ([]VentaRecienteRow, error)
}

type dashboardRepo struct{ db *gorm.DB }

func NewDashboardRepository(db *gorm.DB) DashboardRepository { return &dashboardRepo{db: db} }

func (r *dashboardRepo) RangoVentas(ctx context.Context) (RangoFechas, error) {
	var rango RangoFechas
	err := r.db.WithContext(ctx).
		Raw(`SELECT MIN(fecha_venta) AS min, MAX(fecha_venta) AS max FROM ventas`).
		Row().Scan(&rango.Min, &rango.Max)
	return rango, err
}

func (r *dashboardRepo) VentasPorMes(ctx context.Context, desde, hasta time.Time) ([]VentasMesRow, error) {
	var rows []VentasMesRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT EXTRACT(YEAR FROM fecha_venta)::int  AS anio,
		       EXTRACT(MONTH FROM fecha_venta)::int AS mes,
		       COUNT(*) FILTER (WHERE tipo_venta = 'contado') AS contado,
		       COUNT(*) FILTER (WHERE tipo_venta = 'credito') AS credito
		FROM ventas
		WHERE fecha_venta >= ? AND fecha_venta < ?
		GROUP BY 1, 2
		ORDER BY 1, 2`, desde, hasta).
		Scan(&rows).Error
	return rows, err
}

func (r *dashboardRepo) RangoCuotasVencidas(ctx context.Context, hoy time.Time) (RangoFechas, error) {
	var rango RangoFechas
	err := r.db.WithContext(ctx).
		Raw(`SELECT MIN(fecha_venc) AS min, MAX(fecha_venc) AS max
		     FROM cuotas WHERE estado = ? AND fecha_venc < ?`, model.CuotaPendiente, hoy).
		Row().Scan(&rango.Min, &rango.Max)
	return rango, err
}

func (r *dashboardRepo) CuotasVencidasPorMes(ctx context.Context, hoy, desde, hasta time.Time, porMes int) ([]CuotaVencidaRow, error) {
	var rows []CuotaVencidaRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT cuota_id, anio, mes, cliente, lote, monto, fecha_venc, dias_vencido
		FROM (
			SELECT c.id AS cuota_id,
			       EXTRACT(YEAR FROM c.fecha_venc)::int  AS anio,
			       EXTRACT(MONTH FROM c.fecha_venc)::int AS mes,
			       TRIM(cl.nombre || ' ' || cl.apellido) AS cliente,
			       l.nombre AS lote,
			       c.monto_cuota - c.monto_pagado AS monto,
			       c.fecha_venc,
			       (CAST(@hoy AS date) - c.fecha_venc) AS dias_vencido,
			       ROW_NUMBER() OVER (
			           PARTITION BY date_trunc('month', c.fecha_venc)
			           ORDER BY c.fecha_venc ASC, (CAST(@hoy AS date) - c.fecha_venc) DESC, c.id
			       ) AS rn
			FROM cuotas c
			JOIN planes_pago p    ON p.id = c.plan_id
			JOIN venta_credito vc ON vc.id = p.venta_credito_id
			JOIN ventas v         ON v.id = vc.venta_id
			JOIN clientes cl      ON cl.id = v.cliente_id
			JOIN lotes l          ON l.id = v.lote_id
			WHERE c.estado = @estado
			  AND c.fecha_venc < @hoy
			  AND c.fecha_venc >= @desde AND c.fecha_venc < @hasta
		) ranked
		WHERE rn <= @por_mes
		ORDER BY anio, mes, fecha_venc ASC, dias_vencido DESC`,
		map[string]interface{}{
			"hoy":     hoy,
			"estado":  model.CuotaPendiente,
			"desde":   desde,
			"hasta":   hasta,
			"por_mes": porMes,
		}).
		Scan(&rows).Error
	return rows, err
}

func (r *dashboardRepo) Resumen(ctx context.Context, desde, hasta time.Time) (*ResumenRow, error) {
	db := r.db.WithContext(ctx)
	var res ResumenRow

	if err := db.Model(&model.Cliente{}).Count(&res.TotalClientes).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Lote{}).Where("estado = ?", model.LoteDisponible).Count(&res.LotesDisponibles).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Lote{}).Where("estado = ?", model.LoteVendido).Count(&res.LotesVendidos).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Venta{}).
		Where("fecha_venta >= ? AND fecha_venta < ?", desde, hasta).
		Count(&res.VentasMes).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Cuota{}).
		Where("estado IN ?", []string{model.CuotaPendiente, model.CuotaParcial}).
		Count(&res.CuotasPendientes).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Empleado{}).Where("activo = ?", true).Count(&res.EmpleadosActivos).Error; err != nil {
		return nil, err
	}
	if err := db.Raw(`
		SELECT COALESCE(SUM(vc.monto_total), 0)
		FROM venta_contado vc JOIN ventas v ON v.id = vc.venta_id
		WHERE v.fecha_venta >= ? AND v.fecha_venta < ?`, desde, hasta).
		Row().Scan(&res.IngresosContado); err != nil {
		return nil, err
	}
	if err := db.Raw(`
		SELECT COALESCE(SUM(monto), 0) FROM pagos_cuotas
		WHERE fecha_pago >= ? AND fecha_pago < ?`, desde, hasta).
		Row().Scan(&res.IngresosCuotas); err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *dashboardRepo) VentasRecientes(ctx context.Context, limit int) ([]VentaRecienteRow, error) {
	var rows []VentaRecienteRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT v.id AS venta_id, v.fecha_venta, v.tipo_venta,
		       TRIM(cl.nombre || ' ' || cl.apellido) AS cliente,
		       l.nombre AS lote,
		       COALESCE(vco.monto_total, vcr.cuota_inicial, 0) AS monto
		FROM ventas v
		JOIN clientes cl ON cl.id = v.cliente_id
		JOIN lotes l     ON l.id = v.lote_id
		LEFT JOIN venta_contado vco ON vco.venta_id = v.id
		LEFT JOIN venta_credito vcr ON vcr.venta_id = v.id
		ORDER BY v.created_at DESC, v.id DESC
		LIMIT ?`, limit).
		Scan(&rows).Error
	return rows, err
}
