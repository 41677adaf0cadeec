package dto

import "github.com/shopspring/decimal"

// DashboardQuery selects the month range of a calendar report.
//   - neither page nor year: trailing window ending in the current month
//   - year: January..December of that year, paged
//   - page only: full history of the fact table, paged
type DashboardQuery struct {
	Ventana int  `form:"ventana" validate:"omitempty,min=1,max=24"`
	Page    *int `form:"page"    validate:"omitempty,min=1,max=10000"`
	Year    *int `form:"year"    validate:"omitempty,min=1900,max=9999"`
}

type VentaMensualBucket struct {
	Anio     int    `json:"anio"`
	Mes      int    `json:"mes"`
	Etiqueta string `json:"etiqueta"`
	Contado  int64  `json:"contado"`
	Credito  int64  `json:"credito"`
	Total    int64  `json:"total"`
}

type VentasMensualesResponse struct {
	Data         []VentaMensualBucket `json:"data"`
	PaginaActual int                  `json:"pagina_actual"`
	TotalPaginas int                  `json:"total_paginas"`
}

type CuotaVencidaItem struct {
	CuotaID          string          `json:"id_cuota"`
	Cliente          string          `json:"cliente"`
	Lote             string          `json:"lote"`
	Monto            decimal.Decimal `json:"monto"`
	FechaVencimiento string          `json:"fecha_vencimiento"`
	DiasVencido      int             `json:"dias_vencido"`
}

type CuotasVencidasBucket struct {
	Anio     int                `json:"anio"`
	Mes      int                `json:"mes"`
	Etiqueta string             `json:"etiqueta"`
	Cuotas   []CuotaVencidaItem `json:"cuotas"`
}

type CuotasVencidasResponse struct {
	Data         []CuotasVencidasBucket `json:"data"`
	PaginaActual int                    `json:"pagina_actual"`
	TotalPaginas int                    `json:"total_paginas"`
}

type DashboardResumenResponse struct {
	TotalClientes    int64           `json:"total_clientes"`
	LotesDisponibles int64           `json:"lotes_disponibles"`
	LotesVendidos    int64           `json:"lotes_vendidos"`
	VentasMes        int64           `json:"ventas_mes"`
	IngresosMes      decimal.Decimal `json:"ingresos_mes"`
	CuotasPendientes int64           `json:"cuotas_pendientes"`
	EmpleadosActivos int64           `json:"empleados_activos"`
}

type VentaRecienteItem struct {
	VentaID    string          `json:"id_venta"`
	FechaVenta string          `json:"fecha_venta"`
	TipoVenta  string          `json:"tipo_venta"`
	Cliente    string          `json:"cliente"`
	Lote       string          `json:"lote"`
	Monto      decimal.Decimal `json:"monto"`
}
