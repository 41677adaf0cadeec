package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// CrearVentaRequest is the body of POST /v1/ventas. Exactly one of
// DatosContado / DatosCredito must be present, matching TipoVenta.
type CrearVentaRequest struct {
	FechaVenta   string               `json:"fecha_venta"   validate:"required"`
	TipoVenta    string               `json:"tipo_venta"    validate:"required,oneof=contado credito"`
	EmpleadoID   string               `json:"id_empleado"   validate:"required,uuid"`
	ClienteID    string               `json:"id_cliente"    validate:"required,uuid"`
	LoteID       string               `json:"id_lote"       validate:"required,uuid"`
	DatosContado *DatosContadoRequest `json:"datos_contado" validate:"omitempty"`
	DatosCredito *DatosCreditoRequest `json:"datos_credito" validate:"omitempty"`
}

type DocumentoRequest struct {
	TipoDocumento string  `json:"tipo_documento" validate:"required,max=50"`
	FechaEmision  string  `json:"fecha_emision"  validate:"required,datetime=2006-01-02"`
	ArchivoRuta   *string `json:"archivo_ruta"`
	Estado        *string `json:"estado"         validate:"omitempty,oneof=pendiente emitido"`
}

type DatosContadoRequest struct {
	MetodoPago      string            `json:"metodo_pago"      validate:"required,max=30"`
	Descuento       decimal.Decimal   `json:"descuento"        validate:"min=0"`
	MontoTotal      decimal.Decimal   `json:"monto_total"      validate:"required,gt=0"`
	ComprobantePago *string           `json:"comprobante_pago"`
	Impuestos       decimal.Decimal   `json:"impuestos"        validate:"min=0"`
	Observaciones   *string           `json:"observaciones"`
	Documento       *DocumentoRequest `json:"documento"        validate:"required"`
}

type CuotaRequest struct {
	MontoCuota decimal.Decimal `json:"monto_cuota" validate:"required,gt=0"`
	FechaVenc  string          `json:"fecha_venc"  validate:"required,datetime=2006-01-02"`
}

type PlanPagoRequest struct {
	CuotaInicial decimal.Decimal `json:"cuota_inicial" validate:"min=0"`
	FechaInicial string          `json:"fecha_inicial" validate:"required,datetime=2006-01-02"`
	FechaFinal   string          `json:"fecha_final"   validate:"required,datetime=2006-01-02"`
	PlazoAnios   int             `json:"plazo_anio"    validate:"min=0"`
	MontoFinal   decimal.Decimal `json:"monto_final"   validate:"min=0"`
	Cuotas       []CuotaRequest  `json:"cuotas"        validate:"required,min=1,dive"`
}

type DatosCreditoRequest struct {
	PlanFinanciamiento string           `json:"plan_financiamiento" validate:"required"`
	CuotaInicial       decimal.Decimal  `json:"cuota_inicial"       validate:"min=0"`
	SaldoPendiente     decimal.Decimal  `json:"saldo_pendiente"     validate:"min=0"`
	Plazo              int              `json:"plazo"               validate:"min=0"`
	TasaInteres        decimal.Decimal  `json:"tasa_interes"        validate:"min=0"`
	PlanPago           *PlanPagoRequest `json:"plan_pago"           validate:"required"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type DocumentoResponse struct {
	ID            string  `json:"id"`
	TipoDocumento string  `json:"tipo_documento"`
	FechaEmision  string  `json:"fecha_emision"`
	ArchivoRuta   *string `json:"archivo_ruta"`
	Estado        string  `json:"estado"`
}

type VentaContadoResponse struct {
	ID              string             `json:"id"`
	MetodoPago      string             `json:"metodo_pago"`
	Descuento       decimal.Decimal    `json:"descuento"`
	MontoTotal      decimal.Decimal    `json:"monto_total"`
	ComprobantePago *string            `json:"comprobante_pago"`
	Impuestos       decimal.Decimal    `json:"impuestos"`
	Observaciones   *string            `json:"observaciones"`
	Documento       *DocumentoResponse `json:"documento,omitempty"`
}

type CuotaResponse struct {
	ID          string          `json:"id"`
	PlanID      string          `json:"plan_id"`
	Numero      int             `json:"numero"`
	MontoCuota  decimal.Decimal `json:"monto_cuota"`
	FechaVenc   string          `json:"fecha_venc"`
	MontoPagado decimal.Decimal `json:"monto_pagado"`
	Saldo       decimal.Decimal `json:"saldo"`
	Estado      string          `json:"estado"`
	FechaPago   *string         `json:"fecha_pago"`
}

type PlanPagoResponse struct {
	ID           string          `json:"id"`
	CuotaInicial decimal.Decimal `json:"cuota_inicial"`
	FechaInicial string          `json:"fecha_inicial"`
	FechaFinal   string          `json:"fecha_final"`
	PlazoAnios   int             `json:"plazo_anio"`
	MontoFinal   decimal.Decimal `json:"monto_final"`
	Cuotas       []CuotaResponse `json:"cuotas"`
}

type VentaCreditoResponse struct {
	ID                 string            `json:"id"`
	PlanFinanciamiento string            `json:"plan_financiamiento"`
	CuotaInicial       decimal.Decimal   `json:"cuota_inicial"`
	SaldoPendiente     decimal.Decimal   `json:"saldo_pendiente"`
	Plazo              int               `json:"plazo"`
	TasaInteres        decimal.Decimal   `json:"tasa_interes"`
	Estado             string            `json:"estado"`
	Plan               *PlanPagoResponse `json:"plan_pago,omitempty"`
}

type VentaResponse struct {
	ID         string                `json:"id"`
	FechaVenta string                `json:"fecha_venta"`
	TipoVenta  string                `json:"tipo_venta"`
	ClienteID  string                `json:"id_cliente"`
	EmpleadoID string                `json:"id_empleado"`
	LoteID     string                `json:"id_lote"`
	CreatedAt  string                `json:"created_at"`
	Contado    *VentaContadoResponse `json:"datos_contado,omitempty"`
	Credito    *VentaCreditoResponse `json:"datos_credito,omitempty"`
}
