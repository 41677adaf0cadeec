package dto

import "github.com/shopspring/decimal"

// RegistrarPagoRequest is the body of POST /v1/pagos. The acting employee
// comes from the access token, not from the body.
type RegistrarPagoRequest struct {
	CuotaID     string          `json:"id_cuota"    validate:"required,uuid"`
	Monto       decimal.Decimal `json:"monto"       validate:"required,gt=0"`
	FechaPago   string          `json:"fecha_pago"  validate:"required,datetime=2006-01-02"`
	MetodoPago  *string         `json:"metodo_pago" validate:"omitempty,max=30"`
	Comprobante *string         `json:"comprobante" validate:"omitempty,max=255"`
}

// ActualizarPagoRequest edits the non-financial fields of a payment.
type ActualizarPagoRequest struct {
	MetodoPago  *string `json:"metodo_pago" validate:"omitempty,max=30"`
	Comprobante *string `json:"comprobante" validate:"omitempty,max=255"`
}

type PagoResponse struct {
	ID          string          `json:"id"`
	CuotaID     string          `json:"id_cuota"`
	EmpleadoID  string          `json:"id_empleado"`
	Monto       decimal.Decimal `json:"monto"`
	FechaPago   string          `json:"fecha_pago"`
	MetodoPago  string          `json:"metodo_pago"`
	Comprobante *string         `json:"comprobante"`
	CreatedAt   string          `json:"created_at"`
}

// RegistroPagoResponse reports the installment balance before and after.
type RegistroPagoResponse struct {
	Pago          PagoResponse    `json:"pago"`
	SaldoAnterior decimal.Decimal `json:"saldo_anterior"`
	NuevoSaldo    decimal.Decimal `json:"nuevo_saldo"`
	Estado        string          `json:"estado"`
}

type ReversionPagoResponse struct {
	PagoID         string          `json:"id_pago"`
	CuotaID        string          `json:"id_cuota"`
	MontoRevertido decimal.Decimal `json:"monto_revertido"`
	Estado         string          `json:"estado"`
}

type PagoListResponse struct {
	Data []PagoResponse `json:"data"`
}

type CuotaListResponse struct {
	Data []CuotaResponse `json:"data"`
}

type PagosRecientesQuery struct {
	Limit int `form:"limit,default=10" validate:"min=1,max=100"`
}
