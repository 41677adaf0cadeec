package service

import (
	"time"

	"github.com/HarryYanarico/my-proyect/internal/dto"
	"github.com/HarryYanarico/my-proyect/internal/model"
)

func ventaToResponse(v *model.Venta) *dto.VentaResponse {
	resp := &dto.VentaResponse{
		ID:         v.ID.String(),
		FechaVenta: formatearFecha(v.FechaVenta),
		TipoVenta:  v.TipoVenta,
		ClienteID:  v.ClienteID.String(),
		EmpleadoID: v.EmpleadoID.String(),
		LoteID:     v.LoteID.String(),
		CreatedAt:  v.CreatedAt.Format(time.RFC3339),
	}
	switch d := v.Detalle().(type) {
	case *model.VentaContado:
		resp.Contado = contadoToResponse(d)
	case *model.VentaCredito:
		resp.Credito = creditoToResponse(d)
	}
	return resp
}

func contadoToResponse(vc *model.VentaContado) *dto.VentaContadoResponse {
	resp := &dto.VentaContadoResponse{
		ID:              vc.ID.String(),
		MetodoPago:      vc.MetodoPago,
		Descuento:       vc.Descuento,
		MontoTotal:      vc.MontoTotal,
		ComprobantePago: vc.ComprobantePago,
		Impuestos:       vc.Impuestos,
		Observaciones:   vc.Observaciones,
	}
	if d := vc.Documento; d != nil {
		resp.Documento = &dto.DocumentoResponse{
			ID:            d.ID.String(),
			TipoDocumento: d.TipoDocumento,
			FechaEmision:  formatearFecha(d.FechaEmision),
			ArchivoRuta:   d.ArchivoRuta,
			Estado:        d.Estado,
		}
	}
	return resp
}

func creditoToResponse(vc *model.VentaCredito) *dto.VentaCreditoResponse {
	resp := &dto.VentaCreditoResponse{
		ID:                 vc.ID.String(),
		PlanFinanciamiento: vc.PlanFinanciamiento,
		CuotaInicial:       vc.CuotaInicial,
		SaldoPendiente:     vc.SaldoPendiente,
		Plazo:              vc.Plazo,
		TasaInteres:        vc.TasaInteres,
		Estado:             vc.Estado,
	}
	if p := vc.Plan; p != nil {
		plan := &dto.PlanPagoResponse{
			ID:           p.ID.String(),
			CuotaInicial: p.CuotaInicial,
			FechaInicial: formatearFecha(p.FechaInicial),
			FechaFinal:   formatearFecha(p.FechaFinal),
			PlazoAnios:   p.PlazoAnios,
			MontoFinal:   p.MontoFinal,
			Cuotas:       make([]dto.CuotaResponse, 0, len(p.Cuotas)),
		}
		for i := range p.Cuotas {
			plan.Cuotas = append(plan.Cuotas, cuotaToResponse(&p.Cuotas[i]))
		}
		resp.Plan = plan
	}
	return resp
}

func cuotaToResponse(c *model.Cuota) dto.CuotaResponse {
	resp := dto.CuotaResponse{
		ID:          c.ID.String(),
		PlanID:      c.PlanID.String(),
		Numero:      c.Numero,
		MontoCuota:  c.MontoCuota,
		FechaVenc:   formatearFecha(c.FechaVenc),
		MontoPagado: c.MontoPagado,
		Saldo:       c.Restante(),
		Estado:      c.Estado,
	}
	if c.FechaPago != nil {
		f := formatearFecha(*c.FechaPago)
		resp.FechaPago = &f
	}
	return resp
}

func pagoToResponse(p *model.PagoCuota) dto.PagoResponse {
	return dto.PagoResponse{
		ID:          p.ID.String(),
		CuotaID:     p.CuotaID.String(),
		EmpleadoID:  p.EmpleadoID.String(),
		Monto:       p.Monto,
		FechaPago:   formatearFecha(p.FechaPago),
		MetodoPago:  p.MetodoPago,
		Comprobante: p.Comprobante,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
	}
}

func pagosToList(pagos []model.PagoCuota) *dto.PagoListResponse {
	resp := &dto.PagoListResponse{Data: make([]dto.PagoResponse, 0, len(pagos))}
	for i := range pagos {
		resp.Data = append(resp.Data, pagoToResponse(&pagos[i]))
	}
	return resp
}
