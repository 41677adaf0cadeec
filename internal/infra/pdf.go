package infra

// pdf.go: sale documents and installment receipts rendered with go-pdf/fpdf.
// Files land in storagePath as documento_{id}.pdf and recibo_{id}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/HarryYanarico/my-proyect/internal/model"

	"github.com/go-pdf/fpdf"
)

// DocumentoVentaPDF is the data printed on a cash-sale document. Venta must
// carry Cliente, Lote and Contado.
type DocumentoVentaPDF struct {
	Empresa   string
	Documento *model.DocumentoVenta
	Venta     *model.Venta
}

// ReciboPagoPDF is the data printed on an installment receipt.
type ReciboPagoPDF struct {
	Empresa string
	Pago    *model.PagoCuota
	Cuota   *model.Cuota
	Cliente *model.Cliente
	Lote    *model.Lote
}

const (
	fmtFecha  = "02/01/2006"
	margenDoc = 15.0
)

// GenerateDocumentoVentaPDF writes an A4 sale document and returns its path.
func GenerateDocumentoVentaPDF(d DocumentoVentaPDF, storagePath string) (string, error) {
	if d.Documento == nil || d.Venta == nil || d.Venta.Contado == nil {
		return "", fmt.Errorf("pdf: documento incompleto")
	}
	v := d.Venta
	pdf := nuevoA4(d.Empresa, d.Documento.TipoDocumento)

	pdf.SetFont("Helvetica", "", 10)
	fila(pdf, "Documento", d.Documento.ID.String())
	fila(pdf, "Fecha de emisión", d.Documento.FechaEmision.Format(fmtFecha))
	fila(pdf, "Fecha de venta", v.FechaVenta.Format(fmtFecha))
	if v.Cliente != nil {
		fila(pdf, "Cliente", v.Cliente.NombreCompleto())
		fila(pdf, "CI / NIT", v.Cliente.CINit)
	}
	if v.Lote != nil {
		fila(pdf, "Lote", v.Lote.Nombre)
		if v.Lote.Ubicacion != nil {
			fila(pdf, "Ubicación", *v.Lote.Ubicacion)
		}
	}
	separador(pdf)

	c := v.Contado
	fila(pdf, "Método de pago", c.MetodoPago)
	if !c.Descuento.IsZero() {
		fila(pdf, "Descuento", "Bs "+c.Descuento.StringFixed(2))
	}
	if !c.Impuestos.IsZero() {
		fila(pdf, "Impuestos", "Bs "+c.Impuestos.StringFixed(2))
	}
	pdf.SetFont("Helvetica", "B", 12)
	fila(pdf, "TOTAL", "Bs "+c.MontoTotal.StringFixed(2))

	if c.Observaciones != nil && *c.Observaciones != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(0, 5, tr(pdf, *c.Observaciones), "", "L", false)
	}

	return guardar(pdf, storagePath, fmt.Sprintf("documento_%s.pdf", d.Documento.ID))
}

// GenerateReciboPagoPDF writes an A5 receipt for one installment payment.
func GenerateReciboPagoPDF(r ReciboPagoPDF, storagePath string) (string, error) {
	if r.Pago == nil || r.Cuota == nil {
		return "", fmt.Errorf("pdf: recibo incompleto")
	}
	pdf := fpdf.New("L", "mm", "A5", "")
	encabezado(pdf, r.Empresa, "Recibo de pago")

	pdf.SetFont("Helvetica", "", 10)
	fila(pdf, "Recibo", r.Pago.ID.String())
	fila(pdf, "Fecha de pago", r.Pago.FechaPago.Format(fmtFecha))
	if r.Cliente != nil {
		fila(pdf, "Recibimos de", r.Cliente.NombreCompleto())
	}
	if r.Lote != nil {
		fila(pdf, "Por el lote", r.Lote.Nombre)
	}
	fila(pdf, "Cuota", fmt.Sprintf("N° %d, vence %s", r.Cuota.Numero, r.Cuota.FechaVenc.Format(fmtFecha)))
	fila(pdf, "Método", r.Pago.MetodoPago)
	separador(pdf)

	pdf.SetFont("Helvetica", "B", 12)
	fila(pdf, "Monto recibido", "Bs "+r.Pago.Monto.StringFixed(2))
	pdf.SetFont("Helvetica", "", 10)
	fila(pdf, "Saldo de la cuota", "Bs "+r.Cuota.Restante().StringFixed(2))

	return guardar(pdf, storagePath, fmt.Sprintf("recibo_%s.pdf", r.Pago.ID))
}

func nuevoA4(empresa, titulo string) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	encabezado(pdf, empresa, titulo)
	return pdf
}

func encabezado(pdf *fpdf.Fpdf, empresa, titulo string) {
	pdf.SetMargins(margenDoc, margenDoc, margenDoc)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 9, tr(pdf, empresa), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, tr(pdf, titulo), "", 1, "C", false, 0, "")
	separador(pdf)
}

func fila(pdf *fpdf.Fpdf, etiqueta, valor string) {
	pdf.CellFormat(50, 7, tr(pdf, etiqueta+":"), "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 7, tr(pdf, valor), "", 1, "L", false, 0, "")
}

func separador(pdf *fpdf.Fpdf) {
	pageW, _ := pdf.GetPageSize()
	pdf.Ln(2)
	pdf.Line(margenDoc, pdf.GetY(), pageW-margenDoc, pdf.GetY())
	pdf.Ln(3)
}

// tr converts UTF-8 to the cp1252 encoding of the core fonts.
func tr(pdf *fpdf.Fpdf, s string) string {
	return pdf.UnicodeTranslatorFromDescriptor("")(s)
}

func guardar(pdf *fpdf.Fpdf, storagePath, nombre string) (string, error) {
	if err := os.MkdirAll(storagePath, 0o755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	ruta := filepath.Join(storagePath, nombre)
	if err := pdf.OutputFileAndClose(ruta); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return ruta, nil
}
