package export

import (
	"bytes"
	"fmt"
	"time"

	"zproveart-backend/internal/catalog"

	"github.com/jung-kurt/gofpdf"
)

type pdfColumn struct {
	title string
	width float64
	value func(v catalog.ProductView) string
}

// Columnas del listado PDF. Caben en A4 apaisado con márgenes de 10mm.
var pdfColumns = []pdfColumn{
	{"Artículo", 26, func(v catalog.ProductView) string { return v.ItmRef }},
	{"Descripción", 68, func(v catalog.ProductView) string { return v.ItmDes }},
	{"Proveedor", 24, func(v catalog.ProductView) string { return v.BpsNum }},
	{"Fecha", 20, func(v catalog.ProductView) string { return v.FucFmt }},
	{"FOB", 18, func(v catalog.ProductView) string { return v.FobFmt }},
	{"PVP T4", 18, func(v catalog.ProductView) string { return v.Pvpt4Fmt }},
	{"Dto", 18, func(v catalog.ProductView) string { return v.DtoFmt }},
	{"Ex. act.", 18, func(v catalog.ProductView) string { return v.ExActFmt }},
	{"Ex. disp.", 18, func(v catalog.ProductView) string { return v.ExDispFmt }},
	{"Pdte. SC", 18, func(v catalog.ProductView) string { return v.QtyPendScFmt }},
	{"Estado", 20, func(v catalog.ProductView) string { return v.EstadoFmt }},
}

// BuildCatalogPDF vuelca los registros de presentación a un PDF tabular
// apaisado. Trabaja solo sobre datos ya formateados, no consulta nada.
func BuildCatalogPDF(views []catalog.ProductView, generatedAt time.Time) (*bytes.Buffer, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.SetAutoPageBreak(true, 14)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	header := func() {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 7, tr(fmt.Sprintf("Catálogo proveedor-artículo — %s", generatedAt.Format("02/01/2006 15:04"))), "", 1, "L", false, 0, "")
		pdf.Ln(1)
		pdf.SetFont("Helvetica", "B", 7.5)
		pdf.SetFillColor(230, 230, 230)
		for _, col := range pdfColumns {
			pdf.CellFormat(col.width, 6, tr(col.title), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 7.5)
	}

	pdf.AddPage()
	header()

	for _, v := range views {
		if pdf.GetY() > 190 {
			pdf.AddPage()
			header()
		}
		for _, col := range pdfColumns {
			text := col.value(v)
			// Truncado bruto para que la celda no desborde
			if limit := int(col.width / 1.6); limit > 1 {
				if r := []rune(text); len(r) > limit {
					text = string(r[:limit-1]) + "…"
				}
			}
			pdf.CellFormat(col.width, 5.5, tr(text), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetFont("Helvetica", "I", 7)
	pdf.Ln(2)
	pdf.CellFormat(0, 5, tr(fmt.Sprintf("%d artículos", len(views))), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("generando PDF: %w", err)
	}
	return &buf, nil
}
