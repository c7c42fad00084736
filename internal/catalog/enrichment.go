package catalog

import (
	"fmt"

	"zproveart-backend/internal/database"
	"zproveart-backend/internal/models"
)

// Tamaño de lote para las consultas por lista de artículos: las exportaciones
// pueden pedir decenas de miles de referencias y un IN sin acotar no escala.
const enrichBatchSize = 500

// Ventana móvil: los 12 meses naturales completos que terminan en el mes en
// curso, incluido. El tope superior es exclusivo (primer día del mes siguiente).
const sales12mSQL = `
    SELECT
        ITMREF_0,
        ANNO_0,
        MES_0,
        COMPRAS_0,
        VENTAS_0
    FROM ZCOMVENMES
    WHERE ITMREF_0 IN ?
      AND make_date(ANNO_0, MES_0, 1) >= (date_trunc('month', CURRENT_DATE) - INTERVAL '11 months')::date
      AND make_date(ANNO_0, MES_0, 1) <  (date_trunc('month', CURRENT_DATE) + INTERVAL '1 month')::date
    ORDER BY ITMREF_0, ANNO_0 DESC, MES_0 DESC
`

const etaSQL = `
    SELECT
        ITMREF_0,
        FECHA_0,
        QTY_0,
        VCR_0
    FROM ZPROART3
    WHERE ITMREF_0 IN ?
      AND FECHA_0 IS NOT NULL
    ORDER BY ITMREF_0, FECHA_0 ASC
`

// chunkRefs parte refs en trozos de como mucho size elementos, en orden.
func chunkRefs(refs []string, size int) [][]string {
	if len(refs) == 0 {
		return nil
	}
	var out [][]string
	for start := 0; start < len(refs); start += size {
		end := start + size
		if end > len(refs) {
			end = len(refs)
		}
		out = append(out, refs[start:end])
	}
	return out
}

// FetchSales12M devuelve las filas mensuales de compra/venta de los últimos
// 12 meses para los artículos dados. Lista vacía -> resultado vacío sin
// tocar la base de datos.
func FetchSales12M(itmrefs []string) ([]models.SalesMonthRow, error) {
	if len(itmrefs) == 0 {
		return nil, nil
	}

	var all []models.SalesMonthRow
	for _, batch := range chunkRefs(itmrefs, enrichBatchSize) {
		var rows []models.SalesMonthRow
		if err := database.DB.Raw(sales12mSQL, batch).Scan(&rows).Error; err != nil {
			return nil, fmt.Errorf("leyendo ventas 12m: %w", err)
		}
		all = append(all, rows...)
	}
	return all, nil
}

// FetchETARows devuelve las llegadas previstas (fecha no nula) de los
// artículos dados, ordenadas por fecha ascendente dentro de cada artículo.
func FetchETARows(itmrefs []string) ([]models.ETARow, error) {
	if len(itmrefs) == 0 {
		return nil, nil
	}

	var all []models.ETARow
	for _, batch := range chunkRefs(itmrefs, enrichBatchSize) {
		var rows []models.ETARow
		if err := database.DB.Raw(etaSQL, batch).Scan(&rows).Error; err != nil {
			return nil, fmt.Errorf("leyendo fechas previstas: %w", err)
		}
		all = append(all, rows...)
	}
	return all, nil
}
