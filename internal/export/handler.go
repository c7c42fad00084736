package export

import (
	"fmt"
	"log"
	"strings"
	"time"

	"zproveart-backend/internal/catalog"
	"zproveart-backend/internal/config"

	"github.com/gofiber/fiber/v2"
)

type SeleccionRequest struct {
	ItmRef   string `json:"itmref" form:"itmref"`
	Selected bool   `json:"selected" form:"selected"`
	Comment  string `json:"comment" form:"comment"`
}

// GET /api/zproveart/export/pdf
// Exporta el listado completo (acotado a MAX_EXPORT_ROWS) con los mismos
// filtros que el listado paginado.
func PDFHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		now := time.Now()
		filter := catalog.FilterFromCtx(c, now)

		maxRows := catalog.ClampRowCap(
			catalog.ParsePositiveInt(c.Query("max_rows"), cfg.MaxExportRows),
			cfg.MaxExportRows,
		)

		rows, err := catalog.GetProductsAll(filter, maxRows)
		if err != nil {
			log.Printf("Error listando productos para PDF: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo generar el PDF")
		}

		views, err := catalog.EnrichAndFormat(rows, now)
		if err != nil {
			log.Printf("Error enriqueciendo productos para PDF: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo generar el PDF")
		}

		buf, err := BuildCatalogPDF(views, now)
		if err != nil {
			log.Printf("Error generando PDF: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo generar el PDF")
		}

		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition,
			fmt.Sprintf(`attachment; filename="zproveart_%s.pdf"`, now.Format("20060102")))
		return c.Send(buf.Bytes())
	}
}

// POST /api/zproveart/seleccion
// Apunta una selección de artículo en el log diario xlsx.
func SeleccionHandler(logbook *SelectionLog) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SeleccionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
		}

		body.ItmRef = strings.TrimSpace(body.ItmRef)
		if body.ItmRef == "" {
			return fiber.NewError(fiber.StatusBadRequest, "itmref no puede estar vacío")
		}

		path, err := logbook.Append(body.ItmRef, body.Selected, strings.TrimSpace(body.Comment))
		if err != nil {
			log.Printf("Error escribiendo selección de %s: %v", body.ItmRef, err)
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo guardar la selección")
		}

		return c.JSON(fiber.Map{"ok": true, "file": path})
	}
}
