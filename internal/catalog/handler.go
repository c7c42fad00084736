package catalog

import (
	"log"
	"net/url"
	"time"

	"zproveart-backend/internal/config"
	"zproveart-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// -------------------------
// Tipos de respuesta
// -------------------------

type ProductListResponse struct {
	Products   []ProductView `json:"products"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	Total      int64         `json:"total"`
	TotalPages int           `json:"total_pages"`
}

type FamiliesResponse struct {
	Families []models.FamilyRow `json:"families"`
}

type SubfamiliesResponse struct {
	Subfamilies []models.SubfamilyRow `json:"subfamilies"`
}

// FilterFromCtx arma el filtro canónico desde los parámetros de la petición.
func FilterFromCtx(c *fiber.Ctx, now time.Time) models.ProductFilter {
	params := make(url.Values)
	c.Context().QueryArgs().VisitAll(func(key, val []byte) {
		params.Add(string(key), string(val))
	})
	return BuildFilter(params, now)
}

// GET /api/zproveart
// Listado paginado: cuenta, acota la página, trae la página y la enriquece
// con ventas 12m y llegadas previstas ya formateadas.
func ListProductsHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		now := time.Now()
		filter := FilterFromCtx(c, now)

		pageSize := ClampPageSize(
			ParsePositiveInt(c.Query("page_size"), cfg.DefaultPageSize),
			cfg.MaxPageSize,
		)

		total, err := CountProducts(filter)
		if err != nil {
			log.Printf("Error contando productos: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo consultar el catálogo")
		}

		page, totalPages := ClampPage(ParsePositiveInt(c.Query("page"), 1), total, pageSize)

		rows, err := GetProducts(filter, page, pageSize)
		if err != nil {
			log.Printf("Error listando productos: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo consultar el catálogo")
		}

		views, err := EnrichAndFormat(rows, now)
		if err != nil {
			log.Printf("Error enriqueciendo productos: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo consultar el catálogo")
		}

		return c.JSON(ProductListResponse{
			Products:   views,
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
		})
	}
}

// EnrichAndFormat trae ventas 12m y llegadas previstas de las filas dadas y
// devuelve los registros de presentación. Lo comparten el listado y las
// exportaciones.
func EnrichAndFormat(rows []models.ProductRow, now time.Time) ([]ProductView, error) {
	itmrefs := make([]string, 0, len(rows))
	for _, r := range rows {
		if r.ItmRef != "" {
			itmrefs = append(itmrefs, r.ItmRef)
		}
	}

	sales, err := FetchSales12M(itmrefs)
	if err != nil {
		return nil, err
	}
	eta, err := FetchETARows(itmrefs)
	if err != nil {
		return nil, err
	}

	return FormatProducts(rows, sales, eta, now), nil
}

// GET /api/zproveart/count
func CountProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter := FilterFromCtx(c, time.Now())

		total, err := CountProducts(filter)
		if err != nil {
			log.Printf("Error contando productos: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo consultar el catálogo")
		}

		return c.JSON(fiber.Map{"total": total})
	}
}

// GET /api/zproveart/families
func ListFamiliesHandler(cache *FamilyCache) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fams, err := cache.Get()
		if err != nil {
			log.Printf("Error leyendo familias: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron cargar las familias")
		}
		return c.JSON(FamiliesResponse{Families: fams})
	}
}

// GET /api/zproveart/subfamilies?family=10
func ListSubfamiliesHandler(cache *SubfamilyCache) fiber.Handler {
	return func(c *fiber.Ctx) error {
		family := c.Query("family")
		if family == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Falta el parámetro family")
		}

		subs, err := cache.Get(family)
		if err != nil {
			log.Printf("Error leyendo subfamilias de %q: %v", family, err)
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron cargar las subfamilias")
		}
		return c.JSON(SubfamiliesResponse{Subfamilies: subs})
	}
}
