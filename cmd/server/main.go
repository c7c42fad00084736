package main

import (
	"log"
	"strings"

	"zproveart-backend/internal/catalog"
	"zproveart-backend/internal/config"
	"zproveart-backend/internal/database"
	"zproveart-backend/internal/export"
	"zproveart-backend/internal/fotos"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Sin fichero .env, se usan las variables de entorno del sistema")
	}

	cfg := config.Load()
	database.Init(cfg)

	famCache := catalog.NewFamilyCache(cfg.RefCacheTTL, catalog.FetchFamilies)
	subfamCache := catalog.NewSubfamilyCache(cfg.RefCacheTTL, catalog.FetchSubfamilies)

	selectionLog, err := export.NewSelectionLog(cfg.ExportDir)
	if err != nil {
		log.Fatalf("No se pudo preparar el directorio de exportación: %v", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Error inesperado:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Error inesperado del servidor",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET,POST,OPTIONS",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Catálogo
	api.Get("/zproveart", catalog.ListProductsHandler(cfg))
	api.Get("/zproveart/count", catalog.CountProductsHandler())
	api.Get("/zproveart/families", catalog.ListFamiliesHandler(famCache))
	api.Get("/zproveart/subfamilies", catalog.ListSubfamiliesHandler(subfamCache))

	// Exportaciones
	api.Get("/zproveart/export/pdf", export.PDFHandler(cfg))
	api.Post("/zproveart/seleccion", export.SeleccionHandler(selectionLog))

	// Fotos de artículo (proxy restringido)
	api.Get("/foto", fotos.FotoHandler(cfg))

	log.Println("Servidor escuchando en el puerto:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
