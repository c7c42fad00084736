package fotos

import (
	"net/url"

	"zproveart-backend/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/proxy"
)

// GET /api/foto?u=http://...
// Sirve la foto del artículo desde el servidor interno de imágenes.
// Solo http/https y solo hacia los hosts permitidos: esto no es un proxy abierto.
func FotoHandler(cfg *config.Config) fiber.Handler {
	allowed := make(map[string]bool, len(cfg.FotoAllowedHosts))
	for _, h := range cfg.FotoAllowedHosts {
		allowed[h] = true
	}

	return func(c *fiber.Ctx) error {
		raw := c.Query("u")
		if raw == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Falta el parámetro u")
		}

		parsed, err := url.Parse(raw)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
			return fiber.NewError(fiber.StatusBadRequest, "URL inválida")
		}
		if !allowed[parsed.Hostname()] {
			return fiber.NewError(fiber.StatusForbidden, "Host no permitido")
		}

		if err := proxy.Do(c, raw); err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Foto no encontrada")
		}
		if c.Response().StatusCode() != fiber.StatusOK {
			return fiber.NewError(fiber.StatusNotFound, "Foto no encontrada")
		}

		// El upstream es interno; su cabecera Server no pinta nada aquí
		c.Response().Header.Del(fiber.HeaderServer)
		return nil
	}
}
