package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	CORSOrigins string

	// Directorio donde se escriben los logs diarios de selección (xlsx)
	ExportDir string

	// Hosts permitidos para el proxy de fotos (separados por coma)
	FotoAllowedHosts []string

	// Límites de consulta
	DefaultPageSize int
	MaxPageSize     int
	MaxExportRows   int

	// TTL de las cachés de familias/subfamilias
	RefCacheTTL time.Duration
}

func Load() *Config {
	cfg := &Config{
		HTTPPort:         getEnv("HTTP_PORT", "8080"),
		DatabaseDSN:      getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=zproveart port=5432 sslmode=disable"),
		CORSOrigins:      getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		ExportDir:        getEnv("EXPORT_DIR", "exports"),
		FotoAllowedHosts: splitHosts(getEnv("FOTO_ALLOWED_HOSTS", "192.168.1.82")),
		DefaultPageSize:  getEnvInt("DEFAULT_PAGE_SIZE", 25),
		MaxPageSize:      getEnvInt("MAX_PAGE_SIZE", 200),
		MaxExportRows:    getEnvInt("MAX_EXPORT_ROWS", 50000),
		RefCacheTTL:      getEnvDuration("REF_CACHE_TTL", 10*time.Minute),
	}

	if cfg.DatabaseDSN == "host=localhost user=postgres password=postgres dbname=zproveart port=5432 sslmode=disable" {
		log.Println("[WARN] DATABASE_DSN usa el valor por defecto, define la conexión real para producción.")
	}
	if cfg.CORSOrigins == "http://localhost:5173" {
		log.Println("[WARN] CORS_ALLOWED_ORIGINS usa el valor por defecto, define tu dominio para producción.")
	}
	if cfg.MaxPageSize < 1 || cfg.MaxExportRows < 1 {
		log.Fatal("[FATAL] MAX_PAGE_SIZE y MAX_EXPORT_ROWS deben ser >= 1")
	}

	return cfg
}

func splitHosts(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("[WARN] %s=%q no es un entero, se usa %d", key, v, def)
		return def
	}
	return n
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("[WARN] %s=%q no es una duración válida, se usa %s", key, v, def)
		return def
	}
	return d
}
