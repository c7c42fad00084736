package database

import (
	"log"
	"time"

	"zproveart-backend/internal/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Init abre la conexión y comprueba que responde.
// Las tablas (ZTPROVEART, ZPROART3/4, ZCOMVENMES, ...) las alimenta el ERP:
// esta aplicación solo lee, no hay migraciones.
func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("No se pudo conectar a la base de datos: %v", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		log.Fatalf("No se pudo obtener el pool de conexiones: %v", err)
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)

	var one int
	if err := DB.Raw("SELECT 1").Scan(&one).Error; err != nil {
		log.Fatalf("La base de datos no responde: %v", err)
	}

	log.Println("Conexión a base de datos correcta.")
}
