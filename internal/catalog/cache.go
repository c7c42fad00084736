package catalog

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"zproveart-backend/internal/database"
	"zproveart-backend/internal/models"
)

// Identificador fijo de ATABDIV bajo el que cuelgan las descripciones de
// subfamilia en ATEXTRA.
const subfamIdent1 = "21"

// Las familias/subfamilias son dimensiones casi estáticas: se ordenan con los
// códigos numéricos primero (y en orden numérico) y el resto detrás.
const famsSQL = `
    SELECT COD_FAM_0, DES_FAM_0
    FROM (
        SELECT DISTINCT COD_FAM_0, DES_FAM_0
        FROM ZPROART4
    ) AS x
    ORDER BY
        CASE WHEN COD_FAM_0 ~ '^[0-9]+$' THEN 0 ELSE 1 END,
        CASE WHEN COD_FAM_0 ~ '^[0-9]+$' THEN COD_FAM_0::int END,
        COD_FAM_0
`

const subfamsSQL = `
    WITH sub AS (
        SELECT DISTINCT
            lpad(btrim(ZTP.TSICOD_1_0), 4, '0') AS COD_SUBFAM
        FROM ZTPROVEART AS ZTP
        WHERE ZTP.TSICOD_0_0 = ?
          AND ZTP.TSICOD_1_0 IS NOT NULL
          AND btrim(ZTP.TSICOD_1_0) <> ''
    )
    SELECT
        sub.COD_SUBFAM,
        ATX.TEXTE_0 AS DES_SUBFAM
    FROM sub
    LEFT JOIN ATEXTRA AS ATX
      ON ATX.CODFIC_0 = 'ATABDIV'
     AND ATX.ZONE_0   = 'LNGDES'
     AND ATX.LANGUE_0 = 'SPA'
     AND ATX.IDENT1_0 = ?
     AND ATX.IDENT2_0 = sub.COD_SUBFAM
    ORDER BY
        CASE WHEN sub.COD_SUBFAM ~ '^[0-9]+$' THEN 0 ELSE 1 END,
        CASE WHEN sub.COD_SUBFAM ~ '^[0-9]+$' THEN sub.COD_SUBFAM::int END,
        sub.COD_SUBFAM
`

// FetchFamilies lee las familias distintas de ZPROART4.
func FetchFamilies() ([]models.FamilyRow, error) {
	var rows []models.FamilyRow
	if err := database.DB.Raw(famsSQL).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("leyendo familias: %w", err)
	}
	return rows, nil
}

// FetchSubfamilies lee las subfamilias de una familia con su descripción.
func FetchSubfamilies(codFam string) ([]models.SubfamilyRow, error) {
	var rows []models.SubfamilyRow
	if err := database.DB.Raw(subfamsSQL, codFam, subfamIdent1).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("leyendo subfamilias de %s: %w", codFam, err)
	}
	return rows, nil
}

// FamilyCache memoiza la lista de familias con caducidad por tiempo.
// La función de carga y el reloj se inyectan para poder probarla sin base
// de datos. Dos peticiones que fallen la caché a la vez pueden recargar las
// dos: la carga es idempotente y barata, no se serializa.
type FamilyCache struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	fetch func() ([]models.FamilyRow, error)

	data      []models.FamilyRow
	fetchedAt time.Time
}

func NewFamilyCache(ttl time.Duration, fetch func() ([]models.FamilyRow, error)) *FamilyCache {
	return &FamilyCache{
		ttl:   ttl,
		now:   time.Now,
		fetch: fetch,
	}
}

// Get devuelve la lista cacheada si sigue fresca; si no, recarga y sobrescribe.
func (c *FamilyCache) Get() ([]models.FamilyRow, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.data) > 0 && c.now().Sub(c.fetchedAt) < c.ttl {
		return c.data, nil
	}

	data, err := c.fetch()
	if err != nil {
		return nil, err
	}
	c.data = data
	c.fetchedAt = c.now()
	return data, nil
}

type subfamEntry struct {
	data      []models.SubfamilyRow
	fetchedAt time.Time
}

// SubfamilyCache memoiza las subfamilias con una entrada con marca de tiempo
// por familia: cada familia se carga y caduca por separado. Sin tope de
// claves; el número real de familias es pequeño.
type SubfamilyCache struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	fetch func(codFam string) ([]models.SubfamilyRow, error)

	entries map[string]subfamEntry
}

func NewSubfamilyCache(ttl time.Duration, fetch func(string) ([]models.SubfamilyRow, error)) *SubfamilyCache {
	return &SubfamilyCache{
		ttl:     ttl,
		now:     time.Now,
		fetch:   fetch,
		entries: make(map[string]subfamEntry),
	}
}

// Get devuelve las subfamilias de codFam, de caché si la entrada sigue fresca.
// Código vacío -> lista vacía sin carga.
func (c *SubfamilyCache) Get(codFam string) ([]models.SubfamilyRow, error) {
	codFam = strings.TrimSpace(codFam)
	if codFam == "" {
		return nil, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[codFam]; ok && len(e.data) > 0 && c.now().Sub(e.fetchedAt) < c.ttl {
		return e.data, nil
	}

	data, err := c.fetch(codFam)
	if err != nil {
		return nil, err
	}
	c.entries[codFam] = subfamEntry{data: data, fetchedAt: c.now()}
	return data, nil
}
