package catalog

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"zproveart-backend/internal/models"
)

const (
	yearFloor = 1990

	// Prefijo de los parámetros de subfamilia por familia: subfam_10=1001
	subfamParamPrefix = "subfam_"
)

// SanitizeYears normaliza la lista de años del acumulado:
// convierte a entero, descarta valores fuera de [1990, año actual + 1],
// elimina duplicados y ordena descendente. Vacía o inválida al completo,
// devuelve [año actual, año anterior].
func SanitizeYears(raw []string, now time.Time) []int {
	yNow := now.Year()
	def := []int{yNow, yNow - 1}

	if len(raw) == 0 {
		return def
	}

	out := make([]int, 0, len(raw))
	seen := make(map[int]bool, len(raw))
	for _, s := range raw {
		y, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			continue
		}
		if y < yearFloor || y > yNow+1 {
			continue
		}
		if seen[y] {
			continue
		}
		seen[y] = true
		out = append(out, y)
	}

	if len(out) == 0 {
		return def
	}

	// Orden descendente; la lista es corta, inserción directa
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j] > out[j-1]; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// SanitizeList recorta espacios y descarta entradas vacías conservando el orden.
func SanitizeList(vals []string) []string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// ParseDate interpreta una fecha ISO (AAAA-MM-DD). Vacío o inválido -> nil.
func ParseDate(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil
	}
	return &t
}

// NormalizeDateRange garantiza from <= to intercambiando los extremos si hace falta.
func NormalizeDateRange(from, to *time.Time) (*time.Time, *time.Time) {
	if from != nil && to != nil && from.After(*to) {
		return to, from
	}
	return from, to
}

// ParsePositiveInt convierte s a entero positivo; ante fallo devuelve def.
func ParsePositiveInt(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return def
	}
	return n
}

// ClampPage acota la página a [1, totalPages] con
// totalPages = max(1, ceil(total/pageSize)).
func ClampPage(page int, total int64, pageSize int) (int, int) {
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	return page, totalPages
}

// ClampPageSize acota el tamaño de página a [1, max].
func ClampPageSize(size, max int) int {
	if size < 1 {
		size = 1
	}
	if size > max {
		size = max
	}
	return size
}

// ClampRowCap acota el tope de filas del listado sin paginar a [1, max].
func ClampRowCap(n, max int) int {
	if n < 1 {
		n = 1
	}
	if n > max {
		n = max
	}
	return n
}

// BuildFilter construye el filtro canónico a partir de los parámetros de la
// petición (family múltiple, subfam_<FAM> múltiple, rangos y años). Entradas
// mal formadas se descartan o toman el valor por defecto, nunca dan error.
func BuildFilter(params url.Values, now time.Time) models.ProductFilter {
	fams := SanitizeList(params["family"])

	// Subfamilias agrupadas por familia; solo cuentan las de familias seleccionadas
	subfamsByFam := make(map[string][]string)
	for key, vals := range params {
		if !strings.HasPrefix(key, subfamParamPrefix) {
			continue
		}
		fam := strings.TrimSpace(strings.TrimPrefix(key, subfamParamPrefix))
		if fam == "" {
			continue
		}
		if subs := SanitizeList(vals); len(subs) > 0 {
			subfamsByFam[fam] = subs
		}
	}

	selections := make([]models.FamilySelection, 0, len(fams))
	for _, fam := range fams {
		selections = append(selections, models.FamilySelection{
			Code:    fam,
			Subfams: subfamsByFam[fam],
		})
	}

	dateFrom, dateTo := NormalizeDateRange(
		ParseDate(params.Get("date_from")),
		ParseDate(params.Get("date_to")),
	)

	return models.ProductFilter{
		Families: selections,
		DateFrom: dateFrom,
		DateTo:   dateTo,
		ArtFrom:  strings.TrimSpace(params.Get("art_from")),
		ArtTo:    strings.TrimSpace(params.Get("art_to")),
		SuppFrom: strings.TrimSpace(params.Get("supp_from")),
		SuppTo:   strings.TrimSpace(params.Get("supp_to")),
		CompFrom: strings.TrimSpace(params.Get("comp_from")),
		CompTo:   strings.TrimSpace(params.Get("comp_to")),
		Years:    SanitizeYears(params["year"], now),
	}
}
