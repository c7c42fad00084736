package models

import "time"

// FamilySelection es la selección de una familia en el filtro.
// Sin subfamilias marcadas la familia entra completa; con subfamilias
// marcadas solo entran esas subfamilias dentro de esa familia.
type FamilySelection struct {
	Code    string
	Subfams []string
}

// WholeFamily indica que la familia entra sin restricción de subfamilia.
func (s FamilySelection) WholeFamily() bool {
	return len(s.Subfams) == 0
}

// ProductFilter es el conjunto de filtros ya saneado: ningún valor inválido
// llega a la construcción de la consulta.
type ProductFilter struct {
	Families []FamilySelection

	// Rango inclusivo sobre la fecha de alta/actualización (FUC_0).
	// Siempre DateFrom <= DateTo cuando ambos están presentes.
	DateFrom *time.Time
	DateTo   *time.Time

	// Rangos léxicos (comparación de cadenas, no numérica)
	ArtFrom  string
	ArtTo    string
	SuppFrom string
	SuppTo   string
	CompFrom string
	CompTo   string

	// Años para el acumulado de ZTCOMVEN, saneados y en orden descendente
	Years []int
}

// FamilyCodes devuelve los códigos de familia en el orden de selección.
func (f ProductFilter) FamilyCodes() []string {
	out := make([]string, 0, len(f.Families))
	for _, fam := range f.Families {
		out = append(out, fam.Code)
	}
	return out
}

// HasSubfamSelection indica si alguna familia lleva subfamilias marcadas.
func (f ProductFilter) HasSubfamSelection() bool {
	for _, fam := range f.Families {
		if !fam.WholeFamily() {
			return true
		}
	}
	return false
}
