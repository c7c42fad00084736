package catalog

import (
	"net/url"
	"reflect"
	"testing"
	"time"
)

var testNow = time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)

func TestSanitizeYears(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []int
	}{
		{"vacío usa el par por defecto", nil, []int{2026, 2025}},
		{"valores válidos en orden descendente", []string{"2023", "2025", "2024"}, []int{2025, 2024, 2023}},
		{"descarta basura y fuera de rango", []string{"abc", "1989", "2028", "2024"}, []int{2024}},
		{"todo inválido vuelve al par por defecto", []string{"x", "0", "99999"}, []int{2026, 2025}},
		{"elimina duplicados", []string{"2024", "2024", "2023"}, []int{2024, 2023}},
		{"admite el año que viene", []string{"2027"}, []int{2027}},
		{"admite el límite inferior", []string{"1990"}, []int{1990}},
		{"recorta espacios", []string{" 2024 "}, []int{2024}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeYears(tt.in, testNow)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SanitizeYears(%v) = %v, se esperaba %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitizeYearsNeverEmptyNorOutOfRange(t *testing.T) {
	inputs := [][]string{
		nil,
		{},
		{""},
		{"no-num", "-5", "1800", "3000"},
		{"2024", "garbage"},
	}
	for _, in := range inputs {
		got := SanitizeYears(in, testNow)
		if len(got) == 0 {
			t.Fatalf("SanitizeYears(%v) devolvió lista vacía", in)
		}
		for i, y := range got {
			if y < 1990 || y > testNow.Year()+1 {
				t.Errorf("SanitizeYears(%v) contiene %d fuera de rango", in, y)
			}
			if i > 0 && got[i-1] <= y {
				t.Errorf("SanitizeYears(%v) = %v no es estrictamente descendente", in, got)
			}
		}
	}
}

func TestSanitizeList(t *testing.T) {
	got := SanitizeList([]string{" 10 ", "", "  ", "20", "30"})
	want := []string{"10", "20", "30"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SanitizeList = %v, se esperaba %v", got, want)
	}
}

func TestParseDate(t *testing.T) {
	if got := ParseDate("2026-02-14"); got == nil || !got.Equal(time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("ParseDate(2026-02-14) = %v", got)
	}
	for _, bad := range []string{"", "   ", "14/02/2026", "2026-13-01", "ayer"} {
		if got := ParseDate(bad); got != nil {
			t.Errorf("ParseDate(%q) = %v, se esperaba nil", bad, got)
		}
	}
}

func TestNormalizeDateRangeSwaps(t *testing.T) {
	from := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	gotFrom, gotTo := NormalizeDateRange(&from, &to)
	if !gotFrom.Equal(to) || !gotTo.Equal(from) {
		t.Errorf("NormalizeDateRange no intercambió: from=%v to=%v", gotFrom, gotTo)
	}

	// Con un solo extremo no toca nada
	gotFrom, gotTo = NormalizeDateRange(&from, nil)
	if gotFrom == nil || gotTo != nil {
		t.Errorf("NormalizeDateRange alteró un rango con un solo extremo")
	}
}

func TestClampPage(t *testing.T) {
	tests := []struct {
		page           int
		total          int64
		pageSize       int
		wantPage       int
		wantTotalPages int
	}{
		{1, 100, 25, 1, 4},
		{0, 100, 25, 1, 4},
		{-3, 100, 25, 1, 4},
		{99, 100, 25, 4, 4},
		{2, 101, 25, 2, 5},
		{1, 0, 25, 1, 1},
		{7, 0, 25, 1, 1},
	}
	for _, tt := range tests {
		page, totalPages := ClampPage(tt.page, tt.total, tt.pageSize)
		if page != tt.wantPage || totalPages != tt.wantTotalPages {
			t.Errorf("ClampPage(%d, %d, %d) = (%d, %d), se esperaba (%d, %d)",
				tt.page, tt.total, tt.pageSize, page, totalPages, tt.wantPage, tt.wantTotalPages)
		}
	}
}

func TestClampPageSizeAndRowCap(t *testing.T) {
	if got := ClampPageSize(500, 200); got != 200 {
		t.Errorf("ClampPageSize(500, 200) = %d", got)
	}
	if got := ClampPageSize(0, 200); got != 1 {
		t.Errorf("ClampPageSize(0, 200) = %d", got)
	}
	if got := ClampRowCap(99999999, 50000); got != 50000 {
		t.Errorf("ClampRowCap(99999999, 50000) = %d", got)
	}
}

func TestBuildFilter(t *testing.T) {
	params := url.Values{
		"family":    {"10", " 20 ", ""},
		"subfam_10": {"1001", " 1002 "},
		"subfam_":   {"raro"},
		"date_from": {"2026-06-01"},
		"date_to":   {"2026-01-01"},
		"art_from":  {" ART001 "},
		"supp_to":   {"PRV999"},
		"year":      {"2024", "junk"},
		"page":      {"3"},
	}

	f := BuildFilter(params, testNow)

	if len(f.Families) != 2 {
		t.Fatalf("familias = %v", f.Families)
	}
	if f.Families[0].Code != "10" || !reflect.DeepEqual(f.Families[0].Subfams, []string{"1001", "1002"}) {
		t.Errorf("familia 10 mal construida: %+v", f.Families[0])
	}
	if f.Families[1].Code != "20" || !f.Families[1].WholeFamily() {
		t.Errorf("familia 20 debería entrar completa: %+v", f.Families[1])
	}

	// El rango invertido debe llegar ya intercambiado
	if f.DateFrom == nil || f.DateTo == nil || f.DateFrom.After(*f.DateTo) {
		t.Errorf("rango de fechas sin normalizar: from=%v to=%v", f.DateFrom, f.DateTo)
	}

	if f.ArtFrom != "ART001" || f.SuppTo != "PRV999" {
		t.Errorf("rangos léxicos: %+v", f)
	}
	if !reflect.DeepEqual(f.Years, []int{2024}) {
		t.Errorf("años = %v", f.Years)
	}
}

func TestBuildFilterIgnoresSubfamsOfUnselectedFamilies(t *testing.T) {
	params := url.Values{
		"family":    {"10"},
		"subfam_30": {"3001"},
	}
	f := BuildFilter(params, testNow)
	if len(f.Families) != 1 || !f.Families[0].WholeFamily() {
		t.Errorf("subfamilias de familias no seleccionadas deben ignorarse: %+v", f.Families)
	}
	if f.HasSubfamSelection() {
		t.Error("HasSubfamSelection debería ser false")
	}
}
