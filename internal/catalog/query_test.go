package catalog

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"zproveart-backend/internal/models"
)

func TestBuildCountSQLBasePredicate(t *testing.T) {
	sql, args := BuildCountSQL(models.ProductFilter{Years: []int{2026, 2025}})

	if !strings.Contains(sql, "BPSNUM_0 IS NOT NULL") || !strings.Contains(sql, "BPSNUM_0 <> ''") {
		t.Error("falta el predicado base de proveedor presente")
	}
	if len(args) != 0 {
		t.Errorf("sin filtros no debería haber parámetros: %v", args)
	}
}

func TestBuildCountSQLRanges(t *testing.T) {
	f := models.ProductFilter{
		ArtFrom:  "ART001",
		ArtTo:    "ART999",
		SuppFrom: "P100",
		CompTo:   "C50",
	}
	sql, args := BuildCountSQL(f)

	for _, frag := range []string{
		"ZTP.ITMREF_0 >= ?",
		"ZTP.ITMREF_0 <= ?",
		"ZTP.BPSNUM_0 >= ?",
		"ZTP.COD_COM_0 <= ?",
	} {
		if !strings.Contains(sql, frag) {
			t.Errorf("falta el fragmento %q", frag)
		}
	}
	if strings.Contains(sql, "ZTP.BPSNUM_0 <= ?") || strings.Contains(sql, "ZTP.COD_COM_0 >= ?") {
		t.Error("se añadieron predicados de extremos no informados")
	}

	want := []interface{}{"ART001", "ART999", "P100", "C50"}
	if !reflect.DeepEqual(args, want) {
		t.Errorf("args = %v, se esperaba %v", args, want)
	}
}

func TestBuildCountSQLFamilyFilter(t *testing.T) {
	f := models.ProductFilter{
		Families: []models.FamilySelection{{Code: "10"}, {Code: "20"}},
	}
	sql, args := BuildCountSQL(f)

	if !strings.Contains(sql, "EXISTS") || !strings.Contains(sql, "ZPROART4") {
		t.Error("falta el EXISTS sobre ZPROART4")
	}
	// Sin subfamilias marcadas no debe aparecer la disyunción por subfamilia
	if strings.Contains(sql, "TSICOD_0_0") {
		t.Error("no debería haber predicado de subfamilias")
	}
	if len(args) != 1 || !reflect.DeepEqual(args[0], []string{"10", "20"}) {
		t.Errorf("args = %v", args)
	}
}

func TestBuildCountSQLSubfamDisjunction(t *testing.T) {
	f := models.ProductFilter{
		Families: []models.FamilySelection{
			{Code: "10", Subfams: []string{"1001", "1002"}},
			{Code: "20"},
		},
	}
	sql, args := BuildCountSQL(f)

	if !strings.Contains(sql, "(ZTP.TSICOD_0_0 IN ?)") {
		t.Error("falta la rama de familias completas")
	}
	if !strings.Contains(sql, "(ZTP.TSICOD_0_0 = ? AND ZTP.TSICOD_1_0 IN ?)") {
		t.Error("falta la rama familia+subfamilias")
	}
	if !strings.Contains(sql, " OR ") {
		t.Error("las dos ramas deben unirse con OR")
	}

	want := []interface{}{
		[]string{"10", "20"},   // EXISTS de familias
		[]string{"20"},         // familias completas
		"10",                   // familia con subfamilias
		[]string{"1001", "1002"},
	}
	if !reflect.DeepEqual(args, want) {
		t.Errorf("args = %v, se esperaba %v", args, want)
	}
}

func TestBuildCountSQLDateBounds(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	f := models.ProductFilter{DateFrom: &from, DateTo: &to}

	sql, args := BuildCountSQL(f)

	if !strings.Contains(sql, "ZTP.FUC_0 >= ?") {
		t.Error("falta el límite inferior de fecha")
	}
	// El tope superior debe incluir el día completo: estrictamente menor que el día siguiente
	if !strings.Contains(sql, "ZTP.FUC_0 < ?::date + 1") {
		t.Error("falta el límite superior exclusivo de día siguiente")
	}
	if len(args) != 2 {
		t.Errorf("args = %v", args)
	}
}

func TestBuildPageSQL(t *testing.T) {
	f := models.ProductFilter{Years: []int{2026, 2025}}
	sql, args := BuildPageSQL(f, 3, 25)

	if !strings.Contains(sql, "OFFSET ? LIMIT ?") {
		t.Error("falta la paginación en la CTE")
	}
	if !strings.Contains(sql, "ORDER BY ZTP.FUC_0 DESC, ZTP.ITMREF_0 DESC") {
		t.Error("falta el orden estable dentro de la CTE")
	}
	if !strings.Contains(sql, "GROUP BY ITMREF_0") {
		t.Error("el acumulado anual debe agruparse por artículo antes del join")
	}

	// Los últimos parámetros son offset, límite y los años del acumulado
	n := len(args)
	if n < 3 || args[n-3] != 50 || args[n-2] != 25 || !reflect.DeepEqual(args[n-1], []int{2026, 2025}) {
		t.Errorf("parámetros de paginación/años incorrectos: %v", args)
	}
}

func TestBuildAllSQLCapsBeforeJoins(t *testing.T) {
	f := models.ProductFilter{Years: []int{2026}}
	sql, args := BuildAllSQL(f, 5000)

	limitIdx := strings.Index(sql, "LIMIT ?")
	joinIdx := strings.Index(sql, "LEFT JOIN")
	if limitIdx == -1 || joinIdx == -1 || limitIdx > joinIdx {
		t.Error("el tope de filas debe aplicarse dentro de la CTE, antes de los joins")
	}
	if strings.Contains(sql, "OFFSET") {
		t.Error("la variante sin paginar no debe llevar OFFSET")
	}

	n := len(args)
	if n < 2 || args[n-2] != 5000 || !reflect.DeepEqual(args[n-1], []int{2026}) {
		t.Errorf("parámetros del tope/años incorrectos: %v", args)
	}
}

func TestBuildPageAndCountShareFilters(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	f := models.ProductFilter{
		Families: []models.FamilySelection{{Code: "10", Subfams: []string{"1001"}}},
		DateFrom: &from,
		ArtFrom:  "A",
		Years:    []int{2026},
	}

	_, countArgs := BuildCountSQL(f)
	_, pageArgs := BuildPageSQL(f, 1, 10)

	// La variante paginada lleva los mismos filtros más offset/límite/años
	if !reflect.DeepEqual(pageArgs[:len(countArgs)], countArgs) {
		t.Errorf("los predicados difieren entre count y page:\ncount: %v\npage:  %v", countArgs, pageArgs)
	}
}

func TestChunkRefs(t *testing.T) {
	refs := make([]string, 1201)
	for i := range refs {
		refs[i] = "A"
	}

	chunks := chunkRefs(refs, 500)
	if len(chunks) != 3 {
		t.Fatalf("chunks = %d, se esperaban 3", len(chunks))
	}
	if len(chunks[0]) != 500 || len(chunks[1]) != 500 || len(chunks[2]) != 201 {
		t.Errorf("tamaños = %d, %d, %d", len(chunks[0]), len(chunks[1]), len(chunks[2]))
	}

	if got := chunkRefs(nil, 500); got != nil {
		t.Errorf("lista vacía debe devolver nil, no %v", got)
	}
}
