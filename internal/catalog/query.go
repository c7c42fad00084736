package catalog

import (
	"fmt"
	"strings"

	"zproveart-backend/internal/database"
	"zproveart-backend/internal/models"
)

// Columnas de ZTPROVEART que arrastra la CTE base. El resto de columnas
// (proveedor, ficha, foto, acumulado anual) se unen después de paginar.
const baseColumns = `
        ZTP.ITMREF_0,
        ZTP.ITMDES_0,
        ZTP.BPSNUM_0,
        ZTP.FUC_0,
        ZTP.UQTY_0,
        ZTP.FOB_0,
        ZTP.PUE_0,
        ZTP.PVPT4_0,
        ZTP.DTO_0,
        ZTP.DIF_0,
        ZTP.ARANCEL_0,
        ZTP.EX_ACT_0,
        ZTP.EX_DISP_0,
        ZTP.EX_PREV_0,
        ZTP.COD_ART_PRO_0,
        ZTP.MED_PZ_0,
        ZTP.MED_CJ_0,
        ZTP.CUBIC_0,
        ZTP.COD_COM_0,
        ZTP.TSICOD_0_0 AS COD_FAM_ZTP,
        ZTP.TSICOD_1_0 AS COD_SUBFAM_ZTP`

const joinedColumns = `
    base.ITMREF_0,
    base.ITMDES_0,
    base.BPSNUM_0,
    ZURL.URL_0,
    base.FUC_0,
    base.UQTY_0,
    base.FOB_0,
    base.PUE_0,
    base.PVPT4_0,
    base.DTO_0,
    base.DIF_0,
    base.ARANCEL_0,
    base.EX_ACT_0,
    base.EX_DISP_0,
    base.EX_PREV_0,
    base.COD_ART_PRO_0,
    base.MED_PZ_0,
    base.MED_CJ_0,
    base.CUBIC_0,
    base.COD_COM_0,

    base.COD_FAM_ZTP,
    base.COD_SUBFAM_ZTP,

    BPS.BPSNAM_0,
    BPS.ZFRECUPED_0,
    BPS.ZNUMPALMIN_0,
    BPS.ZPLAZOENTRE_0,
    BPS.ZIMPMINPED_0,
    BPS.ZVOLMINCOM_0,

    Z4.COD_FAM_0,
    Z4.DES_FAM_0,
    Z4.QTY_PEND_SC_0,
    Z4.UNXCAJ_0,
    Z4.UNXPAL_0,
    Z4.UNXPAQ_0,
    Z4.ZPUERTO_0,
    Z4.ZSLIM_0,
    Z4.CMC_0,
    Z4.ZVERNTV_0,
    Z4.ZVTASINSTOCK_0,
    Z4.ESTADO_0,

    ZTCV.NUM_CLIENTES_0,
    ZTCV.NUM_ENTRADAS_0,
    ZTCV.NUM_VENTAS_0,
    ZTCV.NUM_OCU_0`

// ZTCOMVEN se une SUMADO por artículo: con varios años seleccionados un join
// directo multiplicaría filas.
const yearlyAggJoin = `
    LEFT JOIN (
        SELECT
            ITMREF_0,
            SUM(NUM_CLIENTES_0) AS NUM_CLIENTES_0,
            SUM(NUM_ENTRADAS_0) AS NUM_ENTRADAS_0,
            SUM(NUM_VENTAS_0)   AS NUM_VENTAS_0,
            SUM(NUM_OCU_0)      AS NUM_OCU_0
        FROM ZTCOMVEN
        WHERE ANNO_0 IN ?
        GROUP BY ITMREF_0
    ) AS ZTCV
        ON base.ITMREF_0 = ZTCV.ITMREF_0`

// appendWhere añade a sql los predicados opcionales del filtro. El predicado
// base (proveedor presente y no vacío) debe venir ya en sql: aquí solo se
// concatenan fragmentos "AND ..." con sus parámetros en orden.
func appendWhere(sql string, args []interface{}, f models.ProductFilter) (string, []interface{}) {
	// Rangos léxicos artículo / proveedor / comprador
	if f.ArtFrom != "" {
		sql += " AND ZTP.ITMREF_0 >= ?\n"
		args = append(args, f.ArtFrom)
	}
	if f.ArtTo != "" {
		sql += " AND ZTP.ITMREF_0 <= ?\n"
		args = append(args, f.ArtTo)
	}
	if f.SuppFrom != "" {
		sql += " AND ZTP.BPSNUM_0 >= ?\n"
		args = append(args, f.SuppFrom)
	}
	if f.SuppTo != "" {
		sql += " AND ZTP.BPSNUM_0 <= ?\n"
		args = append(args, f.SuppTo)
	}
	if f.CompFrom != "" {
		sql += " AND ZTP.COD_COM_0 >= ?\n"
		args = append(args, f.CompFrom)
	}
	if f.CompTo != "" {
		sql += " AND ZTP.COD_COM_0 <= ?\n"
		args = append(args, f.CompTo)
	}

	sql, args = appendFamilyFilter(sql, args, f)
	sql, args = appendSubfamFilter(sql, args, f)

	// Fechas: el tope superior incluye el día completo (estrictamente menor
	// que el día siguiente, da igual la hora almacenada)
	if f.DateFrom != nil {
		sql += " AND ZTP.FUC_0 >= ?\n"
		args = append(args, *f.DateFrom)
	}
	if f.DateTo != nil {
		sql += " AND ZTP.FUC_0 < ?::date + 1\n"
		args = append(args, *f.DateTo)
	}

	return sql, args
}

// appendFamilyFilter restringe por pertenencia a familias vía ZPROART4.
func appendFamilyFilter(sql string, args []interface{}, f models.ProductFilter) (string, []interface{}) {
	fams := f.FamilyCodes()
	if len(fams) == 0 {
		return sql, args
	}

	sql += `
    AND EXISTS (
        SELECT 1
        FROM ZPROART4 AS Z4
        WHERE Z4.ITMREF_0 = ZTP.ITMREF_0
          AND Z4.COD_FAM_0 IN ?
    )
`
	args = append(args, fams)
	return sql, args
}

// appendSubfamFilter aplica la selección de subfamilias por familia:
//   - familia sin subfamilias marcadas -> entra completa
//   - familia con subfamilias marcadas -> solo esas subfamilias dentro de ella
//
// Ambas ramas se unen con OR. Si ninguna familia lleva subfamilias el filtro
// de familias de appendFamilyFilter ya cubre el caso y aquí no se añade nada.
func appendSubfamFilter(sql string, args []interface{}, f models.ProductFilter) (string, []interface{}) {
	if len(f.Families) == 0 || !f.HasSubfamSelection() {
		return sql, args
	}

	var wholeFams []string
	var orParts []string
	var orArgs []interface{}

	for _, fam := range f.Families {
		if fam.WholeFamily() {
			wholeFams = append(wholeFams, fam.Code)
		}
	}
	if len(wholeFams) > 0 {
		orParts = append(orParts, "(ZTP.TSICOD_0_0 IN ?)")
		orArgs = append(orArgs, wholeFams)
	}
	for _, fam := range f.Families {
		if fam.WholeFamily() {
			continue
		}
		orParts = append(orParts, "(ZTP.TSICOD_0_0 = ? AND ZTP.TSICOD_1_0 IN ?)")
		orArgs = append(orArgs, fam.Code, fam.Subfams)
	}

	sql += " AND (\n      " + strings.Join(orParts, "\n   OR ") + "\n    )\n"
	args = append(args, orArgs...)
	return sql, args
}

// BuildCountSQL genera la variante de recuento del listado.
func BuildCountSQL(f models.ProductFilter) (string, []interface{}) {
	sql := `
    SELECT COUNT(1)
    FROM ZTPROVEART AS ZTP
    WHERE ZTP.BPSNUM_0 IS NOT NULL
      AND ZTP.BPSNUM_0 <> ''
`
	return appendWhere(sql, nil, f)
}

// BuildPageSQL genera la variante paginada: la CTE base ordena y pagina antes
// de los joins auxiliares. Sin ORDER BY estable el OFFSET no está definido,
// de ahí el desempate por ITMREF_0 descendente.
func BuildPageSQL(f models.ProductFilter, page, pageSize int) (string, []interface{}) {
	sql := `
    WITH base AS (
        SELECT` + baseColumns + `
        FROM ZTPROVEART AS ZTP
        WHERE ZTP.BPSNUM_0 IS NOT NULL
          AND ZTP.BPSNUM_0 <> ''
`
	sql, args := appendWhere(sql, nil, f)

	sql += `
        ORDER BY ZTP.FUC_0 DESC, ZTP.ITMREF_0 DESC
        OFFSET ? LIMIT ?
    )
    SELECT` + joinedColumns + `
    FROM base
    LEFT JOIN BPSUPPLIER AS BPS
        ON base.BPSNUM_0 = BPS.BPSNUM_0
    LEFT JOIN ZURLIMAGENES AS ZURL
        ON base.ITMREF_0 = ZURL.ITMREF_0
    LEFT JOIN ZPROART4 AS Z4
        ON base.ITMREF_0 = Z4.ITMREF_0
` + yearlyAggJoin + `
    ORDER BY base.FUC_0 DESC, base.ITMREF_0 DESC
`
	args = append(args, (page-1)*pageSize, pageSize, f.Years)
	return sql, args
}

// BuildAllSQL genera la variante sin paginar (exportaciones). El tope de
// filas se aplica dentro de la CTE, antes de los joins, para que el límite
// acote de verdad el trabajo de la consulta.
func BuildAllSQL(f models.ProductFilter, maxRows int) (string, []interface{}) {
	sql := `
    WITH base AS (
        SELECT` + baseColumns + `
        FROM ZTPROVEART AS ZTP
        WHERE ZTP.BPSNUM_0 IS NOT NULL
          AND ZTP.BPSNUM_0 <> ''
`
	sql, args := appendWhere(sql, nil, f)

	sql += `
        ORDER BY ZTP.FUC_0 DESC, ZTP.ITMREF_0 DESC
        LIMIT ?
    )
    SELECT` + joinedColumns + `
    FROM base
    LEFT JOIN BPSUPPLIER AS BPS
        ON base.BPSNUM_0 = BPS.BPSNUM_0
    LEFT JOIN ZURLIMAGENES AS ZURL
        ON base.ITMREF_0 = ZURL.ITMREF_0
    LEFT JOIN ZPROART4 AS Z4
        ON base.ITMREF_0 = Z4.ITMREF_0
` + yearlyAggJoin + `
    ORDER BY base.FUC_0 DESC, base.ITMREF_0 DESC
`
	args = append(args, maxRows, f.Years)
	return sql, args
}

// CountProducts ejecuta la variante de recuento.
func CountProducts(f models.ProductFilter) (int64, error) {
	sql, args := BuildCountSQL(f)

	var total int64
	if err := database.DB.Raw(sql, args...).Scan(&total).Error; err != nil {
		return 0, fmt.Errorf("contando productos: %w", err)
	}
	return total, nil
}

// GetProducts devuelve una página del listado con sus columnas auxiliares.
func GetProducts(f models.ProductFilter, page, pageSize int) ([]models.ProductRow, error) {
	sql, args := BuildPageSQL(f, page, pageSize)

	var rows []models.ProductRow
	if err := database.DB.Raw(sql, args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("listando productos (página %d): %w", page, err)
	}
	return rows, nil
}

// GetProductsAll devuelve el listado completo acotado a maxRows (para exportar).
func GetProductsAll(f models.ProductFilter, maxRows int) ([]models.ProductRow, error) {
	sql, args := BuildAllSQL(f, maxRows)

	var rows []models.ProductRow
	if err := database.DB.Raw(sql, args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("listando productos sin paginar: %w", err)
	}
	return rows, nil
}
