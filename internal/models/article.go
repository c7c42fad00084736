package models

import "time"

// ProductRow es una fila del listado base: ZTPROVEART más los joins de
// proveedor (BPSUPPLIER), ficha (ZPROART4), foto (ZURLIMAGENES) y el
// acumulado anual de compra/venta (ZTCOMVEN sumado por artículo).
// Los nombres JSON conservan las columnas del ERP que espera el frontal.
type ProductRow struct {
	ItmRef    string     `gorm:"column:itmref_0" json:"ITMREF_0"`
	ItmDes    string     `gorm:"column:itmdes_0" json:"ITMDES_0"`
	BpsNum    string     `gorm:"column:bpsnum_0" json:"BPSNUM_0"`
	FotoURL   *string    `gorm:"column:url_0" json:"URL_0"`
	Fuc       *time.Time `gorm:"column:fuc_0" json:"FUC_0"`
	Uqty      *float64   `gorm:"column:uqty_0" json:"UQTY_0"`
	Fob       *float64   `gorm:"column:fob_0" json:"FOB_0"`
	Pue       *float64   `gorm:"column:pue_0" json:"PUE_0"`
	Pvpt4     *float64   `gorm:"column:pvpt4_0" json:"PVPT4_0"`
	Dto       *float64   `gorm:"column:dto_0" json:"DTO_0"`
	Dif       *float64   `gorm:"column:dif_0" json:"DIF_0"`
	Arancel   *float64   `gorm:"column:arancel_0" json:"ARANCEL_0"`
	ExAct     *float64   `gorm:"column:ex_act_0" json:"EX_ACT_0"`
	ExDisp    *float64   `gorm:"column:ex_disp_0" json:"EX_DISP_0"`
	ExPrev    *float64   `gorm:"column:ex_prev_0" json:"EX_PREV_0"`
	CodArtPro *string    `gorm:"column:cod_art_pro_0" json:"COD_ART_PRO_0"`
	MedPz     *string    `gorm:"column:med_pz_0" json:"MED_PZ_0"`
	MedCj     *string    `gorm:"column:med_cj_0" json:"MED_CJ_0"`
	Cubic     *float64   `gorm:"column:cubic_0" json:"CUBIC_0"`
	CodCom    *string    `gorm:"column:cod_com_0" json:"COD_COM_0"`

	// Familia/subfamilia tal y como vienen en la propia ZTPROVEART
	CodFamZtp    *string `gorm:"column:cod_fam_ztp" json:"COD_FAM_ZTP"`
	CodSubfamZtp *string `gorm:"column:cod_subfam_ztp" json:"COD_SUBFAM_ZTP"`

	// BPSUPPLIER
	BpsNam     *string  `gorm:"column:bpsnam_0" json:"BPSNAM_0"`
	FrecuPed   *string  `gorm:"column:zfrecuped_0" json:"ZFRECUPED_0"`
	NumPalMin  *float64 `gorm:"column:znumpalmin_0" json:"ZNUMPALMIN_0"`
	PlazoEntre *float64 `gorm:"column:zplazoentre_0" json:"ZPLAZOENTRE_0"`
	ImpMinPed  *float64 `gorm:"column:zimpminped_0" json:"ZIMPMINPED_0"`
	VolMinCom  *float64 `gorm:"column:zvolmincom_0" json:"ZVOLMINCOM_0"`

	// ZPROART4
	CodFam      *string  `gorm:"column:cod_fam_0" json:"COD_FAM_0"`
	DesFam      *string  `gorm:"column:des_fam_0" json:"DES_FAM_0"`
	QtyPendSc   *float64 `gorm:"column:qty_pend_sc_0" json:"QTY_PEND_SC_0"`
	UnxCaj      *float64 `gorm:"column:unxcaj_0" json:"UNXCAJ_0"`
	UnxPal      *float64 `gorm:"column:unxpal_0" json:"UNXPAL_0"`
	UnxPaq      *float64 `gorm:"column:unxpaq_0" json:"UNXPAQ_0"`
	Puerto      *string  `gorm:"column:zpuerto_0" json:"ZPUERTO_0"`
	Slim        *string  `gorm:"column:zslim_0" json:"ZSLIM_0"`
	Cmc         *float64 `gorm:"column:cmc_0" json:"CMC_0"`
	VerNtv      *string  `gorm:"column:zverntv_0" json:"ZVERNTV_0"`
	VtaSinStock *string  `gorm:"column:zvtasinstock_0" json:"ZVTASINSTOCK_0"`
	Estado      *string  `gorm:"column:estado_0" json:"ESTADO_0"`

	// ZTCOMVEN sumado sobre los años seleccionados
	NumClientes *float64 `gorm:"column:num_clientes_0" json:"NUM_CLIENTES_0"`
	NumEntradas *float64 `gorm:"column:num_entradas_0" json:"NUM_ENTRADAS_0"`
	NumVentas   *float64 `gorm:"column:num_ventas_0" json:"NUM_VENTAS_0"`
	NumOcu      *float64 `gorm:"column:num_ocu_0" json:"NUM_OCU_0"`
}

// SalesMonthRow es una fila mensual de ZCOMVENMES (compras/ventas por artículo).
type SalesMonthRow struct {
	ItmRef  string   `gorm:"column:itmref_0" json:"ITMREF_0"`
	Anno    int      `gorm:"column:anno_0" json:"ANNO_0"`
	Mes     int      `gorm:"column:mes_0" json:"MES_0"`
	Compras *float64 `gorm:"column:compras_0" json:"COMPRAS_0"`
	Ventas  *float64 `gorm:"column:ventas_0" json:"VENTAS_0"`
}

// ETARow es una llegada prevista de ZPROART3. Un artículo puede tener varias.
type ETARow struct {
	ItmRef string     `gorm:"column:itmref_0" json:"ITMREF_0"`
	Fecha  *time.Time `gorm:"column:fecha_0" json:"FECHA_0"`
	Qty    *float64   `gorm:"column:qty_0" json:"QTY_0"`
	Vcr    *string    `gorm:"column:vcr_0" json:"VCR_0"`
}

// FamilyRow es una familia distinta de ZPROART4.
type FamilyRow struct {
	CodFam string  `gorm:"column:cod_fam_0" json:"COD_FAM_0"`
	DesFam *string `gorm:"column:des_fam_0" json:"DES_FAM_0"`
}

// SubfamilyRow es una subfamilia de una familia concreta, con su descripción
// de ATEXTRA (puede faltar).
type SubfamilyRow struct {
	CodSubfam string  `gorm:"column:cod_subfam" json:"COD_SUBFAM"`
	DesSubfam *string `gorm:"column:des_subfam" json:"DES_SUBFAM"`
}
