package catalog

import (
	"strings"
	"time"

	"zproveart-backend/internal/models"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formato español: miles con '.', decimales con ','.
var esPrinter = message.NewPrinter(language.EuropeanSpanish)

// Número de llegadas previstas visibles por artículo; el resto se resume
// en un contador de desbordamiento.
const etaMaxRows = 3

func fmtES(v float64, decimals int) string {
	return esPrinter.Sprint(number.Decimal(v, number.Scale(decimals)))
}

// FmtInt formatea una cantidad entera. Nulo -> "-". Magnitudes por debajo de
// 1e-6 se muestran como "0" para no enseñar ruido de coma flotante.
func FmtInt(v *float64) string {
	if v == nil {
		return "-"
	}
	if *v < 1e-6 && *v > -1e-6 {
		return "0"
	}
	return fmtES(*v, 0)
}

// FmtMoney formatea un importe con dos decimales. Nulo -> "-".
func FmtMoney(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmtES(*v, 2)
}

// FmtPct formatea un porcentaje con dos decimales y el signo detrás. Nulo -> "-".
func FmtPct(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmtES(*v, 2) + " %"
}

// FmtDate formatea DD/MM/AAAA. Nulo -> "-".
func FmtDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("02/01/2006")
}

func strOrDash(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return "-"
	}
	return *s
}

// fmtSiNo traduce los flags del ERP: 1, "1" o true cuentan como sí,
// cualquier otra cosa (incluido nulo) como no.
func fmtSiNo(v *string) string {
	if v == nil {
		return "No"
	}
	switch strings.ToLower(strings.TrimSpace(*v)) {
	case "1", "true":
		return "Sí"
	default:
		return "No"
	}
}

// Etiquetas de mes abreviadas para las cabeceras de la tabla de 12 meses.
var monthLabels = map[int]string{
	1:  "En.",
	2:  "Feb.",
	3:  "Mar.",
	4:  "Abr.",
	5:  "May.",
	6:  "Jun.",
	7:  "Jul.",
	8:  "Ago.",
	9:  "Sep.",
	10: "Oct.",
	11: "Nov.",
	12: "Dic.",
}

// MonthBucket es una celda de la tabla de 12 meses. Ventas/compras vacías
// significan "sin datos", distinto de vender cero.
type MonthBucket struct {
	Label   string `json:"label"`
	Ventas  string `json:"ventas"`
	Compras string `json:"compras"`
}

// ETAEntry es una llegada prevista ya formateada.
type ETAEntry struct {
	Fecha string `json:"fecha"`
	Qty   string `json:"qty"`
	Vcr   string `json:"vcr"`
}

// ProductView es el registro de presentación: la fila original más sus
// variantes formateadas, la tabla de 12 meses y las llegadas previstas.
type ProductView struct {
	models.ProductRow

	// Condiciones comerciales
	FucFmt     string `json:"FUC_0_FMT"`
	FobFmt     string `json:"FOB_0_FMT"`
	PueFmt     string `json:"PUE_0_FMT"`
	Pvpt4Fmt   string `json:"PVPT4_0_FMT"`
	DifFmt     string `json:"DIF_0_FMT"`
	ArancelFmt string `json:"ARANCEL_0_FMT"`
	UqtyFmt    string `json:"UQTY_0_FMT"`
	DtoFmt     string `json:"DTO_0_FMT"`

	// Existencias
	ExActFmt     string `json:"EX_ACT_0_FMT"`
	ExDispFmt    string `json:"EX_DISP_0_FMT"`
	ExPrevFmt    string `json:"EX_PREV_0_FMT"`
	QtyPendScFmt string `json:"QTY_PEND_SC_0_FMT"`

	// Logística
	MedPzFmt       string `json:"MED_PZ_0_FMT"`
	MedCjFmt       string `json:"MED_CJ_0_FMT"`
	CubicFmt       string `json:"CUBIC_0_FMT"`
	UnxCajFmt      string `json:"UNXCAJ_0_FMT"`
	UnxPalFmt      string `json:"UNXPAL_0_FMT"`
	UnxPaqFmt      string `json:"UNXPAQ_0_FMT"`
	PuertoFmt      string `json:"ZPUERTO_0_FMT"`
	SlimFmt        string `json:"ZSLIM_0_FMT"`
	CmcFmt         string `json:"CMC_0_FMT"`
	VerNtvFmt      string `json:"ZVERNTV_0_FMT"`
	VtaSinStockFmt string `json:"ZVTASINSTOCK_0_FMT"`
	CodArtProFmt   string `json:"COD_ART_PRO_0_FMT"`

	// Estado
	EstadoFmt string `json:"ESTADO_0_FMT"`
	EstadoOK  bool   `json:"ESTADO_OK"`
	EstadoMsg string `json:"ESTADO_MSG,omitempty"`

	M12      []MonthBucket `json:"m12"`
	ETA      []ETAEntry    `json:"eta"`
	ETAExtra int           `json:"eta_extra"`
}

type monthKey struct {
	year  int
	month int
	label string
}

// last12MonthsDesc devuelve los 12 meses naturales hasta end incluido,
// del más reciente al más antiguo, saltando de año cuando toca.
func last12MonthsDesc(end time.Time) []monthKey {
	y, m := end.Year(), int(end.Month())

	out := make([]monthKey, 0, 12)
	for i := 0; i < 12; i++ {
		yy := y
		mm := m - i
		for mm <= 0 {
			mm += 12
			yy--
		}
		out = append(out, monthKey{year: yy, month: mm, label: monthLabels[mm]})
	}
	return out
}

// FormatProducts transforma las filas crudas en registros de presentación.
// Es una función pura: no consulta nada, todo lo que necesita llega en los
// argumentos (asOf ancla la ventana de 12 meses, inyectable en tests).
func FormatProducts(rows []models.ProductRow, sales []models.SalesMonthRow, eta []models.ETARow, asOf time.Time) []ProductView {
	// Índice (artículo, año*100+mes) -> fila mensual
	salesIdx := make(map[string]map[int]models.SalesMonthRow)
	for _, r := range sales {
		byMonth, ok := salesIdx[r.ItmRef]
		if !ok {
			byMonth = make(map[int]models.SalesMonthRow)
			salesIdx[r.ItmRef] = byMonth
		}
		byMonth[r.Anno*100+r.Mes] = r
	}

	// Llegadas previstas agrupadas por artículo (ya vienen por fecha ascendente)
	etaIdx := make(map[string][]models.ETARow)
	for _, r := range eta {
		etaIdx[r.ItmRef] = append(etaIdx[r.ItmRef], r)
	}

	months := last12MonthsDesc(asOf)

	out := make([]ProductView, 0, len(rows))
	for _, p := range rows {
		v := ProductView{ProductRow: p}

		// Condiciones comerciales
		v.FucFmt = FmtDate(p.Fuc)
		v.FobFmt = FmtMoney(p.Fob)
		v.PueFmt = FmtMoney(p.Pue)
		v.Pvpt4Fmt = FmtMoney(p.Pvpt4)
		v.DifFmt = FmtMoney(p.Dif)
		v.ArancelFmt = FmtMoney(p.Arancel)
		v.UqtyFmt = FmtInt(p.Uqty)
		v.DtoFmt = FmtPct(p.Dto)

		// Existencias
		v.ExActFmt = FmtInt(p.ExAct)
		v.ExDispFmt = FmtInt(p.ExDisp)
		v.ExPrevFmt = FmtInt(p.ExPrev)
		v.QtyPendScFmt = FmtInt(p.QtyPendSc)

		// Logística
		v.MedPzFmt = strOrDash(p.MedPz)
		v.MedCjFmt = strOrDash(p.MedCj)
		if p.Cubic != nil && *p.Cubic != 0 {
			v.CubicFmt = fmtES(*p.Cubic, 4)
		} else {
			v.CubicFmt = "-"
		}
		v.UnxCajFmt = FmtInt(p.UnxCaj)
		v.UnxPalFmt = FmtInt(p.UnxPal)
		v.UnxPaqFmt = FmtInt(p.UnxPaq)
		v.PuertoFmt = strOrDash(p.Puerto)
		v.SlimFmt = strOrDash(p.Slim)
		v.CmcFmt = FmtInt(p.Cmc)
		v.VerNtvFmt = fmtSiNo(p.VerNtv)
		v.VtaSinStockFmt = fmtSiNo(p.VtaSinStock)
		v.CodArtProFmt = strOrDash(p.CodArtPro)

		// Estado: solo "OK" (recortado) cuenta como artículo activo
		estado := ""
		if p.Estado != nil {
			estado = strings.TrimSpace(*p.Estado)
		}
		if estado == "" {
			v.EstadoFmt = "-"
		} else {
			v.EstadoFmt = estado
		}
		v.EstadoOK = estado == "OK"
		if !v.EstadoOK {
			v.EstadoMsg = "¡ARTÍCULO NO ACTIVO!"
		}

		// Tabla de 12 meses: siempre 12 celdas, la más reciente primero
		byMonth := salesIdx[p.ItmRef]
		v.M12 = make([]MonthBucket, 0, 12)
		for _, mk := range months {
			b := MonthBucket{Label: mk.label}
			if r, ok := byMonth[mk.year*100+mk.month]; ok {
				if r.Ventas != nil {
					b.Ventas = fmtES(*r.Ventas, 0)
				}
				if r.Compras != nil {
					b.Compras = fmtES(*r.Compras, 0)
				}
			}
			v.M12 = append(v.M12, b)
		}

		// Llegadas previstas: las etaMaxRows más próximas y el resto contado
		etaRows := etaIdx[p.ItmRef]
		visible := etaRows
		if len(visible) > etaMaxRows {
			visible = visible[:etaMaxRows]
		}
		v.ETA = make([]ETAEntry, 0, len(visible))
		for _, r := range visible {
			vcr := ""
			if r.Vcr != nil {
				vcr = *r.Vcr
			}
			v.ETA = append(v.ETA, ETAEntry{
				Fecha: FmtDate(r.Fecha),
				Qty:   FmtInt(r.Qty),
				Vcr:   vcr,
			})
		}
		v.ETAExtra = len(etaRows) - len(visible)

		out = append(out, v)
	}

	return out
}
