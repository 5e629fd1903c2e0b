package stock

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Nombres canónicos de columna.
const (
	ColDeposito        = "Deposito"
	ColLinea           = "Linea"
	ColCategoria       = "Categoria"
	ColProducto        = "Producto"
	ColMedida          = "Medida"
	ColPartida         = "Partida"
	ColSecuencia       = "Secuencia"
	ColSecuenciaModif  = "Secuencia_modif"
	ColPartidaCompleta = "Partida_completa"
	ColLote            = "Lote"
	ColDesde           = "Desde"
	ColVencimiento     = "Vencimiento"
	ColDiasHastaVto    = "Dias_hasta_vto"
	ColDiasEnDeposito  = "Dias_en_deposito"
	ColCantidad        = "Cantidad"

	// ColMesVto columna auxiliar (yyyy-mm de Vencimiento) para el filtro de mes; nunca llega a la vista.
	ColMesVto = "Mes_vto"
)

// sourceLabels encabezados del archivo de stock → nombre canónico.
var sourceLabels = map[string]string{
	"Depósito":         ColDeposito,
	"Partida":          ColPartida,
	"Secuencia":        ColSecuencia,
	"Desde":            ColDesde,
	"Lote":             ColLote,
	"Vencimiento":      ColVencimiento,
	"Producto":         ColProducto,
	"Medida":           ColMedida,
	"Secuencia modif":  ColSecuenciaModif,
	"Partida completa": ColPartidaCompleta,
	"Linea":            ColLinea,
	"Categoria":        ColCategoria,
}

// foldedLabels índice por clave plegada (sin acentos, minúsculas, espacios simples).
var foldedLabels = func() map[string]string {
	m := make(map[string]string, len(sourceLabels)*2)
	for label, canonical := range sourceLabels {
		m[foldLabel(label)] = canonical
		m[foldLabel(canonical)] = canonical
	}
	return m
}()

// DisplayOrder orden canónico de columnas en las vistas.
var DisplayOrder = []string{
	ColDeposito, ColLinea, ColCategoria, ColProducto, ColMedida,
	ColPartida, ColSecuencia, ColPartidaCompleta, ColSecuenciaModif,
	ColLote, ColDesde, ColDiasEnDeposito,
	ColVencimiento, ColDiasHastaVto,
}

// SearchColumns columnas consideradas por la búsqueda libre.
var SearchColumns = []string{
	ColPartida, ColLote, ColProducto, ColMedida,
	ColPartidaCompleta, ColSecuencia, ColSecuenciaModif,
}

// CascadeColumns columnas de los filtros en cascada, en orden de aplicación.
var CascadeColumns = []string{ColDeposito, ColLinea, ColCategoria, ColProducto, ColMedida}

var internalColumns = map[string]bool{ColMesVto: true}

// CanonicalName traduce un encabezado de origen a su nombre canónico.
// Los encabezados que no están en el mapa se devuelven sin cambios y ok=false.
func CanonicalName(label string) (name string, ok bool) {
	if canonical, found := sourceLabels[label]; found {
		return canonical, true
	}
	if canonical, found := foldedLabels[foldLabel(label)]; found {
		return canonical, true
	}
	return label, false
}

// foldLabel quita acentos, pasa a minúsculas y colapsa espacios y guiones bajos.
func foldLabel(label string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, label)
	if err != nil {
		folded = label
	}
	folded = strings.ReplaceAll(folded, "_", " ")
	return strings.ToLower(strings.Join(strings.Fields(folded), " "))
}
