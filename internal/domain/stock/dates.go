package stock

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// dayFirstLayouts formatos aceptados para Vencimiento y Desde, siempre día antes que mes.
// Los de año con 4 dígitos van primero para no confundir "2024" con un año de 2 dígitos.
var dayFirstLayouts = []string{
	"2/1/2006", "2-1-2006", "2.1.2006",
	"2/1/2006 15:04", "2/1/2006 15:04:05",
	"2-1-2006 15:04", "2-1-2006 15:04:05",
	"2006-01-02", "2006/01/02",
	"2006-01-02 15:04", "2006-01-02 15:04:05",
	"2006-01-02T15:04:05", time.RFC3339,
	"2/1/06", "2-1-06", "2.1.06",
}

// Rango de seriales válidos en Excel (1900-01-01 .. 9999-12-31).
const (
	minExcelSerial = 1
	maxExcelSerial = 2958465
)

var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// excelSerial solo dígitos con decimales opcionales: descarta "NaN", "Inf" y notación exponencial.
var excelSerial = regexp.MustCompile(`^\d+(\.\d+)?$`)

const secondsPerDay = 24 * 60 * 60

// ParseDate interpreta una celda como fecha día-primero. Los números se toman como
// seriales de Excel (planillas con fechas reales). Devuelve false si no coincide ningún formato.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if excelSerial.MatchString(s) {
		serial, err := strconv.ParseFloat(s, 64)
		if err != nil || serial < minExcelSerial || serial > maxExcelSerial {
			return time.Time{}, false
		}
		return excelEpoch.AddDate(0, 0, int(serial)), true
	}
	for _, layout := range dayFirstLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return truncateDay(t), true
		}
	}
	return time.Time{}, false
}

// DaysBetween días enteros de from a to (to − from), ignorando la parte horaria.
// Cuenta sobre segundos Unix: time.Duration no alcanza para fechas como 31/12/9999.
func DaysBetween(from, to time.Time) int64 {
	return (truncateDay(to).Unix() - truncateDay(from).Unix()) / secondsPerDay
}

// MonthBucket clave yyyy-mm de una fecha, usada por el filtro auxiliar de mes.
func MonthBucket(t time.Time) string {
	return t.Format("2006-01")
}
