package stock

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Kind tipo de una celda de la tabla.
type Kind uint8

const (
	KindNull Kind = iota
	KindText
	KindInt
	KindDate
)

// DisplayDateLayout formato día-primero usado al mostrar y exportar fechas.
const DisplayDateLayout = "02/01/2006"

// Value celda tipada. El valor cero es una celda ausente (null).
type Value struct {
	kind Kind
	text string
	num  int64
	date time.Time
}

// Null devuelve una celda ausente.
func Null() Value { return Value{} }

// Text construye una celda de texto; un texto vacío o solo espacios es una celda ausente.
func Text(s string) Value {
	if strings.TrimSpace(s) == "" {
		return Value{}
	}
	return Value{kind: KindText, text: s}
}

// Int construye una celda entera.
func Int(n int64) Value { return Value{kind: KindInt, num: n} }

// Date construye una celda de fecha truncada al día (UTC).
func Date(t time.Time) Value {
	return Value{kind: KindDate, date: truncateDay(t)}
}

// Kind devuelve el tipo de la celda.
func (v Value) Kind() Kind { return v.kind }

// IsNull indica si la celda está ausente.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsInt devuelve el entero de la celda si es de tipo entero.
func (v Value) AsInt() (int64, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return v.num, true
}

// AsDate devuelve la fecha de la celda si es de tipo fecha.
func (v Value) AsDate() (time.Time, bool) {
	if v.kind != KindDate {
		return time.Time{}, false
	}
	return v.date, true
}

// String representación para búsqueda, opciones de filtro y render. Null → "".
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindInt:
		return strconv.FormatInt(v.num, 10)
	case KindDate:
		return v.date.Format(DisplayDateLayout)
	default:
		return ""
	}
}

// Interface devuelve el valor nativo (nil, string, int64 o time.Time) para serializadores.
func (v Value) Interface() any {
	switch v.kind {
	case KindText:
		return v.text
	case KindInt:
		return v.num
	case KindDate:
		return v.date
	default:
		return nil
	}
}

// MarshalJSON serializa la celda: null, string, número o fecha ISO (yyyy-mm-dd).
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindText:
		return json.Marshal(v.text)
	case KindInt:
		return []byte(strconv.FormatInt(v.num, 10)), nil
	case KindDate:
		return json.Marshal(v.date.Format("2006-01-02"))
	default:
		return []byte("null"), nil
	}
}

// compareValues orden total usado para los dominios de filtro:
// enteros y fechas en orden natural, el resto por texto.
func compareValues(a, b Value) int {
	if a.kind == b.kind {
		switch a.kind {
		case KindInt:
			switch {
			case a.num < b.num:
				return -1
			case a.num > b.num:
				return 1
			}
			return 0
		case KindDate:
			return a.date.Compare(b.date)
		}
	}
	return strings.Compare(a.String(), b.String())
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
