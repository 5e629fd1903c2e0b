package stock

import (
	"fmt"

	"github.com/jhoicas/femibot-stock/internal/domain"
)

// Status modo del filtro de estado de vencimiento.
type Status string

const (
	StatusAll          Status = "all"
	StatusExpiringSoon Status = "expiring_soon"
	StatusExpired      Status = "expired"
)

// Límites y valor por defecto del umbral de "próximos a vencer", en días.
const (
	MinThresholdDays     = 1
	MaxThresholdDays     = 180
	DefaultThresholdDays = 30
)

// ParseStatus valida el modo; vacío equivale a StatusAll.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case "", StatusAll:
		return StatusAll, nil
	case StatusExpiringSoon, StatusExpired:
		return Status(s), nil
	}
	return "", fmt.Errorf("estado de vencimiento %q: %w", s, domain.ErrInvalidInput)
}

// ValidateThreshold verifica que el umbral esté en [MinThresholdDays, MaxThresholdDays].
func ValidateThreshold(days int) error {
	if days < MinThresholdDays || days > MaxThresholdDays {
		return fmt.Errorf("umbral %d fuera de rango [%d,%d]: %w", days, MinThresholdDays, MaxThresholdDays, domain.ErrInvalidInput)
	}
	return nil
}

// IsExpired días hasta vencimiento negativos.
func IsExpired(days int64) bool { return days < 0 }

// IsExpiringSoon 0 <= días <= umbral.
func IsExpiringSoon(days int64, thresholdDays int) bool {
	return days >= 0 && days <= int64(thresholdDays)
}

// FilterStatus aplica el filtro de estado sobre Dias_hasta_vto.
// Sin esa columna la tabla vuelve sin cambios.
func FilterStatus(t *Table, status Status, thresholdDays int) *Table {
	idx, ok := t.ColumnIndex(ColDiasHastaVto)
	if !ok {
		return t
	}
	return t.Filter(func(r Row) bool {
		d, ok := r[idx].AsInt()
		if !ok {
			return false
		}
		switch status {
		case StatusExpired:
			return IsExpired(d)
		case StatusExpiringSoon:
			return IsExpiringSoon(d, thresholdDays)
		default:
			return true
		}
	})
}

// ExpirationParams parámetros propios de la vista de vencimientos.
type ExpirationParams struct {
	Status        Status
	ThresholdDays int
	Months        []string // yyyy-mm; vacío = todos
}

// ExpirationResult tabla filtrada y dominio del filtro de mes.
type ExpirationResult struct {
	Table        *Table
	MonthOptions []string
}

// FilterExpirations descarta las filas sin Vencimiento, aplica el filtro de mes
// (columna auxiliar Mes_vto) y luego el de estado.
func FilterExpirations(t *Table, p ExpirationParams) (ExpirationResult, error) {
	if err := ValidateThreshold(p.ThresholdDays); err != nil {
		return ExpirationResult{}, err
	}
	var months []string
	if idx, ok := t.ColumnIndex(ColVencimiento); ok {
		t = t.Filter(func(r Row) bool { return !r[idx].IsNull() })
		t = t.WithColumn(ColMesVto, func(r Row) Value {
			d, _ := r[idx].AsDate()
			return Text(MonthBucket(d))
		})
		months = t.Distinct(ColMesVto)
		t = ApplySelection(t, ColMesVto, p.Months)
	}
	t = FilterStatus(t, p.Status, p.ThresholdDays)
	return ExpirationResult{Table: t, MonthOptions: months}, nil
}
