package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrMalformedSource   = errors.New("archivo de stock ilegible o mal formado")
	ErrSourceUnavailable = errors.New("fuente de stock no disponible")
	ErrUnsupportedFormat = errors.New("formato de exportación no soportado")
)
