package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrConflict         = errors.New("conflicto con el estado actual")
	ErrNegativeBalance  = errors.New("stock insuficiente")
	ErrStoreUnavailable = errors.New("almacenamiento no disponible")
)
