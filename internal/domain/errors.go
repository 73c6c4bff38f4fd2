package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrStorage           = errors.New("fallo de almacenamiento")
)

// StorageFailure envuelve un error del store conservando la causa para logs.
// errors.Is(err, ErrStorage) es verdadero para el resultado.
func StorageFailure(op string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%w: %s", ErrStorage, op)
	}
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, cause)
}

// IsKnown indica si err ya pertenece a uno de los tipos de error de dominio.
func IsKnown(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrDuplicate) ||
		errors.Is(err, ErrInsufficientStock) ||
		errors.Is(err, ErrStorage)
}
