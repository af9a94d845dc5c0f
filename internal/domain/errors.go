package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrUsernameTaken      = errors.New("el nombre de usuario ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInUse              = errors.New("el recurso está referenciado por otros registros")
	ErrInsufficientStock  = errors.New("stock insuficiente")
)

// InsufficientStockError detalla qué medicamento no alcanza y las dos cantidades en juego.
// errors.Is(err, ErrInsufficientStock) sigue funcionando gracias a Is.
type InsufficientStockError struct {
	MedicineID    string
	Name          string
	Specification string
	Current       int64
	Requested     int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s %s: disponible %d, solicitado %d",
		e.Name, e.Specification, e.Current, e.Requested)
}

// Is permite comparar contra el centinela ErrInsufficientStock.
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
