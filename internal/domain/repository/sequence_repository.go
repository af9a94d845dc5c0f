package repository

import (
	"context"
	"time"
)

// SequenceRepository asigna consecutivos por (prefijo, fecha) para numerar documentos.
// Next debe serializar asignaciones concurrentes de la misma clave y devolver números
// distintos, sin huecos y ascendentes, empezando en 1.
type SequenceRepository interface {
	Next(ctx context.Context, prefix string, date time.Time) (int, error)
}
