package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo asigna consecutivos por (prefijo, fecha) sobre una tabla contador.
// El upsert bloquea la fila del contador: dos transacciones que piden la misma clave
// se serializan y obtienen números distintos, sin huecos y ascendentes desde 1.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador del contador. Pasar la tx del flujo que lo consume.
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Next devuelve el siguiente consecutivo para (prefix, date).
func (r *SequenceRepo) Next(ctx context.Context, prefix string, date time.Time) (int, error) {
	var seq int
	err := r.q.QueryRow(ctx, `
		INSERT INTO document_sequences (prefix, seq_date, last_seq)
		VALUES ($1, $2, 1)
		ON CONFLICT (prefix, seq_date)
		DO UPDATE SET last_seq = document_sequences.last_seq + 1
		RETURNING last_seq`,
		prefix, date,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}
