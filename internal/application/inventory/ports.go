package inventory

import (
	"context"

	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

// CheckTxRunner ejecuta la creación de un conteo físico dentro de una transacción.
// El stock de sistema de cada línea se captura bajo bloqueo de fila para que el
// conteo sea una foto consistente, aunque nunca mute el catálogo.
type CheckTxRunner interface {
	RunCheck(ctx context.Context, fn func(
		checkRepo repository.StockCheckRepository,
		medRepo repository.MedicineRepository,
		seqRepo repository.SequenceRepository,
	) error) error
}
