package repository

import (
	"context"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// MedicineFilter filtros para listar el catálogo / existencias.
type MedicineFilter struct {
	Keyword     string // busca en nombre, genérico y fabricante
	CategoryID  string
	SortByStock bool // ordenar por existencia en lugar de nombre
	Descending  bool
	Limit       int
	Offset      int
}

// MedicineRepository puerto de persistencia del catálogo de medicamentos.
// AdjustStock y GetForUpdate son el libro mayor de existencias: AdjustStock acepta
// cualquier delta (incluso uno que deje stock negativo); la verificación de salida
// la hace el flujo de documentos, no esta capa.
type MedicineRepository interface {
	Create(ctx context.Context, m *entity.Medicine) error
	GetByID(ctx context.Context, id string) (*entity.Medicine, error)
	GetByNameAndSpec(ctx context.Context, name, specification string) (*entity.Medicine, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Medicine, error)
	AdjustStock(ctx context.Context, id string, delta int64) error
	Update(ctx context.Context, m *entity.Medicine) error
	List(ctx context.Context, f MedicineFilter) ([]*entity.Medicine, error)
	ListBelowMinStock(ctx context.Context) ([]*entity.Medicine, error)
	ReferencedByLines(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) error
}
