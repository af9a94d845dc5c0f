package repository

import (
	"context"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// WarehouseRepository puerto de persistencia para bodegas.
type WarehouseRepository interface {
	Create(ctx context.Context, w *entity.Warehouse) error
	GetByID(ctx context.Context, id string) (*entity.Warehouse, error)
	Update(ctx context.Context, w *entity.Warehouse) error
	List(ctx context.Context) ([]*entity.Warehouse, error)
	Delete(ctx context.Context, id string) error
}
