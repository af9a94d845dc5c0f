package repository

import (
	"context"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// UnitRepository puerto de persistencia para unidades de medida.
type UnitRepository interface {
	Create(ctx context.Context, u *entity.Unit) error
	GetByID(ctx context.Context, id string) (*entity.Unit, error)
	Update(ctx context.Context, u *entity.Unit) error
	List(ctx context.Context) ([]*entity.Unit, error)
	Delete(ctx context.Context, id string) error
}
