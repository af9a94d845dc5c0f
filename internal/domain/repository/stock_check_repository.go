package repository

import (
	"context"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// StockCheckRepository puerto de persistencia para conteos físicos.
type StockCheckRepository interface {
	Create(ctx context.Context, c *entity.StockCheck) error
	CreateDetail(ctx context.Context, d *entity.StockCheckDetail) error
	GetByID(ctx context.Context, id string) (*entity.StockCheck, error)
	ListDetails(ctx context.Context, checkID string) ([]*entity.StockCheckDetail, error)
	List(ctx context.Context, limit, offset int) ([]*entity.StockCheck, error)
}
