package inventory

import (
	"context"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
	"github.com/jhoicas/Farmacia-api/pkg/validate"
)

// StockUseCase vistas de existencias sobre el catálogo.
// El listado es una proyección del catálogo: el stock solo lo muta el flujo de documentos.
type StockUseCase struct {
	medicineRepo repository.MedicineRepository
}

// NewStockUseCase construye el caso de uso de existencias.
func NewStockUseCase(medicineRepo repository.MedicineRepository) *StockUseCase {
	return &StockUseCase{medicineRepo: medicineRepo}
}

// List lista existencias con búsqueda, filtro por categoría y orden por stock o nombre.
func (uc *StockUseCase) List(ctx context.Context, in dto.StockListRequest) (*dto.StockListResponse, error) {
	if err := validate.Struct(in); err != nil {
		return nil, domain.ErrInvalidInput
	}
	in.DefaultPage()

	meds, err := uc.medicineRepo.List(ctx, repository.MedicineFilter{
		Keyword:     in.Keyword,
		CategoryID:  in.CategoryID,
		SortByStock: in.SortBy == "stock",
		Descending:  in.Order == "desc",
		Limit:       in.Limit,
		Offset:      in.Offset,
	})
	if err != nil {
		return nil, err
	}

	items := make([]dto.StockItemResponse, 0, len(meds))
	for _, m := range meds {
		items = append(items, toStockItem(m))
	}
	return &dto.StockListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}, nil
}

// Warning lista los medicamentos en o por debajo de su umbral de alerta.
func (uc *StockUseCase) Warning(ctx context.Context) ([]dto.StockItemResponse, error) {
	meds, err := uc.medicineRepo.ListBelowMinStock(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockItemResponse, 0, len(meds))
	for _, m := range meds {
		items = append(items, toStockItem(m))
	}
	return items, nil
}

func toStockItem(m *entity.Medicine) dto.StockItemResponse {
	return dto.StockItemResponse{
		MedicineID:    m.ID,
		Name:          m.Name,
		Specification: m.Specification,
		CategoryID:    m.CategoryID,
		UnitID:        m.UnitID,
		Stock:         m.Stock,
		MinStock:      m.MinStock,
		LowStock:      m.BelowMinStock(),
		RetailPrice:   m.RetailPrice,
	}
}
