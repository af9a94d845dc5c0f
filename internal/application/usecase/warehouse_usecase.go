package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
	"github.com/jhoicas/Farmacia-api/pkg/validate"
)

// WarehouseUseCase bodegas físicas.
type WarehouseUseCase struct {
	warehouseRepo repository.WarehouseRepository
}

// NewWarehouseUseCase construye el caso de uso de bodegas.
func NewWarehouseUseCase(warehouseRepo repository.WarehouseRepository) *WarehouseUseCase {
	return &WarehouseUseCase{warehouseRepo: warehouseRepo}
}

// Create crea una bodega activa; nombre y ubicación son únicos.
// Sin tipo explícito se asume temperatura ambiente.
func (uc *WarehouseUseCase) Create(ctx context.Context, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	if err := validate.Struct(in); err != nil {
		return nil, domain.ErrInvalidInput
	}
	whType := in.Type
	if whType == "" {
		whType = entity.WarehouseTypeAmbient
	}
	now := time.Now()
	w := &entity.Warehouse{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Type:      whType,
		Location:  in.Location,
		Manager:   in.Manager,
		Phone:     in.Phone,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.warehouseRepo.Create(ctx, w); err != nil {
		return nil, err
	}
	return toWarehouseResponse(w), nil
}

// Update actualiza una bodega.
func (uc *WarehouseUseCase) Update(ctx context.Context, id string, in dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error) {
	if err := validate.Struct(in); err != nil {
		return nil, domain.ErrInvalidInput
	}
	w, err := uc.warehouseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		w.Name = *in.Name
	}
	if in.Type != nil {
		w.Type = *in.Type
	}
	if in.Location != nil {
		w.Location = *in.Location
	}
	if in.Manager != nil {
		w.Manager = *in.Manager
	}
	if in.Phone != nil {
		w.Phone = *in.Phone
	}
	if in.IsActive != nil {
		w.IsActive = *in.IsActive
	}
	w.UpdatedAt = time.Now()

	if err := uc.warehouseRepo.Update(ctx, w); err != nil {
		return nil, err
	}
	return toWarehouseResponse(w), nil
}

// List lista todas las bodegas.
func (uc *WarehouseUseCase) List(ctx context.Context) ([]dto.WarehouseResponse, error) {
	whs, err := uc.warehouseRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.WarehouseResponse, 0, len(whs))
	for _, w := range whs {
		out = append(out, *toWarehouseResponse(w))
	}
	return out, nil
}

// Delete elimina una bodega si ningún documento la referencia.
func (uc *WarehouseUseCase) Delete(ctx context.Context, id string) error {
	w, err := uc.warehouseRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if w == nil {
		return domain.ErrNotFound
	}
	return uc.warehouseRepo.Delete(ctx, id)
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	return &dto.WarehouseResponse{
		ID:        w.ID,
		Name:      w.Name,
		Type:      w.Type,
		Location:  w.Location,
		Manager:   w.Manager,
		Phone:     w.Phone,
		IsActive:  w.IsActive,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}
