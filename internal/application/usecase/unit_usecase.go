package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
	"github.com/jhoicas/Farmacia-api/pkg/validate"
)

// UnitUseCase unidades de medida.
type UnitUseCase struct {
	unitRepo repository.UnitRepository
}

// NewUnitUseCase construye el caso de uso de unidades.
func NewUnitUseCase(unitRepo repository.UnitRepository) *UnitUseCase {
	return &UnitUseCase{unitRepo: unitRepo}
}

// Create crea una unidad; el nombre es único.
func (uc *UnitUseCase) Create(ctx context.Context, in dto.CreateUnitRequest) (*dto.UnitResponse, error) {
	if err := validate.Struct(in); err != nil {
		return nil, domain.ErrInvalidInput
	}
	u := &entity.Unit{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Abbreviation: in.Abbreviation,
	}
	if err := uc.unitRepo.Create(ctx, u); err != nil {
		return nil, err
	}
	return toUnitResponse(u), nil
}

// Update actualiza una unidad.
func (uc *UnitUseCase) Update(ctx context.Context, id string, in dto.UpdateUnitRequest) (*dto.UnitResponse, error) {
	if err := validate.Struct(in); err != nil {
		return nil, domain.ErrInvalidInput
	}
	u, err := uc.unitRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Abbreviation != nil {
		u.Abbreviation = *in.Abbreviation
	}
	if err := uc.unitRepo.Update(ctx, u); err != nil {
		return nil, err
	}
	return toUnitResponse(u), nil
}

// List lista todas las unidades.
func (uc *UnitUseCase) List(ctx context.Context) ([]dto.UnitResponse, error) {
	units, err := uc.unitRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UnitResponse, 0, len(units))
	for _, u := range units {
		out = append(out, *toUnitResponse(u))
	}
	return out, nil
}

// Delete elimina una unidad si ningún medicamento la referencia.
func (uc *UnitUseCase) Delete(ctx context.Context, id string) error {
	u, err := uc.unitRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.ErrNotFound
	}
	return uc.unitRepo.Delete(ctx, id)
}

func toUnitResponse(u *entity.Unit) *dto.UnitResponse {
	return &dto.UnitResponse{
		ID:           u.ID,
		Name:         u.Name,
		Abbreviation: u.Abbreviation,
	}
}
