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

// MedicineUseCase catálogo de medicamentos.
// El stock nunca se edita por aquí: nace en cero y solo lo muta el flujo de documentos.
type MedicineUseCase struct {
	medicineRepo repository.MedicineRepository
}

// NewMedicineUseCase construye el caso de uso del catálogo.
func NewMedicineUseCase(medicineRepo repository.MedicineRepository) *MedicineUseCase {
	return &MedicineUseCase{medicineRepo: medicineRepo}
}

// Create crea un medicamento con stock en cero.
// La pareja (nombre, presentación) debe ser única en el catálogo.
func (uc *MedicineUseCase) Create(ctx context.Context, in dto.CreateMedicineRequest) (*dto.MedicineResponse, error) {
	if err := validate.Struct(in); err != nil {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.medicineRepo.GetByNameAndSpec(ctx, in.Name, in.Specification)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	m := &entity.Medicine{
		ID:             uuid.New().String(),
		Name:           in.Name,
		GenericName:    in.GenericName,
		ApprovalNumber: in.ApprovalNumber,
		Specification:  in.Specification,
		DosageForm:     in.DosageForm,
		Manufacturer:   in.Manufacturer,
		CategoryID:     in.CategoryID,
		UnitID:         in.UnitID,
		IsPrescription: in.IsPrescription,
		Stock:          0,
		MinStock:       in.MinStock,
		RetailPrice:    in.RetailPrice,
		Remark:         in.Remark,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.medicineRepo.Create(ctx, m); err != nil {
		return nil, err
	}
	return toMedicineResponse(m), nil
}

// GetByID obtiene un medicamento por su identificador.
func (uc *MedicineUseCase) GetByID(ctx context.Context, id string) (*dto.MedicineResponse, error) {
	m, err := uc.medicineRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, nil
	}
	return toMedicineResponse(m), nil
}

// Update actualiza los campos del catálogo de un medicamento.
func (uc *MedicineUseCase) Update(ctx context.Context, id string, in dto.UpdateMedicineRequest) (*dto.MedicineResponse, error) {
	if err := validate.Struct(in); err != nil {
		return nil, domain.ErrInvalidInput
	}
	m, err := uc.medicineRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}

	name, spec := m.Name, m.Specification
	if in.Name != nil {
		name = *in.Name
	}
	if in.Specification != nil {
		spec = *in.Specification
	}
	if name != m.Name || spec != m.Specification {
		existing, err := uc.medicineRepo.GetByNameAndSpec(ctx, name, spec)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, domain.ErrDuplicate
		}
	}

	m.Name = name
	m.Specification = spec
	if in.GenericName != nil {
		m.GenericName = *in.GenericName
	}
	if in.ApprovalNumber != nil {
		m.ApprovalNumber = *in.ApprovalNumber
	}
	if in.DosageForm != nil {
		m.DosageForm = *in.DosageForm
	}
	if in.Manufacturer != nil {
		m.Manufacturer = *in.Manufacturer
	}
	if in.CategoryID != nil {
		m.CategoryID = *in.CategoryID
	}
	if in.UnitID != nil {
		m.UnitID = *in.UnitID
	}
	if in.IsPrescription != nil {
		m.IsPrescription = *in.IsPrescription
	}
	if in.MinStock != nil {
		m.MinStock = *in.MinStock
	}
	if in.RetailPrice != nil {
		m.RetailPrice = *in.RetailPrice
	}
	if in.Remark != nil {
		m.Remark = *in.Remark
	}
	m.UpdatedAt = time.Now()

	if err := uc.medicineRepo.Update(ctx, m); err != nil {
		return nil, err
	}
	return toMedicineResponse(m), nil
}

// List lista medicamentos con búsqueda y paginación.
func (uc *MedicineUseCase) List(ctx context.Context, keyword, categoryID string, page dto.PageRequest) (*dto.MedicineListResponse, error) {
	page.DefaultPage()
	meds, err := uc.medicineRepo.List(ctx, repository.MedicineFilter{
		Keyword:    keyword,
		CategoryID: categoryID,
		Limit:      page.Limit,
		Offset:     page.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.MedicineResponse, 0, len(meds))
	for _, m := range meds {
		items = append(items, *toMedicineResponse(m))
	}
	return &dto.MedicineListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina un medicamento si ningún documento lo referencia.
func (uc *MedicineUseCase) Delete(ctx context.Context, id string) error {
	m, err := uc.medicineRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if m == nil {
		return domain.ErrNotFound
	}
	referenced, err := uc.medicineRepo.ReferencedByLines(ctx, id)
	if err != nil {
		return err
	}
	if referenced {
		return domain.ErrInUse
	}
	return uc.medicineRepo.Delete(ctx, id)
}

func toMedicineResponse(m *entity.Medicine) *dto.MedicineResponse {
	return &dto.MedicineResponse{
		ID:             m.ID,
		Name:           m.Name,
		GenericName:    m.GenericName,
		ApprovalNumber: m.ApprovalNumber,
		Specification:  m.Specification,
		DosageForm:     m.DosageForm,
		Manufacturer:   m.Manufacturer,
		CategoryID:     m.CategoryID,
		UnitID:         m.UnitID,
		IsPrescription: m.IsPrescription,
		Stock:          m.Stock,
		MinStock:       m.MinStock,
		LowStock:       m.BelowMinStock(),
		RetailPrice:    m.RetailPrice,
		Remark:         m.Remark,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
