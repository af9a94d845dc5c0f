package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMedicineRequest entrada para crear un medicamento.
type CreateMedicineRequest struct {
	Name           string          `json:"name" validate:"required,min=1,max=100"`
	GenericName    string          `json:"generic_name" validate:"max=100"`
	ApprovalNumber string          `json:"approval_number" validate:"max=50"`
	Specification  string          `json:"specification" validate:"required,min=1,max=100"`
	DosageForm     string          `json:"dosage_form" validate:"max=50"`
	Manufacturer   string          `json:"manufacturer" validate:"max=200"`
	CategoryID     string          `json:"category_id"`
	UnitID         string          `json:"unit_id"`
	IsPrescription bool            `json:"is_prescription"`
	MinStock       int64           `json:"min_stock" validate:"min=0"`
	RetailPrice    decimal.Decimal `json:"retail_price"`
	Remark         string          `json:"remark" validate:"max=500"`
}

// UpdateMedicineRequest entrada para actualizar un medicamento.
// El stock no se toca aquí: solo lo muta el flujo de auditoría de documentos.
type UpdateMedicineRequest struct {
	Name           *string          `json:"name" validate:"omitempty,min=1,max=100"`
	GenericName    *string          `json:"generic_name" validate:"omitempty,max=100"`
	ApprovalNumber *string          `json:"approval_number" validate:"omitempty,max=50"`
	Specification  *string          `json:"specification" validate:"omitempty,min=1,max=100"`
	DosageForm     *string          `json:"dosage_form" validate:"omitempty,max=50"`
	Manufacturer   *string          `json:"manufacturer" validate:"omitempty,max=200"`
	CategoryID     *string          `json:"category_id"`
	UnitID         *string          `json:"unit_id"`
	IsPrescription *bool            `json:"is_prescription"`
	MinStock       *int64           `json:"min_stock" validate:"omitempty,min=0"`
	RetailPrice    *decimal.Decimal `json:"retail_price"`
	Remark         *string          `json:"remark" validate:"omitempty,max=500"`
}

// MedicineResponse salida de un medicamento.
type MedicineResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	GenericName    string          `json:"generic_name,omitempty"`
	ApprovalNumber string          `json:"approval_number,omitempty"`
	Specification  string          `json:"specification"`
	DosageForm     string          `json:"dosage_form,omitempty"`
	Manufacturer   string          `json:"manufacturer,omitempty"`
	CategoryID     string          `json:"category_id,omitempty"`
	UnitID         string          `json:"unit_id,omitempty"`
	IsPrescription bool            `json:"is_prescription"`
	Stock          int64           `json:"stock"`
	MinStock       int64           `json:"min_stock"`
	LowStock       bool            `json:"low_stock"`
	RetailPrice    decimal.Decimal `json:"retail_price"`
	Remark         string          `json:"remark,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// MedicineListResponse lista paginada de medicamentos.
type MedicineListResponse struct {
	Items []MedicineResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
