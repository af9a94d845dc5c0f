package dto

import "time"

// ── Categorías ────────────────────────────────────────────────────────────────

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Name   string `json:"name" validate:"required,min=1,max=100"`
	Remark string `json:"remark" validate:"max=200"`
}

// UpdateCategoryRequest entrada para actualizar una categoría.
type UpdateCategoryRequest struct {
	Name   *string `json:"name" validate:"omitempty,min=1,max=100"`
	Remark *string `json:"remark" validate:"omitempty,max=200"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Remark    string    `json:"remark,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ── Unidades ──────────────────────────────────────────────────────────────────

// CreateUnitRequest entrada para crear una unidad de medida.
type CreateUnitRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=50"`
	Abbreviation string `json:"abbreviation" validate:"max=20"`
}

// UpdateUnitRequest entrada para actualizar una unidad.
type UpdateUnitRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=50"`
	Abbreviation *string `json:"abbreviation" validate:"omitempty,max=20"`
}

// UnitResponse salida de una unidad.
type UnitResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation,omitempty"`
}

// ── Proveedores ───────────────────────────────────────────────────────────────

// CreateSupplierRequest entrada para crear un proveedor.
type CreateSupplierRequest struct {
	Name          string `json:"name" validate:"required,min=1,max=100"`
	LicenseNumber string `json:"license_number" validate:"max=50"`
	Contact       string `json:"contact" validate:"max=50"`
	Phone         string `json:"phone" validate:"max=20"`
	Address       string `json:"address" validate:"max=200"`
}

// UpdateSupplierRequest entrada para actualizar un proveedor.
type UpdateSupplierRequest struct {
	Name          *string `json:"name" validate:"omitempty,min=1,max=100"`
	LicenseNumber *string `json:"license_number" validate:"omitempty,max=50"`
	Contact       *string `json:"contact" validate:"omitempty,max=50"`
	Phone         *string `json:"phone" validate:"omitempty,max=20"`
	Address       *string `json:"address" validate:"omitempty,max=200"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	LicenseNumber string    `json:"license_number,omitempty"`
	Contact       string    `json:"contact,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Address       string    `json:"address,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// SupplierListResponse lista paginada de proveedores.
type SupplierListResponse struct {
	Items []SupplierResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ── Bodegas ───────────────────────────────────────────────────────────────────

// CreateWarehouseRequest entrada para crear una bodega.
type CreateWarehouseRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Type     string `json:"type" validate:"omitempty,oneof=AMBIENT COOL COLD"`
	Location string `json:"location" validate:"max=200"`
	Manager  string `json:"manager" validate:"max=50"`
	Phone    string `json:"phone" validate:"max=20"`
}

// UpdateWarehouseRequest entrada para actualizar una bodega.
type UpdateWarehouseRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=100"`
	Type     *string `json:"type" validate:"omitempty,oneof=AMBIENT COOL COLD"`
	Location *string `json:"location" validate:"omitempty,max=200"`
	Manager  *string `json:"manager" validate:"omitempty,max=50"`
	Phone    *string `json:"phone" validate:"omitempty,max=20"`
	IsActive *bool   `json:"is_active"`
}

// WarehouseResponse salida de una bodega.
type WarehouseResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type,omitempty"`
	Location  string    `json:"location,omitempty"`
	Manager   string    `json:"manager,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
