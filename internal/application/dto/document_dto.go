package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentLineRequest una línea del documento. El monto no se recibe: siempre se
// recalcula como cantidad × precio unitario.
type DocumentLineRequest struct {
	MedicineID string          `json:"medicine_id" validate:"required"`
	Quantity   int64           `json:"quantity" validate:"required,gt=0"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
}

// CreateDocumentRequest entrada para crear un documento (queda en PENDING).
// SupplierID aplica a INBOUND; CustomerName a OUTBOUND.
type CreateDocumentRequest struct {
	Direction    string                `json:"direction" validate:"required,oneof=INBOUND OUTBOUND"`
	SupplierID   string                `json:"supplier_id"`
	CustomerName string                `json:"customer_name" validate:"max=100"`
	WarehouseID  string                `json:"warehouse_id" validate:"required"`
	DocDate      string                `json:"doc_date"` // YYYY-MM-DD; vacío = hoy
	Remark       string                `json:"remark"`
	Lines        []DocumentLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// UpdateDocumentRequest entrada para la operación central: reemplaza las líneas y
// fija el estado de auditoría en una sola transacción.
type UpdateDocumentRequest struct {
	SupplierID   *string               `json:"supplier_id"`
	CustomerName *string               `json:"customer_name" validate:"omitempty,max=100"`
	WarehouseID  *string               `json:"warehouse_id"`
	DocDate      *string               `json:"doc_date"`
	Remark       *string               `json:"remark"`
	Status       string                `json:"status" validate:"required,oneof=PENDING APPROVED REJECTED"`
	Lines        []DocumentLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// DocumentLineResponse salida de una línea.
type DocumentLineResponse struct {
	ID         string          `json:"id"`
	MedicineID string          `json:"medicine_id"`
	Quantity   int64           `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Amount     decimal.Decimal `json:"amount"`
}

// DocumentResponse salida de un documento con sus líneas.
type DocumentResponse struct {
	ID           string                 `json:"id"`
	Direction    string                 `json:"direction"`
	SupplierID   string                 `json:"supplier_id,omitempty"`
	CustomerName string                 `json:"customer_name,omitempty"`
	WarehouseID  string                 `json:"warehouse_id"`
	DocDate      string                 `json:"doc_date"`
	TotalAmount  decimal.Decimal        `json:"total_amount"`
	Remark       string                 `json:"remark,omitempty"`
	Status       string                 `json:"status"`
	Auditor      string                 `json:"auditor,omitempty"`
	AuditedAt    *time.Time             `json:"audited_at,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
	Lines        []DocumentLineResponse `json:"lines,omitempty"`
}

// ListDocumentsRequest filtros de listado por dirección.
type ListDocumentsRequest struct {
	Keyword string `query:"keyword"`
	Status  string `query:"status" validate:"omitempty,oneof=PENDING APPROVED REJECTED"`
	From    string `query:"from"` // YYYY-MM-DD
	To      string `query:"to"`
	PageRequest
}

// DocumentListResponse lista paginada de documentos (sin líneas).
type DocumentListResponse struct {
	Items []DocumentResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
