package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockListRequest filtros del listado de existencias.
type StockListRequest struct {
	Keyword    string `query:"keyword"`
	CategoryID string `query:"category_id"`
	SortBy     string `query:"sort_by" validate:"omitempty,oneof=stock name"`
	Order      string `query:"order" validate:"omitempty,oneof=asc desc"`
	PageRequest
}

// StockItemResponse una fila del listado de existencias.
type StockItemResponse struct {
	MedicineID    string          `json:"medicine_id"`
	Name          string          `json:"name"`
	Specification string          `json:"specification"`
	CategoryID    string          `json:"category_id,omitempty"`
	UnitID        string          `json:"unit_id,omitempty"`
	Stock         int64           `json:"stock"`
	MinStock      int64           `json:"min_stock"`
	LowStock      bool            `json:"low_stock"`
	RetailPrice   decimal.Decimal `json:"retail_price"`
}

// StockListResponse listado de existencias.
type StockListResponse struct {
	Items []StockItemResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// ── Conteos físicos ───────────────────────────────────────────────────────────

// StockCheckDetailRequest una línea de conteo: lo contado físicamente.
type StockCheckDetailRequest struct {
	MedicineID  string `json:"medicine_id" validate:"required"`
	ActualStock int64  `json:"actual_stock" validate:"min=0"`
}

// CreateStockCheckRequest entrada para registrar un conteo físico.
type CreateStockCheckRequest struct {
	Checker   string                    `json:"checker" validate:"required,min=1,max=50"`
	CheckDate string                    `json:"check_date"` // YYYY-MM-DD; vacío = hoy
	Remark    string                    `json:"remark"`
	Details   []StockCheckDetailRequest `json:"details" validate:"required,min=1,dive"`
}

// StockCheckDetailResponse una línea de conteo con la diferencia calculada.
type StockCheckDetailResponse struct {
	ID          string `json:"id"`
	MedicineID  string `json:"medicine_id"`
	SystemStock int64  `json:"system_stock"`
	ActualStock int64  `json:"actual_stock"`
	Diff        int64  `json:"diff"`
}

// StockCheckResponse salida de un conteo con sus líneas.
type StockCheckResponse struct {
	ID        string                     `json:"id"`
	Checker   string                     `json:"checker"`
	CheckDate string                     `json:"check_date"`
	Remark    string                     `json:"remark,omitempty"`
	CreatedAt time.Time                  `json:"created_at"`
	Details   []StockCheckDetailResponse `json:"details,omitempty"`
}

// StockCheckListResponse lista paginada de conteos (sin líneas).
type StockCheckListResponse struct {
	Items []StockCheckResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}
