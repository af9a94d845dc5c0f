package dto

import "github.com/shopspring/decimal"

// InboundReportRequest rango de fechas del reporte de entradas (vacío = últimos 30 días).
type InboundReportRequest struct {
	From string `query:"from"` // YYYY-MM-DD
	To   string `query:"to"`
}

// SupplierInboundStatResponse agregado de entradas aprobadas por proveedor.
type SupplierInboundStatResponse struct {
	SupplierID    string          `json:"supplier_id"`
	SupplierName  string          `json:"supplier_name"`
	DocumentCount int64           `json:"document_count"`
	TotalQuantity int64           `json:"total_quantity"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// InboundReportResponse reporte de entradas por proveedor.
type InboundReportResponse struct {
	From  string                        `json:"from"`
	To    string                        `json:"to"`
	Items []SupplierInboundStatResponse `json:"items"`
}

// CategoryStockStatResponse agregado de existencias por categoría.
type CategoryStockStatResponse struct {
	CategoryID    string          `json:"category_id"`
	CategoryName  string          `json:"category_name"`
	MedicineCount int64           `json:"medicine_count"`
	TotalStock    int64           `json:"total_stock"`
	StockValue    decimal.Decimal `json:"stock_value"`
}

// StockSummaryResponse reporte de existencias por categoría.
type StockSummaryResponse struct {
	Items []CategoryStockStatResponse `json:"items"`
}
