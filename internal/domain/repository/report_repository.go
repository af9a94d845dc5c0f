package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SupplierInboundStat agregado de entradas aprobadas por proveedor en un rango de fechas.
type SupplierInboundStat struct {
	SupplierID    string
	SupplierName  string
	DocumentCount int64
	TotalQuantity int64
	TotalAmount   decimal.Decimal
}

// CategoryStockStat agregado de existencias por categoría.
// StockValue = suma(stock × precio de venta).
type CategoryStockStat struct {
	CategoryID    string
	CategoryName  string
	MedicineCount int64
	TotalStock    int64
	StockValue    decimal.Decimal
}

// ReportRepository consultas de solo lectura para reportes.
type ReportRepository interface {
	InboundBySupplier(ctx context.Context, from, to time.Time) ([]SupplierInboundStat, error)
	StockByCategory(ctx context.Context) ([]CategoryStockStat, error)
}
