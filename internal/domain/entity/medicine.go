package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Medicine representa un medicamento del catálogo.
// Stock es la existencia actual (libro mayor); solo el flujo de auditoría de documentos lo muta.
// La pareja (Name, Specification) es única en el catálogo.
type Medicine struct {
	ID             string
	Name           string
	GenericName    string
	ApprovalNumber string // número de registro sanitario (único)
	Specification  string // ej. "10mg*24 tabletas"
	DosageForm     string // tableta, cápsula, inyectable...
	Manufacturer   string
	CategoryID     string
	UnitID         string
	IsPrescription bool
	Stock          int64 // existencia actual
	MinStock       int64 // umbral de alerta de stock bajo
	RetailPrice    decimal.Decimal
	Remark         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// BelowMinStock indica si el medicamento está en o por debajo de su umbral de alerta.
func (m *Medicine) BelowMinStock() bool {
	return m.Stock <= m.MinStock
}
