package entity

import "time"

// Tipos de bodega según condición de almacenamiento.
const (
	WarehouseTypeAmbient = "AMBIENT" // temperatura ambiente
	WarehouseTypeCool    = "COOL"    // fresco (8-20 °C)
	WarehouseTypeCold    = "COLD"    // refrigerado (2-8 °C)
)

// Warehouse bodega física donde se reciben y despachan documentos.
type Warehouse struct {
	ID        string
	Name      string // único
	Type      string
	Location  string // único
	Manager   string
	Phone     string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
