package entity

import "time"

// Supplier proveedor de medicamentos.
type Supplier struct {
	ID            string
	Name          string // único
	LicenseNumber string // licencia sanitaria de comercialización (única)
	Contact       string
	Phone         string
	Address       string
	CreatedAt     time.Time
}
