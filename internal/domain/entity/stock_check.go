package entity

import "time"

// StockCheck cabecera de un inventario físico (conteo).
// Los conteos son solo registro: nunca mutan el stock del catálogo.
type StockCheck struct {
	ID        string // ej. CK20231114001
	Checker   string
	CheckDate time.Time
	Remark    string
	CreatedAt time.Time
}

// StockCheckDetail una línea del conteo: stock de sistema capturado en la misma
// transacción, stock físico contado y la diferencia (actual - sistema).
type StockCheckDetail struct {
	ID          string
	CheckID     string
	MedicineID  string
	SystemStock int64
	ActualStock int64
	Diff        int64
}
