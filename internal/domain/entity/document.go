package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Dirección de un documento: entrada (compra) o salida (venta/consumo).
const (
	DirectionInbound  = "INBOUND"
	DirectionOutbound = "OUTBOUND"
)

// Estados de auditoría. Solo APPROVED afecta el stock.
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// ValidDirection reporta si s es una dirección conocida.
func ValidDirection(s string) bool {
	return s == DirectionInbound || s == DirectionOutbound
}

// ValidStatus reporta si s es un estado de auditoría conocido.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// Document unifica entradas (compras) y salidas (ventas): cabecera con estado de auditoría.
// El ID es el número de documento visible (ej. IN20231114001) generado por secuencia.
// SupplierID aplica a INBOUND; CustomerName a OUTBOUND (cliente o departamento que retira).
type Document struct {
	ID           string
	Direction    string
	SupplierID   string
	CustomerName string
	WarehouseID  string
	DocDate      time.Time // fecha del documento (solo día)
	TotalAmount  decimal.Decimal
	Remark       string
	Status       string
	Auditor      string     // usuario que aplicó la última transición
	AuditedAt    *time.Time // nil mientras no se haya auditado
	CreatedAt    time.Time
}

// StockSign devuelve el signo con el que las cantidades del documento afectan el stock
// al aprobarse: +1 entrada, -1 salida.
func (d *Document) StockSign() int64 {
	if d.Direction == DirectionOutbound {
		return -1
	}
	return 1
}

// DocumentLine línea de un documento: un medicamento con cantidad y precio.
// Amount siempre se recalcula como Quantity × UnitPrice; nunca se confía en el valor recibido.
type DocumentLine struct {
	ID         string
	DocumentID string
	MedicineID string
	Quantity   int64
	UnitPrice  decimal.Decimal
	Amount     decimal.Decimal
}

// ComputeAmount fija Amount = Quantity × UnitPrice y lo devuelve.
func (l *DocumentLine) ComputeAmount() decimal.Decimal {
	l.Amount = decimal.NewFromInt(l.Quantity).Mul(l.UnitPrice)
	return l.Amount
}
