package document

import (
	"context"

	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el flujo de auditoría: o se confirman cabecera, líneas y
// ajustes de stock juntos, o nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		docRepo repository.DocumentRepository,
		medRepo repository.MedicineRepository,
		seqRepo repository.SequenceRepository,
	) error) error
}

// LineForPDF línea enriquecida con los datos del medicamento para el comprobante impreso.
type LineForPDF struct {
	MedicineName  string
	Specification string
	UnitName      string
	Quantity      int64
	UnitPrice     string
	Amount        string
}

// VoucherGenerator genera el comprobante PDF de un documento.
type VoucherGenerator interface {
	GenerateDocumentPDF(ctx context.Context, data VoucherData) ([]byte, error)
}
