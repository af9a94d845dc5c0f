package document

import (
	"context"
	"time"

	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

// VoucherData datos listos para imprimir el comprobante de un documento.
type VoucherData struct {
	DocumentID   string
	Direction    string
	Counterparty string // proveedor (INBOUND) o cliente (OUTBOUND)
	Warehouse    string
	DocDate      time.Time
	Status       string
	Auditor      string
	Remark       string
	Lines        []LineForPDF
	TotalAmount  string
}

// PDFUseCase arma el comprobante PDF de un documento, enriqueciendo las líneas
// con nombre, presentación y unidad del medicamento.
type PDFUseCase struct {
	docRepo       repository.DocumentRepository
	medicineRepo  repository.MedicineRepository
	supplierRepo  repository.SupplierRepository
	warehouseRepo repository.WarehouseRepository
	unitRepo      repository.UnitRepository
	generator     VoucherGenerator
}

// NewPDFUseCase construye el caso de uso del comprobante.
func NewPDFUseCase(
	docRepo repository.DocumentRepository,
	medicineRepo repository.MedicineRepository,
	supplierRepo repository.SupplierRepository,
	warehouseRepo repository.WarehouseRepository,
	unitRepo repository.UnitRepository,
	generator VoucherGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		docRepo:       docRepo,
		medicineRepo:  medicineRepo,
		supplierRepo:  supplierRepo,
		warehouseRepo: warehouseRepo,
		unitRepo:      unitRepo,
		generator:     generator,
	}
}

// GeneratePDF genera el comprobante del documento indicado.
func (uc *PDFUseCase) GeneratePDF(ctx context.Context, documentID string) ([]byte, error) {
	doc, err := uc.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.docRepo.ListLines(ctx, documentID)
	if err != nil {
		return nil, err
	}

	data := VoucherData{
		DocumentID:  doc.ID,
		Direction:   doc.Direction,
		DocDate:     doc.DocDate,
		Status:      doc.Status,
		Auditor:     doc.Auditor,
		Remark:      doc.Remark,
		TotalAmount: doc.TotalAmount.StringFixed(2),
	}

	if doc.Direction == entity.DirectionInbound && doc.SupplierID != "" {
		sup, err := uc.supplierRepo.GetByID(ctx, doc.SupplierID)
		if err != nil {
			return nil, err
		}
		if sup != nil {
			data.Counterparty = sup.Name
		}
	} else {
		data.Counterparty = doc.CustomerName
	}

	if doc.WarehouseID != "" {
		wh, err := uc.warehouseRepo.GetByID(ctx, doc.WarehouseID)
		if err != nil {
			return nil, err
		}
		if wh != nil {
			data.Warehouse = wh.Name
		}
	}

	// Cache local de unidades: varias líneas suelen compartir unidad.
	units := make(map[string]string)
	for _, l := range lines {
		med, err := uc.medicineRepo.GetByID(ctx, l.MedicineID)
		if err != nil {
			return nil, err
		}
		pl := LineForPDF{
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice.StringFixed(2),
			Amount:    l.Amount.StringFixed(2),
		}
		if med != nil {
			pl.MedicineName = med.Name
			pl.Specification = med.Specification
			if med.UnitID != "" {
				name, ok := units[med.UnitID]
				if !ok {
					u, err := uc.unitRepo.GetByID(ctx, med.UnitID)
					if err != nil {
						return nil, err
					}
					if u != nil {
						name = u.Name
					}
					units[med.UnitID] = name
				}
				pl.UnitName = name
			}
		}
		data.Lines = append(data.Lines, pl)
	}

	return uc.generator.GenerateDocumentPDF(ctx, data)
}
