package document

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
	"github.com/jhoicas/Farmacia-api/pkg/validate"
)

// UseCase flujo de auditoría de documentos de entrada/salida.
// Toda mutación corre dentro de una transacción con bloqueo de fila (SELECT FOR UPDATE)
// sobre el documento y cada medicamento tocado; Commit o Rollback completos.
type UseCase struct {
	txRunner      TxRunner
	docRepo       repository.DocumentRepository
	medicineRepo  repository.MedicineRepository
	supplierRepo  repository.SupplierRepository
	warehouseRepo repository.WarehouseRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	docRepo repository.DocumentRepository,
	medicineRepo repository.MedicineRepository,
	supplierRepo repository.SupplierRepository,
	warehouseRepo repository.WarehouseRepository,
) *UseCase {
	return &UseCase{
		txRunner:      txRunner,
		docRepo:       docRepo,
		medicineRepo:  medicineRepo,
		supplierRepo:  supplierRepo,
		warehouseRepo: warehouseRepo,
	}
}

// Create crea un documento en estado PENDING; el stock no se toca.
// Valida líneas (no vacías, cantidad > 0) y que los medicamentos referenciados existan.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	if err := validate.Struct(in); err != nil {
		return nil, domain.ErrInvalidInput
	}
	if in.Direction == entity.DirectionInbound && in.SupplierID == "" {
		return nil, domain.ErrInvalidInput
	}
	docDate, err := parseDocDate(in.DocDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	// Validar bodega y proveedor (lecturas fuera de la tx, solo referencia)
	wh, err := uc.warehouseRepo.GetByID(ctx, in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if wh == nil {
		return nil, domain.ErrNotFound
	}
	if in.Direction == entity.DirectionInbound {
		sup, err := uc.supplierRepo.GetByID(ctx, in.SupplierID)
		if err != nil {
			return nil, err
		}
		if sup == nil {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	var resp *dto.DocumentResponse

	err = uc.txRunner.Run(ctx, func(
		docRepo repository.DocumentRepository,
		medRepo repository.MedicineRepository,
		seqRepo repository.SequenceRepository,
	) error {
		lines, total, err := buildLines(ctx, medRepo, in.Direction, in.Lines, false)
		if err != nil {
			return err
		}

		// El consecutivo se asigna dentro de la tx: la fila del contador serializa
		// creaciones concurrentes de la misma (dirección, fecha).
		prefix := PrefixFor(in.Direction)
		seq, err := seqRepo.Next(ctx, prefix, docDate)
		if err != nil {
			return err
		}

		doc := &entity.Document{
			ID:           FormatNumber(prefix, docDate, seq),
			Direction:    in.Direction,
			SupplierID:   in.SupplierID,
			CustomerName: in.CustomerName,
			WarehouseID:  in.WarehouseID,
			DocDate:      docDate,
			TotalAmount:  total,
			Remark:       in.Remark,
			Status:       entity.StatusPending,
			CreatedAt:    now,
		}
		if err := docRepo.Create(ctx, doc); err != nil {
			return err
		}
		for _, l := range lines {
			l.DocumentID = doc.ID
			if err := docRepo.CreateLine(ctx, l); err != nil {
				return err
			}
		}
		resp = toDocumentResponse(doc, lines)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// ReplaceLinesAndSetStatus es la operación central del flujo, en una sola transacción:
//  1. carga y bloquea el documento y sus líneas actuales;
//  2. si estaba APPROVED, revierte su efecto sobre el stock (cada medicamento vuelve
//     a la cantidad que tendría si el documento nunca se hubiera aprobado);
//  3. borra las líneas y las reemplaza por las nuevas, recalculando montos;
//  4. si el nuevo estado es APPROVED y la dirección es OUTBOUND, verifica que el
//     stock posterior a la reversión alcance para cada línea; si no, aborta todo
//     con InsufficientStockError;
//  5. si el nuevo estado es APPROVED, aplica el nuevo efecto sobre el stock;
//  6. persiste cabecera, auditor y líneas atómicamente con los ajustes de stock.
func (uc *UseCase) ReplaceLinesAndSetStatus(ctx context.Context, auditor, documentID string, in dto.UpdateDocumentRequest) (*dto.DocumentResponse, error) {
	if err := validate.Struct(in); err != nil {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var resp *dto.DocumentResponse

	err := uc.txRunner.Run(ctx, func(
		docRepo repository.DocumentRepository,
		medRepo repository.MedicineRepository,
		_ repository.SequenceRepository,
	) error {
		doc, err := docRepo.GetForUpdate(ctx, documentID)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.ErrNotFound
		}
		oldLines, err := docRepo.ListLines(ctx, documentID)
		if err != nil {
			return err
		}

		// Paso 2: revertir el efecto previo si estaba aprobado.
		if doc.Status == entity.StatusApproved {
			if err := applyStock(ctx, medRepo, oldLines, -doc.StockSign()); err != nil {
				return err
			}
		}

		applyHeaderChanges(doc, in)
		if in.DocDate != nil {
			d, err := parseDocDate(*in.DocDate)
			if err != nil {
				return domain.ErrInvalidInput
			}
			doc.DocDate = d
		}

		// Paso 3: reemplazo completo de líneas.
		if err := docRepo.DeleteLines(ctx, documentID); err != nil {
			return err
		}
		approving := in.Status == entity.StatusApproved
		newLines, total, err := buildLines(ctx, medRepo, doc.Direction, in.Lines, approving)
		if err != nil {
			return err
		}

		// Paso 4: verificación de salida contra el stock ya revertido.
		if approving && doc.Direction == entity.DirectionOutbound {
			if err := checkOutboundStock(ctx, medRepo, newLines); err != nil {
				return err
			}
		}

		// Paso 5: aplicar el nuevo efecto. PENDING/REJECTED no tocan stock
		// (la reversión del paso 2 ya dejó el efecto previo en cero).
		if approving {
			if err := applyStock(ctx, medRepo, newLines, doc.StockSign()); err != nil {
				return err
			}
		}

		// Paso 6: persistir cabecera y líneas.
		doc.TotalAmount = total
		doc.Status = in.Status
		if in.Status == entity.StatusPending {
			doc.Auditor = ""
			doc.AuditedAt = nil
		} else {
			doc.Auditor = auditor
			doc.AuditedAt = &now
		}
		if err := docRepo.Update(ctx, doc); err != nil {
			return err
		}
		for _, l := range newLines {
			l.DocumentID = doc.ID
			if err := docRepo.CreateLine(ctx, l); err != nil {
				return err
			}
		}
		resp = toDocumentResponse(doc, newLines)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Delete elimina el documento y sus líneas; si estaba APPROVED revierte primero
// su efecto sobre el stock, todo en la misma transacción.
func (uc *UseCase) Delete(ctx context.Context, documentID string) error {
	return uc.txRunner.Run(ctx, func(
		docRepo repository.DocumentRepository,
		medRepo repository.MedicineRepository,
		_ repository.SequenceRepository,
	) error {
		doc, err := docRepo.GetForUpdate(ctx, documentID)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.ErrNotFound
		}
		if doc.Status == entity.StatusApproved {
			lines, err := docRepo.ListLines(ctx, documentID)
			if err != nil {
				return err
			}
			if err := applyStock(ctx, medRepo, lines, -doc.StockSign()); err != nil {
				return err
			}
		}
		if err := docRepo.DeleteLines(ctx, documentID); err != nil {
			return err
		}
		return docRepo.Delete(ctx, documentID)
	})
}

// GetByID obtiene un documento con sus líneas.
func (uc *UseCase) GetByID(ctx context.Context, documentID string) (*dto.DocumentResponse, error) {
	doc, err := uc.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}
	lines, err := uc.docRepo.ListLines(ctx, documentID)
	if err != nil {
		return nil, err
	}
	return toDocumentResponse(doc, lines), nil
}

// List lista documentos de una dirección con filtros y paginación.
func (uc *UseCase) List(ctx context.Context, direction string, in dto.ListDocumentsRequest) (*dto.DocumentListResponse, error) {
	if !entity.ValidDirection(direction) {
		return nil, domain.ErrInvalidInput
	}
	if err := validate.Struct(in); err != nil {
		return nil, domain.ErrInvalidInput
	}
	in.DefaultPage()

	f := repository.DocumentFilter{
		Direction: direction,
		Keyword:   in.Keyword,
		Status:    in.Status,
		Limit:     in.Limit,
		Offset:    in.Offset,
	}
	if in.From != "" {
		d, err := parseDocDate(in.From)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		f.From = &d
	}
	if in.To != "" {
		d, err := parseDocDate(in.To)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		f.To = &d
	}

	docs, err := uc.docRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DocumentResponse, 0, len(docs))
	for _, d := range docs {
		items = append(items, *toDocumentResponse(d, nil))
	}
	return &dto.DocumentListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}, nil
}

// buildLines valida las líneas entrantes contra el catálogo y recalcula montos.
// Con forUpdate se bloquea la fila de cada medicamento (aprobaciones); si no, lectura simple.
// Para OUTBOUND con precio en cero se usa el precio de venta del medicamento.
func buildLines(
	ctx context.Context,
	medRepo repository.MedicineRepository,
	direction string,
	reqs []dto.DocumentLineRequest,
	forUpdate bool,
) ([]*entity.DocumentLine, decimal.Decimal, error) {
	lines := make([]*entity.DocumentLine, 0, len(reqs))
	total := decimal.Zero
	for _, r := range reqs {
		if r.Quantity <= 0 || r.UnitPrice.LessThan(decimal.Zero) {
			return nil, decimal.Zero, domain.ErrInvalidInput
		}
		var med *entity.Medicine
		var err error
		if forUpdate {
			med, err = medRepo.GetForUpdate(ctx, r.MedicineID)
		} else {
			med, err = medRepo.GetByID(ctx, r.MedicineID)
		}
		if err != nil {
			return nil, decimal.Zero, err
		}
		if med == nil {
			return nil, decimal.Zero, domain.ErrNotFound
		}
		price := r.UnitPrice
		if direction == entity.DirectionOutbound && price.IsZero() {
			price = med.RetailPrice
		}
		l := &entity.DocumentLine{
			ID:         uuid.New().String(),
			MedicineID: r.MedicineID,
			Quantity:   r.Quantity,
			UnitPrice:  price,
		}
		l.Amount = l.ComputeAmount()
		total = total.Add(l.Amount)
		lines = append(lines, l)
	}
	return lines, total, nil
}

// checkOutboundStock verifica cada línea contra la existencia actual (posterior a la
// reversión del paso 2). La primera línea que no alcanza aborta toda la operación.
func checkOutboundStock(ctx context.Context, medRepo repository.MedicineRepository, lines []*entity.DocumentLine) error {
	for _, l := range lines {
		med, err := medRepo.GetForUpdate(ctx, l.MedicineID)
		if err != nil {
			return err
		}
		if med == nil {
			return domain.ErrNotFound
		}
		if med.Stock < l.Quantity {
			return &domain.InsufficientStockError{
				MedicineID:    med.ID,
				Name:          med.Name,
				Specification: med.Specification,
				Current:       med.Stock,
				Requested:     l.Quantity,
			}
		}
	}
	return nil
}

// applyStock suma sign × cantidad al stock de cada medicamento de las líneas,
// bloqueando la fila antes de ajustar.
func applyStock(ctx context.Context, medRepo repository.MedicineRepository, lines []*entity.DocumentLine, sign int64) error {
	for _, l := range lines {
		if _, err := medRepo.GetForUpdate(ctx, l.MedicineID); err != nil {
			return err
		}
		if err := medRepo.AdjustStock(ctx, l.MedicineID, sign*l.Quantity); err != nil {
			return err
		}
	}
	return nil
}

func applyHeaderChanges(doc *entity.Document, in dto.UpdateDocumentRequest) {
	if in.SupplierID != nil {
		doc.SupplierID = *in.SupplierID
	}
	if in.CustomerName != nil {
		doc.CustomerName = *in.CustomerName
	}
	if in.WarehouseID != nil {
		doc.WarehouseID = *in.WarehouseID
	}
	if in.Remark != nil {
		doc.Remark = *in.Remark
	}
}

// parseDocDate interpreta YYYY-MM-DD; vacío significa hoy (solo día, sin hora).
func parseDocDate(s string) (time.Time, error) {
	if s == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse("2006-01-02", s)
}

func toDocumentResponse(d *entity.Document, lines []*entity.DocumentLine) *dto.DocumentResponse {
	if d == nil {
		return nil
	}
	resp := &dto.DocumentResponse{
		ID:           d.ID,
		Direction:    d.Direction,
		SupplierID:   d.SupplierID,
		CustomerName: d.CustomerName,
		WarehouseID:  d.WarehouseID,
		DocDate:      d.DocDate.Format("2006-01-02"),
		TotalAmount:  d.TotalAmount,
		Remark:       d.Remark,
		Status:       d.Status,
		Auditor:      d.Auditor,
		AuditedAt:    d.AuditedAt,
		CreatedAt:    d.CreatedAt,
	}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, dto.DocumentLineResponse{
			ID:         l.ID,
			MedicineID: l.MedicineID,
			Quantity:   l.Quantity,
			UnitPrice:  l.UnitPrice,
			Amount:     l.Amount,
		})
	}
	return resp
}
