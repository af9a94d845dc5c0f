package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

const documentColumns = `id, direction, supplier_id, customer_name, warehouse_id, doc_date,
	total_amount, remark, status, auditor, audited_at, created_at`

// DocumentRepo implementación del puerto DocumentRepository sobre PostgreSQL (usable con pool o tx).
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador de persistencia para documentos. Pasar pool o tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

// Create persiste la cabecera de un documento.
func (r *DocumentRepo) Create(ctx context.Context, d *entity.Document) error {
	query := `
		INSERT INTO documents (id, direction, supplier_id, customer_name, warehouse_id, doc_date,
			total_amount, remark, status, auditor, audited_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		d.ID, d.Direction, nullIfEmpty(d.SupplierID), d.CustomerName, d.WarehouseID, d.DocDate,
		d.TotalAmount, d.Remark, d.Status, d.Auditor, d.AuditedAt, d.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

// CreateLine persiste una línea del documento.
func (r *DocumentRepo) CreateLine(ctx context.Context, l *entity.DocumentLine) error {
	query := `
		INSERT INTO document_lines (id, document_id, medicine_id, quantity, unit_price, amount)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		l.ID, l.DocumentID, l.MedicineID, l.Quantity, l.UnitPrice, l.Amount,
	)
	if err != nil {
		return fmt.Errorf("insert document line: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de un documento.
func (r *DocumentRepo) GetByID(ctx context.Context, id string) (*entity.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get document")
}

// GetForUpdate obtiene la cabecera bloqueando su fila hasta el fin de la transacción.
// Serializa transiciones de estado concurrentes sobre el mismo documento.
func (r *DocumentRepo) GetForUpdate(ctx context.Context, id string) (*entity.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get document for update")
}

// ListLines lista las líneas de un documento en orden de inserción.
func (r *DocumentRepo) ListLines(ctx context.Context, documentID string) ([]*entity.DocumentLine, error) {
	query := `
		SELECT id, document_id, medicine_id, quantity, unit_price, amount
		FROM document_lines WHERE document_id = $1 ORDER BY line_no`
	rows, err := r.q.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("list document lines: %w", err)
	}
	defer rows.Close()

	var list []*entity.DocumentLine
	for rows.Next() {
		var l entity.DocumentLine
		if err := rows.Scan(&l.ID, &l.DocumentID, &l.MedicineID, &l.Quantity, &l.UnitPrice, &l.Amount); err != nil {
			return nil, fmt.Errorf("scan document line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// DeleteLines elimina todas las líneas de un documento.
func (r *DocumentRepo) DeleteLines(ctx context.Context, documentID string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM document_lines WHERE document_id = $1`, documentID)
	if err != nil {
		return fmt.Errorf("delete document lines: %w", err)
	}
	return nil
}

// Update actualiza la cabecera: campos editables, estado y metadatos de auditoría.
func (r *DocumentRepo) Update(ctx context.Context, d *entity.Document) error {
	query := `
		UPDATE documents SET supplier_id = $2, customer_name = $3, warehouse_id = $4, doc_date = $5,
			total_amount = $6, remark = $7, status = $8, auditor = $9, audited_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		d.ID, nullIfEmpty(d.SupplierID), d.CustomerName, d.WarehouseID, d.DocDate,
		d.TotalAmount, d.Remark, d.Status, d.Auditor, d.AuditedAt,
	)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	return nil
}

// Delete elimina la cabecera de un documento (las líneas se borran antes, en la misma tx).
func (r *DocumentRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

// List lista documentos de una dirección con filtros y paginación, más recientes primero.
func (r *DocumentRepo) List(ctx context.Context, f repository.DocumentFilter) ([]*entity.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE direction = $1`
	args := []any{f.Direction}
	n := 1

	if f.Keyword != "" {
		n++
		query += fmt.Sprintf(` AND (id ILIKE $%d OR customer_name ILIKE $%d)`, n, n)
		args = append(args, "%"+f.Keyword+"%")
	}
	if f.Status != "" {
		n++
		query += fmt.Sprintf(` AND status = $%d`, n)
		args = append(args, f.Status)
	}
	if f.From != nil {
		n++
		query += fmt.Sprintf(` AND doc_date >= $%d`, n)
		args = append(args, *f.From)
	}
	if f.To != nil {
		n++
		query += fmt.Sprintf(` AND doc_date <= $%d`, n)
		args = append(args, *f.To)
	}

	query += ` ORDER BY doc_date DESC, id DESC`
	n++
	query += fmt.Sprintf(` LIMIT $%d`, n)
	args = append(args, f.Limit)
	n++
	query += fmt.Sprintf(` OFFSET $%d`, n)
	args = append(args, f.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var list []*entity.Document
	for rows.Next() {
		d, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

func (r *DocumentRepo) scanOne(row pgx.Row, op string) (*entity.Document, error) {
	var d entity.Document
	var supplierID *string
	err := row.Scan(
		&d.ID, &d.Direction, &supplierID, &d.CustomerName, &d.WarehouseID, &d.DocDate,
		&d.TotalAmount, &d.Remark, &d.Status, &d.Auditor, &d.AuditedAt, &d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if supplierID != nil {
		d.SupplierID = *supplierID
	}
	return &d, nil
}

func (r *DocumentRepo) scanRow(rows pgx.Rows) (*entity.Document, error) {
	var d entity.Document
	var supplierID *string
	if err := rows.Scan(
		&d.ID, &d.Direction, &supplierID, &d.CustomerName, &d.WarehouseID, &d.DocDate,
		&d.TotalAmount, &d.Remark, &d.Status, &d.Auditor, &d.AuditedAt, &d.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("scan document: %w", err)
	}
	if supplierID != nil {
		d.SupplierID = *supplierID
	}
	return &d, nil
}
