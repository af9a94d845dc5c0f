package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de agregación de solo lectura sobre documentos y catálogo.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// InboundBySupplier agrega las entradas aprobadas por proveedor en [from, to].
func (r *ReportRepo) InboundBySupplier(ctx context.Context, from, to time.Time) ([]repository.SupplierInboundStat, error) {
	query := `
		SELECT s.id, s.name, COUNT(DISTINCT d.id), COALESCE(SUM(l.quantity), 0), COALESCE(SUM(l.amount), 0)
		FROM documents d
		JOIN suppliers s ON s.id = d.supplier_id
		JOIN document_lines l ON l.document_id = d.id
		WHERE d.direction = 'INBOUND' AND d.status = 'APPROVED'
		  AND d.doc_date >= $1 AND d.doc_date <= $2
		GROUP BY s.id, s.name
		ORDER BY SUM(l.amount) DESC`
	rows, err := r.q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("inbound by supplier: %w", err)
	}
	defer rows.Close()

	var stats []repository.SupplierInboundStat
	for rows.Next() {
		var s repository.SupplierInboundStat
		if err := rows.Scan(&s.SupplierID, &s.SupplierName, &s.DocumentCount, &s.TotalQuantity, &s.TotalAmount); err != nil {
			return nil, fmt.Errorf("scan supplier stat: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// StockByCategory agrega existencias y su valor a precio de venta por categoría.
// Los medicamentos sin categoría se agrupan bajo ID vacío.
func (r *ReportRepo) StockByCategory(ctx context.Context) ([]repository.CategoryStockStat, error) {
	query := `
		SELECT COALESCE(c.id::text, ''), COALESCE(c.name, 'Sin categoría'),
			COUNT(m.id), COALESCE(SUM(m.stock), 0), COALESCE(SUM(m.stock * m.retail_price), 0)
		FROM medicines m
		LEFT JOIN categories c ON c.id = m.category_id
		GROUP BY c.id, c.name
		ORDER BY COALESCE(c.name, 'Sin categoría')`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("stock by category: %w", err)
	}
	defer rows.Close()

	var stats []repository.CategoryStockStat
	for rows.Next() {
		var s repository.CategoryStockStat
		if err := rows.Scan(&s.CategoryID, &s.CategoryName, &s.MedicineCount, &s.TotalStock, &s.StockValue); err != nil {
			return nil, fmt.Errorf("scan category stat: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
