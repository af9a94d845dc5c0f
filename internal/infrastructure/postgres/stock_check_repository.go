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

var _ repository.StockCheckRepository = (*StockCheckRepo)(nil)

// StockCheckRepo implementación del puerto StockCheckRepository sobre PostgreSQL.
type StockCheckRepo struct {
	q Querier
}

// NewStockCheckRepository construye el adaptador de persistencia para conteos físicos.
func NewStockCheckRepository(q Querier) *StockCheckRepo {
	return &StockCheckRepo{q: q}
}

// Create persiste la cabecera de un conteo.
func (r *StockCheckRepo) Create(ctx context.Context, c *entity.StockCheck) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO stock_checks (id, checker, check_date, remark, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.Checker, c.CheckDate, c.Remark, c.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock check: %w", err)
	}
	return nil
}

// CreateDetail persiste una línea de conteo.
func (r *StockCheckRepo) CreateDetail(ctx context.Context, d *entity.StockCheckDetail) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO stock_check_details (id, check_id, medicine_id, system_stock, actual_stock, diff)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		d.ID, d.CheckID, d.MedicineID, d.SystemStock, d.ActualStock, d.Diff,
	)
	if err != nil {
		return fmt.Errorf("insert stock check detail: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de un conteo.
func (r *StockCheckRepo) GetByID(ctx context.Context, id string) (*entity.StockCheck, error) {
	var c entity.StockCheck
	err := r.q.QueryRow(ctx,
		`SELECT id, checker, check_date, remark, created_at FROM stock_checks WHERE id = $1`, id,
	).Scan(&c.ID, &c.Checker, &c.CheckDate, &c.Remark, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock check: %w", err)
	}
	return &c, nil
}

// ListDetails lista las líneas de un conteo en orden de inserción.
func (r *StockCheckRepo) ListDetails(ctx context.Context, checkID string) ([]*entity.StockCheckDetail, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, check_id, medicine_id, system_stock, actual_stock, diff
		 FROM stock_check_details WHERE check_id = $1 ORDER BY line_no`, checkID)
	if err != nil {
		return nil, fmt.Errorf("list stock check details: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockCheckDetail
	for rows.Next() {
		var d entity.StockCheckDetail
		if err := rows.Scan(&d.ID, &d.CheckID, &d.MedicineID, &d.SystemStock, &d.ActualStock, &d.Diff); err != nil {
			return nil, fmt.Errorf("scan stock check detail: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// List lista conteos paginados, más recientes primero.
func (r *StockCheckRepo) List(ctx context.Context, limit, offset int) ([]*entity.StockCheck, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, checker, check_date, remark, created_at
		 FROM stock_checks ORDER BY check_date DESC, id DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock checks: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockCheck
	for rows.Next() {
		var c entity.StockCheck
		if err := rows.Scan(&c.ID, &c.Checker, &c.CheckDate, &c.Remark, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock check: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
