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

var _ repository.MedicineRepository = (*MedicineRepo)(nil)

const medicineColumns = `id, name, generic_name, approval_number, specification, dosage_form,
	manufacturer, category_id, unit_id, is_prescription, stock, min_stock, retail_price, remark,
	created_at, updated_at`

// MedicineRepo implementación del puerto MedicineRepository sobre PostgreSQL (usable con pool o tx).
type MedicineRepo struct {
	q Querier
}

// NewMedicineRepository construye el adaptador de persistencia para medicamentos. Pasar pool o tx (Querier).
func NewMedicineRepository(q Querier) *MedicineRepo {
	return &MedicineRepo{q: q}
}

// Create persiste un nuevo medicamento. El stock inicia en 0.
func (r *MedicineRepo) Create(ctx context.Context, m *entity.Medicine) error {
	query := `
		INSERT INTO medicines (id, name, generic_name, approval_number, specification, dosage_form,
			manufacturer, category_id, unit_id, is_prescription, stock, min_stock, retail_price, remark,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.Name, m.GenericName, m.ApprovalNumber, m.Specification, m.DosageForm,
		m.Manufacturer, nullIfEmpty(m.CategoryID), nullIfEmpty(m.UnitID), m.IsPrescription,
		m.Stock, m.MinStock, m.RetailPrice, m.Remark, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert medicine: %w", err)
	}
	return nil
}

// GetByID obtiene un medicamento por ID.
func (r *MedicineRepo) GetByID(ctx context.Context, id string) (*entity.Medicine, error) {
	query := `SELECT ` + medicineColumns + ` FROM medicines WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get medicine")
}

// GetByNameAndSpec obtiene un medicamento por la pareja única (nombre, presentación).
func (r *MedicineRepo) GetByNameAndSpec(ctx context.Context, name, specification string) (*entity.Medicine, error) {
	query := `SELECT ` + medicineColumns + ` FROM medicines WHERE name = $1 AND specification = $2`
	return r.scanOne(r.q.QueryRow(ctx, query, name, specification), "get medicine by name and spec")
}

// GetForUpdate obtiene un medicamento bloqueando su fila hasta el fin de la transacción.
func (r *MedicineRepo) GetForUpdate(ctx context.Context, id string) (*entity.Medicine, error) {
	query := `SELECT ` + medicineColumns + ` FROM medicines WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get medicine for update")
}

// AdjustStock suma delta (positivo o negativo) al stock del medicamento.
// No valida el resultado: la verificación de salida es del flujo de documentos.
func (r *MedicineRepo) AdjustStock(ctx context.Context, id string, delta int64) error {
	_, err := r.q.Exec(ctx,
		`UPDATE medicines SET stock = stock + $2, updated_at = now() WHERE id = $1`,
		id, delta,
	)
	if err != nil {
		return fmt.Errorf("adjust stock: %w", err)
	}
	return nil
}

// Update actualiza los campos de catálogo de un medicamento. El stock no se toca aquí.
func (r *MedicineRepo) Update(ctx context.Context, m *entity.Medicine) error {
	query := `
		UPDATE medicines SET name = $2, generic_name = $3, approval_number = $4, specification = $5,
			dosage_form = $6, manufacturer = $7, category_id = $8, unit_id = $9, is_prescription = $10,
			min_stock = $11, retail_price = $12, remark = $13, updated_at = $14
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.Name, m.GenericName, m.ApprovalNumber, m.Specification, m.DosageForm,
		m.Manufacturer, nullIfEmpty(m.CategoryID), nullIfEmpty(m.UnitID), m.IsPrescription,
		m.MinStock, m.RetailPrice, m.Remark, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update medicine: %w", err)
	}
	return nil
}

// List lista medicamentos con búsqueda, filtro por categoría, orden y paginación.
func (r *MedicineRepo) List(ctx context.Context, f repository.MedicineFilter) ([]*entity.Medicine, error) {
	query := `SELECT ` + medicineColumns + ` FROM medicines WHERE 1=1`
	args := []any{}
	n := 0

	if f.Keyword != "" {
		n++
		query += fmt.Sprintf(` AND (name ILIKE $%d OR generic_name ILIKE $%d OR manufacturer ILIKE $%d)`, n, n, n)
		args = append(args, "%"+f.Keyword+"%")
	}
	if f.CategoryID != "" {
		n++
		query += fmt.Sprintf(` AND category_id = $%d`, n)
		args = append(args, f.CategoryID)
	}

	orderCol := "name"
	if f.SortByStock {
		orderCol = "stock"
	}
	dir := "ASC"
	if f.Descending {
		dir = "DESC"
	}
	query += fmt.Sprintf(` ORDER BY %s %s`, orderCol, dir)

	n++
	query += fmt.Sprintf(` LIMIT $%d`, n)
	args = append(args, f.Limit)
	n++
	query += fmt.Sprintf(` OFFSET $%d`, n)
	args = append(args, f.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list medicines: %w", err)
	}
	defer rows.Close()
	return r.scanRows(rows)
}

// ListBelowMinStock lista los medicamentos en o por debajo de su umbral de alerta.
func (r *MedicineRepo) ListBelowMinStock(ctx context.Context) ([]*entity.Medicine, error) {
	query := `SELECT ` + medicineColumns + ` FROM medicines WHERE stock <= min_stock ORDER BY stock ASC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list below min stock: %w", err)
	}
	defer rows.Close()
	return r.scanRows(rows)
}

// ReferencedByLines indica si alguna línea de documento referencia al medicamento.
func (r *MedicineRepo) ReferencedByLines(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM document_lines WHERE medicine_id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check medicine references: %w", err)
	}
	return exists, nil
}

// Delete elimina un medicamento por ID.
func (r *MedicineRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM medicines WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInUse
		}
		return fmt.Errorf("delete medicine: %w", err)
	}
	return nil
}

func (r *MedicineRepo) scanOne(row pgx.Row, op string) (*entity.Medicine, error) {
	var m entity.Medicine
	var categoryID, unitID *string
	err := row.Scan(
		&m.ID, &m.Name, &m.GenericName, &m.ApprovalNumber, &m.Specification, &m.DosageForm,
		&m.Manufacturer, &categoryID, &unitID, &m.IsPrescription, &m.Stock, &m.MinStock,
		&m.RetailPrice, &m.Remark, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if categoryID != nil {
		m.CategoryID = *categoryID
	}
	if unitID != nil {
		m.UnitID = *unitID
	}
	return &m, nil
}

func (r *MedicineRepo) scanRows(rows pgx.Rows) ([]*entity.Medicine, error) {
	var list []*entity.Medicine
	for rows.Next() {
		var m entity.Medicine
		var categoryID, unitID *string
		if err := rows.Scan(
			&m.ID, &m.Name, &m.GenericName, &m.ApprovalNumber, &m.Specification, &m.DosageForm,
			&m.Manufacturer, &categoryID, &unitID, &m.IsPrescription, &m.Stock, &m.MinStock,
			&m.RetailPrice, &m.Remark, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan medicine: %w", err)
		}
		if categoryID != nil {
			m.CategoryID = *categoryID
		}
		if unitID != nil {
			m.UnitID = *unitID
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
