package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// DocumentFilter filtros para listar documentos de una dirección.
type DocumentFilter struct {
	Direction string // INBOUND u OUTBOUND, obligatorio
	Keyword   string // busca en número de documento, proveedor y cliente
	Status    string // vacío = todos
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// DocumentRepository puerto de persistencia para documentos y sus líneas.
// GetForUpdate bloquea la fila del documento; las operaciones del flujo de auditoría
// siempre parten de ahí para serializar transiciones concurrentes sobre el mismo documento.
type DocumentRepository interface {
	Create(ctx context.Context, d *entity.Document) error
	CreateLine(ctx context.Context, l *entity.DocumentLine) error
	GetByID(ctx context.Context, id string) (*entity.Document, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Document, error)
	ListLines(ctx context.Context, documentID string) ([]*entity.DocumentLine, error)
	DeleteLines(ctx context.Context, documentID string) error
	Update(ctx context.Context, d *entity.Document) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f DocumentFilter) ([]*entity.Document, error)
}
