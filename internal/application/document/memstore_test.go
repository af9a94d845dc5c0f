package document

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

// memStore almacén en memoria compartido por los repos falsos de las pruebas.
type memStore struct {
	mu         sync.Mutex
	medicines  map[string]*entity.Medicine
	docs       map[string]*entity.Document
	lines      map[string][]*entity.DocumentLine
	seqs       map[string]int
	suppliers  map[string]*entity.Supplier
	warehouses map[string]*entity.Warehouse
}

func newMemStore() *memStore {
	return &memStore{
		medicines:  make(map[string]*entity.Medicine),
		docs:       make(map[string]*entity.Document),
		lines:      make(map[string][]*entity.DocumentLine),
		seqs:       make(map[string]int),
		suppliers:  make(map[string]*entity.Supplier),
		warehouses: make(map[string]*entity.Warehouse),
	}
}

func (s *memStore) snapshot() *memStore {
	c := newMemStore()
	for k, v := range s.medicines {
		m := *v
		c.medicines[k] = &m
	}
	for k, v := range s.docs {
		d := *v
		c.docs[k] = &d
	}
	for k, v := range s.lines {
		ls := make([]*entity.DocumentLine, len(v))
		for i, l := range v {
			cl := *l
			ls[i] = &cl
		}
		c.lines[k] = ls
	}
	for k, v := range s.seqs {
		c.seqs[k] = v
	}
	for k, v := range s.suppliers {
		sp := *v
		c.suppliers[k] = &sp
	}
	for k, v := range s.warehouses {
		w := *v
		c.warehouses[k] = &w
	}
	return c
}

func (s *memStore) restore(snap *memStore) {
	s.medicines = snap.medicines
	s.docs = snap.docs
	s.lines = snap.lines
	s.seqs = snap.seqs
	s.suppliers = snap.suppliers
	s.warehouses = snap.warehouses
}

// memTxRunner serializa transacciones y simula el rollback restaurando una
// instantánea del almacén cuando fn devuelve error.
type memTxRunner struct {
	s  *memStore
	mu sync.Mutex
}

func (t *memTxRunner) Run(ctx context.Context, fn func(
	docRepo repository.DocumentRepository,
	medRepo repository.MedicineRepository,
	seqRepo repository.SequenceRepository,
) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.s.mu.Lock()
	snap := t.s.snapshot()
	t.s.mu.Unlock()

	err := fn(&memDocRepo{s: t.s}, &memMedRepo{s: t.s}, &memSeqRepo{s: t.s})
	if err != nil {
		t.s.mu.Lock()
		t.s.restore(snap)
		t.s.mu.Unlock()
	}
	return err
}

// ── Repos falsos ────────────────────────────────────────────────────────────

type memDocRepo struct{ s *memStore }

func (r *memDocRepo) Create(_ context.Context, d *entity.Document) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *d
	r.s.docs[d.ID] = &cp
	return nil
}

func (r *memDocRepo) CreateLine(_ context.Context, l *entity.DocumentLine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *l
	r.s.lines[l.DocumentID] = append(r.s.lines[l.DocumentID], &cp)
	return nil
}

func (r *memDocRepo) GetByID(_ context.Context, id string) (*entity.Document, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d, ok := r.s.docs[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r *memDocRepo) GetForUpdate(ctx context.Context, id string) (*entity.Document, error) {
	return r.GetByID(ctx, id)
}

func (r *memDocRepo) ListLines(_ context.Context, documentID string) ([]*entity.DocumentLine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.DocumentLine, 0, len(r.s.lines[documentID]))
	for _, l := range r.s.lines[documentID] {
		cp := *l
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memDocRepo) DeleteLines(_ context.Context, documentID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.lines, documentID)
	return nil
}

func (r *memDocRepo) Update(_ context.Context, d *entity.Document) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *d
	r.s.docs[d.ID] = &cp
	return nil
}

func (r *memDocRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.docs, id)
	return nil
}

func (r *memDocRepo) List(_ context.Context, f repository.DocumentFilter) ([]*entity.Document, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Document
	for _, d := range r.s.docs {
		if d.Direction != f.Direction {
			continue
		}
		if f.Status != "" && d.Status != f.Status {
			continue
		}
		if f.Keyword != "" && !strings.Contains(d.ID, f.Keyword) && !strings.Contains(d.CustomerName, f.Keyword) {
			continue
		}
		cp := *d
		out = append(out, &cp)
	}
	return out, nil
}

type memMedRepo struct{ s *memStore }

func (r *memMedRepo) Create(_ context.Context, m *entity.Medicine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *m
	r.s.medicines[m.ID] = &cp
	return nil
}

func (r *memMedRepo) GetByID(_ context.Context, id string) (*entity.Medicine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.medicines[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *memMedRepo) GetByNameAndSpec(_ context.Context, name, spec string) (*entity.Medicine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.medicines {
		if m.Name == name && m.Specification == spec {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memMedRepo) GetForUpdate(ctx context.Context, id string) (*entity.Medicine, error) {
	return r.GetByID(ctx, id)
}

func (r *memMedRepo) AdjustStock(_ context.Context, id string, delta int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.medicines[id]
	if !ok {
		return nil
	}
	m.Stock += delta
	return nil
}

func (r *memMedRepo) Update(_ context.Context, m *entity.Medicine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *m
	r.s.medicines[m.ID] = &cp
	return nil
}

func (r *memMedRepo) List(_ context.Context, _ repository.MedicineFilter) ([]*entity.Medicine, error) {
	return nil, nil
}

func (r *memMedRepo) ListBelowMinStock(_ context.Context) ([]*entity.Medicine, error) {
	return nil, nil
}

func (r *memMedRepo) ReferencedByLines(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, ls := range r.s.lines {
		for _, l := range ls {
			if l.MedicineID == id {
				return true, nil
			}
		}
	}
	return false, nil
}

func (r *memMedRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.medicines, id)
	return nil
}

type memSeqRepo struct{ s *memStore }

func (r *memSeqRepo) Next(_ context.Context, prefix string, date time.Time) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := prefix + date.Format("20060102")
	r.s.seqs[key]++
	return r.s.seqs[key], nil
}

type memSupplierRepo struct{ s *memStore }

func (r *memSupplierRepo) Create(_ context.Context, sp *entity.Supplier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *sp
	r.s.suppliers[sp.ID] = &cp
	return nil
}

func (r *memSupplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sp, ok := r.s.suppliers[id]
	if !ok {
		return nil, nil
	}
	cp := *sp
	return &cp, nil
}

func (r *memSupplierRepo) Update(_ context.Context, sp *entity.Supplier) error { return nil }

func (r *memSupplierRepo) List(_ context.Context, _ string, _, _ int) ([]*entity.Supplier, error) {
	return nil, nil
}

func (r *memSupplierRepo) Delete(_ context.Context, id string) error { return nil }

type memWarehouseRepo struct{ s *memStore }

func (r *memWarehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *w
	r.s.warehouses[w.ID] = &cp
	return nil
}

func (r *memWarehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	w, ok := r.s.warehouses[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (r *memWarehouseRepo) Update(_ context.Context, w *entity.Warehouse) error { return nil }

func (r *memWarehouseRepo) List(_ context.Context) ([]*entity.Warehouse, error) { return nil, nil }

func (r *memWarehouseRepo) Delete(_ context.Context, id string) error { return nil }

// Aserciones de interfaz.
var (
	_ repository.DocumentRepository  = (*memDocRepo)(nil)
	_ repository.MedicineRepository  = (*memMedRepo)(nil)
	_ repository.SequenceRepository  = (*memSeqRepo)(nil)
	_ repository.SupplierRepository  = (*memSupplierRepo)(nil)
	_ repository.WarehouseRepository = (*memWarehouseRepo)(nil)
	_ TxRunner                       = (*memTxRunner)(nil)
)
