package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

type fakeMedRepo struct {
	meds map[string]*entity.Medicine
}

func (r *fakeMedRepo) Create(_ context.Context, m *entity.Medicine) error { return nil }

func (r *fakeMedRepo) GetByID(_ context.Context, id string) (*entity.Medicine, error) {
	m, ok := r.meds[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMedRepo) GetByNameAndSpec(_ context.Context, _, _ string) (*entity.Medicine, error) {
	return nil, nil
}

func (r *fakeMedRepo) GetForUpdate(ctx context.Context, id string) (*entity.Medicine, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeMedRepo) AdjustStock(_ context.Context, id string, delta int64) error {
	if m, ok := r.meds[id]; ok {
		m.Stock += delta
	}
	return nil
}

func (r *fakeMedRepo) Update(_ context.Context, _ *entity.Medicine) error { return nil }

func (r *fakeMedRepo) List(_ context.Context, f repository.MedicineFilter) ([]*entity.Medicine, error) {
	var out []*entity.Medicine
	for _, m := range r.meds {
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeMedRepo) ListBelowMinStock(_ context.Context) ([]*entity.Medicine, error) {
	var out []*entity.Medicine
	for _, m := range r.meds {
		if m.BelowMinStock() {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeMedRepo) ReferencedByLines(_ context.Context, _ string) (bool, error) {
	return false, nil
}

func (r *fakeMedRepo) Delete(_ context.Context, _ string) error { return nil }

type fakeCheckRepo struct {
	checks  map[string]*entity.StockCheck
	details map[string][]*entity.StockCheckDetail
}

func newFakeCheckRepo() *fakeCheckRepo {
	return &fakeCheckRepo{
		checks:  make(map[string]*entity.StockCheck),
		details: make(map[string][]*entity.StockCheckDetail),
	}
}

func (r *fakeCheckRepo) Create(_ context.Context, c *entity.StockCheck) error {
	cp := *c
	r.checks[c.ID] = &cp
	return nil
}

func (r *fakeCheckRepo) CreateDetail(_ context.Context, d *entity.StockCheckDetail) error {
	cp := *d
	r.details[d.CheckID] = append(r.details[d.CheckID], &cp)
	return nil
}

func (r *fakeCheckRepo) GetByID(_ context.Context, id string) (*entity.StockCheck, error) {
	c, ok := r.checks[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCheckRepo) ListDetails(_ context.Context, checkID string) ([]*entity.StockCheckDetail, error) {
	return r.details[checkID], nil
}

func (r *fakeCheckRepo) List(_ context.Context, _, _ int) ([]*entity.StockCheck, error) {
	var out []*entity.StockCheck
	for _, c := range r.checks {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

type fakeSeqRepo struct{ seqs map[string]int }

func (r *fakeSeqRepo) Next(_ context.Context, prefix string, date time.Time) (int, error) {
	if r.seqs == nil {
		r.seqs = make(map[string]int)
	}
	key := prefix + date.Format("20060102")
	r.seqs[key]++
	return r.seqs[key], nil
}

type fakeTxRunner struct {
	checkRepo repository.StockCheckRepository
	medRepo   repository.MedicineRepository
	seqRepo   repository.SequenceRepository
}

func (t *fakeTxRunner) RunCheck(ctx context.Context, fn func(
	checkRepo repository.StockCheckRepository,
	medRepo repository.MedicineRepository,
	seqRepo repository.SequenceRepository,
) error) error {
	return fn(t.checkRepo, t.medRepo, t.seqRepo)
}

func newCheckEnv() (*CheckUseCase, *fakeMedRepo) {
	medRepo := &fakeMedRepo{meds: map[string]*entity.Medicine{
		"med1": {ID: "med1", Name: "Amoxicilina", Specification: "500mg*12 cápsulas", Stock: 20, MinStock: 5, RetailPrice: decimal.RequireFromString("10.50")},
		"med2": {ID: "med2", Name: "Ibuprofeno", Specification: "400mg*24 tabletas", Stock: 3, MinStock: 5, RetailPrice: decimal.RequireFromString("3.00")},
	}}
	checkRepo := newFakeCheckRepo()
	tx := &fakeTxRunner{checkRepo: checkRepo, medRepo: medRepo, seqRepo: &fakeSeqRepo{}}
	return NewCheckUseCase(tx, checkRepo), medRepo
}

func TestCreateCheck_RecordsDiffWithoutMutatingStock(t *testing.T) {
	uc, medRepo := newCheckEnv()

	resp, err := uc.Create(context.Background(), dto.CreateStockCheckRequest{
		Checker:   "ana",
		CheckDate: "2023-11-14",
		Details: []dto.StockCheckDetailRequest{
			{MedicineID: "med1", ActualStock: 18},
			{MedicineID: "med2", ActualStock: 3},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "CK20231114001", resp.ID)
	assert.Equal(t, "ana", resp.Checker)
	require.Len(t, resp.Details, 2)
	assert.EqualValues(t, 20, resp.Details[0].SystemStock)
	assert.EqualValues(t, -2, resp.Details[0].Diff, "faltante de 2 unidades")
	assert.EqualValues(t, 0, resp.Details[1].Diff)

	// El conteo es solo registro: el catálogo no cambia.
	assert.EqualValues(t, 20, medRepo.meds["med1"].Stock)
	assert.EqualValues(t, 3, medRepo.meds["med2"].Stock)
}

func TestCreateCheck_Validation(t *testing.T) {
	uc, _ := newCheckEnv()
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateStockCheckRequest{Checker: "ana"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin líneas")

	_, err = uc.Create(ctx, dto.CreateStockCheckRequest{
		Checker: "ana",
		Details: []dto.StockCheckDetailRequest{{MedicineID: "med1", ActualStock: -1}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "conteo negativo")

	_, err = uc.Create(ctx, dto.CreateStockCheckRequest{
		Checker: "ana",
		Details: []dto.StockCheckDetailRequest{{MedicineID: "nope", ActualStock: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "medicamento inexistente")
}

func TestGetCheck_WithDetails(t *testing.T) {
	uc, _ := newCheckEnv()

	created, err := uc.Create(context.Background(), dto.CreateStockCheckRequest{
		Checker:   "ana",
		CheckDate: "2023-11-14",
		Details:   []dto.StockCheckDetailRequest{{MedicineID: "med1", ActualStock: 18}},
	})
	require.NoError(t, err)

	got, err := uc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created.ID, got.ID)
	require.Len(t, got.Details, 1)
	assert.EqualValues(t, -2, got.Details[0].Diff)

	missing, err := uc.GetByID(context.Background(), "CK20230101001")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestStockWarning_OnlyBelowThreshold(t *testing.T) {
	_, medRepo := newCheckEnv()
	uc := NewStockUseCase(medRepo)

	items, err := uc.Warning(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "med2", items[0].MedicineID)
	assert.True(t, items[0].LowStock)
}
