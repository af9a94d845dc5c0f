package document

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

type testEnv struct {
	store *memStore
	uc    *UseCase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := newMemStore()
	store.warehouses["wh1"] = &entity.Warehouse{ID: "wh1", Name: "Bodega Central", Type: entity.WarehouseTypeAmbient, IsActive: true}
	store.suppliers["sup1"] = &entity.Supplier{ID: "sup1", Name: "Distribuidora Norte"}
	store.medicines["med1"] = &entity.Medicine{
		ID: "med1", Name: "Amoxicilina", Specification: "500mg*12 cápsulas",
		Stock: 20, MinStock: 5, RetailPrice: decimal.RequireFromString("10.50"),
	}
	store.medicines["med2"] = &entity.Medicine{
		ID: "med2", Name: "Ibuprofeno", Specification: "400mg*24 tabletas",
		Stock: 5, MinStock: 2, RetailPrice: decimal.RequireFromString("3.00"),
	}

	tx := &memTxRunner{s: store}
	uc := NewUseCase(tx, &memDocRepo{s: store}, &memMedRepo{s: store}, &memSupplierRepo{s: store}, &memWarehouseRepo{s: store})
	return &testEnv{store: store, uc: uc}
}

func (e *testEnv) stockOf(t *testing.T, id string) int64 {
	t.Helper()
	e.store.mu.Lock()
	defer e.store.mu.Unlock()
	m, ok := e.store.medicines[id]
	require.True(t, ok)
	return m.Stock
}

func (e *testEnv) createInbound(t *testing.T, lines ...dto.DocumentLineRequest) *dto.DocumentResponse {
	t.Helper()
	resp, err := e.uc.Create(context.Background(), dto.CreateDocumentRequest{
		Direction:   entity.DirectionInbound,
		SupplierID:  "sup1",
		WarehouseID: "wh1",
		DocDate:     "2023-11-14",
		Lines:       lines,
	})
	require.NoError(t, err)
	return resp
}

func (e *testEnv) createOutbound(t *testing.T, lines ...dto.DocumentLineRequest) *dto.DocumentResponse {
	t.Helper()
	resp, err := e.uc.Create(context.Background(), dto.CreateDocumentRequest{
		Direction:    entity.DirectionOutbound,
		CustomerName: "Farmacia San José",
		WarehouseID:  "wh1",
		DocDate:      "2023-11-14",
		Lines:        lines,
	})
	require.NoError(t, err)
	return resp
}

func approveReq(lines ...dto.DocumentLineRequest) dto.UpdateDocumentRequest {
	return dto.UpdateDocumentRequest{Status: entity.StatusApproved, Lines: lines}
}

func line(medID string, qty int64, price string) dto.DocumentLineRequest {
	return dto.DocumentLineRequest{MedicineID: medID, Quantity: qty, UnitPrice: decimal.RequireFromString(price)}
}

func TestCreate_PendingDoesNotTouchStock(t *testing.T) {
	env := newTestEnv(t)

	resp := env.createInbound(t, line("med1", 10, "8.00"), line("med2", 4, "2.50"))

	assert.Equal(t, "IN20231114001", resp.ID)
	assert.Equal(t, entity.StatusPending, resp.Status)
	assert.Empty(t, resp.Auditor)
	assert.Nil(t, resp.AuditedAt)
	assert.True(t, resp.TotalAmount.Equal(decimal.RequireFromString("90.00")), "total = 10×8.00 + 4×2.50")
	require.Len(t, resp.Lines, 2)
	assert.True(t, resp.Lines[0].Amount.Equal(decimal.RequireFromString("80.00")))

	assert.EqualValues(t, 20, env.stockOf(t, "med1"))
	assert.EqualValues(t, 5, env.stockOf(t, "med2"))
}

func TestCreate_SequencePerDirectionAndDate(t *testing.T) {
	env := newTestEnv(t)

	first := env.createInbound(t, line("med1", 1, "1.00"))
	second := env.createInbound(t, line("med1", 1, "1.00"))
	out := env.createOutbound(t, line("med1", 1, "1.00"))

	assert.Equal(t, "IN20231114001", first.ID)
	assert.Equal(t, "IN20231114002", second.ID)
	assert.Equal(t, "OUT20231114001", out.ID, "la numeración de salida es independiente de la de entrada")

	otherDay, err := env.uc.Create(context.Background(), dto.CreateDocumentRequest{
		Direction:   entity.DirectionInbound,
		SupplierID:  "sup1",
		WarehouseID: "wh1",
		DocDate:     "2023-11-15",
		Lines:       []dto.DocumentLineRequest{line("med1", 1, "1.00")},
	})
	require.NoError(t, err)
	assert.Equal(t, "IN20231115001", otherDay.ID, "cada fecha arranca en 001")
}

func TestCreate_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cases := []struct {
		name string
		req  dto.CreateDocumentRequest
		want error
	}{
		{
			name: "sin líneas",
			req: dto.CreateDocumentRequest{
				Direction: entity.DirectionInbound, SupplierID: "sup1", WarehouseID: "wh1",
			},
			want: domain.ErrInvalidInput,
		},
		{
			name: "dirección inválida",
			req: dto.CreateDocumentRequest{
				Direction: "SIDEWAYS", WarehouseID: "wh1",
				Lines: []dto.DocumentLineRequest{line("med1", 1, "1.00")},
			},
			want: domain.ErrInvalidInput,
		},
		{
			name: "entrada sin proveedor",
			req: dto.CreateDocumentRequest{
				Direction: entity.DirectionInbound, WarehouseID: "wh1",
				Lines: []dto.DocumentLineRequest{line("med1", 1, "1.00")},
			},
			want: domain.ErrInvalidInput,
		},
		{
			name: "cantidad cero",
			req: dto.CreateDocumentRequest{
				Direction: entity.DirectionInbound, SupplierID: "sup1", WarehouseID: "wh1",
				Lines: []dto.DocumentLineRequest{{MedicineID: "med1", Quantity: 0}},
			},
			want: domain.ErrInvalidInput,
		},
		{
			name: "fecha malformada",
			req: dto.CreateDocumentRequest{
				Direction: entity.DirectionInbound, SupplierID: "sup1", WarehouseID: "wh1",
				DocDate: "14/11/2023",
				Lines:   []dto.DocumentLineRequest{line("med1", 1, "1.00")},
			},
			want: domain.ErrInvalidInput,
		},
		{
			name: "bodega inexistente",
			req: dto.CreateDocumentRequest{
				Direction: entity.DirectionInbound, SupplierID: "sup1", WarehouseID: "nope",
				Lines: []dto.DocumentLineRequest{line("med1", 1, "1.00")},
			},
			want: domain.ErrNotFound,
		},
		{
			name: "medicamento inexistente",
			req: dto.CreateDocumentRequest{
				Direction: entity.DirectionInbound, SupplierID: "sup1", WarehouseID: "wh1",
				Lines: []dto.DocumentLineRequest{line("nope", 1, "1.00")},
			},
			want: domain.ErrNotFound,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.uc.Create(ctx, tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestApprove_InboundAddsStock(t *testing.T) {
	env := newTestEnv(t)
	doc := env.createInbound(t, line("med1", 10, "8.00"))

	resp, err := env.uc.ReplaceLinesAndSetStatus(context.Background(), "ana", doc.ID, approveReq(line("med1", 10, "8.00")))
	require.NoError(t, err)

	assert.Equal(t, entity.StatusApproved, resp.Status)
	assert.Equal(t, "ana", resp.Auditor)
	require.NotNil(t, resp.AuditedAt)
	assert.EqualValues(t, 30, env.stockOf(t, "med1"))
}

func TestApprove_OutboundSubtractsStock(t *testing.T) {
	env := newTestEnv(t)
	doc := env.createOutbound(t, line("med1", 7, "12.00"))

	_, err := env.uc.ReplaceLinesAndSetStatus(context.Background(), "ana", doc.ID, approveReq(line("med1", 7, "12.00")))
	require.NoError(t, err)

	assert.EqualValues(t, 13, env.stockOf(t, "med1"))
}

func TestApprove_OutboundInsufficientStockAbortsEverything(t *testing.T) {
	env := newTestEnv(t)
	doc := env.createOutbound(t, line("med1", 3, "12.00"), line("med2", 99, "3.00"))

	_, err := env.uc.ReplaceLinesAndSetStatus(context.Background(), "ana", doc.ID,
		approveReq(line("med1", 3, "12.00"), line("med2", 99, "3.00")))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	var ise *domain.InsufficientStockError
	require.ErrorAs(t, err, &ise)
	assert.Equal(t, "med2", ise.MedicineID)
	assert.EqualValues(t, 5, ise.Current)
	assert.EqualValues(t, 99, ise.Requested)

	// Nada cambió: ni stock (ni siquiera el de la primera línea) ni documento.
	assert.EqualValues(t, 20, env.stockOf(t, "med1"))
	assert.EqualValues(t, 5, env.stockOf(t, "med2"))
	got, err := env.uc.GetByID(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPending, got.Status)
	assert.Empty(t, got.Auditor)
	require.Len(t, got.Lines, 2)
}

func TestReject_AfterApproveRestoresStock(t *testing.T) {
	env := newTestEnv(t)
	doc := env.createInbound(t, line("med1", 10, "8.00"))
	_, err := env.uc.ReplaceLinesAndSetStatus(context.Background(), "ana", doc.ID, approveReq(line("med1", 10, "8.00")))
	require.NoError(t, err)
	require.EqualValues(t, 30, env.stockOf(t, "med1"))

	resp, err := env.uc.ReplaceLinesAndSetStatus(context.Background(), "luis", doc.ID, dto.UpdateDocumentRequest{
		Status: entity.StatusRejected,
		Lines:  []dto.DocumentLineRequest{line("med1", 10, "8.00")},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.StatusRejected, resp.Status)
	assert.Equal(t, "luis", resp.Auditor)
	assert.EqualValues(t, 20, env.stockOf(t, "med1"), "rechazar tras aprobar deja el stock como si nunca se hubiera aprobado")
}

func TestBackToPending_ClearsAuditorAndReverses(t *testing.T) {
	env := newTestEnv(t)
	doc := env.createOutbound(t, line("med1", 4, "12.00"))
	_, err := env.uc.ReplaceLinesAndSetStatus(context.Background(), "ana", doc.ID, approveReq(line("med1", 4, "12.00")))
	require.NoError(t, err)
	require.EqualValues(t, 16, env.stockOf(t, "med1"))

	resp, err := env.uc.ReplaceLinesAndSetStatus(context.Background(), "ana", doc.ID, dto.UpdateDocumentRequest{
		Status: entity.StatusPending,
		Lines:  []dto.DocumentLineRequest{line("med1", 4, "12.00")},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.StatusPending, resp.Status)
	assert.Empty(t, resp.Auditor)
	assert.Nil(t, resp.AuditedAt)
	assert.EqualValues(t, 20, env.stockOf(t, "med1"))
}

func TestReapprove_WithEditedLinesNetsCorrectly(t *testing.T) {
	env := newTestEnv(t)
	doc := env.createOutbound(t, line("med1", 5, "12.00"))
	_, err := env.uc.ReplaceLinesAndSetStatus(context.Background(), "ana", doc.ID, approveReq(line("med1", 5, "12.00")))
	require.NoError(t, err)
	require.EqualValues(t, 15, env.stockOf(t, "med1"))

	// Reaprobar con 8 unidades: primero revierte las 5, luego descuenta 8.
	resp, err := env.uc.ReplaceLinesAndSetStatus(context.Background(), "ana", doc.ID, approveReq(line("med1", 8, "12.00")))
	require.NoError(t, err)

	assert.EqualValues(t, 12, env.stockOf(t, "med1"))
	assert.True(t, resp.TotalAmount.Equal(decimal.RequireFromString("96.00")))
}

func TestReapprove_InsufficientCheckUsesRevertedStock(t *testing.T) {
	env := newTestEnv(t)
	doc := env.createOutbound(t, line("med1", 18, "12.00"))
	_, err := env.uc.ReplaceLinesAndSetStatus(context.Background(), "ana", doc.ID, approveReq(line("med1", 18, "12.00")))
	require.NoError(t, err)
	require.EqualValues(t, 2, env.stockOf(t, "med1"))

	// 20 disponibles tras revertir las 18 propias; la edición a 20 debe pasar
	// aunque la existencia visible sea 2.
	_, err = env.uc.ReplaceLinesAndSetStatus(context.Background(), "ana", doc.ID, approveReq(line("med1", 20, "12.00")))
	require.NoError(t, err)
	assert.EqualValues(t, 0, env.stockOf(t, "med1"))
}

func TestOutbound_ZeroPriceFallsBackToRetail(t *testing.T) {
	env := newTestEnv(t)

	resp := env.createOutbound(t, dto.DocumentLineRequest{MedicineID: "med1", Quantity: 2})

	require.Len(t, resp.Lines, 1)
	assert.True(t, resp.Lines[0].UnitPrice.Equal(decimal.RequireFromString("10.50")))
	assert.True(t, resp.TotalAmount.Equal(decimal.RequireFromString("21.00")))
}

func TestDelete_ApprovedReversesStock(t *testing.T) {
	env := newTestEnv(t)
	doc := env.createInbound(t, line("med1", 10, "8.00"))
	_, err := env.uc.ReplaceLinesAndSetStatus(context.Background(), "ana", doc.ID, approveReq(line("med1", 10, "8.00")))
	require.NoError(t, err)
	require.EqualValues(t, 30, env.stockOf(t, "med1"))

	require.NoError(t, env.uc.Delete(context.Background(), doc.ID))

	assert.EqualValues(t, 20, env.stockOf(t, "med1"))
	got, err := env.uc.GetByID(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDelete_PendingLeavesStockAlone(t *testing.T) {
	env := newTestEnv(t)
	doc := env.createOutbound(t, line("med1", 4, "12.00"))

	require.NoError(t, env.uc.Delete(context.Background(), doc.ID))

	assert.EqualValues(t, 20, env.stockOf(t, "med1"))
}

func TestDelete_NotFound(t *testing.T) {
	env := newTestEnv(t)
	err := env.uc.Delete(context.Background(), "IN20230101001")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate_NotFound(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.uc.ReplaceLinesAndSetStatus(context.Background(), "ana", "IN20230101001", approveReq(line("med1", 1, "1.00")))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_FiltersByDirectionAndStatus(t *testing.T) {
	env := newTestEnv(t)
	in := env.createInbound(t, line("med1", 1, "1.00"))
	env.createOutbound(t, line("med1", 1, "1.00"))
	_, err := env.uc.ReplaceLinesAndSetStatus(context.Background(), "ana", in.ID, approveReq(line("med1", 1, "1.00")))
	require.NoError(t, err)

	approved, err := env.uc.List(context.Background(), entity.DirectionInbound, dto.ListDocumentsRequest{Status: entity.StatusApproved})
	require.NoError(t, err)
	require.Len(t, approved.Items, 1)
	assert.Equal(t, in.ID, approved.Items[0].ID)

	outs, err := env.uc.List(context.Background(), entity.DirectionOutbound, dto.ListDocumentsRequest{})
	require.NoError(t, err)
	assert.Len(t, outs.Items, 1)

	_, err = env.uc.List(context.Background(), "SIDEWAYS", dto.ListDocumentsRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConcurrentCreate_DistinctAscendingNumbers(t *testing.T) {
	env := newTestEnv(t)
	const n = 20

	ids := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := env.uc.Create(context.Background(), dto.CreateDocumentRequest{
				Direction:   entity.DirectionInbound,
				SupplierID:  "sup1",
				WarehouseID: "wh1",
				DocDate:     "2023-11-14",
				Lines:       []dto.DocumentLineRequest{line("med1", 1, "1.00")},
			})
			if err == nil {
				ids[i] = resp.ID
			}
		}(i)
	}
	wg.Wait()

	sort.Strings(ids)
	for i := 0; i < n; i++ {
		assert.Equal(t, fmt.Sprintf("IN20231114%03d", i+1), ids[i], "números distintos, sin huecos y ascendentes")
	}
}
