package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Farmacia-api/internal/application/document"
	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
	"github.com/jhoicas/Farmacia-api/pkg/validate"
)

// Prefijo de numeración de conteos físicos.
const PrefixCheck = "CK"

// CheckUseCase registro de conteos físicos de inventario.
// Un conteo compara el stock de sistema contra lo contado y guarda la diferencia;
// no ajusta el catálogo: las correcciones se hacen con documentos.
type CheckUseCase struct {
	txRunner  CheckTxRunner
	checkRepo repository.StockCheckRepository
}

// NewCheckUseCase construye el caso de uso de conteos.
func NewCheckUseCase(txRunner CheckTxRunner, checkRepo repository.StockCheckRepository) *CheckUseCase {
	return &CheckUseCase{txRunner: txRunner, checkRepo: checkRepo}
}

// Create registra un conteo físico. El stock de sistema de cada línea se lee con
// bloqueo de fila dentro de la transacción, así la diferencia refleja un instante
// consistente aunque haya aprobaciones concurrentes.
func (uc *CheckUseCase) Create(ctx context.Context, in dto.CreateStockCheckRequest) (*dto.StockCheckResponse, error) {
	if err := validate.Struct(in); err != nil {
		return nil, domain.ErrInvalidInput
	}
	checkDate, err := parseCheckDate(in.CheckDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var resp *dto.StockCheckResponse

	err = uc.txRunner.RunCheck(ctx, func(
		checkRepo repository.StockCheckRepository,
		medRepo repository.MedicineRepository,
		seqRepo repository.SequenceRepository,
	) error {
		seq, err := seqRepo.Next(ctx, PrefixCheck, checkDate)
		if err != nil {
			return err
		}
		check := &entity.StockCheck{
			ID:        document.FormatNumber(PrefixCheck, checkDate, seq),
			Checker:   in.Checker,
			CheckDate: checkDate,
			Remark:    in.Remark,
			CreatedAt: now,
		}
		if err := checkRepo.Create(ctx, check); err != nil {
			return err
		}

		details := make([]*entity.StockCheckDetail, 0, len(in.Details))
		for _, d := range in.Details {
			med, err := medRepo.GetForUpdate(ctx, d.MedicineID)
			if err != nil {
				return err
			}
			if med == nil {
				return domain.ErrNotFound
			}
			detail := &entity.StockCheckDetail{
				ID:          uuid.New().String(),
				CheckID:     check.ID,
				MedicineID:  d.MedicineID,
				SystemStock: med.Stock,
				ActualStock: d.ActualStock,
				Diff:        d.ActualStock - med.Stock,
			}
			if err := checkRepo.CreateDetail(ctx, detail); err != nil {
				return err
			}
			details = append(details, detail)
		}
		resp = toCheckResponse(check, details)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// GetByID obtiene un conteo con sus líneas.
func (uc *CheckUseCase) GetByID(ctx context.Context, id string) (*dto.StockCheckResponse, error) {
	check, err := uc.checkRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if check == nil {
		return nil, nil
	}
	details, err := uc.checkRepo.ListDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCheckResponse(check, details), nil
}

// List lista conteos paginados, sin líneas.
func (uc *CheckUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.StockCheckListResponse, error) {
	page.DefaultPage()
	checks, err := uc.checkRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockCheckResponse, 0, len(checks))
	for _, c := range checks {
		items = append(items, *toCheckResponse(c, nil))
	}
	return &dto.StockCheckListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func parseCheckDate(s string) (time.Time, error) {
	if s == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse("2006-01-02", s)
}

func toCheckResponse(c *entity.StockCheck, details []*entity.StockCheckDetail) *dto.StockCheckResponse {
	resp := &dto.StockCheckResponse{
		ID:        c.ID,
		Checker:   c.Checker,
		CheckDate: c.CheckDate.Format("2006-01-02"),
		Remark:    c.Remark,
		CreatedAt: c.CreatedAt,
	}
	for _, d := range details {
		resp.Details = append(resp.Details, dto.StockCheckDetailResponse{
			ID:          d.ID,
			MedicineID:  d.MedicineID,
			SystemStock: d.SystemStock,
			ActualStock: d.ActualStock,
			Diff:        d.Diff,
		})
	}
	return resp
}
