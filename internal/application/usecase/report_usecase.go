package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/Farmacia-api/internal/application/dto"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/repository"
)

// ReportUseCase reportes de solo lectura sobre documentos aprobados y existencias.
type ReportUseCase struct {
	reportRepo repository.ReportRepository
}

// NewReportUseCase construye el caso de uso de reportes.
func NewReportUseCase(reportRepo repository.ReportRepository) *ReportUseCase {
	return &ReportUseCase{reportRepo: reportRepo}
}

// InboundBySupplier agrega las entradas aprobadas por proveedor en un rango de
// fechas; sin rango se toman los últimos 30 días.
func (uc *ReportUseCase) InboundBySupplier(ctx context.Context, in dto.InboundReportRequest) (*dto.InboundReportResponse, error) {
	to := time.Now()
	from := to.AddDate(0, 0, -30)
	var err error
	if in.From != "" {
		from, err = time.Parse("2006-01-02", in.From)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
	}
	if in.To != "" {
		to, err = time.Parse("2006-01-02", in.To)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
	}
	if to.Before(from) {
		return nil, domain.ErrInvalidInput
	}

	stats, err := uc.reportRepo.InboundBySupplier(ctx, from, to)
	if err != nil {
		return nil, err
	}
	resp := &dto.InboundReportResponse{
		From:  from.Format("2006-01-02"),
		To:    to.Format("2006-01-02"),
		Items: make([]dto.SupplierInboundStatResponse, 0, len(stats)),
	}
	for _, s := range stats {
		resp.Items = append(resp.Items, dto.SupplierInboundStatResponse{
			SupplierID:    s.SupplierID,
			SupplierName:  s.SupplierName,
			DocumentCount: s.DocumentCount,
			TotalQuantity: s.TotalQuantity,
			TotalAmount:   s.TotalAmount,
		})
	}
	return resp, nil
}

// StockSummary agrega existencias y su valor a precio de venta por categoría.
func (uc *ReportUseCase) StockSummary(ctx context.Context) (*dto.StockSummaryResponse, error) {
	stats, err := uc.reportRepo.StockByCategory(ctx)
	if err != nil {
		return nil, err
	}
	resp := &dto.StockSummaryResponse{
		Items: make([]dto.CategoryStockStatResponse, 0, len(stats)),
	}
	for _, s := range stats {
		resp.Items = append(resp.Items, dto.CategoryStockStatResponse{
			CategoryID:    s.CategoryID,
			CategoryName:  s.CategoryName,
			MedicineCount: s.MedicineCount,
			TotalStock:    s.TotalStock,
			StockValue:    s.StockValue,
		})
	}
	return resp, nil
}
