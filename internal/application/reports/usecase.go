// Package reports genera reportes de estoque a partir del catálogo.
package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/estoque-pro/estoque-api/internal/domain/entity"
	"github.com/estoque-pro/estoque-api/internal/domain/repository"
)

// StockReportGenerator es el puerto de salida para renderizar el reporte (PDF).
type StockReportGenerator interface {
	GenerateLowStockPDF(ctx context.Context, products []*entity.Product, generatedAt time.Time, generatedBy string) ([]byte, error)
}

// ReportUseCase orquesta la generación de reportes de estoque.
type ReportUseCase struct {
	productRepo repository.ProductRepository
	generator   StockReportGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(productRepo repository.ProductRepository, generator StockReportGenerator) *ReportUseCase {
	return &ReportUseCase{productRepo: productRepo, generator: generator}
}

// LowStockPDF genera el reporte PDF de productos con estoque en o bajo el mínimo.
// generatedBy es el username del solicitante, impreso en el pie del reporte.
func (uc *ReportUseCase) LowStockPDF(ctx context.Context, generatedBy string) ([]byte, error) {
	products, err := uc.productRepo.ListLowStock()
	if err != nil {
		return nil, fmt.Errorf("listar productos bajo mínimo: %w", err)
	}
	return uc.generator.GenerateLowStockPDF(ctx, products, time.Now(), generatedBy)
}
