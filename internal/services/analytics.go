package services

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/basaam0/receipt-roundup/internal/dto"
	"github.com/basaam0/receipt-roundup/internal/models"
)

type receiptScanStore interface {
	ScanAll(ctx context.Context, uid string, handle func(*models.Receipt) error) error
}

type analyticsService struct {
	receipts receiptScanStore
}

func NewAnalyticsService(receipts receiptScanStore) *analyticsService {
	return &analyticsService{receipts: receipts}
}

// ComputeAnalytics scans every receipt the user owns and totals spend per
// store and per category. Store keys are lower-cased; a receipt with an
// empty store name is skipped in the store map. The full price is added to
// each of the receipt's category buckets: categories are non-exclusive tags,
// so double counting across them is intentional. Sums accumulate in decimal
// so they stay exact at two-decimal currency granularity, and are converted
// to float64 once at the end.
func (s *analyticsService) ComputeAnalytics(ctx context.Context, uid string) (dto.SpendingAnalytics, error) {
	storeTotals := map[string]decimal.Decimal{}
	categoryTotals := map[string]decimal.Decimal{}

	err := s.receipts.ScanAll(ctx, uid, func(r *models.Receipt) error {
		price := decimal.NewFromFloat(r.Price)

		if store := strings.ToLower(r.Store); store != "" {
			storeTotals[store] = storeTotals[store].Add(price)
		}
		for _, category := range r.Categories {
			categoryTotals[category] = categoryTotals[category].Add(price)
		}
		return nil
	})
	if err != nil {
		return dto.SpendingAnalytics{}, err
	}

	return dto.SpendingAnalytics{
		StoreAnalytics:    toFloatTotals(storeTotals),
		CategoryAnalytics: toFloatTotals(categoryTotals),
	}, nil
}

func toFloatTotals(totals map[string]decimal.Decimal) map[string]float64 {
	out := make(map[string]float64, len(totals))
	for key, total := range totals {
		out[key] = total.InexactFloat64()
	}
	return out
}
