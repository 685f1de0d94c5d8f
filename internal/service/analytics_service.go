package service

import (
	"time"

	"go-warehouse-tracker/internal/repository"

	"github.com/shopspring/decimal"
)

// defaultRangeDays is the lookback window when no dates are supplied.
const defaultRangeDays = 30

// SalesAnalytics is the context for the analytics view.
type SalesAnalytics struct {
	ChartLabels []string                  `json:"sales_chart_labels"`
	ChartData   []float64                 `json:"sales_chart_data"`
	PeriodTotal int64                     `json:"period_total"`
	AvgCheck    int64                     `json:"avg_check"`
	TxCount     int64                     `json:"tx_count"`
	TopProducts []repository.ProductSales `json:"top_5_products"`
	DateFrom    string                    `json:"date_from"`
	DateTo      string                    `json:"date_to"`
}

type AnalyticsService interface {
	// SalesAnalytics aggregates sale transactions over the inclusive date
	// range. Raw inputs are ISO dates; anything unparsable falls back to the
	// default range, and swapped bounds are reordered.
	SalesAnalytics(rawFrom, rawTo string) (*SalesAnalytics, error)
}

type analyticsService struct {
	transactionRepo repository.TransactionRepository
	now             func() time.Time
}

func NewAnalyticsService(tRepo repository.TransactionRepository) AnalyticsService {
	return &analyticsService{transactionRepo: tRepo, now: time.Now}
}

func (s *analyticsService) resolveRange(rawFrom, rawTo string) (time.Time, time.Time) {
	today := s.now()

	from := today.AddDate(0, 0, -defaultRangeDays)
	if rawFrom != "" {
		if parsed, err := time.Parse("2006-01-02", rawFrom); err == nil {
			from = parsed
		}
	}

	to := today
	if rawTo != "" {
		if parsed, err := time.Parse("2006-01-02", rawTo); err == nil {
			to = parsed
		}
	}

	if to.Before(from) {
		from, to = to, from
	}
	return from, to
}

func (s *analyticsService) SalesAnalytics(rawFrom, rawTo string) (*SalesAnalytics, error) {
	from, to := s.resolveRange(rawFrom, rawTo)

	daily, err := s.transactionRepo.DailySales(from, to)
	if err != nil {
		return nil, err
	}

	labels := make([]string, 0, len(daily))
	data := make([]float64, 0, len(daily))
	for _, entry := range daily {
		labels = append(labels, chartLabel(entry.Day))
		data = append(data, entry.Total)
	}

	total, count, err := s.transactionRepo.SalesTotals(from, to)
	if err != nil {
		return nil, err
	}

	// Monetary outputs truncate toward zero, they are never rounded.
	var avgCheck int64
	if count > 0 {
		avgCheck = total.Div(decimal.NewFromInt(count)).IntPart()
	}

	top, err := s.transactionRepo.TopProducts(from, to, 5)
	if err != nil {
		return nil, err
	}

	return &SalesAnalytics{
		ChartLabels: labels,
		ChartData:   data,
		PeriodTotal: total.IntPart(),
		AvgCheck:    avgCheck,
		TxCount:     count,
		TopProducts: top,
		DateFrom:    from.Format("2006-01-02"),
		DateTo:      to.Format("2006-01-02"),
	}, nil
}

// chartLabel turns an ISO day into the two-digit "day.month" chart label.
func chartLabel(day string) string {
	parsed, err := time.Parse("2006-01-02", day)
	if err != nil {
		return day
	}
	return parsed.Format("02.01")
}
