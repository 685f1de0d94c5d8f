package service

import (
	"testing"
	"time"

	"go-warehouse-tracker/internal/model"
	"go-warehouse-tracker/internal/repository"
	"go-warehouse-tracker/pkg/database"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAnalytics(t *testing.T) (*gorm.DB, *analyticsService) {
	t.Helper()
	db := database.NewTestDB(t, &model.Product{}, &model.Transaction{})
	svc := &analyticsService{
		transactionRepo: repository.NewTransactionRepo(db),
		now:             func() time.Time { return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC) },
	}
	return db, svc
}

func seedProduct(t *testing.T, db *gorm.DB, name string) *model.Product {
	t.Helper()
	product := &model.Product{Name: name, Price: decimal.RequireFromString("1.00")}
	require.NoError(t, db.Create(product).Error)
	return product
}

func seedTransaction(t *testing.T, db *gorm.DB, product *model.Product, txType model.TransactionType, qty int, total string, day time.Time) {
	t.Helper()
	tr := &model.Transaction{
		ProductID:  &product.ID,
		Type:       txType,
		Quantity:   qty,
		TotalPrice: decimal.RequireFromString(total),
	}
	tr.CreatedAt = day
	require.NoError(t, db.Create(tr).Error)
}

func TestSalesAnalyticsDailySumsAndAverages(t *testing.T) {
	db, svc := setupAnalytics(t)
	product := seedProduct(t, db, "Widget")

	day := time.Date(2024, 6, 10, 9, 30, 0, 0, time.UTC)
	seedTransaction(t, db, product, model.TxSale, 1, "100.00", day)
	seedTransaction(t, db, product, model.TxSale, 2, "200.00", day.Add(4*time.Hour))
	// Non-sale transactions never count towards sales analytics.
	seedTransaction(t, db, product, model.TxIncoming, 5, "500.00", day)

	got, err := svc.SalesAnalytics("2024-06-01", "2024-06-30")
	require.NoError(t, err)

	assert.Equal(t, []string{"10.06"}, got.ChartLabels)
	assert.Equal(t, []float64{300}, got.ChartData)
	assert.EqualValues(t, 300, got.PeriodTotal)
	assert.EqualValues(t, 2, got.TxCount)
	assert.EqualValues(t, 150, got.AvgCheck)
	assert.Equal(t, "2024-06-01", got.DateFrom)
	assert.Equal(t, "2024-06-30", got.DateTo)
}

func TestSalesAnalyticsChronologicalSeries(t *testing.T) {
	db, svc := setupAnalytics(t)
	product := seedProduct(t, db, "Widget")

	seedTransaction(t, db, product, model.TxSale, 1, "50.00", time.Date(2024, 6, 12, 8, 0, 0, 0, time.UTC))
	seedTransaction(t, db, product, model.TxSale, 1, "20.00", time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC))
	seedTransaction(t, db, product, model.TxSale, 1, "30.00", time.Date(2024, 6, 11, 8, 0, 0, 0, time.UTC))

	got, err := svc.SalesAnalytics("2024-06-10", "2024-06-12")
	require.NoError(t, err)

	assert.Equal(t, []string{"10.06", "11.06", "12.06"}, got.ChartLabels)
	assert.Equal(t, []float64{20, 30, 50}, got.ChartData)
}

func TestSalesAnalyticsEmptyRange(t *testing.T) {
	db, svc := setupAnalytics(t)
	product := seedProduct(t, db, "Widget")
	seedTransaction(t, db, product, model.TxSale, 1, "100.00", time.Date(2024, 1, 5, 8, 0, 0, 0, time.UTC))

	got, err := svc.SalesAnalytics("2024-03-01", "2024-03-31")
	require.NoError(t, err)

	assert.Empty(t, got.ChartLabels)
	assert.Empty(t, got.ChartData)
	assert.EqualValues(t, 0, got.PeriodTotal)
	assert.EqualValues(t, 0, got.TxCount)
	assert.EqualValues(t, 0, got.AvgCheck, "no division by zero")
	assert.Empty(t, got.TopProducts)
}

func TestSalesAnalyticsSwapsReversedDates(t *testing.T) {
	db, svc := setupAnalytics(t)
	product := seedProduct(t, db, "Widget")
	seedTransaction(t, db, product, model.TxSale, 1, "100.00", time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC))

	got, err := svc.SalesAnalytics("2024-06-30", "2024-06-01")
	require.NoError(t, err)

	assert.Equal(t, "2024-06-01", got.DateFrom)
	assert.Equal(t, "2024-06-30", got.DateTo)
	assert.EqualValues(t, 100, got.PeriodTotal)
}

func TestSalesAnalyticsMalformedDatesFallBack(t *testing.T) {
	db, svc := setupAnalytics(t)
	product := seedProduct(t, db, "Widget")
	// Within the default window ending at the fixed "today" (2024-06-15).
	seedTransaction(t, db, product, model.TxSale, 1, "40.00", time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC))
	// Outside the default window.
	seedTransaction(t, db, product, model.TxSale, 1, "60.00", time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC))

	got, err := svc.SalesAnalytics("not-a-date", "2024/06/30")
	require.NoError(t, err)

	assert.Equal(t, "2024-05-16", got.DateFrom)
	assert.Equal(t, "2024-06-15", got.DateTo)
	assert.EqualValues(t, 40, got.PeriodTotal)
}

func TestSalesAnalyticsTruncatesMonetaryOutputs(t *testing.T) {
	db, svc := setupAnalytics(t)
	product := seedProduct(t, db, "Widget")

	day := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)
	seedTransaction(t, db, product, model.TxSale, 1, "10.99", day)
	seedTransaction(t, db, product, model.TxSale, 1, "10.98", day)

	got, err := svc.SalesAnalytics("2024-06-01", "2024-06-30")
	require.NoError(t, err)

	// 21.97 truncates to 21, 10.985 truncates to 10. Never rounded.
	assert.EqualValues(t, 21, got.PeriodTotal)
	assert.EqualValues(t, 10, got.AvgCheck)
}

func TestSalesAnalyticsTopProducts(t *testing.T) {
	db, svc := setupAnalytics(t)
	day := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)

	names := []string{"Alpha", "Bravo", "Charlie", "Delta", "Echo", "Foxtrot"}
	for i, name := range names {
		product := seedProduct(t, db, name)
		seedTransaction(t, db, product, model.TxSale, i+1, "10.00", day)
	}

	got, err := svc.SalesAnalytics("2024-06-01", "2024-06-30")
	require.NoError(t, err)

	require.Len(t, got.TopProducts, 5)
	assert.Equal(t, "Foxtrot", got.TopProducts[0].Name)
	assert.Equal(t, 6, got.TopProducts[0].Sold)
	// Alpha, with a single unit sold, falls off the top five.
	for _, entry := range got.TopProducts {
		assert.NotEqual(t, "Alpha", entry.Name)
	}
}

func TestSalesAnalyticsTopProductsTieBreak(t *testing.T) {
	db, svc := setupAnalytics(t)
	day := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)

	for _, name := range []string{"Zulu", "Alpha", "Mike"} {
		product := seedProduct(t, db, name)
		seedTransaction(t, db, product, model.TxSale, 3, "10.00", day)
	}

	got, err := svc.SalesAnalytics("2024-06-01", "2024-06-30")
	require.NoError(t, err)

	require.Len(t, got.TopProducts, 3)
	assert.Equal(t, "Alpha", got.TopProducts[0].Name)
	assert.Equal(t, "Mike", got.TopProducts[1].Name)
	assert.Equal(t, "Zulu", got.TopProducts[2].Name)
}
