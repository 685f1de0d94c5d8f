package repository

import (
	"testing"
	"time"

	"go-warehouse-tracker/internal/model"
	"go-warehouse-tracker/pkg/database"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupSearch(t *testing.T) (*gorm.DB, TransactionRepository) {
	t.Helper()
	db := database.NewTestDB(t, &model.Product{}, &model.Transaction{})
	return db, NewTransactionRepo(db)
}

func addProduct(t *testing.T, db *gorm.DB, name, category string) *model.Product {
	t.Helper()
	product := &model.Product{Name: name, Price: decimal.RequireFromString("1.00")}
	if category != "" {
		product.Category = &category
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func addTransaction(t *testing.T, db *gorm.DB, product *model.Product, txType model.TransactionType, at time.Time) *model.Transaction {
	t.Helper()
	tr := &model.Transaction{
		Type:       txType,
		Quantity:   1,
		TotalPrice: decimal.RequireFromString("1.00"),
	}
	if product != nil {
		tr.ProductID = &product.ID
	}
	tr.CreatedAt = at
	require.NoError(t, db.Create(tr).Error)
	return tr
}

func TestSearchMatchesCategoryCaseInsensitive(t *testing.T) {
	db, repo := setupSearch(t)
	now := time.Now().UTC()

	widget := addProduct(t, db, "Widget", "ABC123")
	gadget := addProduct(t, db, "Gadget", "tools")
	addTransaction(t, db, widget, model.TxSale, now)
	addTransaction(t, db, gadget, model.TxIncoming, now)

	got, err := repo.Search("abc")
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "Widget", got[0].ItemName())
}

func TestSearchMatchesProductName(t *testing.T) {
	db, repo := setupSearch(t)
	now := time.Now().UTC()

	widget := addProduct(t, db, "Blue Widget", "")
	gadget := addProduct(t, db, "Gadget", "")
	addTransaction(t, db, widget, model.TxOther, now)
	addTransaction(t, db, gadget, model.TxOther, now)

	got, err := repo.Search("WIDG")
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "Blue Widget", got[0].ItemName())
}

func TestSearchMatchesTypeLabel(t *testing.T) {
	db, repo := setupSearch(t)
	now := time.Now().UTC()

	widget := addProduct(t, db, "Widget", "")
	addTransaction(t, db, widget, model.TxSale, now)
	addTransaction(t, db, widget, model.TxIncoming, now.Add(time.Minute))

	got, err := repo.Search("SALE")
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, model.TxSale, got[0].Type)
}

func TestSearchTreatsMissingProductAsEmpty(t *testing.T) {
	db, repo := setupSearch(t)
	now := time.Now().UTC()

	// Orphaned transaction: product reference already cleared.
	addTransaction(t, db, nil, model.TxOther, now)

	got, err := repo.Search("widget")
	require.NoError(t, err)
	assert.Empty(t, got)

	// Still reachable through its type label.
	got, err = repo.Search("other")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestSearchEmptyQueryReturnsAllNewestFirst(t *testing.T) {
	db, repo := setupSearch(t)
	base := time.Now().UTC().Add(-time.Hour)

	widget := addProduct(t, db, "Widget", "")
	oldest := addTransaction(t, db, widget, model.TxSale, base)
	newest := addTransaction(t, db, widget, model.TxIncoming, base.Add(30*time.Minute))

	got, err := repo.Search("")
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, newest.ID, got[0].ID)
	assert.Equal(t, oldest.ID, got[1].ID)
}

func TestSearchNoMatches(t *testing.T) {
	db, repo := setupSearch(t)

	widget := addProduct(t, db, "Widget", "tools")
	addTransaction(t, db, widget, model.TxSale, time.Now().UTC())

	got, err := repo.Search("xyz-not-there")
	require.NoError(t, err)
	assert.Empty(t, got)
}
