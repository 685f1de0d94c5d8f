package repository

import (
	"strings"
	"time"

	"go-warehouse-tracker/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TransactionRepository interface {
	Create(tx *gorm.DB, transaction *model.Transaction) error
	Update(tx *gorm.DB, transaction *model.Transaction) error
	Delete(tx *gorm.DB, id uuid.UUID, deletedBy string) error
	FindByID(id uuid.UUID) (*model.Transaction, error)
	FindForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Transaction, error)
	// Search returns transactions newest-first, filtered by the query string
	// (case-insensitive substring over product name, product category and type
	// label). An empty query returns everything.
	Search(q string) ([]model.Transaction, error)
	DailySales(from, to time.Time) ([]DailySale, error)
	SalesTotals(from, to time.Time) (decimal.Decimal, int64, error)
	TopProducts(from, to time.Time, limit int) ([]ProductSales, error)
}

// DailySale is one chart point: calendar day and the summed sale total.
type DailySale struct {
	Day   string  `json:"day"`
	Total float64 `json:"total"`
}

// ProductSales is a top-N ranking entry by units sold.
type ProductSales struct {
	Name string `json:"name"`
	Sold int    `json:"sold"`
}

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db}
}

func (r *transactionRepo) Create(tx *gorm.DB, transaction *model.Transaction) error {
	return tx.Create(transaction).Error
}

func (r *transactionRepo) Update(tx *gorm.DB, transaction *model.Transaction) error {
	return tx.Save(transaction).Error
}

func (r *transactionRepo) Delete(tx *gorm.DB, id uuid.UUID, deletedBy string) error {
	if err := tx.Model(&model.Transaction{}).
		Where("id = ?", id).
		Update("deleted_by", deletedBy).Error; err != nil {
		return err
	}
	return tx.Delete(&model.Transaction{}, "id = ?", id).Error
}

func (r *transactionRepo) FindByID(id uuid.UUID) (*model.Transaction, error) {
	var transaction model.Transaction
	err := r.db.Preload("Product").First(&transaction, "id = ?", id).Error
	return &transaction, err
}

func (r *transactionRepo) FindForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Transaction, error) {
	var transaction model.Transaction
	err := lockForUpdate(tx).First(&transaction, "id = ?", id).Error
	return &transaction, err
}

func (r *transactionRepo) Search(q string) ([]model.Transaction, error) {
	db := r.db.Model(&model.Transaction{}).
		Select("transactions.*").
		Preload("Product").
		Joins("LEFT JOIN products ON products.id = transactions.product_id AND products.deleted_at IS NULL")

	if q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		db = db.Where(
			"LOWER(COALESCE(products.name, '')) LIKE ? OR LOWER(COALESCE(products.category, '')) LIKE ? OR LOWER(transactions.type) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var transactions []model.Transaction
	err := db.Order("transactions.created_at DESC").Find(&transactions).Error
	return transactions, err
}

// salesInRange scopes to sale transactions whose calendar date falls inside
// the inclusive [from, to] range. Bounds are passed as ISO date strings so the
// comparison stays on calendar dates on both Postgres and SQLite.
func (r *transactionRepo) salesInRange(from, to time.Time) *gorm.DB {
	return r.db.Model(&model.Transaction{}).
		Where("type = ?", model.TxSale).
		Where("DATE(transactions.created_at) BETWEEN ? AND ?",
			from.Format("2006-01-02"), to.Format("2006-01-02"))
}

func (r *transactionRepo) DailySales(from, to time.Time) ([]DailySale, error) {
	var results []DailySale

	rows, err := r.salesInRange(from, to).
		Select("DATE(transactions.created_at) as day, COALESCE(SUM(total_price), 0) as total").
		Group("day").
		Order("day ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data DailySale
		if err := rows.Scan(&data.Day, &data.Total); err != nil {
			return nil, err
		}
		// Some drivers scan DATE() into a full timestamp string; keep the
		// ISO date part only.
		if len(data.Day) > 10 {
			data.Day = data.Day[:10]
		}
		results = append(results, data)
	}
	return results, rows.Err()
}

func (r *transactionRepo) SalesTotals(from, to time.Time) (decimal.Decimal, int64, error) {
	var agg struct {
		Total decimal.Decimal
		Count int64
	}
	err := r.salesInRange(from, to).
		Select("COALESCE(SUM(total_price), 0) as total, COUNT(*) as count").
		Scan(&agg).Error
	if err != nil {
		return decimal.Zero, 0, err
	}
	return agg.Total, agg.Count, nil
}

// TopProducts ranks products by units sold, descending; ties break by name
// ascending so the ordering is deterministic across engines. Sales whose
// product was deleted group under the empty name.
func (r *transactionRepo) TopProducts(from, to time.Time, limit int) ([]ProductSales, error) {
	var results []ProductSales
	err := r.salesInRange(from, to).
		Joins("LEFT JOIN products ON products.id = transactions.product_id").
		Select("COALESCE(products.name, '') as name, SUM(transactions.quantity) as sold").
		Group("name").
		Order("sold DESC, name ASC").
		Limit(limit).
		Scan(&results).Error
	return results, err
}
