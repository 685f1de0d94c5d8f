package repository

import (
	"go-warehouse-tracker/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll() ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	// FindForUpdate locks the product row within tx for the duration of the
	// surrounding database transaction.
	FindForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Product, error)
	Update(product *model.Product) error
	UpdateQuantity(tx *gorm.DB, id uuid.UUID, quantity int, updatedBy string) error
	Delete(tx *gorm.DB, id uuid.UUID, deletedBy string) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

// lockForUpdate adds a FOR UPDATE row lock on dialects that support it.
// SQLite (tests) has no row locks; its writes are serialized anyway.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Order("created_at ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "id = ?", id).Error
	return &product, err
}

func (r *productRepo) FindForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := lockForUpdate(tx).First(&product, "id = ?", id).Error
	return &product, err
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

// UpdateQuantity runs inside the caller's transaction so stock writes stay
// atomic with the transaction-row writes they belong to.
func (r *productRepo) UpdateQuantity(tx *gorm.DB, id uuid.UUID, quantity int, updatedBy string) error {
	return tx.Model(&model.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"quantity":   quantity,
			"updated_by": updatedBy,
		}).Error
}

// Delete soft-deletes the product after clearing the product reference on its
// transactions. The transaction rows survive the product.
func (r *productRepo) Delete(tx *gorm.DB, id uuid.UUID, deletedBy string) error {
	if err := tx.Model(&model.Transaction{}).
		Where("product_id = ?", id).
		Update("product_id", nil).Error; err != nil {
		return err
	}
	if err := tx.Model(&model.Product{}).
		Where("id = ?", id).
		Update("deleted_by", deletedBy).Error; err != nil {
		return err
	}
	return tx.Delete(&model.Product{}, "id = ?", id).Error
}
