package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TxSale     TransactionType = "sale"
	TxIncoming TransactionType = "incoming"
	TxOther    TransactionType = "other"
)

// ValidTransactionType reports whether t is one of the known type labels.
func ValidTransactionType(t TransactionType) bool {
	switch t {
	case TxSale, TxIncoming, TxOther:
		return true
	}
	return false
}

type Transaction struct {
	BaseModel
	// Nullable on purpose: deleting a product keeps its transactions and
	// clears the reference instead of cascading.
	ProductID *uuid.UUID `gorm:"type:uuid;index" json:"product_id"`
	Product   *Product   `json:"product,omitempty" validate:"-"`

	Type       TransactionType `gorm:"type:varchar(20);not null;default:'other'" json:"type" validate:"required,oneof=sale incoming other"`
	Quantity   int             `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_price"` // Snapshot price * quantity at creation/edit time
}

// ItemName proxies to the referenced product's name, empty if the product
// reference was cleared.
func (t *Transaction) ItemName() string {
	if t.Product == nil {
		return ""
	}
	return t.Product.Name
}

// CategoryName proxies to the referenced product's category.
func (t *Transaction) CategoryName() string {
	if t.Product == nil {
		return ""
	}
	return t.Product.CategoryName()
}
