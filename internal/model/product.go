package model

import (
	"github.com/shopspring/decimal"
)

type Product struct {
	BaseModel
	Name     string          `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Category *string         `gorm:"type:varchar(100)" json:"category"`
	Quantity int             `gorm:"default:0" json:"quantity"`
	Price    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`

	// Relasi
	Transactions []Transaction `gorm:"constraint:OnDelete:SET NULL;" json:"transactions,omitempty"`
}

// CategoryName returns the category or an empty string when unset.
func (p *Product) CategoryName() string {
	if p.Category == nil {
		return ""
	}
	return *p.Category
}
