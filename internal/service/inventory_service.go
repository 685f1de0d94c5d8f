package service

import (
	"errors"
	"fmt"
	"strings"

	"go-warehouse-tracker/internal/model"
	"go-warehouse-tracker/internal/repository"
	"go-warehouse-tracker/internal/ws"
	"go-warehouse-tracker/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrInvalidQuantity     = errors.New("quantity must be positive")
	ErrInsufficientStock   = errors.New("insufficient stock for sale")
	ErrInvalidType         = errors.New("unknown transaction type")
	ErrProductNotFound     = errors.New("product not found")
	ErrTransactionNotFound = errors.New("transaction not found")
)

// ProductInput carries the editable product fields.
type ProductInput struct {
	Name     string `validate:"required"`
	Category *string
	Quantity int
	Price    decimal.Decimal
}

// TransactionInput carries the fields of a stock-affecting transaction.
type TransactionInput struct {
	ProductID uuid.UUID `validate:"uuid_required"`
	Type      model.TransactionType
	Quantity  int
}

type InventoryService interface {
	CreateProduct(input *ProductInput, actor *model.User) (*model.Product, error)
	UpdateProduct(id uuid.UUID, input *ProductInput, actor *model.User) (*model.Product, error)
	DeleteProduct(id uuid.UUID, actor *model.User) error
	ListProducts() ([]model.Product, error)

	CreateTransaction(input *TransactionInput, actor *model.User) (*model.Transaction, error)
	UpdateTransaction(id uuid.UUID, input *TransactionInput, actor *model.User) (*model.Transaction, error)
	DeleteTransaction(id uuid.UUID, actor *model.User) error
	SearchTransactions(q string) ([]model.Transaction, error)
}

type inventoryService struct {
	productRepo     repository.ProductRepository
	transactionRepo repository.TransactionRepository
	db              *gorm.DB
	audit           *Auditor
	wsHub           *ws.Hub
}

func NewInventoryService(pRepo repository.ProductRepository, tRepo repository.TransactionRepository, db *gorm.DB, audit *Auditor, hub *ws.Hub) InventoryService {
	return &inventoryService{
		productRepo:     pRepo,
		transactionRepo: tRepo,
		db:              db,
		audit:           audit,
		wsHub:           hub,
	}
}

// applyEffect computes the stock level after a transaction takes effect:
// sales subtract, incoming/other add.
func applyEffect(stock int, txType model.TransactionType, qty int) int {
	if txType == model.TxSale {
		return stock - qty
	}
	return stock + qty
}

// reverseEffect undoes a transaction's prior effect. Reversing a non-sale
// never drives stock below zero; it clamps.
func reverseEffect(stock int, txType model.TransactionType, qty int) int {
	if txType == model.TxSale {
		return stock + qty
	}
	if reversed := stock - qty; reversed > 0 {
		return reversed
	}
	return 0
}

func (s *inventoryService) CreateProduct(input *ProductInput, actor *model.User) (*model.Product, error) {
	if errs := validator.ValidateStruct(input); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	product := &model.Product{
		Name:     input.Name,
		Category: input.Category,
		Quantity: input.Quantity,
		Price:    input.Price,
	}
	product.CreatedBy = actor.Username
	product.UpdatedBy = actor.Username

	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}

	s.audit.Record(actor, model.ActionAdd, fmt.Sprintf("Added product: %s", product.Name))
	s.broadcast("product_created", actor, product, fmt.Sprintf("%s added product '%s'", actor.Username, product.Name))
	return product, nil
}

func (s *inventoryService) UpdateProduct(id uuid.UUID, input *ProductInput, actor *model.User) (*model.Product, error) {
	if errs := validator.ValidateStruct(input); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}

	var updated *model.Product
	err := s.db.Transaction(func(tx *gorm.DB) error {
		existing, err := s.productRepo.FindForUpdate(tx, id)
		if err != nil {
			return ErrProductNotFound
		}

		existing.Name = input.Name
		existing.Category = input.Category
		existing.Quantity = input.Quantity
		existing.Price = input.Price
		existing.UpdatedBy = actor.Username

		if err := tx.Save(existing).Error; err != nil {
			return err
		}
		updated = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(actor, model.ActionEdit, fmt.Sprintf("Edited product: %s", updated.Name))
	s.broadcast("product_updated", actor, updated, fmt.Sprintf("%s updated product '%s'", actor.Username, updated.Name))
	return updated, nil
}

func (s *inventoryService) DeleteProduct(id uuid.UUID, actor *model.User) error {
	var name string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		product, err := s.productRepo.FindForUpdate(tx, id)
		if err != nil {
			return ErrProductNotFound
		}
		name = product.Name
		// Clears the product reference on its transactions; never cascades.
		return s.productRepo.Delete(tx, id, actor.Username)
	})
	if err != nil {
		return err
	}

	s.audit.Record(actor, model.ActionDelete, fmt.Sprintf("Deleted product: %s", name))
	s.broadcast("product_deleted", actor, map[string]interface{}{"id": id, "name": name},
		fmt.Sprintf("%s deleted product '%s'", actor.Username, name))
	return nil
}

func (s *inventoryService) ListProducts() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

func (s *inventoryService) CreateTransaction(input *TransactionInput, actor *model.User) (*model.Transaction, error) {
	if errs := validator.ValidateStruct(input); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}
	if !model.ValidTransactionType(input.Type) {
		return nil, ErrInvalidType
	}

	var created *model.Transaction
	err := s.db.Transaction(func(tx *gorm.DB) error {
		product, err := s.productRepo.FindForUpdate(tx, input.ProductID)
		if err != nil {
			return ErrProductNotFound
		}

		if input.Quantity <= 0 {
			return ErrInvalidQuantity
		}
		if input.Type == model.TxSale && product.Quantity < input.Quantity {
			return ErrInsufficientStock
		}

		// Snapshot of price * quantity; never recomputed when the product
		// changes later.
		total := product.Price.Mul(decimal.NewFromInt(int64(input.Quantity)))
		transaction := &model.Transaction{
			ProductID:  &product.ID,
			Type:       input.Type,
			Quantity:   input.Quantity,
			TotalPrice: total,
		}
		transaction.CreatedBy = actor.Username
		transaction.UpdatedBy = actor.Username

		if err := s.transactionRepo.Create(tx, transaction); err != nil {
			return err
		}

		newQty := applyEffect(product.Quantity, input.Type, input.Quantity)
		if err := s.productRepo.UpdateQuantity(tx, product.ID, newQty, actor.Username); err != nil {
			return err
		}

		product.Quantity = newQty
		transaction.Product = product
		created = transaction
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(actor, model.ActionAdd,
		fmt.Sprintf("Added transaction %s for product \"%s\"", created.ID, created.ItemName()))
	s.broadcast("transaction_created", actor, created,
		fmt.Sprintf("%s recorded a %s of %d x '%s'", actor.Username, created.Type, created.Quantity, created.ItemName()))
	return created, nil
}

// UpdateTransaction reverses the old transaction's effect on its old product,
// then validates and applies the new values against the already-reversed stock
// level. The whole sequence runs in one database transaction, so a validation
// failure rolls the reversal back as well.
func (s *inventoryService) UpdateTransaction(id uuid.UUID, input *TransactionInput, actor *model.User) (*model.Transaction, error) {
	if errs := validator.ValidateStruct(input); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", firstErr.FailedField, firstErr.Tag)
	}
	if !model.ValidTransactionType(input.Type) {
		return nil, ErrInvalidType
	}

	var updated *model.Transaction
	err := s.db.Transaction(func(tx *gorm.DB) error {
		transaction, err := s.transactionRepo.FindForUpdate(tx, id)
		if err != nil {
			return ErrTransactionNotFound
		}

		// Undo the old effect. A transaction whose product was deleted has
		// nothing left to reconcile against.
		if transaction.ProductID != nil {
			oldProduct, err := s.productRepo.FindForUpdate(tx, *transaction.ProductID)
			if err == nil {
				reversed := reverseEffect(oldProduct.Quantity, transaction.Type, transaction.Quantity)
				if err := s.productRepo.UpdateQuantity(tx, oldProduct.ID, reversed, actor.Username); err != nil {
					return err
				}
			}
		}

		// Re-read after the reversal so same-product edits validate against
		// the reversed stock level.
		newProduct, err := s.productRepo.FindForUpdate(tx, input.ProductID)
		if err != nil {
			return ErrProductNotFound
		}

		if input.Quantity <= 0 {
			return ErrInvalidQuantity
		}
		if input.Type == model.TxSale && newProduct.Quantity < input.Quantity {
			return ErrInsufficientStock
		}

		newQty := applyEffect(newProduct.Quantity, input.Type, input.Quantity)
		if err := s.productRepo.UpdateQuantity(tx, newProduct.ID, newQty, actor.Username); err != nil {
			return err
		}

		transaction.ProductID = &newProduct.ID
		transaction.Type = input.Type
		transaction.Quantity = input.Quantity
		transaction.TotalPrice = newProduct.Price.Mul(decimal.NewFromInt(int64(input.Quantity)))
		transaction.UpdatedBy = actor.Username
		if err := s.transactionRepo.Update(tx, transaction); err != nil {
			return err
		}

		newProduct.Quantity = newQty
		transaction.Product = newProduct
		updated = transaction
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(actor, model.ActionEdit, fmt.Sprintf("Edited transaction %s", updated.ID))
	s.broadcast("transaction_updated", actor, updated,
		fmt.Sprintf("%s edited transaction for '%s'", actor.Username, updated.ItemName()))
	return updated, nil
}

func (s *inventoryService) DeleteTransaction(id uuid.UUID, actor *model.User) error {
	var productName string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		transaction, err := s.transactionRepo.FindForUpdate(tx, id)
		if err != nil {
			return ErrTransactionNotFound
		}

		if transaction.ProductID != nil {
			product, err := s.productRepo.FindForUpdate(tx, *transaction.ProductID)
			if err == nil {
				productName = product.Name
				reversed := reverseEffect(product.Quantity, transaction.Type, transaction.Quantity)
				if err := s.productRepo.UpdateQuantity(tx, product.ID, reversed, actor.Username); err != nil {
					return err
				}
			}
		}

		return s.transactionRepo.Delete(tx, id, actor.Username)
	})
	if err != nil {
		return err
	}

	s.audit.Record(actor, model.ActionDelete,
		fmt.Sprintf("Deleted transaction %s for product \"%s\"", id, productName))
	s.broadcast("transaction_deleted", actor, map[string]interface{}{"id": id, "product_name": productName},
		fmt.Sprintf("%s deleted a transaction for '%s'", actor.Username, productName))
	return nil
}

func (s *inventoryService) SearchTransactions(q string) ([]model.Transaction, error) {
	return s.transactionRepo.Search(strings.TrimSpace(q))
}

func (s *inventoryService) broadcast(action string, actor *model.User, data interface{}, message string) {
	if s.wsHub == nil {
		return
	}
	go s.wsHub.BroadcastEvent(ws.Event{
		Type:    "stock_update",
		Action:  action,
		Actor:   actor.Username,
		Data:    data,
		Message: message,
	})
}
