package handler

import (
	"go-warehouse-tracker/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type InventoryHandler struct {
	service service.InventoryService
}

func NewInventoryHandler(s service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

// productForm mirrors the product form fields. Numeric fields arrive as
// strings; empty or malformed values count as zero.
type productForm struct {
	ID       string `json:"id" form:"id"`
	Name     string `json:"name" form:"name"`
	Category string `json:"category" form:"category"`
	Quantity string `json:"quantity" form:"quantity"`
	Price    string `json:"price" form:"price"`
}

func (f *productForm) toInput() *service.ProductInput {
	input := &service.ProductInput{
		Name:     f.Name,
		Quantity: parseIntField(f.Quantity),
		Price:    parseDecimalField(f.Price),
	}
	if f.Category != "" {
		category := f.Category
		input.Category = &category
	}
	return input
}

type transactionForm struct {
	ID       string `json:"id" form:"id"`
	ItemID   string `json:"item_id" form:"item_id"`
	Type     string `json:"type" form:"type"`
	Quantity string `json:"quantity" form:"quantity"`
}

// Index lists products and transactions, newest transactions first.
// GET /
func (h *InventoryHandler) Index(c *fiber.Ctx) error {
	products, err := h.service.ListProducts()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	transactions, err := h.service.SearchTransactions("")
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(fiber.Map{
		"products":     products,
		"transactions": transactions,
	})
}

// AddProduct creates a product.
// POST /product/add/
func (h *InventoryHandler) AddProduct(c *fiber.Ctx) error {
	var form productForm
	if err := c.BodyParser(&form); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	product, err := h.service.CreateProduct(form.toInput(), currentUser(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Product added", "data": product})
}

// EditProduct updates a product in place.
// POST /product/edit/
func (h *InventoryHandler) EditProduct(c *fiber.Ctx) error {
	var form productForm
	if err := c.BodyParser(&form); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	id, err := uuid.Parse(form.ID)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	product, err := h.service.UpdateProduct(id, form.toInput(), currentUser(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product updated", "data": product})
}

// DeleteProduct removes a product; its transactions survive with the product
// reference cleared.
// POST /product/:id/delete/
func (h *InventoryHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	if err := h.service.DeleteProduct(id, currentUser(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted"})
}

// Transactions lists or searches transactions. With the AJAX marker header
// only the matching rows are returned; otherwise the full page context.
// GET /transactions/?q=...
func (h *InventoryHandler) Transactions(c *fiber.Ctx) error {
	q := c.Query("q")

	transactions, err := h.service.SearchTransactions(q)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}

	if c.Get("X-Requested-With") == "XMLHttpRequest" {
		return c.JSON(transactions)
	}

	products, err := h.service.ListProducts()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(fiber.Map{
		"transactions": transactions,
		"products":     products,
		"q":            q,
	})
}

// AddTransaction records a stock-affecting transaction.
// POST /transactions/add/
func (h *InventoryHandler) AddTransaction(c *fiber.Ctx) error {
	var form transactionForm
	if err := c.BodyParser(&form); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	productID, err := uuid.Parse(form.ItemID)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	transaction, err := h.service.CreateTransaction(&service.TransactionInput{
		ProductID: productID,
		Type:      transactionType(form.Type),
		Quantity:  parseIntField(form.Quantity),
	}, currentUser(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Transaction added", "data": transaction})
}

// EditTransaction rewrites a transaction, reconciling stock on both the old
// and new product.
// POST /transactions/edit/
func (h *InventoryHandler) EditTransaction(c *fiber.Ctx) error {
	var form transactionForm
	if err := c.BodyParser(&form); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	id, err := uuid.Parse(form.ID)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}
	productID, err := uuid.Parse(form.ItemID)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	transaction, err := h.service.UpdateTransaction(id, &service.TransactionInput{
		ProductID: productID,
		Type:      transactionType(form.Type),
		Quantity:  parseIntField(form.Quantity),
	}, currentUser(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Transaction updated", "data": transaction})
}

// DeleteTransaction removes a transaction after reversing its stock effect.
// POST /transactions/:id/delete/
func (h *InventoryHandler) DeleteTransaction(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	if err := h.service.DeleteTransaction(id, currentUser(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Transaction deleted"})
}
