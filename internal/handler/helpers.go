package handler

import (
	"errors"
	"strconv"

	"go-warehouse-tracker/internal/model"
	"go-warehouse-tracker/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// currentUser returns the acting user set by the auth middleware.
func currentUser(c *fiber.Ctx) *model.User {
	user, _ := c.Locals("user").(*model.User)
	return user
}

// statusFor maps service errors onto HTTP status codes. Validation failures
// are user-visible and non-fatal.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrTransactionNotFound),
		errors.Is(err, service.ErrUserNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrInsufficientStock),
		errors.Is(err, service.ErrInvalidType),
		errors.Is(err, service.ErrUsernameExists),
		errors.Is(err, service.ErrEmailExists),
		errors.Is(err, service.ErrWrongPassword),
		errors.Is(err, service.ErrPasswordTooShort):
		return fiber.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrUserInactive):
		return fiber.StatusUnauthorized
	}
	return fiber.StatusInternalServerError
}

func fail(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
}

// parseIntField mirrors the form semantics: empty or malformed input counts
// as zero rather than erroring out.
func parseIntField(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

func parseDecimalField(raw string) decimal.Decimal {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func transactionType(raw string) model.TransactionType {
	return model.TransactionType(raw)
}
