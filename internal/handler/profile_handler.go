package handler

import (
	"go-warehouse-tracker/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ProfileHandler struct {
	accounts service.AccountService
}

func NewProfileHandler(accounts service.AccountService) *ProfileHandler {
	return &ProfileHandler{accounts: accounts}
}

// Profile returns the current account context.
// GET /profile/update/
func (h *ProfileHandler) Profile(c *fiber.Ctx) error {
	user, err := h.accounts.GetProfile(currentUser(c).ID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"user": user.ToResponse()})
}

// UpdateProfile changes username/email and optionally replaces the avatar
// (multipart field "avatar").
// POST /profile/update/
func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	update := &service.ProfileUpdate{
		Username: c.FormValue("username"),
		Email:    c.FormValue("email"),
	}

	if fileHeader, err := c.FormFile("avatar"); err == nil && fileHeader != nil {
		file, err := fileHeader.Open()
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Cannot read avatar upload"})
		}
		defer file.Close()
		update.Avatar = file
	}

	user, err := h.accounts.UpdateProfile(currentUser(c).ID, update)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Profile updated", "user": user.ToResponse()})
}

// PasswordForm returns the password-change form context.
// GET /profile/password/
func (h *ProfileHandler) PasswordForm(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"fields": []string{"old_password", "new_password"}})
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" form:"old_password"`
	NewPassword string `json:"new_password" form:"new_password"`
}

// ChangePassword verifies the current password and sets a new one.
// POST /profile/password/
func (h *ProfileHandler) ChangePassword(c *fiber.Ctx) error {
	var req changePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := h.accounts.ChangePassword(currentUser(c).ID, req.OldPassword, req.NewPassword); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Password changed"})
}

// DeleteAccount removes the acting user's own account.
// POST /profile/delete/
func (h *ProfileHandler) DeleteAccount(c *fiber.Ctx) error {
	if err := h.accounts.DeleteAccount(currentUser(c).ID); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Account deleted"})
}
