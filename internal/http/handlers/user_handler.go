package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "bookstore/internal/log"
	"bookstore/internal/services"
)

type UserHandler struct {
	Users *services.UserService
}

type userRequest struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	us, err := h.Users.List(c.UserContext())
	if err != nil {
		return respondErr(c, "user.list", err, "", "Failed to fetch users")
	}
	return c.JSON(toUsers(us))
}

func (h *UserHandler) ByRole(c *fiber.Ctx) error {
	us, err := h.Users.ByRole(c.UserContext(), c.Params("role"))
	if err != nil {
		return respondErr(c, "user.by_role", err, "", "Failed to fetch users")
	}
	return c.JSON(toUsers(us))
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return badID(c, "id")
	}
	u, err := h.Users.Get(c.UserContext(), id)
	if err != nil {
		return respondErr(c, "user.get", err, "User not found", "Failed to fetch user")
	}
	return c.JSON(toUser(*u))
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req userRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	u, err := h.Users.Create(c.UserContext(), req.Name, req.Role)
	if err != nil {
		return respondErr(c, "user.create", err, "", "Failed to create user")
	}
	applog.Audit(c, "user.create", map[string]any{"user_id": u.ID, "role": u.Role})
	return c.JSON(toUser(u))
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return badID(c, "id")
	}
	var req userRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.Users.Update(c.UserContext(), id, req.Name, req.Role); err != nil {
		return respondErr(c, "user.update", err, "User not found", "Failed to update user")
	}
	applog.Audit(c, "user.update", map[string]any{"user_id": id})
	return message(c, "User updated successfully")
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, ok := idParam(c, "id")
	if !ok {
		return badID(c, "id")
	}
	if err := h.Users.Delete(c.UserContext(), id); err != nil {
		return respondErr(c, "user.delete", err, "User not found", "Failed to delete user")
	}
	applog.Audit(c, "user.delete", map[string]any{"user_id": id})
	return message(c, "User deleted successfully")
}
