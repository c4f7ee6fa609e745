package handlers

import (
	"ramtekagro/internal/log"
	"ramtekagro/internal/services"
	"ramtekagro/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CartHandler struct {
	Cart *services.CartService
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	sid := ensureSID(c)
	cv, err := h.Cart.View(sid)
	if err != nil {
		log.Error(c, "cart.view", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load your cart"})
	}
	return render(c, "cart", fiber.Map{"Cart": cv})
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	sid := ensureSID(c)
	productID, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	if err := h.Cart.Add(sid, productID); err != nil {
		log.Error(c, "cart.add", err, map[string]any{"product": productID})
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	return c.Redirect("/cart")
}

// Update sets a line quantity; values below 1 clamp to 1 rather than removing.
func (h *CartHandler) Update(c *fiber.Ctx) error {
	sid := ensureSID(c)
	productID, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	qty := validate.Qty(c.FormValue("qty"))
	if err := h.Cart.UpdateQuantity(sid, productID, qty); err != nil {
		log.Error(c, "cart.update", err, map[string]any{"product": productID})
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not update your cart"})
	}
	return c.Redirect("/cart")
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	sid := ensureSID(c)
	productID, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	if err := h.Cart.Remove(sid, productID); err != nil {
		log.Error(c, "cart.remove", err, map[string]any{"product": productID})
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not update your cart"})
	}
	return c.Redirect("/cart")
}
