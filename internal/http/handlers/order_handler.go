package handlers

import (
	"github.com/gofiber/fiber/v2"

	"ramtekagro/internal/domain"
	applog "ramtekagro/internal/log"
	"ramtekagro/internal/repos"
	"ramtekagro/internal/services"
	"ramtekagro/internal/validate"
)

type OrderHandler struct {
	Cart  *services.CartService
	Order *services.OrderService
	Repo  *repos.OrderRepo
}

func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	cv, err := h.Cart.View(ensureSID(c))
	if err != nil {
		applog.Error(c, "checkout.load", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "Could not load your cart"})
	}
	return render(c, "checkout", fiber.Map{"Cart": cv})
}

func (h *OrderHandler) Place(c *fiber.Ctx) error {
	sid := ensureSID(c)

	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "name"})
		return c.Status(fiber.StatusBadRequest).SendString("full name is required")
	}
	email, ok := validate.Email(c.FormValue("email"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "email"})
		return c.Status(fiber.StatusBadRequest).SendString("invalid email")
	}
	phone, ok := validate.Phone(c.FormValue("phone"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "phone"})
		return c.Status(fiber.StatusBadRequest).SendString("invalid phone number")
	}

	street, ok1 := validate.Line(c.FormValue("street"))
	city, ok2 := validate.Line(c.FormValue("city"))
	state, ok3 := validate.Line(c.FormValue("state"))
	country, ok4 := validate.Line(c.FormValue("country"))
	postal, ok5 := validate.PostalCode(c.FormValue("postalCode"))
	if !ok1 || !ok2 || !ok3 || !ok4 || !ok5 {
		applog.Security(c, "validation.fail", map[string]any{"field": "address"})
		return c.Status(fiber.StatusBadRequest).SendString("incomplete shipping address")
	}

	payMethod, ok := validate.PaymentMethod(c.FormValue("paymentMethod"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "paymentMethod"})
		return c.Status(fiber.StatusBadRequest).SendString("invalid payment method")
	}

	info := services.CustomerInfo{
		Name:  name,
		Email: email,
		Phone: phone,
		Address: domain.Address{
			Street:     street,
			City:       city,
			State:      state,
			PostalCode: postal,
			Country:    country,
		},
		PaymentMethod: payMethod,
	}

	orderID, err := h.Order.Place(sid, info)
	if err != nil {
		applog.Error(c, "order.place.fail", err, map[string]any{"sid": sid})
		return c.Status(fiber.StatusBadRequest).SendString("Could not place order. Please review your cart and try again.")
	}

	// Cart is cleared only after a successful create; a failed submit
	// above leaves it intact for another attempt.
	if err := h.Cart.Clear(sid); err != nil {
		applog.Error(c, "order.cart.clear", err, map[string]any{"order_id": orderID})
	}

	applog.Audit(c, "order.place", map[string]any{"order_id": orderID})
	return c.Redirect("/order-success?id=" + orderID)
}

// Success renders the confirmation for the order id carried in the query
// string; an unknown or missing id falls back to a generic message.
func (h *OrderHandler) Success(c *fiber.Ctx) error {
	oid, ok := validate.ID(c.Query("id"))
	if !ok {
		return render(c, "order_success", fiber.Map{"Found": false})
	}
	o, items, err := h.Repo.Get(oid)
	if err != nil {
		return render(c, "order_success", fiber.Map{"Found": false})
	}
	return render(c, "order_success", fiber.Map{"Found": true, "Order": o, "Items": items})
}
