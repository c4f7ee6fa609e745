package handlers

import (
	"database/sql"

	"ramtekagro/internal/domain"
	applog "ramtekagro/internal/log"
	"ramtekagro/internal/repos"
	"ramtekagro/internal/services"
	"ramtekagro/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type StaffHandler struct {
	Catalog *services.CatalogService
	Orders  *repos.OrderRepo
	Dash    *services.DashboardService
}

// GET /staff
func (h *StaffHandler) Dashboard(c *fiber.Ctx) error {
	m, err := h.Dash.Snapshot()
	if err != nil {
		applog.Error(c, "staff.dashboard.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load the dashboard"})
	}
	return render(c, "staff_dashboard", fiber.Map{"Metrics": m})
}

// GET /staff/orders
func (h *StaffHandler) OrdersPage(c *fiber.Ctx) error {
	var (
		ords []repos.OrderRow
		err  error
	)
	filter := c.Query("filter")
	if filter == "pending" {
		ords, err = h.Orders.ListPending()
	} else {
		ords, err = h.Orders.ListAll()
	}
	if err != nil {
		applog.Error(c, "staff.orders.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load orders"})
	}
	return render(c, "staff_orders", fiber.Map{"Orders": ords, "Filter": filter})
}

// POST /staff/orders/:id/status
func (h *StaffHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	status := c.FormValue("status")
	if !okID || !domain.ValidOrderStatus(status) {
		return c.Status(400).SendString("missing id or status")
	}

	// Any status may follow any other; irregular jumps are applied but flagged.
	if cur, err := h.Orders.CurrentStatus(id); err == nil {
		if !domain.CanTransition(domain.OrderStatus(cur), domain.OrderStatus(status)) && cur != status {
			applog.Security(c, "staff.orders.irregular_transition", map[string]any{
				"order_id": id, "from": cur, "to": status,
			})
		}
	} else if err != sql.ErrNoRows {
		applog.Error(c, "staff.orders.status.read", err, map[string]any{"order_id": id})
	}

	if err := h.Orders.UpdateStatus(id, status); err != nil {
		applog.Error(c, "staff.orders.update.fail", err, map[string]any{"order_id": id})
		return c.Status(400).SendString("could not update status")
	}
	applog.Audit(c, "staff.orders.update", map[string]any{"order_id": id, "status": status})
	return c.Redirect("/staff/orders")
}

// POST /staff/orders/:id/payment
func (h *StaffHandler) UpdatePaymentStatus(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	status := c.FormValue("status")
	if !okID || !domain.ValidPaymentStatus(status) {
		return c.Status(400).SendString("missing id or status")
	}
	if err := h.Orders.UpdatePaymentStatus(id, status); err != nil {
		applog.Error(c, "staff.orders.payment.fail", err, map[string]any{"order_id": id})
		return c.Status(400).SendString("could not update payment status")
	}
	applog.Audit(c, "staff.orders.payment", map[string]any{"order_id": id, "payment_status": status})
	return c.Redirect("/staff/orders")
}

// GET /staff/products
func (h *StaffHandler) ProductsPage(c *fiber.Ctx) error {
	prods, err := h.Catalog.ListProducts()
	if err != nil {
		applog.Error(c, "staff.products.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load products"})
	}
	return render(c, "staff_products", fiber.Map{"Products": prods})
}

// GET /staff/products/new
func (h *StaffHandler) ProductNew(c *fiber.Ctx) error {
	return render(c, "staff_product_form", fiber.Map{"P": domain.Product{}, "IsNew": true})
}

// GET /staff/products/:id/edit
func (h *StaffHandler) ProductEdit(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Product not found"})
	}
	p, err := h.Catalog.GetProduct(id)
	if err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Product not found"})
	}
	return render(c, "staff_product_form", fiber.Map{"P": p, "IsNew": false})
}

func productFromForm(c *fiber.Ctx) (domain.Product, string) {
	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		return domain.Product{}, "name is required"
	}
	price, ok := validate.Price(c.FormValue("price"))
	if !ok {
		return domain.Product{}, "price must be a non-negative amount"
	}
	stock, ok := validate.Stock(c.FormValue("stock"))
	if !ok {
		return domain.Product{}, "stock must be a non-negative integer"
	}
	category, ok := validate.Line(c.FormValue("category"))
	if !ok {
		return domain.Product{}, "category is required"
	}
	return domain.Product{
		Name:        name,
		Description: c.FormValue("description"),
		Price:       price,
		ImageURL:    c.FormValue("imageUrl"),
		Category:    category,
		Featured:    c.FormValue("featured") == "on" || c.FormValue("featured") == "true",
		Stock:       stock,
	}, ""
}

// POST /staff/products
func (h *StaffHandler) ProductCreate(c *fiber.Ctx) error {
	p, msg := productFromForm(c)
	if msg != "" {
		applog.Security(c, "validation.fail", map[string]any{"form": "product", "reason": msg})
		return c.Status(400).SendString(msg)
	}
	id, err := h.Catalog.AddProduct(p)
	if err != nil {
		applog.Error(c, "staff.products.create.fail", err, nil)
		return c.Status(400).SendString("could not save product")
	}
	applog.Audit(c, "staff.products.create", map[string]any{"product_id": id})
	return c.Redirect("/staff/products")
}

// POST /staff/products/:id — unknown ids fall through as a silent no-op.
func (h *StaffHandler) ProductUpdate(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	p, msg := productFromForm(c)
	if msg != "" {
		applog.Security(c, "validation.fail", map[string]any{"form": "product", "reason": msg})
		return c.Status(400).SendString(msg)
	}
	p.ID = id
	if err := h.Catalog.UpdateProduct(p); err != nil {
		applog.Error(c, "staff.products.update.fail", err, map[string]any{"product_id": id})
		return c.Status(400).SendString("could not save product")
	}
	applog.Audit(c, "staff.products.update", map[string]any{"product_id": id})
	return c.Redirect("/staff/products")
}

// POST /staff/products/:id/delete
func (h *StaffHandler) ProductDelete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(400).SendString("missing id")
	}
	if err := h.Catalog.DeleteProduct(id); err != nil {
		applog.Error(c, "staff.products.delete.fail", err, map[string]any{"product_id": id})
		return c.Status(400).SendString("could not delete product")
	}
	applog.Audit(c, "staff.products.delete", map[string]any{"product_id": id})
	return c.Redirect("/staff/products")
}
