package handlers

import (
	"strings"

	"ramtekagro/internal/domain"
	"ramtekagro/internal/log"
	"ramtekagro/internal/services"
	"ramtekagro/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

// Home shows the featured subset of the catalog.
func (h *ProductHandler) Home(c *fiber.Ctx) error {
	featured, err := h.Catalog.FeaturedProducts()
	if err != nil {
		log.Error(c, "home.load", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load the store. Please retry."})
	}
	return render(c, "home", fiber.Map{"Featured": featured})
}

// List shows the catalog, optionally narrowed by search query or category.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	category := strings.TrimSpace(c.Query("category"))
	q := strings.TrimSpace(c.Query("q"))

	cats, err := h.Catalog.Categories()
	if err != nil {
		log.Error(c, "products.categories", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load products. Please retry."})
	}

	if q != "" {
		valid, ok := validate.Q(q)
		if !ok {
			log.Security(c, "validation.fail", map[string]any{"field": "q", "value": q})
			return c.Status(fiber.StatusBadRequest).Render("products", fiber.Map{
				"Q": "", "Categories": cats, "Products": []any{}, "Count": 0,
				"Err": "Enter a valid keyword (letters/numbers only)",
			})
		}
		q = valid
	}

	var products []domain.Product
	switch {
	case q != "":
		products, err = h.Catalog.Search(q)
	case category != "":
		products, err = h.Catalog.FilterByCategory(category)
	default:
		products, err = h.Catalog.ListProducts()
	}
	if err != nil {
		log.Error(c, "products.load", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load products. Please retry."})
	}

	return render(c, "products", fiber.Map{
		"Q": q, "Category": category, "Categories": cats,
		"Products": products, "Count": len(products),
	})
}

func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "product"})
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	p, err := h.Catalog.GetProduct(id)
	if err != nil || p.ID == "" {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	related, err := h.Catalog.RelatedProducts(p.ID, p.Category, 4)
	if err != nil {
		related = nil
	}
	return render(c, "product", fiber.Map{"P": p, "Related": related})
}

// Availability is the JSON stock check used by the product page.
func (h *ProductHandler) Availability(c *fiber.Ctx) error {
	productID := strings.TrimSpace(c.Query("productId"))
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing productId",
		})
	}

	avail, err := h.Catalog.CheckAvailability(productID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(avail)
}
