package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	html "github.com/gofiber/template/html/v2"

	"ramtekagro/internal/http/handlers"
	"ramtekagro/internal/repos"
	"ramtekagro/internal/services"
)

// newApp wires the full route surface against an in-memory database,
// without the CSRF and rate-limit middlewares so flows stay scriptable.
func newApp(t *testing.T) (*fiber.App, *sqlx.DB, *services.AuthService) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo}
	authH := &handlers.AuthHandler{Auth: authSvc}

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})

	deps := handlers.NewDeps(db, authSvc)

	app.Get("/", deps.ProductHandler.Home)
	app.Get("/products", deps.ProductHandler.List)
	app.Get("/product/:id", deps.ProductHandler.Detail)
	app.Get("/api/v1/availability", deps.ProductHandler.Availability)

	app.Get("/cart", deps.CartHandler.View)
	app.Post("/cart", deps.CartHandler.Add)
	app.Post("/cart/update", deps.CartHandler.Update)
	app.Post("/cart/remove", deps.CartHandler.Remove)
	app.Get("/checkout", deps.OrderHandler.Checkout)
	app.Post("/orders", deps.OrderHandler.Place)
	app.Get("/order-success", deps.OrderHandler.Success)

	app.Get("/staff/login", authH.LoginForm)
	app.Post("/staff/login", authH.Login)
	app.Post("/staff/logout", authH.Logout)

	staff := app.Group("/staff", handlers.RequireStaff(authSvc))
	staff.Get("/", deps.StaffHandler.Dashboard)
	staff.Get("/orders", deps.StaffHandler.OrdersPage)
	staff.Post("/orders/:id/status", deps.StaffHandler.UpdateOrderStatus)
	staff.Post("/orders/:id/payment", deps.StaffHandler.UpdatePaymentStatus)
	staff.Get("/products", deps.StaffHandler.ProductsPage)
	staff.Get("/products/new", deps.StaffHandler.ProductNew)
	staff.Get("/products/:id/edit", deps.StaffHandler.ProductEdit)
	staff.Post("/products", deps.StaffHandler.ProductCreate)
	staff.Post("/products/:id", deps.StaffHandler.ProductUpdate)
	staff.Post("/products/:id/delete", deps.StaffHandler.ProductDelete)

	return app, db, authSvc
}

// staffSession binds a logged-in staff session directly and returns its cookie.
func staffSession(t *testing.T, auth *services.AuthService) *http.Cookie {
	t.Helper()
	sid := "test-staff-sid"
	if _, err := auth.Login(sid, "staff@ramtekagro.com", "staff123"); err != nil {
		t.Fatalf("staff login: %v", err)
	}
	return &http.Cookie{Name: "sid", Value: sid}
}

func cookieByName(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}
