package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"ramtekagro/internal/repos"
)

func get(t *testing.T, app *fiber.App, cookie *http.Cookie, path string) *http.Response {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestHomeAndCatalogPages(t *testing.T) {
	app, _, _ := newApp(t)

	for _, path := range []string{"/", "/products", "/products?q=jaggery", "/products?category=Jaggery", "/product/1"} {
		resp := get(t, app, nil, path)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, resp.StatusCode)
		}
	}
}

func TestProductDetailUnknownID(t *testing.T) {
	app, _, _ := newApp(t)

	resp := get(t, app, nil, "/product/no-such-id")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestAvailabilityEndpoint(t *testing.T) {
	app, db, _ := newApp(t)

	resp := get(t, app, nil, "/api/v1/availability?productId=1")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var got struct {
		Status string `json:"status"`
		Qty    int    `json:"qty"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Status != "IN_STOCK" || got.Qty != 50 {
		t.Fatalf("want IN_STOCK/50, got %s/%d", got.Status, got.Qty)
	}

	// unknown product reads as out of stock, never an error
	resp = get(t, app, nil, "/api/v1/availability?productId=ghost")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for unknown product, got %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Status != "OUT_OF_STOCK" || got.Qty != 0 {
		t.Fatalf("want OUT_OF_STOCK/0, got %s/%d", got.Status, got.Qty)
	}

	// low stock boundary via a direct stock tweak
	if _, err := db.Exec(`UPDATE products SET stock=3 WHERE id='2'`); err != nil {
		t.Fatal(err)
	}
	resp = get(t, app, nil, "/api/v1/availability?productId=2")
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Status != "LOW_STOCK" || got.Qty != 3 {
		t.Fatalf("want LOW_STOCK/3, got %s/%d", got.Status, got.Qty)
	}

	resp = get(t, app, nil, "/api/v1/availability")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing productId should 400, got %d", resp.StatusCode)
	}
}

func TestCartFlowThroughHandlers(t *testing.T) {
	app, db, _ := newApp(t)
	sid := &http.Cookie{Name: "sid", Value: "shopper-cart-flow"}
	cartRepo := repos.NewCartRepo(db)

	// add twice merges into one line of qty 2
	for i := 0; i < 2; i++ {
		resp := postForm(t, app, sid, "/cart", "productId=1")
		if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/cart" {
			t.Fatalf("add: got %d -> %s", resp.StatusCode, resp.Header.Get("Location"))
		}
	}
	items, err := cartRepo.Items(sid.Value)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].Qty != 2 {
		t.Fatalf("want one merged line of qty 2, got %+v", items)
	}

	// qty below one clamps to one
	if resp := postForm(t, app, sid, "/cart/update", "productId=1&qty=0"); resp.StatusCode != http.StatusFound {
		t.Fatalf("update: got %d", resp.StatusCode)
	}
	items, _ = cartRepo.Items(sid.Value)
	if items[0].Qty != 1 {
		t.Fatalf("qty 0 should clamp to 1, got %d", items[0].Qty)
	}

	// adding a missing product renders the not-found page
	if resp := postForm(t, app, sid, "/cart", "productId=ghost"); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("add missing product: got %d", resp.StatusCode)
	}

	if resp := postForm(t, app, sid, "/cart/remove", "productId=1"); resp.StatusCode != http.StatusFound {
		t.Fatalf("remove: got %d", resp.StatusCode)
	}
	items, _ = cartRepo.Items(sid.Value)
	if len(items) != 0 {
		t.Fatalf("cart should be empty, got %+v", items)
	}
}

func TestCheckoutPlacesOrderAndClearsCart(t *testing.T) {
	app, db, _ := newApp(t)
	sid := &http.Cookie{Name: "sid", Value: "shopper-checkout"}
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)

	postForm(t, app, sid, "/cart", "productId=1")
	postForm(t, app, sid, "/cart", "productId=4")

	form := "name=Asha+Patil&email=asha@example.com&phone=%2B91+9876543210" +
		"&street=12+Market+Road&city=Ramtek&state=Maharashtra&postalCode=441106&country=India" +
		"&paymentMethod=upi"
	resp := postForm(t, app, sid, "/orders", form)
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("place: expected redirect, got %d", resp.StatusCode)
	}
	loc := resp.Header.Get("Location")
	if !strings.HasPrefix(loc, "/order-success?id=") {
		t.Fatalf("unexpected redirect target %s", loc)
	}
	oid := strings.TrimPrefix(loc, "/order-success?id=")

	o, lines, err := orderRepo.Get(oid)
	if err != nil {
		t.Fatal(err)
	}
	if o.Total != 199+499 {
		t.Fatalf("want total %v, got %v", 199+499, o.Total)
	}
	if len(lines) != 2 {
		t.Fatalf("want 2 order lines, got %d", len(lines))
	}

	// cart is cleared only after the order was created
	items, err := cartRepo.Items(sid.Value)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 0 {
		t.Fatalf("cart not cleared after checkout: %+v", items)
	}

	// confirmation page shows the order
	resp = get(t, app, sid, loc)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("confirmation: expected 200, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), oid) {
		t.Fatal("confirmation page missing order id")
	}
}

func TestCheckoutValidationLeavesCartIntact(t *testing.T) {
	app, db, _ := newApp(t)
	sid := &http.Cookie{Name: "sid", Value: "shopper-badform"}
	cartRepo := repos.NewCartRepo(db)

	postForm(t, app, sid, "/cart", "productId=1")

	// bad email, everything else valid
	form := "name=Asha+Patil&email=not-an-email&phone=%2B91+9876543210" +
		"&street=12+Market+Road&city=Ramtek&state=Maharashtra&postalCode=441106&country=India" +
		"&paymentMethod=upi"
	resp := postForm(t, app, sid, "/orders", form)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid email, got %d", resp.StatusCode)
	}

	items, err := cartRepo.Items(sid.Value)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 {
		t.Fatalf("failed checkout must leave the cart intact, got %d lines", len(items))
	}

	// empty cart cannot check out even with a valid form
	good := strings.Replace(form, "not-an-email", "asha@example.com", 1)
	resp = postForm(t, app, &http.Cookie{Name: "sid", Value: "shopper-empty"}, "/orders", good)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("empty cart checkout should 400, got %d", resp.StatusCode)
	}
}

func TestOrderSuccessUnknownIDFallsBack(t *testing.T) {
	app, _, _ := newApp(t)

	for _, path := range []string{"/order-success", "/order-success?id=no-such-order"} {
		resp := get(t, app, nil, path)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s: expected 200 fallback, got %d", path, resp.StatusCode)
		}
		body, _ := io.ReadAll(resp.Body)
		if !strings.Contains(strings.ToLower(string(body)), "order") {
			t.Fatalf("%s: fallback page looks wrong", path)
		}
	}
}
