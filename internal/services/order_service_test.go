package services_test

import (
	"testing"

	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"ramtekagro/internal/domain"
	"ramtekagro/internal/repos"
	"ramtekagro/internal/services"
)

type orderFixture struct {
	cartSvc  *services.CartService
	orderSvc *services.OrderService
	orders   *repos.OrderRepo
}

func newOrderFixture(t *testing.T) orderFixture {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	prodRepo := repos.NewProductRepo(db)
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	return orderFixture{
		cartSvc:  services.NewCartService(cartRepo, prodRepo),
		orderSvc: services.NewOrderService(cartRepo, orderRepo),
		orders:   orderRepo,
	}
}

func testCustomer() services.CustomerInfo {
	return services.CustomerInfo{
		Name:  "Asha Patil",
		Email: "asha@example.com",
		Phone: "+91 9876543210",
		Address: domain.Address{
			Street:     "12 Market Road",
			City:       "Ramtek",
			State:      "Maharashtra",
			PostalCode: "441106",
			Country:    "India",
		},
		PaymentMethod: "upi",
	}
}

func TestPlaceOrderSnapshotsCartAndTotals(t *testing.T) {
	f := newOrderFixture(t)
	sid := "sess-ord-1"

	// two units of seed product 1 (199 each)
	if err := f.cartSvc.Add(sid, "1"); err != nil {
		t.Fatal(err)
	}
	if err := f.cartSvc.Add(sid, "1"); err != nil {
		t.Fatal(err)
	}

	oid, err := f.orderSvc.Place(sid, testCustomer())
	if err != nil {
		t.Fatal(err)
	}
	if oid == "" {
		t.Fatal("no order id")
	}

	o, items, err := f.orders.Get(oid)
	if err != nil {
		t.Fatal(err)
	}
	if o.Total != 398 {
		t.Fatalf("want total 398, got %v", o.Total)
	}
	if o.Status != "pending" || o.PaymentStatus != "pending" {
		t.Fatalf("new order must start pending/pending, got %s/%s", o.Status, o.PaymentStatus)
	}
	if o.CustomerName != "Asha Patil" || o.City != "Ramtek" || o.PaymentMethod != "upi" {
		t.Fatalf("customer info not stored: %+v", o)
	}
	if len(items) != 1 || items[0].Qty != 2 || items[0].Price != 199 {
		t.Fatalf("bad order lines: %+v", items)
	}

	// the order service does not clear the cart; the caller does
	cv, err := f.cartSvc.View(sid)
	if err != nil {
		t.Fatal(err)
	}
	if len(cv.Items) != 1 {
		t.Fatalf("cart should be untouched by Place, got %d lines", len(cv.Items))
	}

	// mutating the cart afterwards must not touch the order snapshot
	if err := f.cartSvc.UpdateQuantity(sid, "1", 9); err != nil {
		t.Fatal(err)
	}
	if err := f.cartSvc.Clear(sid); err != nil {
		t.Fatal(err)
	}
	o2, items2, err := f.orders.Get(oid)
	if err != nil {
		t.Fatal(err)
	}
	if o2.Total != 398 || len(items2) != 1 || items2[0].Qty != 2 {
		t.Fatalf("order snapshot changed after cart mutation: %+v %+v", o2, items2)
	}
}

func TestPlaceOrderEmptyCartFails(t *testing.T) {
	f := newOrderFixture(t)

	if _, err := f.orderSvc.Place("sess-empty", testCustomer()); err == nil {
		t.Fatal("placing an order from an empty cart must fail")
	}
}

func TestOrdersListNewestFirst(t *testing.T) {
	f := newOrderFixture(t)

	first := placeOne(t, f, "sess-a")
	second := placeOne(t, f, "sess-b")

	all, err := f.orders.ListAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("want 2 orders, got %d", len(all))
	}
	if all[0].ID != second || all[1].ID != first {
		t.Fatalf("orders not newest-first: %s, %s", all[0].ID, all[1].ID)
	}
}

func placeOne(t *testing.T, f orderFixture, sid string) string {
	t.Helper()
	if err := f.cartSvc.Add(sid, "2"); err != nil {
		t.Fatal(err)
	}
	oid, err := f.orderSvc.Place(sid, testCustomer())
	if err != nil {
		t.Fatal(err)
	}
	return oid
}

func TestUpdateStatusUnknownIDIsNoop(t *testing.T) {
	f := newOrderFixture(t)
	oid := placeOne(t, f, "sess-c")

	if err := f.orders.UpdateStatus("no-such-order", "shipped"); err != nil {
		t.Fatalf("unknown id must be a silent no-op: %v", err)
	}
	if err := f.orders.UpdatePaymentStatus("no-such-order", "paid"); err != nil {
		t.Fatalf("unknown id must be a silent no-op: %v", err)
	}

	o, _, err := f.orders.Get(oid)
	if err != nil {
		t.Fatal(err)
	}
	if o.Status != "pending" || o.PaymentStatus != "pending" {
		t.Fatalf("existing order was touched: %s/%s", o.Status, o.PaymentStatus)
	}
}

func TestAnyStatusMayFollowAnyOther(t *testing.T) {
	f := newOrderFixture(t)
	oid := placeOne(t, f, "sess-d")

	// no transition table is enforced on writes
	for _, s := range []string{"delivered", "pending", "cancelled", "processing"} {
		if err := f.orders.UpdateStatus(oid, s); err != nil {
			t.Fatalf("update to %s: %v", s, err)
		}
		o, _, err := f.orders.Get(oid)
		if err != nil {
			t.Fatal(err)
		}
		if o.Status != s {
			t.Fatalf("want status %s, got %s", s, o.Status)
		}
	}
}

func TestPaymentStatusIndependentOfOrderStatus(t *testing.T) {
	f := newOrderFixture(t)
	oid := placeOne(t, f, "sess-e")

	if err := f.orders.UpdatePaymentStatus(oid, "paid"); err != nil {
		t.Fatal(err)
	}
	o, _, err := f.orders.Get(oid)
	if err != nil {
		t.Fatal(err)
	}
	if o.PaymentStatus != "paid" || o.Status != "pending" {
		t.Fatalf("payment update leaked into status: %s/%s", o.Status, o.PaymentStatus)
	}
}

func TestPendingOrdersIncludeProcessing(t *testing.T) {
	f := newOrderFixture(t)

	a := placeOne(t, f, "sess-f")
	b := placeOne(t, f, "sess-g")
	c := placeOne(t, f, "sess-h")

	if err := f.orders.UpdateStatus(b, "processing"); err != nil {
		t.Fatal(err)
	}
	if err := f.orders.UpdateStatus(c, "delivered"); err != nil {
		t.Fatal(err)
	}

	pending, err := f.orders.ListPending()
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 2 {
		t.Fatalf("want pending+processing = 2, got %d", len(pending))
	}
	for _, o := range pending {
		if o.ID != a && o.ID != b {
			t.Fatalf("unexpected order in pending set: %s (%s)", o.ID, o.Status)
		}
	}
}

func TestStatusTransitionTable(t *testing.T) {
	cases := []struct {
		from, to domain.OrderStatus
		ok       bool
	}{
		{domain.StatusPending, domain.StatusProcessing, true},
		{domain.StatusPending, domain.StatusCancelled, true},
		{domain.StatusProcessing, domain.StatusShipped, true},
		{domain.StatusShipped, domain.StatusDelivered, true},
		{domain.StatusDelivered, domain.StatusPending, false},
		{domain.StatusShipped, domain.StatusCancelled, false},
		{domain.StatusCancelled, domain.StatusProcessing, false},
	}
	for _, tc := range cases {
		if got := domain.CanTransition(tc.from, tc.to); got != tc.ok {
			t.Fatalf("CanTransition(%s,%s)=%v, want %v", tc.from, tc.to, got, tc.ok)
		}
	}
}
