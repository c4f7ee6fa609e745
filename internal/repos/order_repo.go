package repos

import (
	"ramtekagro/internal/domain"

	"github.com/jmoiron/sqlx"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

type OrderRow struct {
	ID            string  `db:"id"`
	CustomerName  string  `db:"customer_name"`
	CustomerEmail string  `db:"customer_email"`
	CustomerPhone string  `db:"customer_phone"`
	Street        string  `db:"street"`
	City          string  `db:"city"`
	State         string  `db:"state"`
	PostalCode    string  `db:"postal_code"`
	Country       string  `db:"country"`
	PaymentMethod string  `db:"payment_method"`
	Total         float64 `db:"total"`
	Status        string  `db:"status"`
	PaymentStatus string  `db:"payment_status"`
	CreatedAt     string  `db:"created_at"`
}

type OrderItemRow struct {
	ProductID string  `db:"product_id"`
	Name      string  `db:"name"`
	Price     float64 `db:"price"`
	Qty       int     `db:"qty"`
	Subtotal  float64 `db:"subtotal"`
}

type OrderLine struct {
	ProductID string
	Name      string
	Price     float64
	Qty       int
}

const orderCols = `
  id, customer_name, customer_email, COALESCE(customer_phone,'') AS customer_phone,
  COALESCE(street,'') AS street, COALESCE(city,'') AS city, COALESCE(state,'') AS state,
  COALESCE(postal_code,'') AS postal_code, COALESCE(country,'') AS country,
  COALESCE(payment_method,'') AS payment_method, total, status, payment_status,
  COALESCE(created_at,'') AS created_at`

// Create inserts the order header and its snapshot lines in one transaction.
func (r *OrderRepo) Create(orderID, name, email, phone string, addr domain.Address, payMethod string, total float64, lines []OrderLine) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
	  INSERT INTO orders
	    (id, customer_name, customer_email, customer_phone,
	     street, city, state, postal_code, country,
	     payment_method, total, status, payment_status, created_at)
	  VALUES
	    (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 'pending', 'pending', CURRENT_TIMESTAMP)
	`, orderID, name, email, phone,
		addr.Street, addr.City, addr.State, addr.PostalCode, addr.Country,
		payMethod, total); err != nil {
		return err
	}

	for _, l := range lines {
		if _, err := tx.Exec(`
		  INSERT INTO order_items(order_id, product_id, name, price, qty)
		  VALUES(?, ?, ?, ?, ?)
		`, orderID, l.ProductID, l.Name, l.Price, l.Qty); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *OrderRepo) Get(orderID string) (OrderRow, []OrderItemRow, error) {
	var o OrderRow
	if err := r.db.Get(&o, `SELECT`+orderCols+` FROM orders WHERE id = ?`, orderID); err != nil {
		return OrderRow{}, nil, err
	}

	var items []OrderItemRow
	if err := r.db.Select(&items, `
		SELECT product_id, name, price, qty, (qty * price) AS subtotal
		FROM order_items
		WHERE order_id = ?
		ORDER BY name
	`, orderID); err != nil {
		return OrderRow{}, nil, err
	}

	return o, items, nil
}

// ListAll returns every order, most recent first.
func (r *OrderRepo) ListAll() ([]OrderRow, error) {
	var out []OrderRow
	err := r.db.Select(&out, `
		SELECT`+orderCols+`
		FROM orders
		ORDER BY datetime(created_at) DESC, rowid DESC
	`)
	return out, err
}

// ListPending returns orders still needing attention (pending or processing).
func (r *OrderRepo) ListPending() ([]OrderRow, error) {
	var out []OrderRow
	err := r.db.Select(&out, `
		SELECT`+orderCols+`
		FROM orders
		WHERE status IN ('pending','processing')
		ORDER BY datetime(created_at) DESC, rowid DESC
	`)
	return out, err
}

func (r *OrderRepo) CurrentStatus(id string) (string, error) {
	var s string
	err := r.db.Get(&s, `SELECT status FROM orders WHERE id = ?`, id)
	return s, err
}

// UpdateStatus sets the order status; an unknown id matches nothing and is a no-op.
func (r *OrderRepo) UpdateStatus(id, status string) error {
	_, err := r.db.Exec(`UPDATE orders SET status = ? WHERE id = ?`, status, id)
	return err
}

// UpdatePaymentStatus sets the payment status; unknown ids are a no-op.
func (r *OrderRepo) UpdatePaymentStatus(id, status string) error {
	_, err := r.db.Exec(`UPDATE orders SET payment_status = ? WHERE id = ?`, status, id)
	return err
}

type StatusCount struct {
	Status string `db:"status"`
	Count  int    `db:"count"`
}

func (r *OrderRepo) CountByStatus() ([]StatusCount, error) {
	var out []StatusCount
	err := r.db.Select(&out, `SELECT status, COUNT(*) AS count FROM orders GROUP BY status`)
	return out, err
}

// Revenue sums order totals across the whole history.
func (r *OrderRepo) Revenue() (float64, error) {
	var v float64
	err := r.db.Get(&v, `SELECT COALESCE(SUM(total),0) FROM orders`)
	return v, err
}

func (r *OrderRepo) Count() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM orders`)
	return n, err
}

func (r *OrderRepo) ListLatest(limit int) ([]OrderRow, error) {
	if limit <= 0 {
		limit = 5
	}
	var out []OrderRow
	err := r.db.Select(&out, `
		SELECT`+orderCols+`
		FROM orders
		ORDER BY datetime(created_at) DESC, rowid DESC
		LIMIT ?
	`, limit)
	return out, err
}
