package repos

import (
	"time"

	"github.com/jmoiron/sqlx"
)

type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

type CartItemRow struct {
	ProductID string  `db:"product_id"`
	Name      string  `db:"name"`
	Price     float64 `db:"price"`
	ImageURL  string  `db:"image_url"`
	Qty       int     `db:"qty"`
	Subtotal  float64 `db:"subtotal"`
}

func (r *CartRepo) EnsureCart(sessionID string) (string, error) {
	var cartID string
	if err := r.db.Get(&cartID, `SELECT id FROM carts WHERE session_id = ?`, sessionID); err == nil {
		return cartID, nil
	}
	_, err := r.db.Exec(`INSERT INTO carts(id,session_id,updated_at) VALUES(?,?,?)`,
		sessionID, sessionID, time.Now().Format(time.RFC3339))
	if err != nil {
		return "", err
	}
	return sessionID, nil
}

// AddItem increments an existing line by one or inserts a fresh line with qty 1,
// snapshotting the product fields at add time.
func (r *CartRepo) AddItem(cartID, productID, name string, price float64, imageURL string) error {
	_, err := r.db.Exec(`
		INSERT INTO cart_items(cart_id,product_id,name,price,image_url,qty,created_at)
		VALUES(?,?,?,?,?,1,CURRENT_TIMESTAMP)
		ON CONFLICT(cart_id,product_id) DO UPDATE
		SET qty = cart_items.qty + 1, updated_at = CURRENT_TIMESTAMP
	`, cartID, productID, name, price, imageURL)
	return err
}

// SetQty sets the quantity of an existing line, clamped to a minimum of 1.
// Lines are only ever removed through RemoveItem.
func (r *CartRepo) SetQty(cartID, productID string, qty int) error {
	if qty < 1 {
		qty = 1
	}
	_, err := r.db.Exec(`
		UPDATE cart_items SET qty = ?, updated_at = CURRENT_TIMESTAMP
		WHERE cart_id = ? AND product_id = ?
	`, qty, cartID, productID)
	return err
}

func (r *CartRepo) RemoveItem(cartID, productID string) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE cart_id = ? AND product_id = ?`, cartID, productID)
	return err
}

func (r *CartRepo) Clear(cartID string) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE cart_id = ?`, cartID)
	return err
}

func (r *CartRepo) Items(cartID string) ([]CartItemRow, error) {
	rows := []CartItemRow{}
	err := r.db.Select(&rows, `
	  SELECT product_id, name, price, COALESCE(image_url,'') AS image_url, qty,
	         (qty*price) AS subtotal
	  FROM cart_items
	  WHERE cart_id = ?
	  ORDER BY created_at, product_id
	`, cartID)
	return rows, err
}

// TotalItems sums line quantities; always computed fresh.
func (r *CartRepo) TotalItems(cartID string) (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COALESCE(SUM(qty),0) FROM cart_items WHERE cart_id = ?`, cartID)
	return n, err
}

// TotalPrice sums price*qty over all lines; always computed fresh.
func (r *CartRepo) TotalPrice(cartID string) (float64, error) {
	var total float64
	err := r.db.Get(&total, `SELECT COALESCE(SUM(qty*price),0) FROM cart_items WHERE cart_id = ?`, cartID)
	return total, err
}
