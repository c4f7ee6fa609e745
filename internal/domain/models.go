package domain

type Product struct {
	ID          string  `db:"id"`
	Name        string  `db:"name"`
	Description string  `db:"description"`
	Price       float64 `db:"price"`
	ImageURL    string  `db:"image_url"`
	Category    string  `db:"category"` // free-text label
	Featured    bool    `db:"featured"`
	Stock       int     `db:"stock"`
	CreatedAt   string  `db:"created_at"`
	UpdatedAt   string  `db:"updated_at"`
}

type Address struct {
	Street     string `db:"street"`
	City       string `db:"city"`
	State      string `db:"state"`
	PostalCode string `db:"postal_code"`
	Country    string `db:"country"`
}

type Availability struct {
	Status string `json:"status"` // IN_STOCK | LOW_STOCK | OUT_OF_STOCK
	Qty    int    `json:"qty,omitempty"`
}
