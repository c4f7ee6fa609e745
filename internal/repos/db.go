package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// An in-memory database exists per connection, so the pool must not grow.
	if dsn == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed the catalog if the store is empty (fresh database)
	if err := seedCatalog(db); err != nil {
		return nil, err
	}
	// Ensure staff accounts exist (idempotent; safe to run every start)
	if err := seedStaff(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Products
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT,
  price NUMERIC NOT NULL CHECK (price >= 0),
  image_url TEXT,
  category TEXT NOT NULL,
  featured INTEGER NOT NULL DEFAULT 0,
  stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);
CREATE INDEX IF NOT EXISTS idx_products_featured ON products(featured);
CREATE INDEX IF NOT EXISTS idx_products_name     ON products(LOWER(name));

-- Carts
CREATE TABLE IF NOT EXISTS carts(
  id TEXT PRIMARY KEY,
  session_id TEXT UNIQUE NOT NULL,
  updated_at TEXT
);

-- Cart lines keep a product snapshot so later catalog edits or deletes
-- do not rewrite what the shopper already put in the cart.
CREATE TABLE IF NOT EXISTS cart_items(
  cart_id    TEXT NOT NULL REFERENCES carts(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL,
  name       TEXT NOT NULL,
  price      NUMERIC NOT NULL,
  image_url  TEXT,
  qty INTEGER NOT NULL CHECK (qty >= 1),
  created_at TEXT,
  updated_at TEXT,
  PRIMARY KEY (cart_id, product_id)
);

-- Orders
CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  customer_name  TEXT NOT NULL,
  customer_email TEXT NOT NULL,
  customer_phone TEXT,
  street      TEXT,
  city        TEXT,
  state       TEXT,
  postal_code TEXT,
  country     TEXT,
  payment_method TEXT,
  total NUMERIC NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  payment_status TEXT NOT NULL DEFAULT 'pending',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at);
CREATE INDEX IF NOT EXISTS idx_orders_status     ON orders(status);

CREATE TABLE IF NOT EXISTS order_items(
  order_id  TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL,
  name  TEXT NOT NULL,
  price NUMERIC NOT NULL,
  qty INTEGER NOT NULL,
  PRIMARY KEY (order_id, product_id)
);

-- Staff users & sessions
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('staff','admin')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);
`
	_, err := db.Exec(schema)
	return err
}

func seedCatalog(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting default catalog")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO products(id,name,description,price,image_url,category,featured,stock) VALUES
	  ('1','Natural Sugarcane Jaggery','Pure, chemical-free jaggery made from organically grown sugarcane. Rich in iron and natural minerals.',199,'/placeholder.svg','Jaggery',1,50),
	  ('2','Premium Jaggery Powder','Finely ground jaggery powder, perfect for baking and sweetening beverages. 100% natural with no additives.',249,'/placeholder.svg','Jaggery',1,45),
	  ('3','Organic Jaggery Cubes','Convenient jaggery cubes perfect for tea and coffee. Each cube is carefully molded from our premium jaggery.',299,'/placeholder.svg','Jaggery',1,30),
	  ('4','Jaggery Gift Box','Assorted jaggery varieties elegantly packaged in a gift box. Perfect for festivals and special occasions.',499,'/placeholder.svg','Gift Sets',1,20),
	  ('5','Traditional Block Jaggery','Classic block jaggery made using traditional methods. Pure, unrefined and full of natural goodness.',179,'/placeholder.svg','Jaggery',0,60),
	  ('6','Jaggery with Ginger','Jaggery infused with organic ginger. Perfect for winter and known for its immunity-boosting properties.',219,'/placeholder.svg','Flavored Jaggery',0,25)`)

	return tx.Commit()
}

// seedStaff ensures the staff and admin accounts exist (idempotent).
func seedStaff(db *sqlx.DB) error {
	type u struct {
		ID, Email, Name, Role, Hash string
	}
	mk := func(id, email, name, role, raw string) u {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return u{ID: id, Email: email, Name: name, Role: role, Hash: string(h)}
	}

	users := []u{
		mk("u-admin", "admin@ramtekagro.com", "Admin User", "admin", "admin123"),
		mk("u-staff", "staff@ramtekagro.com", "Staff User", "staff", "staff123"),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		if _, err := tx.Exec(`
			INSERT INTO users(id,email,name,password_hash,role)
			VALUES(?,?,?,?,?)
			ON CONFLICT(email) DO NOTHING
		`, x.ID, x.Email, x.Name, x.Hash, x.Role); err != nil {
			return err
		}
	}

	return tx.Commit()
}
