package repos

import (
	"ramtekagro/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
  id, name, COALESCE(description,'') AS description, price,
  COALESCE(image_url,'') AS image_url, category, featured, stock,
  COALESCE(created_at,'') AS created_at, COALESCE(updated_at,'') AS updated_at`

// ListAll returns the whole catalog in insertion order.
func (r *ProductRepo) ListAll() ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `SELECT`+productCols+` FROM products ORDER BY rowid`)
	return out, err
}

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT`+productCols+` FROM products WHERE id = ?`, id)
	return p, err
}

func (r *ProductRepo) Featured() ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `SELECT`+productCols+` FROM products WHERE featured = 1 ORDER BY rowid`)
	return out, err
}

func (r *ProductRepo) ByCategory(category string) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `SELECT`+productCols+` FROM products WHERE category = ? ORDER BY rowid`, category)
	return out, err
}

// Related lists other products in the same category, preserving catalog order.
func (r *ProductRepo) Related(id, category string, limit int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = 4
	}
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT`+productCols+`
	  FROM products
	  WHERE id != ? AND category = ?
	  ORDER BY rowid
	  LIMIT ?
	`, id, category, limit)
	return out, err
}

// Search matches a case-insensitive substring against name, description or category.
func (r *ProductRepo) Search(q string) ([]domain.Product, error) {
	like := "%" + q + "%"
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT`+productCols+`
	  FROM products
	  WHERE LOWER(name) LIKE LOWER(?)
	     OR LOWER(description) LIKE LOWER(?)
	     OR LOWER(category) LIKE LOWER(?)
	  ORDER BY rowid
	`, like, like, like)
	return out, err
}

// Categories returns the distinct category labels present in the catalog.
func (r *ProductRepo) Categories() ([]string, error) {
	var out []string
	err := r.db.Select(&out, `SELECT DISTINCT category FROM products ORDER BY category`)
	return out, err
}

func (r *ProductRepo) Insert(p domain.Product) error {
	_, err := r.db.Exec(`
	  INSERT INTO products(id,name,description,price,image_url,category,featured,stock,created_at)
	  VALUES(?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP)
	`, p.ID, p.Name, p.Description, p.Price, p.ImageURL, p.Category, p.Featured, p.Stock)
	return err
}

// Update replaces the matching entry; matching nothing is a silent no-op.
func (r *ProductRepo) Update(p domain.Product) error {
	_, err := r.db.Exec(`
	  UPDATE products
	  SET name=?, description=?, price=?, image_url=?, category=?, featured=?, stock=?,
	      updated_at=CURRENT_TIMESTAMP
	  WHERE id=?
	`, p.Name, p.Description, p.Price, p.ImageURL, p.Category, p.Featured, p.Stock, p.ID)
	return err
}

// Delete removes the matching entry; no-op when absent.
func (r *ProductRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM products WHERE id = ?`, id)
	return err
}
