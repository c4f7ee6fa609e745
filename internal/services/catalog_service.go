package services

import (
	"database/sql"

	"ramtekagro/internal/domain"
	"ramtekagro/internal/repos"

	"github.com/google/uuid"
)

type CatalogService struct {
	Prods *repos.ProductRepo
}

func NewCatalogService(prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Prods: prods}
}

func (s *CatalogService) ListProducts() ([]domain.Product, error) {
	return s.Prods.ListAll()
}

func (s *CatalogService) GetProduct(id string) (domain.Product, error) {
	return s.Prods.Get(id)
}

func (s *CatalogService) FeaturedProducts() ([]domain.Product, error) {
	return s.Prods.Featured()
}

func (s *CatalogService) RelatedProducts(id, category string, limit int) ([]domain.Product, error) {
	return s.Prods.Related(id, category, limit)
}

func (s *CatalogService) Search(q string) ([]domain.Product, error) {
	return s.Prods.Search(q)
}

func (s *CatalogService) FilterByCategory(category string) ([]domain.Product, error) {
	return s.Prods.ByCategory(category)
}

func (s *CatalogService) Categories() ([]string, error) {
	return s.Prods.Categories()
}

// AddProduct assigns a fresh id and appends to the catalog.
func (s *CatalogService) AddProduct(p domain.Product) (string, error) {
	p.ID = uuid.NewString()
	if err := s.Prods.Insert(p); err != nil {
		return "", err
	}
	return p.ID, nil
}

// UpdateProduct replaces the entry matching p.ID; unknown ids are a silent no-op.
func (s *CatalogService) UpdateProduct(p domain.Product) error {
	return s.Prods.Update(p)
}

func (s *CatalogService) DeleteProduct(id string) error {
	return s.Prods.Delete(id)
}

// CheckAvailability converts stock into IN_STOCK / LOW_STOCK / OUT_OF_STOCK.
func (s *CatalogService) CheckAvailability(productID string) (domain.Availability, error) {
	p, err := s.Prods.Get(productID)
	if err != nil {
		// Unknown products read as out of stock, never an error to the shopper.
		if err == sql.ErrNoRows {
			return domain.Availability{Status: "OUT_OF_STOCK", Qty: 0}, nil
		}
		return domain.Availability{}, err
	}

	status := "OUT_OF_STOCK"
	switch {
	case p.Stock >= 5:
		status = "IN_STOCK"
	case p.Stock > 0:
		status = "LOW_STOCK"
	}
	return domain.Availability{Status: status, Qty: p.Stock}, nil
}
