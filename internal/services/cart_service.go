package services

import (
	"ramtekagro/internal/repos"
)

type CartService struct {
	Carts *repos.CartRepo
	Prods *repos.ProductRepo
}

func NewCartService(carts *repos.CartRepo, prods *repos.ProductRepo) *CartService {
	return &CartService{Carts: carts, Prods: prods}
}

// Add puts one unit of the product into the session cart: an existing line is
// incremented, otherwise a new line with quantity 1 is appended.
func (s *CartService) Add(sessionID, productID string) error {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return err
	}
	p, err := s.Prods.Get(productID)
	if err != nil {
		return err
	}
	return s.Carts.AddItem(cartID, p.ID, p.Name, p.Price, p.ImageURL)
}

// UpdateQuantity sets a line's quantity; values below 1 are clamped to 1.
func (s *CartService) UpdateQuantity(sessionID, productID string, qty int) error {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return err
	}
	return s.Carts.SetQty(cartID, productID, qty)
}

func (s *CartService) Remove(sessionID, productID string) error {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return err
	}
	return s.Carts.RemoveItem(cartID, productID)
}

func (s *CartService) Clear(sessionID string) error {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return err
	}
	return s.Carts.Clear(cartID)
}

type CartView struct {
	Items      []repos.CartItemRow
	TotalItems int
	TotalPrice float64
}

// View returns the cart lines with totals recomputed fresh on every call.
func (s *CartService) View(sessionID string) (CartView, error) {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return CartView{}, err
	}
	items, err := s.Carts.Items(cartID)
	if err != nil {
		return CartView{}, err
	}
	n, err := s.Carts.TotalItems(cartID)
	if err != nil {
		return CartView{}, err
	}
	total, err := s.Carts.TotalPrice(cartID)
	if err != nil {
		return CartView{}, err
	}
	return CartView{Items: items, TotalItems: n, TotalPrice: total}, nil
}
