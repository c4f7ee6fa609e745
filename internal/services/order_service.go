package services

import (
	"errors"

	"ramtekagro/internal/domain"
	"ramtekagro/internal/repos"

	"github.com/google/uuid"
)

type CustomerInfo struct {
	Name          string
	Email         string
	Phone         string
	Address       domain.Address
	PaymentMethod string
}

type OrderService struct {
	Carts  *repos.CartRepo
	Orders *repos.OrderRepo
}

func NewOrderService(carts *repos.CartRepo, orders *repos.OrderRepo) *OrderService {
	return &OrderService{Carts: carts, Orders: orders}
}

// Place snapshots the session cart into a new order and returns its id.
// The cart is NOT cleared here; the caller clears it after a successful
// create so a failed submit leaves the cart intact.
func (s *OrderService) Place(sessionID string, info CustomerInfo) (string, error) {
	cartID, err := s.Carts.EnsureCart(sessionID)
	if err != nil {
		return "", err
	}

	items, err := s.Carts.Items(cartID)
	if err != nil {
		return "", err
	}
	if len(items) == 0 {
		return "", errors.New("cart empty")
	}

	// The total is fixed at creation time, never re-derived later.
	total := 0.0
	lines := make([]repos.OrderLine, 0, len(items))
	for _, it := range items {
		total += it.Price * float64(it.Qty)
		lines = append(lines, repos.OrderLine{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Qty:       it.Qty,
		})
	}

	orderID := uuid.NewString()
	if err := s.Orders.Create(orderID, info.Name, info.Email, info.Phone, info.Address, info.PaymentMethod, total, lines); err != nil {
		return "", err
	}
	return orderID, nil
}
