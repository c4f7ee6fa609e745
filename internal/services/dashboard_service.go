package services

import (
	"ramtekagro/internal/repos"
)

type DashboardService struct {
	Orders *repos.OrderRepo
	Prods  *repos.ProductRepo
}

func NewDashboardService(orders *repos.OrderRepo, prods *repos.ProductRepo) *DashboardService {
	return &DashboardService{Orders: orders, Prods: prods}
}

type Metrics struct {
	TotalOrders   int
	Pending       int
	Processing    int
	TotalProducts int
	Revenue       float64
	StatusCounts  map[string]int
	RecentOrders  []repos.OrderRow
}

// Snapshot gathers the staff dashboard numbers in one pass.
func (s *DashboardService) Snapshot() (Metrics, error) {
	m := Metrics{StatusCounts: map[string]int{}}

	counts, err := s.Orders.CountByStatus()
	if err != nil {
		return Metrics{}, err
	}
	for _, c := range counts {
		m.StatusCounts[c.Status] = c.Count
		m.TotalOrders += c.Count
	}
	m.Pending = m.StatusCounts["pending"]
	m.Processing = m.StatusCounts["processing"]

	if m.Revenue, err = s.Orders.Revenue(); err != nil {
		return Metrics{}, err
	}

	prods, err := s.Prods.ListAll()
	if err != nil {
		return Metrics{}, err
	}
	m.TotalProducts = len(prods)

	if m.RecentOrders, err = s.Orders.ListLatest(5); err != nil {
		return Metrics{}, err
	}
	return m, nil
}
