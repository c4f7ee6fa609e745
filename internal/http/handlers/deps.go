package handlers

import (
	"ramtekagro/internal/repos"
	"ramtekagro/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	ProductHandler *ProductHandler
	CartHandler    *CartHandler
	OrderHandler   *OrderHandler
	StaffHandler   *StaffHandler
}

func NewDeps(db *sqlx.DB, auth *services.AuthService) *Deps {
	prodRepo := repos.NewProductRepo(db)
	cartRepo := repos.NewCartRepo(db)
	orderRepo := repos.NewOrderRepo(db)

	catalogSvc := services.NewCatalogService(prodRepo)
	cartSvc := services.NewCartService(cartRepo, prodRepo)
	orderSvc := services.NewOrderService(cartRepo, orderRepo)
	dashSvc := services.NewDashboardService(orderRepo, prodRepo)

	return &Deps{
		ProductHandler: &ProductHandler{Catalog: catalogSvc},
		CartHandler:    &CartHandler{Cart: cartSvc},
		OrderHandler:   &OrderHandler{Cart: cartSvc, Order: orderSvc, Repo: orderRepo},
		StaffHandler:   &StaffHandler{Catalog: catalogSvc, Orders: orderRepo, Dash: dashSvc},
	}
}
