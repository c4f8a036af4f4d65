package handlers

import (
	"github.com/jmoiron/sqlx"

	"pedidos/internal/config"
	"pedidos/internal/notify"
	"pedidos/internal/repos"
	"pedidos/internal/services"
)

type Deps struct {
	ProductHandler  *ProductHandler
	CustomerHandler *CustomerHandler
	OrderHandler    *OrderHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	prodRepo := repos.NewProductRepo(db)
	custRepo := repos.NewCustomerRepo(db)
	orderRepo := repos.NewOrderRepo(db)

	catalogSvc := services.NewCatalogService(prodRepo)
	customerSvc := services.NewCustomerService(custRepo)
	pricingSvc := services.NewPricingService(prodRepo)
	orderSvc := services.NewOrderService(custRepo, orderRepo, pricingSvc)

	sender := notify.NewSender(cfg.Webhook)

	return &Deps{
		ProductHandler:  &ProductHandler{Catalog: catalogSvc},
		CustomerHandler: &CustomerHandler{Customers: customerSvc},
		OrderHandler:    &OrderHandler{Orders: orderSvc, Repo: orderRepo, Sender: sender},
	}
}
