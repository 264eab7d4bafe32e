package handlers

import (
	"veneya/internal/config"
	"veneya/internal/geocode"
	"veneya/internal/repos"
	"veneya/internal/services"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type Deps struct {
	AuthHandler     *AuthHandler
	ProductHandler  *ProductHandler
	CheckoutHandler *CheckoutHandler
	ReportHandler   *ReportHandler

	Accounts *services.AccountService
}

func NewDeps(db *sqlx.DB, cfg config.Config, logger *zap.Logger) *Deps {
	accountRepo := repos.NewAccountRepo(db)
	productRepo := repos.NewProductRepo(db)
	saleRepo := repos.NewSaleRepo(db)
	reportRepo := repos.NewReportRepo(db)
	zoneCache := repos.NewZoneCacheRepo(db)

	geo := geocode.New(geocode.Config{
		BaseURL: cfg.GeocodeURL,
		APIKey:  cfg.GeocodeAPIKey,
		Timeout: cfg.GeocodeTimeout,
	})

	accountSvc := services.NewAccountService(accountRepo, logger)
	zoneSvc := services.NewZoneService(geo, zoneCache, cfg.GeocodeTimeout, logger)
	saleSvc := services.NewSaleService(saleRepo, zoneSvc, logger)
	reportSvc := services.NewReportService(reportRepo)

	return &Deps{
		AuthHandler:     &AuthHandler{Accounts: accountSvc, Log: logger},
		ProductHandler:  &ProductHandler{Products: productRepo},
		CheckoutHandler: &CheckoutHandler{Sales: saleSvc},
		ReportHandler:   &ReportHandler{Reports: reportSvc},
		Accounts:        accountSvc,
	}
}
