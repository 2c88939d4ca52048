package main

import (
	"context"
	"log"

	mt "ZeeCrownAPI/external/midtrans"
	"ZeeCrownAPI/internal/config"
	"ZeeCrownAPI/internal/db"
	"ZeeCrownAPI/internal/repository"
	"ZeeCrownAPI/internal/services"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	// ======================
	// INFRA
	// ======================
	pool, err := db.Connect(context.Background(), cfg.PostgresDSN)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	// ======================
	// EXTERNALS
	// ======================
	snapClient := mt.NewSnapClient()

	// ======================
	// REPOSITORIES
	// ======================
	cartRepo := repository.NewCartRepository(pool)
	addressRepo := repository.NewAddressRepository(pool)
	productRepo := repository.NewProductRepository(pool)
	shippingRepo := repository.NewShippingRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)

	// ======================
	// SERVICES
	// ======================
	pricingSvc := services.NewPricingService(shippingRepo, cfg.FreeShippingThreshold, cfg.FlatShippingFee)
	snapshotMgr := services.NewCartSnapshotManager(cartRepo, cfg.ConflictPolicy)
	paymentSvc := services.NewPaymentService(snapClient, cfg.Currency, cfg.MidtransServerKey)
	commitSvc := services.NewOrderCommitService(cartRepo, addressRepo, orderRepo, pricingSvc)
	checkoutSvc := services.NewCheckoutService(pricingSvc, snapshotMgr, paymentSvc, commitSvc, productRepo, cartRepo, cfg.AttemptTimeout)
	cartSvc := services.NewCartService(cartRepo, productRepo)
	orderSvc := services.NewOrderService(orderRepo)

	// ======================
	// ECHO
	// ======================
	e := echo.New()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	api := e.Group("/zee-crown")

	// ======================
	// ROUTES (ONLY REGISTRATION)
	// ======================
	registerCartRoutes(api, cartSvc)
	registerCheckoutRoutes(api, checkoutSvc)
	registerOrderRoutes(api, orderSvc)
	registerPaymentRoutes(api, paymentSvc)

	// ======================
	// SERVER
	// ======================
	e.Logger.Fatal(e.Start(cfg.HTTPAddr))
}
