package main

import (
	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"

	"warmdelights/internal/config"
	"warmdelights/internal/domain/model"
	"warmdelights/internal/handler"
	"warmdelights/internal/infra/db"
	infra "warmdelights/internal/infra/repository"
	"warmdelights/internal/notification"
	"warmdelights/internal/payment"
	"warmdelights/internal/server"
	"warmdelights/internal/usecase"
)

func main() {
	// .envは無くてもよい（本番は環境変数直指定）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	gormDB, err := db.Connect()
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Cart{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.CustomOrder{},
		&model.GalleryImage{},
		&model.AnalyticsEvent{},
	); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	// repository
	productRepo := infra.NewProductGormRepository(gormDB)
	cartRepo := infra.NewCartGormRepository(gormDB)
	orderRepo := infra.NewOrderGormRepository(gormDB)
	customOrderRepo := infra.NewCustomOrderGormRepository(gormDB)
	galleryRepo := infra.NewGalleryGormRepository(gormDB)
	analyticsRepo := infra.NewAnalyticsGormRepository(gormDB)
	userRepo := infra.NewUserGormRepository(gormDB)
	txManager := infra.NewTxManagerGorm(gormDB)

	// 外部サービス
	var notifier notification.Sender = notification.NopSender{}
	if cfg.MailEnabled() {
		notifier = notification.NewSMTPSender(
			cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass,
			cfg.EmailFrom, cfg.AdminEmail,
		)
	} else {
		log.Warn("SMTP not configured, order confirmation emails disabled")
	}

	gateway := payment.NewStripeGateway(cfg.StripeSecretKey, cfg.StripeWebhookSecret)
	if cfg.StripeSecretKey == "" {
		log.Warn("STRIPE_SECRET_KEY not set, payment intents will fail")
	}

	// usecase
	authUsecase := usecase.NewAuthUsecase(cfg, userRepo)
	productUsecase := usecase.NewProductUsecase(productRepo)
	cartUsecase := usecase.NewCartUsecase(cartRepo, cartRepo, productRepo)
	orderUsecase := usecase.NewOrderUsecase(txManager, userRepo, usecase.NewWDOrderIDGenerator(), notifier)
	customOrderUsecase := usecase.NewCustomOrderUsecase(customOrderRepo, notifier)
	galleryUsecase := usecase.NewGalleryUsecase(galleryRepo)
	analyticsUsecase := usecase.NewAnalyticsUsecase(analyticsRepo, orderRepo)
	paymentUsecase := usecase.NewPaymentUsecase(gateway, orderRepo)

	// handler
	handlers := server.Handlers{
		Auth:        handler.NewAuthHandler(authUsecase),
		Product:     handler.NewProductHandler(productUsecase),
		Cart:        handler.NewCartHandler(cartUsecase),
		Order:       handler.NewOrderHandler(orderUsecase),
		CustomOrder: handler.NewCustomOrderHandler(customOrderUsecase),
		Gallery:     handler.NewGalleryHandler(galleryUsecase),
		Analytics:   handler.NewAnalyticsHandler(analyticsUsecase),
		Payment:     handler.NewPaymentHandler(paymentUsecase),
	}

	srv := server.New(cfg, handlers, analyticsUsecase)
	if err := srv.Start(); err != nil {
		log.Fatalf("server: %v", err)
	}
}
