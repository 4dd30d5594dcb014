package server

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"warmdelights/internal/config"
	"warmdelights/internal/handler"
	"warmdelights/internal/middleware"
	"warmdelights/internal/usecase"
)

type Handlers struct {
	Auth        *handler.AuthHandler
	Product     *handler.ProductHandler
	Cart        *handler.CartHandler
	Order       *handler.OrderHandler
	CustomOrder *handler.CustomOrderHandler
	Gallery     *handler.GalleryHandler
	Analytics   *handler.AnalyticsHandler
	Payment     *handler.PaymentHandler
}

type Server struct {
	echo *echo.Echo
	cfg  config.Config
}

// ルーティングとミドルウェアを組み立てる
func New(cfg config.Config, h Handlers, analyticsUsecase *usecase.AnalyticsUsecase) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	corsCfg := echomw.DefaultCORSConfig
	if cfg.FEURL != "" {
		corsCfg.AllowOrigins = []string{cfg.FEURL}
	}
	e.Use(echomw.CORSWithConfig(corsCfg))

	// 全リクエストのアクセス記録（投げっぱなし）
	e.Use(middleware.TrackAnalytics(analyticsUsecase))

	authMW := middleware.AuthJWT(cfg)
	adminMW := middleware.AdminRoleGuard()

	h.Auth.RegisterRoutes(e, authMW)
	h.Product.RegisterRoutes(e, authMW, adminMW)
	h.Cart.RegisterRoutes(e, authMW)
	h.Order.RegisterRoutes(e, authMW, adminMW)
	h.CustomOrder.RegisterRoutes(e, authMW, adminMW)
	h.Gallery.RegisterRoutes(e, authMW, adminMW)
	h.Analytics.RegisterRoutes(e, authMW, adminMW)
	h.Payment.RegisterRoutes(e, authMW)

	return &Server{echo: e, cfg: cfg}
}

func (s *Server) Start() error {
	return s.echo.Start(":" + s.cfg.Port)
}
