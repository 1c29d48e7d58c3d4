package server

import (
	"context"
	"net/http"
	"time"

	"github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/catalog"
	catalogservice "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/catalog/service"
	"github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/config"
	"github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/invoice"
	invoiceservice "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/invoice/service"
	"github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/notification"
	notificationservice "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/notification/service"
	"github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/observability"
	obslogger "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/observability/logger"
	obsmetrics "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/observability/metrics"
	obstracing "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/observability/tracing"
	"github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/order"
	orderservice "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/order/service"
	"github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/payment"
	paymentservice "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/payment/service"
	"github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/plan"
	"github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/quota"
	quotadomain "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/quota/domain"
	"github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/subscription"
	subscriptionservice "github.com/Web-of-Shafiuddin/quick-memo-sub002/internal/subscription/service"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	plan.Module,
	subscription.Module,
	quota.Module,
	catalog.Module,
	order.Module,
	invoice.Module,
	payment.Module,
	notification.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, metrics *obsmetrics.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(obslogger.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(metrics.GinMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, metrics *obsmetrics.Metrics) *gin.Engine {
	return NewEngine(obsCfg, metrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine          *gin.Engine
	cfg             config.Config
	subscriptionSvc *subscriptionservice.Service
	catalogSvc      *catalogservice.Service
	orderSvc        *orderservice.Service
	invoiceSvc      *invoiceservice.Service
	paymentLedger   *paymentservice.Ledger
	notificationSvc *notificationservice.Service
	resolver        quotadomain.Resolver
	counter         quotadomain.Counter
}

type ServerParams struct {
	fx.In

	Gin             *gin.Engine
	Cfg             config.Config
	SubscriptionSvc *subscriptionservice.Service
	CatalogSvc      *catalogservice.Service
	OrderSvc        *orderservice.Service
	InvoiceSvc      *invoiceservice.Service
	PaymentLedger   *paymentservice.Ledger
	NotificationSvc *notificationservice.Service
	Resolver        quotadomain.Resolver
	Counter         quotadomain.Counter
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		subscriptionSvc: p.SubscriptionSvc,
		catalogSvc:      p.CatalogSvc,
		orderSvc:        p.OrderSvc,
		invoiceSvc:      p.InvoiceSvc,
		paymentLedger:   p.PaymentLedger,
		notificationSvc: p.NotificationSvc,
		resolver:        p.Resolver,
		counter:         p.Counter,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")
	api.Use(s.TenantRequired())

	// -------- Subscription --------
	api.GET("/subscription", s.GetCurrentSubscription)
	api.POST("/subscription/renew", s.RenewSubscription)
	api.GET("/usage", s.GetUsage)

	// -------- Catalog --------
	api.GET("/categories", s.ListCategories)
	api.POST("/categories", s.CreateCategory)
	api.GET("/categories/:id", s.GetCategoryByID)

	api.GET("/products", s.ListProducts)
	api.POST("/products", s.CreateProduct)
	api.GET("/products/:id", s.GetProductByID)
	api.GET("/products/:id/images", s.ListProductImages)
	api.POST("/products/:id/images", s.AddProductImage)

	// -------- Customers & Orders --------
	api.GET("/customers", s.ListCustomers)
	api.POST("/customers", s.CreateCustomer)

	api.GET("/orders", s.ListOrders)
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:id", s.GetOrderByID)
	api.POST("/orders/:id/complete", s.CompleteOrder)
	api.POST("/orders/:id/cancel", s.CancelOrder)

	// -------- Invoices & Payments --------
	api.GET("/invoices", s.ListInvoices)
	api.POST("/invoices", s.CreateInvoice)
	api.GET("/invoices/:id", s.GetInvoiceByID)
	api.POST("/invoices/:id/void", s.VoidInvoice)
	api.GET("/invoices/:id/payments", s.ListInvoicePayments)
	api.POST("/invoices/:id/payments", s.AddPayment)
	api.DELETE("/payments/:id", s.DeletePayment)

	// -------- Notifications --------
	api.GET("/notifications", s.ListNotifications)
	api.POST("/notifications/:id/read", s.MarkNotificationRead)
	api.DELETE("/notifications/read", s.DeleteReadNotifications)
}
