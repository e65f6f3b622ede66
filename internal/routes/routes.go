package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/ice-routes/internal/audit"
	"github.com/BruksfildServices01/ice-routes/internal/config"
	"github.com/BruksfildServices01/ice-routes/internal/handlers"
	infraRepo "github.com/BruksfildServices01/ice-routes/internal/infra/repository"
	"github.com/BruksfildServices01/ice-routes/internal/middleware"
	ucCashflow "github.com/BruksfildServices01/ice-routes/internal/usecase/cashflow"
	ucClient "github.com/BruksfildServices01/ice-routes/internal/usecase/client"
	ucCredit "github.com/BruksfildServices01/ice-routes/internal/usecase/credit"
	ucDelivery "github.com/BruksfildServices01/ice-routes/internal/usecase/delivery"
	ucDispatch "github.com/BruksfildServices01/ice-routes/internal/usecase/dispatch"
	ucPricing "github.com/BruksfildServices01/ice-routes/internal/usecase/pricing"
	ucRollover "github.com/BruksfildServices01/ice-routes/internal/usecase/rollover"
	ucSchedule "github.com/BruksfildServices01/ice-routes/internal/usecase/schedule"
)

// Deps são os singletons criados pelo comando serve e compartilhados
// com o agendador.
type Deps struct {
	AuditLogger     *audit.Logger
	AuditDispatcher *audit.Dispatcher
	Rollover        *ucRollover.RunDaily
}

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, deps Deps) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.AccessLog(),
		middleware.CORSMiddleware(cfg.Server.AllowedOrigins),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	scheduleRepo := infraRepo.NewScheduleGormRepository(db)
	deliveryRepo := infraRepo.NewDeliveryGormRepository(db)
	dispatchRepo := infraRepo.NewDispatchGormRepository(db)
	pricingRepo := infraRepo.NewPricingGormRepository(db)
	creditRepo := infraRepo.NewCreditGormRepository(db)
	clientRepo := infraRepo.NewClientGormRepository(db)
	cashflowRepo := infraRepo.NewCashflowGormRepository(db)

	auditDispatcher := deps.AuditDispatcher

	// ======================================================
	// 🧠 USE CASES — SCHEDULE
	// ======================================================
	routeHandler := handlers.NewRouteHandler(
		ucSchedule.NewListRoutes(scheduleRepo),
		ucSchedule.NewListDueClients(scheduleRepo),
		ucSchedule.NewClientsWithoutDay(scheduleRepo),
		ucSchedule.NewAssignExtemporaneous(scheduleRepo, auditDispatcher),
		ucSchedule.NewRemoveExtemporaneous(scheduleRepo, auditDispatcher),
		ucSchedule.NewListExtemporaneous(scheduleRepo),
		ucSchedule.NewPurgeExtemporaneous(scheduleRepo),
	)

	// ======================================================
	// 🧠 USE CASES — DELIVERY
	// ======================================================
	orderHandler := handlers.NewOrderHandler(handlers.OrderUseCases{
		Statuses:       ucDelivery.NewGetOrderStatuses(deliveryRepo),
		GetTracking:    ucDelivery.NewGetTracking(deliveryRepo),
		UpdateTracking: ucDelivery.NewUpdateTracking(deliveryRepo, auditDispatcher),
		GetActive:      ucDelivery.NewGetActiveClient(deliveryRepo),
		SetActive:      ucDelivery.NewSetActiveClient(deliveryRepo, auditDispatcher),
		EnsureActive:   ucDelivery.NewEnsureActiveClient(deliveryRepo, auditDispatcher),
		Complete:       ucDelivery.NewCompleteOrder(deliveryRepo, auditDispatcher),
		Cancel:         ucDelivery.NewCancelOrder(deliveryRepo, auditDispatcher),
		Products:       ucDelivery.NewUpdateOrderProducts(deliveryRepo, auditDispatcher),
		ResetStatuses:  ucDelivery.NewResetStatuses(deliveryRepo),
		ResetTracking:  ucDelivery.NewResetTracking(deliveryRepo),
		CreateExtra:    ucDelivery.NewCreateExtemporaneousOrder(deliveryRepo, auditDispatcher),
		ListExtra:      ucDelivery.NewListExtemporaneousOrders(deliveryRepo),
		CleanupExtra:   ucDelivery.NewCleanupExtemporaneousOrders(deliveryRepo),
	})

	// ======================================================
	// 🧠 USE CASES — DISPATCH / INVENTORY
	// ======================================================
	dispatchHandler := handlers.NewDispatchHandler(
		ucDispatch.NewListDrivers(dispatchRepo),
		ucDispatch.NewDispatchRoute(dispatchRepo, auditDispatcher),
		ucDispatch.NewGetAssignment(dispatchRepo),
		ucDispatch.NewAvailableInventory(dispatchRepo),
		ucDispatch.NewDriverHistory(dispatchRepo),
	)

	// ======================================================
	// 🧠 USE CASES — CLIENTS / PRICES / CREDIT / CASH
	// ======================================================
	clientHandler := handlers.NewClientHandler(
		ucClient.NewListActiveClients(clientRepo),
		ucClient.NewCreateClient(clientRepo, auditDispatcher),
		ucClient.NewSearchClients(clientRepo),
		ucClient.NewSearchAllClients(clientRepo),
		ucClient.NewSetupExtraClients(clientRepo, auditDispatcher),
	)

	pricingHandler := handlers.NewPricingHandler(
		ucPricing.NewListProducts(pricingRepo),
		ucPricing.NewSetBasePrice(pricingRepo, auditDispatcher),
		ucPricing.NewGetClientPrices(pricingRepo),
		ucPricing.NewSetClientPrices(pricingRepo, auditDispatcher),
		ucPricing.NewClearClientPrice(pricingRepo, auditDispatcher),
	)

	creditHandler := handlers.NewCreditHandler(
		ucCredit.NewGetAccount(creditRepo),
		ucCredit.NewSetLimit(creditRepo, auditDispatcher),
		ucCredit.NewUseCredit(creditRepo, auditDispatcher),
		ucCredit.NewRegisterPayment(creditRepo, auditDispatcher),
	)

	cashflowHandler := handlers.NewCashflowHandler(
		ucCashflow.NewRegisterOutflow(cashflowRepo, auditDispatcher),
		ucCashflow.NewListOutflows(cashflowRepo),
	)

	// ======================================================
	// 🧩 HANDLERS (infra)
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	auditLogsHandler := handlers.NewAuditLogsHandler(deps.AuditLogger)
	rolloverHandler := handlers.NewRolloverHandler(deps.Rollover)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")

	// ------------------------------
	// 🔐 AUTH
	// ------------------------------
	api.POST("/auth/login", authHandler.Login)
	api.GET("/me", middleware.AuthMiddleware(cfg), meHandler.GetMe)

	// ------------------------------
	// OPERAÇÃO
	// ------------------------------
	ops := api.Group("/")
	if cfg.Auth.Enabled {
		ops.Use(middleware.AuthMiddleware(cfg))
	}
	if cfg.Rollover.Lazy {
		ops.Use(middleware.RolloverGuard(deps.Rollover))
	}
	{
		// ------------------------------
		// ROUTES
		// ------------------------------
		ops.GET("/routes", routeHandler.List)
		ops.GET("/routes/:id/clients", routeHandler.Clients)
		ops.GET("/routes/:id/clients/count", routeHandler.Count)
		ops.GET("/routes/:id/clients/first", routeHandler.First)

		ops.GET("/drivers", dispatchHandler.Drivers)

		// ------------------------------
		// CLIENTS
		// ------------------------------
		ops.GET("/clients", clientHandler.List)
		ops.POST("/clients", clientHandler.Create)
		ops.GET("/clients/search", clientHandler.Search)
		ops.GET("/clients/search-all", clientHandler.SearchAll)
		ops.GET("/clients/no-day", routeHandler.ClientsWithoutDay)

		ops.GET("/clients/extemporaneous", routeHandler.ListExtemporaneous)
		ops.POST("/clients/extemporaneous", routeHandler.AssignExtemporaneous)
		ops.POST("/clients/extemporaneous/cleanup", routeHandler.PurgeExtemporaneous)
		ops.DELETE("/clients/extemporaneous/:clientId", routeHandler.RemoveExtemporaneous)

		ops.GET("/clients/:id/prices", pricingHandler.ClientPrices)
		ops.PUT("/clients/:id/prices", pricingHandler.SetClientPrices)
		ops.PUT("/clients/:id/prices/:productId", pricingHandler.SetClientPrice)
		ops.DELETE("/clients/:id/prices/:productId", pricingHandler.ClearClientPrice)

		ops.GET("/clients/:id/credit", creditHandler.Get)
		ops.PUT("/clients/:id/credit/limit", creditHandler.SetLimit)
		ops.POST("/clients/:id/credit/use", creditHandler.Use)
		ops.POST("/clients/:id/credit/payment", creditHandler.Payment)

		ops.POST("/setup/extra-clients", clientHandler.SetupExtraClients)

		// ------------------------------
		// PRODUCTS
		// ------------------------------
		ops.GET("/products", pricingHandler.Products)
		ops.PUT("/products/:id/base-price", pricingHandler.SetBasePrice)

		// ------------------------------
		// ORDERS
		// ------------------------------
		ops.GET("/orders/status", orderHandler.Statuses)
		ops.GET("/orders/tracking-status", orderHandler.Tracking)
		ops.POST("/orders/tracking-status", orderHandler.UpdateTracking)
		ops.GET("/orders/active-client", orderHandler.ActiveClient)
		ops.POST("/orders/active-client", orderHandler.SetActiveClient)
		ops.POST("/orders/active-client/ensure", orderHandler.EnsureActiveClient)
		ops.POST("/orders/complete", orderHandler.Complete)
		ops.POST("/orders/cancel", orderHandler.Cancel)
		ops.POST("/orders/products", orderHandler.Products)
		ops.POST("/orders/reset-statuses", orderHandler.ResetStatuses)
		ops.POST("/orders/reset-tracking", orderHandler.ResetTracking)
		ops.GET("/orders/extemporaneous", orderHandler.ListExtemporaneous)
		ops.POST("/orders/extemporaneous", orderHandler.CreateExtemporaneous)
		ops.POST("/orders/extemporaneous/cleanup", orderHandler.CleanupExtemporaneous)

		// ------------------------------
		// DISPATCH / INVENTORY
		// ------------------------------
		ops.GET("/assignments", dispatchHandler.Assignment)
		ops.POST("/assignments", dispatchHandler.Dispatch)
		ops.GET("/inventory/available", dispatchHandler.Available)
		ops.GET("/inventory/drivers/:id", dispatchHandler.DriverHistory)

		// ------------------------------
		// CASH / ADMIN
		// ------------------------------
		ops.GET("/cash-outflows", cashflowHandler.List)
		ops.POST("/cash-outflows", cashflowHandler.Register)

		ops.POST("/rollover", rolloverHandler.Run)
		ops.GET("/audit-logs", auditLogsHandler.List)
	}
}
