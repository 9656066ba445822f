// Package router wires services, handlers and middleware into the Gin engine.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"fundit/internal/config"
	_ "fundit/internal/docs" // registers the swagger spec
	"fundit/internal/handlers"
	"fundit/internal/middleware"
	"fundit/internal/models"
	"fundit/internal/services"
)

// Services bundles the business services the API depends on.
type Services struct {
	Users    services.UserServicer
	Guests   services.GuestServicer
	Audit    services.AuditServicer
	Goals    services.GoalServicer
	Income   services.LedgerServicer[models.Income]
	Expenses services.LedgerServicer[models.Expense]
	Budgets  services.LedgerServicer[models.Budget]
}

// NewServices builds every service on top of db.
func NewServices(db *gorm.DB) Services {
	return Services{
		Users:    services.NewUserService(db),
		Guests:   services.NewGuestService(db),
		Audit:    services.NewAuditService(db),
		Goals:    services.NewGoalService(db),
		Income:   services.NewIncomeService(db),
		Expenses: services.NewExpenseService(db),
		Budgets:  services.NewBudgetService(db),
	}
}

// New creates the Gin engine with all routes registered.
func New(cfg *config.Config, svc Services) *gin.Engine {
	authHandler := handlers.NewAuthHandler(svc.Users, svc.Guests, svc.Audit)
	goalHandler := handlers.NewGoalHandler(svc.Goals, svc.Audit)
	incomeHandler := handlers.NewIncomeHandler(svc.Income, svc.Audit)
	expenseHandler := handlers.NewExpenseHandler(svc.Expenses, svc.Audit)
	budgetHandler := handlers.NewBudgetHandler(svc.Budgets, svc.Audit)
	adminHandler := handlers.NewAdminHandler(svc.Guests, cfg.GuestMaxAge)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
	auth.POST("/guest", authHandler.GuestLogin)

	// Admin routes
	admin := v1.Group("/admin")
	admin.Use(middleware.AdminKeyMiddleware(cfg.AdminAPIKey))
	admin.POST("/cleanup-guests", adminHandler.CleanupGuests)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)
	protected.PUT("/settings", authHandler.UpdateSettings)
	protected.POST("/settings/change-password", authHandler.ChangePassword)
	protected.POST("/logout", authHandler.Logout)
	protected.POST("/delete-account", authHandler.DeleteAccount)

	income := protected.Group("/income")
	income.POST("", incomeHandler.Create)
	income.GET("", incomeHandler.List)
	income.GET("/:id", incomeHandler.Get)
	income.PUT("/:id", incomeHandler.Update)
	income.DELETE("/:id", incomeHandler.Delete)

	expenses := protected.Group("/expenses")
	expenses.POST("", expenseHandler.Create)
	expenses.GET("", expenseHandler.List)
	expenses.GET("/:id", expenseHandler.Get)
	expenses.PUT("/:id", expenseHandler.Update)
	expenses.DELETE("/:id", expenseHandler.Delete)

	budgets := protected.Group("/budgets")
	budgets.POST("", budgetHandler.Create)
	budgets.GET("", budgetHandler.List)
	budgets.GET("/:id", budgetHandler.Get)
	budgets.PUT("/:id", budgetHandler.Update)
	budgets.DELETE("/:id", budgetHandler.Delete)

	goals := protected.Group("/goal-entities/:kind")
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("", goalHandler.ListGoals)
	goals.GET("/:id", goalHandler.GetGoal)
	goals.PUT("/:id", goalHandler.UpdateGoal)
	goals.DELETE("/:id", goalHandler.DeleteGoal)
	goals.POST("/:id/update-amount", goalHandler.UpdateAmount)
	goals.GET("/:id/history", goalHandler.ListHistory)

	return router
}
