package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/TylerAnderson748/CrossfitTracker-sub002/internal/auth"
	"github.com/TylerAnderson748/CrossfitTracker-sub002/internal/billing"
	"github.com/TylerAnderson748/CrossfitTracker-sub002/internal/catalog"
	"github.com/TylerAnderson748/CrossfitTracker-sub002/internal/config"
	"github.com/TylerAnderson748/CrossfitTracker-sub002/internal/email"
	"github.com/TylerAnderson748/CrossfitTracker-sub002/internal/gym"
	"github.com/TylerAnderson748/CrossfitTracker-sub002/internal/membership"
	"github.com/TylerAnderson748/CrossfitTracker-sub002/internal/trial"
	"github.com/TylerAnderson748/CrossfitTracker-sub002/internal/user"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *sqlx.DB
	config *config.Config
	email  *email.Service
}

func New(db *sqlx.DB, cfg *config.Config, emailService *email.Service) *Server {
	router := gin.Default()
	router.Use(corsMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(RateLimitMiddleware(20, 40))

	billingService := billing.NewService(billing.NewRepository(db), billing.DefaultPriceTable())
	billingHandler := billing.NewHandlerWithService(billingService)

	gymService := gym.NewService(gym.NewRepository(db), billingService)
	gymHandler := gym.NewHandler(gymService)

	userHandler := user.NewHandler(db, cfg.JWTSecret)
	catalogHandler := catalog.NewHandler(db)
	trialHandler := trial.NewHandler(db, emailService)
	membershipHandler := membership.NewHandler(db, emailService)

	public := router.Group("/auth")
	{
		public.POST("/register", userHandler.Register)
		public.POST("/login", userHandler.Login)
		public.POST("/refresh", userHandler.RefreshToken)
	}

	router.GET("/tiers", catalogHandler.ListTiers)
	router.GET("/tiers/:tierID", catalogHandler.GetTier)

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", userHandler.GetMe)

		protected.GET("/gyms", gymHandler.ListGyms)
		protected.POST("/gyms", gymHandler.CreateGym)
		protected.GET("/gyms/:gymID", gymHandler.GetGym)

		protected.GET("/gyms/:gymID/subscription", billingHandler.GetSubscription)
		protected.PUT("/gyms/:gymID/subscription", billingHandler.ApplyChange)
		protected.POST("/gyms/:gymID/subscription/cancel", billingHandler.CancelSubscription)
		protected.GET("/gyms/:gymID/subscription/monthly-total", billingHandler.MonthlyTotal)

		protected.POST("/ai-trainer/trial", trialHandler.StartTrial)
		protected.POST("/ai-trainer/subscribe", trialHandler.Subscribe)
		protected.GET("/ai-trainer/status", trialHandler.GetStatus)

		protected.POST("/membership-requests", membershipHandler.CreateRequest)
		protected.GET("/membership-requests", membershipHandler.ListMine)
		protected.POST("/membership-requests/:requestID/approve", membershipHandler.Approve)
		protected.POST("/membership-requests/:requestID/reject", membershipHandler.Reject)
		protected.GET("/gyms/:gymID/membership-requests", membershipHandler.ListForGym)
	}

	adminMiddleware := auth.RequireRole(auth.RoleAdmin)
	admin := router.Group("/admin")
	admin.Use(authMiddleware, adminMiddleware)
	{
		admin.POST("/tiers", catalogHandler.CreateTier)
		admin.POST("/discounts", catalogHandler.CreateDiscount)
		admin.GET("/discounts", catalogHandler.ListDiscounts)
		admin.POST("/discounts/:discountID/deactivate", catalogHandler.DeactivateDiscount)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	router.GET("/test-email", TestEmail(emailService))
	SetupSwagger(router)

	return &Server{
		router: router,
		db:     db,
		config: cfg,
		email:  emailService,
	}
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:              ":" + port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
