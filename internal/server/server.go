package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/rsydfhmy03/SEA-Catering/internal/api"
	"github.com/rsydfhmy03/SEA-Catering/internal/auth"
	"github.com/rsydfhmy03/SEA-Catering/internal/config"
	"github.com/rsydfhmy03/SEA-Catering/internal/dashboard"
	"github.com/rsydfhmy03/SEA-Catering/internal/email"
	"github.com/rsydfhmy03/SEA-Catering/internal/mealplan"
	"github.com/rsydfhmy03/SEA-Catering/internal/subscription"
	"github.com/rsydfhmy03/SEA-Catering/internal/testimonial"
	"github.com/rsydfhmy03/SEA-Catering/internal/user"
)

// Handlers groups the HTTP handlers mounted by the router.
type Handlers struct {
	Users         *user.Handler
	MealPlans     *mealplan.Handler
	Subscriptions *subscription.Handler
	Testimonials  *testimonial.Handler
	Dashboard     *dashboard.Handler
}

type Server struct {
	router        *gin.Engine
	httpServer    *http.Server
	limiter       *RateLimiter
	stop          chan struct{}
	stopOnce      sync.Once
	config        *config.Config
	subscriptions subscription.Service
}

func New(db *sqlx.DB, cfg *config.Config, emailService *email.Service) *Server {
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTRefreshSecret, cfg.AccessTokenTTL)

	userRepo := user.NewRepository(db)
	userService := user.NewService(userRepo, tokens, emailService)

	planRepo := mealplan.NewCachedRepository(mealplan.NewRepository(db), cfg.CatalogCacheSize, cfg.CatalogCacheTTL)
	planService := mealplan.NewService(planRepo)

	notifier := email.NewSubscriptionNotifier(emailService, userRepo)
	subscriptionService := subscription.NewService(subscription.NewRepository(db), planService, notifier)

	handlers := Handlers{
		Users:         user.NewHandler(userService),
		MealPlans:     mealplan.NewHandler(planService),
		Subscriptions: subscription.NewHandler(subscriptionService),
		Testimonials:  testimonial.NewHandler(testimonial.NewService(testimonial.NewRepository(db))),
		Dashboard:     dashboard.NewHandler(dashboard.NewService(dashboard.NewRepository(db))),
	}

	checks := map[string]Check{
		"database": db.PingContext,
		"queue":    emailService.Check,
	}

	s := newServer(cfg, tokens, handlers, checks)
	s.subscriptions = subscriptionService
	return s
}

func newServer(cfg *config.Config, tokens *auth.TokenIssuer, h Handlers, checks map[string]Check) *Server {
	s := &Server{
		limiter: NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, 3*time.Minute),
		stop:    make(chan struct{}),
		config:  cfg,
	}
	s.router = s.routes(tokens, h, checks)
	// built here so Shutdown never races Start for the field
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

// routes builds the gin engine with middleware and every route mounted.
func (s *Server) routes(tokens *auth.TokenIssuer, h Handlers, checks map[string]Check) *gin.Engine {
	cfg := s.config
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	api.RegisterValidators()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware(cfg.AllowedOrigins))
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, api.ErrorEnvelope(http.StatusNotFound, api.CodeNotFound, "Route not found", nil))
	})

	router.GET("/health", Health)
	router.GET("/health/ready", Ready(checks))
	router.GET("/metrics", Metrics())

	authMiddleware := auth.AuthMiddleware(tokens)
	adminMiddleware := auth.RequireRole(auth.RoleAdmin)

	v1 := router.Group("/api/v1")
	v1.Use(s.limiter.Middleware())

	public := v1.Group("/")
	{
		public.POST("/auth/register", h.Users.Register)
		public.POST("/auth/login", h.Users.Login)
		public.POST("/auth/refresh", h.Users.Refresh)
		public.GET("/meal-plans", h.MealPlans.List)
		public.GET("/meal-plans/:id", h.MealPlans.Get)
		public.GET("/testimonials", h.Testimonials.ListApproved)
		public.POST("/testimonials", h.Testimonials.Submit)
	}

	protected := v1.Group("/")
	protected.Use(authMiddleware)
	{
		protected.POST("/auth/logout", h.Users.Logout)
		protected.GET("/me", h.Users.GetMe)
		protected.POST("/subscriptions", h.Subscriptions.Create)
		protected.GET("/subscriptions/me/subscriptions", h.Subscriptions.ListMine)
		protected.GET("/subscriptions/me/paused-subscriptions", h.Subscriptions.ListMinePaused)
		protected.PUT("/subscriptions/:id/pause", h.Subscriptions.Pause)
		protected.PUT("/subscriptions/:id/resume", h.Subscriptions.Resume)
		protected.DELETE("/subscriptions/:id", h.Subscriptions.Cancel)
	}

	admin := v1.Group("/admin")
	admin.Use(authMiddleware, adminMiddleware)
	{
		admin.GET("/dashboard/metrics", h.Dashboard.GetMetrics)
		admin.GET("/subscriptions", h.Subscriptions.ListAll)
		admin.GET("/users", h.Users.List)
		admin.PUT("/users/:id/role", h.Users.UpdateRole)
		admin.GET("/testimonials", h.Testimonials.ListAll)
		admin.PUT("/testimonials/:id/approve", h.Testimonials.Approve)
		admin.PUT("/testimonials/:id/reject", h.Testimonials.Reject)
	}

	return router
}

// Subscriptions exposes the subscription service for background jobs.
func (s *Server) Subscriptions() subscription.Service {
	return s.subscriptions
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on the configured port until Shutdown. After Shutdown it
// returns http.ErrServerClosed, even if Shutdown ran first.
func (s *Server) Start() error {
	go s.limiter.Run(s.stop)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.stopOnce.Do(func() { close(s.stop) })
	return s.httpServer.Shutdown(ctx)
}

// corsMiddleware allows any origin unless an allow list is configured.
// Credentials are only allowed with an explicit list.
func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Content-Length", "Accept", "Authorization", "X-Requested-With"}
	cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions}
	cfg.MaxAge = 12 * time.Hour

	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}

	return cors.New(cfg)
}
