package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/bookingcore/resource-booking-backend/internal/admin"
	adminHttp "github.com/bookingcore/resource-booking-backend/internal/admin/http"
	"github.com/bookingcore/resource-booking-backend/internal/auth"
	"github.com/bookingcore/resource-booking-backend/internal/availability"
	availHttp "github.com/bookingcore/resource-booking-backend/internal/availability/http"
	"github.com/bookingcore/resource-booking-backend/internal/booking"
	bookingHttp "github.com/bookingcore/resource-booking-backend/internal/booking/http"
	"github.com/bookingcore/resource-booking-backend/internal/metrics"
	"github.com/bookingcore/resource-booking-backend/internal/resource"
	resHttp "github.com/bookingcore/resource-booking-backend/internal/resource/http"
	"github.com/bookingcore/resource-booking-backend/internal/rule"
	ruleHttp "github.com/bookingcore/resource-booking-backend/internal/rule/http"
	"github.com/bookingcore/resource-booking-backend/internal/user"
	userHttp "github.com/bookingcore/resource-booking-backend/internal/user/http"
)

// Config holds everything the router needs to assemble the HTTP surface.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	UserService    user.Service
	ResService     resource.Service
	RuleService    rule.Service
	BookingService booking.Service
	AvailService   availability.Service
	AdminService   admin.Service
	JWTManager     *auth.JWTManager
	Logger         zerolog.Logger
	MetricsEnabled bool
}

// NewRouter initializes the HTTP router engine: middleware (logging, CORS,
// metrics) plus the routes of every module.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(RequestLogger(cfg.Logger), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	if cfg.MetricsEnabled {
		metrics.Register()
		r.Use(metrics.GinMiddleware())
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	adminMiddleware := auth.RequireAdmin()

	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	resHandler := resHttp.NewHandler(cfg.ResService)
	ruleHandler := ruleHttp.NewHandler(cfg.RuleService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	availHandler := availHttp.NewHandler(cfg.AvailService)
	adminHandler := adminHttp.NewHandler(cfg.AdminService)

	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware, adminMiddleware)
		resHttp.RegisterRoutes(v1, resHandler, authMiddleware, adminMiddleware)
		ruleHttp.RegisterRoutes(v1, ruleHandler, authMiddleware, adminMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware, adminMiddleware)
		availHttp.RegisterRoutes(v1, availHandler, authMiddleware)
		adminHttp.RegisterRoutes(v1, adminHandler, authMiddleware, adminMiddleware)
	}

	return r
}
