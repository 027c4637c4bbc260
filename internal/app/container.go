package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/bookingcore/resource-booking-backend/internal/admin"
	"github.com/bookingcore/resource-booking-backend/internal/api"
	"github.com/bookingcore/resource-booking-backend/internal/auth"
	"github.com/bookingcore/resource-booking-backend/internal/availability"
	"github.com/bookingcore/resource-booking-backend/internal/booking"
	"github.com/bookingcore/resource-booking-backend/internal/events"
	"github.com/bookingcore/resource-booking-backend/internal/resource"
	"github.com/bookingcore/resource-booking-backend/internal/rule"
	"github.com/bookingcore/resource-booking-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction   bool
	ProdOrigins    string
	DBPool         *pgxpool.Pool
	JWTSecret      string
	JWTTTL         time.Duration
	BcryptCost     int
	Logger         zerolog.Logger
	MetricsEnabled bool
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
	Bus        *events.Bus
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	// Event bus; the log subscriber stands in for realtime push.
	bus := events.NewBus()
	events.SubscribeBookingEvents(bus, events.NewLogSubscriber(cfg.Logger))

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Resource Module
	resRepo := resource.NewPgxRepository(cfg.DBPool)
	resService := resource.NewService(resRepo)

	// Rule Module
	ruleRepo := rule.NewPgxRepository(cfg.DBPool)
	ruleService := rule.NewService(ruleRepo)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, resService, ruleService, bus)

	// Availability Module
	availService := availability.NewService(resRepo, bookingRepo, ruleService)

	// Admin Module
	adminService := admin.NewService(resRepo, bookingRepo)

	// Router
	router := api.NewRouter(api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		UserService:    userService,
		ResService:     resService,
		RuleService:    ruleService,
		BookingService: bookingService,
		AvailService:   availService,
		AdminService:   adminService,
		JWTManager:     jwtManager,
		Logger:         cfg.Logger,
		MetricsEnabled: cfg.MetricsEnabled,
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
		Bus:        bus,
	}
}
