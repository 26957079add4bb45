package api

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/glowbook/salon-backend/internal/auth"
	"github.com/glowbook/salon-backend/internal/booking"
	bookingHttp "github.com/glowbook/salon-backend/internal/booking/http"
	"github.com/glowbook/salon-backend/internal/catalog"
	catalogHttp "github.com/glowbook/salon-backend/internal/catalog/http"
	"github.com/glowbook/salon-backend/internal/expense"
	expenseHttp "github.com/glowbook/salon-backend/internal/expense/http"
	"github.com/glowbook/salon-backend/internal/faq"
	faqHttp "github.com/glowbook/salon-backend/internal/faq/http"
	"github.com/glowbook/salon-backend/internal/salon"
	salonHttp "github.com/glowbook/salon-backend/internal/salon/http"
	"github.com/glowbook/salon-backend/internal/slot"
	slotHttp "github.com/glowbook/salon-backend/internal/slot/http"
	"github.com/glowbook/salon-backend/internal/template"
	templateHttp "github.com/glowbook/salon-backend/internal/template/http"
	"github.com/glowbook/salon-backend/internal/user"
	userHttp "github.com/glowbook/salon-backend/internal/user/http"
)

// Config carries the services and settings the router wires together.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	UserService     user.Service
	CatalogService  catalog.CatalogService
	SalonService    salon.InfoService
	FAQService      faq.Service
	SlotService     slot.SlotService
	TemplateService template.Service
	BookingService  booking.Service
	ExpenseService  expense.Service

	JWTManager *auth.JWTManager
}

// NewRouter assembles middleware (CORS, Logger, Auth) and registers
// every module's routes under /v1.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	adminMiddleware := auth.AdminRequired()

	userHandler := userHttp.NewHandler(cfg.UserService)
	catalogHandler := catalogHttp.NewHandler(cfg.CatalogService)
	salonHandler := salonHttp.NewHandler(cfg.SalonService)
	faqHandler := faqHttp.NewHandler(cfg.FAQService)
	slotHandler := slotHttp.NewHandler(cfg.SlotService)
	templateHandler := templateHttp.NewHandler(cfg.TemplateService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	expenseHandler := expenseHttp.NewHandler(cfg.ExpenseService)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware)
		catalogHttp.RegisterRoutes(v1, catalogHandler, authMiddleware, adminMiddleware)
		salonHttp.RegisterRoutes(v1, salonHandler, authMiddleware, adminMiddleware)
		faqHttp.RegisterRoutes(v1, faqHandler, authMiddleware, adminMiddleware)
		slotHttp.RegisterRoutes(v1, slotHandler, authMiddleware, adminMiddleware)
		templateHttp.RegisterRoutes(v1, templateHandler, authMiddleware, adminMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware, adminMiddleware)
		expenseHttp.RegisterRoutes(v1, expenseHandler, authMiddleware, adminMiddleware)
	}

	return r
}
