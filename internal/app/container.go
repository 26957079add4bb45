package app

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/glowbook/salon-backend/internal/api"
	"github.com/glowbook/salon-backend/internal/auth"
	"github.com/glowbook/salon-backend/internal/booking"
	"github.com/glowbook/salon-backend/internal/catalog"
	"github.com/glowbook/salon-backend/internal/clock"
	"github.com/glowbook/salon-backend/internal/config"
	"github.com/glowbook/salon-backend/internal/expense"
	"github.com/glowbook/salon-backend/internal/faq"
	"github.com/glowbook/salon-backend/internal/notify"
	"github.com/glowbook/salon-backend/internal/salon"
	"github.com/glowbook/salon-backend/internal/scheduler"
	"github.com/glowbook/salon-backend/internal/slot"
	"github.com/glowbook/salon-backend/internal/template"
	"github.com/glowbook/salon-backend/internal/user"
)

// Container holds the initialized components that are needed externally.
type Container struct {
	Router    *gin.Engine
	Scheduler *scheduler.Scheduler
	Notifier  *notify.Notifier
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg *config.Config, pool *pgxpool.Pool) (*Container, error) {
	businessClock, err := clock.NewBusiness(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("init business clock: %w", err)
	}

	// Outbound Telegram gateway. Without a bot token (local dev with
	// auth checks disabled) sends are logged instead of delivered.
	var gateway notify.Gateway
	if cfg.TelegramBotToken != "" {
		gateway, err = notify.NewTelegramGateway(cfg.TelegramBotToken, cfg.SendTimeout)
		if err != nil {
			return nil, fmt.Errorf("init telegram gateway: %w", err)
		}
	} else {
		log.Println("no bot token configured, notifications are log-only")
		gateway = notify.LogGateway{}
	}
	notifier := notify.NewNotifier(gateway, cfg.AdminChatIDs, cfg.SendTimeout)

	// Auth components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTAccessTokenTTL)
	verifier := auth.NewInitDataVerifier(cfg.TelegramBotToken, cfg.SkipTelegramAuth)

	// User Module
	userRepo := user.NewPgxRepository(pool)
	userService := user.NewService(userRepo, verifier, jwtManager, passwordHasher,
		cfg.StaffPasswordHash, cfg.AdminChatIDs)

	// Catalog Module
	catalogRepo := catalog.NewPgxRepository(pool)
	catalogService := catalog.NewService(catalogRepo)

	// Salon Info Module
	salonRepo := salon.NewPgxRepository(pool)
	salonService := salon.NewService(salonRepo)

	// FAQ Module
	faqRepo := faq.NewPgxRepository(pool)
	faqService := faq.NewService(faqRepo)

	// Slot Module
	slotRepo := slot.NewPgxRepository(pool)
	slotService := slot.NewService(slotRepo, businessClock, cfg.CreateCutoff)

	// Schedule Template Module
	templateRepo := template.NewPgxRepository(pool)
	templateService := template.NewService(templateRepo)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(pool)
	bookingService := booking.NewService(bookingRepo, slotRepo, userRepo,
		catalogService, salonService, notifier, businessClock,
		cfg.CreateCutoff, cfg.CancelCutoff)

	// Expense Module
	expenseRepo := expense.NewPgxRepository(pool)
	expenseService := expense.NewService(expenseRepo, businessClock)

	// Background obligations
	sched := scheduler.New(scheduler.Config{
		TickInterval:      cfg.TickInterval,
		SummaryHour:       cfg.SummaryHour,
		AutogenHour:       cfg.AutogenHour,
		LookbackDays:      cfg.LookbackDays,
		GenerateDaysAhead: cfg.GenerateDaysAhead,
		FeedbackDelay:     cfg.FeedbackDelay,
	}, bookingRepo, slotRepo, templateRepo, salonService, notifier, businessClock)

	router := api.NewRouter(api.Config{
		IsProduction:    cfg.IsProduction,
		ProdOrigins:     cfg.ProdOrigins,
		UserService:     userService,
		CatalogService:  catalogService,
		SalonService:    salonService,
		FAQService:      faqService,
		SlotService:     slotService,
		TemplateService: templateService,
		BookingService:  bookingService,
		ExpenseService:  expenseService,
		JWTManager:      jwtManager,
	})

	return &Container{
		Router:    router,
		Scheduler: sched,
		Notifier:  notifier,
	}, nil
}
