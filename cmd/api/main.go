package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	appanalytics "github.com/jhoicas/restobar-api/internal/application/analytics"
	"github.com/jhoicas/restobar-api/internal/application/auth"
	"github.com/jhoicas/restobar-api/internal/application/billing"
	"github.com/jhoicas/restobar-api/internal/application/cashregister"
	"github.com/jhoicas/restobar-api/internal/application/inventory"
	"github.com/jhoicas/restobar-api/internal/application/tables"
	"github.com/jhoicas/restobar-api/internal/application/usecase"
	"github.com/jhoicas/restobar-api/internal/domain/repository"
	"github.com/jhoicas/restobar-api/internal/infrastructure/htmlreport"
	"github.com/jhoicas/restobar-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/restobar-api/internal/infrastructure/pdf"
	"github.com/jhoicas/restobar-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/restobar-api/internal/interfaces/http"
	"github.com/jhoicas/restobar-api/pkg/config"
	"github.com/jhoicas/restobar-api/pkg/logger"
)

// storage lo que la API necesita del adaptador de persistencia (postgres o memoria).
type storage interface {
	Run(ctx context.Context, fn func(uow repository.UnitOfWork) error) error
	Repositories() repository.UnitOfWork
	Users() repository.UserRepository
	Analytics() repository.SalesAnalyticsRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	loc, err := time.LoadLocation(cfg.App.TimeZone)
	if err != nil {
		log.Fatal().Err(err).Str("tz", cfg.App.TimeZone).Msg("zona horaria inválida")
	}

	ctx := context.Background()

	// El adaptador se elige una sola vez; los casos de uso no saben cuál es.
	var store storage
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		store = memory.NewStore()
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		pg := postgres.NewStore(pool)
		if err := pg.Migrate(ctx); err != nil {
			log.Fatal().Err(err).Msg("migrar esquema")
		}
		store = pg
	}
	repos := store.Repositories()

	authUC := auth.NewAuthUseCase(store.Users(), auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	if created, err := authUC.EnsureAdmin(ctx, cfg.Seed.AdminEmail, cfg.Seed.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("sembrar administrador")
	} else if created {
		log.Info().Str("email", cfg.Seed.AdminEmail).Msg("administrador inicial creado")
	}

	// Reportes imprimibles: PDF con Maroto, HTML para imprimir desde el navegador.
	pdfRenderer := infrapdf.NewRenderer(cfg.App.Name)
	htmlRenderer := htmlreport.NewKardexRenderer(cfg.App.Name)

	registerMovementUC := inventory.NewRegisterMovementUseCase(store, log.Component("inventory"), inventory.Options{
		AllowNegativeStock: cfg.Inventory.AllowNegativeStock,
	})
	analyticsRepo := store.Analytics()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.AccessLog(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Restobar API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.Storage.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:           authUC,
		UserUC:           usecase.NewUserUseCase(store.Users()),
		ArticleUC:        usecase.NewArticleUseCase(repos.Articles, repos.KitComponents, store),
		WarehouseUC:      usecase.NewWarehouseUseCase(repos.Warehouses),
		RegisterMovement: registerMovementUC,
		KardexUC:         inventory.NewKardexUseCase(repos.Kardex, loc, log.Component("kardex")),
		StockUC:          inventory.NewStockUseCase(repos.Kardex, repos.Articles),
		KardexHTML:       htmlRenderer,
		KardexPDF:        pdfRenderer,
		CashRegisterUC:   cashregister.NewUseCase(store, repos.CashRegisters, pdfRenderer, log.Component("cash")),
		CreateInvoice:    billing.NewCreateInvoiceUseCase(store, registerMovementUC, repos.Invoices, log.Component("billing")),
		CustomerUC:       billing.NewCustomerUseCase(repos.Customers),
		ReceivableUC:     billing.NewReceivableUseCase(store, repos.Receivables, repos.Customers, log.Component("receivables")),
		TablesUC:         tables.NewUseCase(store, repos.Tables, log.Component("tables")),
		MarginsUC:        appanalytics.NewMarginsUseCase(analyticsRepo, loc),
		DashboardUC:      appanalytics.NewDashboardUseCase(analyticsRepo, loc),
		JWTSecret:        cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
