package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver for database/sql (migrations)
	"go.uber.org/zap"

	"github.com/cartwise-ai/cartwise-engine/pkg/auth"
	"github.com/cartwise-ai/cartwise-engine/pkg/catalog"
	"github.com/cartwise-ai/cartwise-engine/pkg/config"
	"github.com/cartwise-ai/cartwise-engine/pkg/database"
	"github.com/cartwise-ai/cartwise-engine/pkg/handlers"
	"github.com/cartwise-ai/cartwise-engine/pkg/middleware"
	"github.com/cartwise-ai/cartwise-engine/pkg/repositories"
	"github.com/cartwise-ai/cartwise-engine/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("environment", cfg.Env),
		zap.String("version", cfg.Version),
		zap.Bool("auth_verification", cfg.Auth.EnableVerification),
		zap.String("database", cfg.Database.Database),
		zap.String("database_host", cfg.Database.Host))

	ctx := context.Background()

	db, err := database.NewConnection(ctx, &database.Config{
		URL:            cfg.Database.ConnectionString(),
		MaxConnections: cfg.Database.MaxConnections,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := runMigrations(cfg, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	cat, err := loadCatalog(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to load catalog", zap.Error(err))
	}

	// Repositories
	catalogRepo := repositories.NewCatalogRepository(db)
	purchaseRepo := repositories.NewPurchaseRepository(db)
	priceRepo := repositories.NewPriceRepository(db)
	pantryRepo := repositories.NewPantryRepository(db)

	if cfg.Engine.SeedCatalog {
		if err := seedCatalog(ctx, catalogRepo, cat, logger); err != nil {
			logger.Fatal("Failed to seed catalog", zap.Error(err))
		}
	}

	// Services
	clock := services.SystemClock()
	shoppingListSvc := services.NewShoppingListService(cat, logger)
	predictorSvc := services.NewPurchasePredictorService(clock, logger)
	optimizerSvc := services.NewPriceOptimizerService(logger)
	expirationSvc := services.NewExpirationPredictorService(cat, clock, logger)

	// Authentication
	jwksClient, err := auth.NewJWKSClient(&auth.JWKSConfig{
		EnableVerification: cfg.Auth.EnableVerification,
		JWKSEndpoints:      cfg.Auth.JWKSEndpoints,
	})
	if err != nil {
		logger.Fatal("Failed to create JWKS client", zap.Error(err))
	}
	authMiddleware := auth.NewMiddleware(jwksClient, cfg.Auth.EnableVerification, logger.Named("auth"))

	// Handlers
	mux := http.NewServeMux()
	handlers.NewHealthHandler(cfg, logger.Named("health")).RegisterRoutes(mux)
	handlers.NewShoppingListHandler(shoppingListSvc, purchaseRepo, pantryRepo, cfg.Engine.RecentPurchaseDays, logger.Named("shopping-list-handler")).
		RegisterRoutes(mux, authMiddleware)
	handlers.NewItemInsightsHandler(predictorSvc, optimizerSvc, purchaseRepo, priceRepo, cat, logger.Named("item-insights-handler")).
		RegisterRoutes(mux, authMiddleware)
	handlers.NewPantryHandler(pantryRepo, expirationSvc, cat, logger.Named("pantry-handler")).
		RegisterRoutes(mux, authMiddleware)
	handlers.NewRecordsHandler(purchaseRepo, priceRepo, cat, logger.Named("records-handler")).
		RegisterRoutes(mux, authMiddleware)

	server := &http.Server{
		Addr:              net.JoinHostPort(cfg.BindAddr, cfg.Port),
		Handler:           middleware.RequestLogger(logger.Named("http"))(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting cartwise-engine",
			zap.String("addr", server.Addr),
			zap.String("version", cfg.Version))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "local" || env == "test" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func runMigrations(cfg *config.Config, logger *zap.Logger) error {
	sqlDB, err := sql.Open("pgx", cfg.Database.ConnectionString())
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	return database.RunMigrations(sqlDB, cfg.Database.MigrationsPath, logger.Named("migrations"))
}

func loadCatalog(cfg *config.Config, logger *zap.Logger) (*catalog.Catalog, error) {
	if cfg.Engine.CatalogPath == "" {
		return catalog.Default(), nil
	}
	logger.Info("Loading catalog override", zap.String("path", cfg.Engine.CatalogPath))
	return catalog.LoadFile(cfg.Engine.CatalogPath)
}

// seedCatalog bootstraps the catalog table from the built-in catalog
// when the table is empty. Existing rows are never overwritten.
func seedCatalog(ctx context.Context, repo repositories.CatalogRepository, cat *catalog.Catalog, logger *zap.Logger) error {
	count, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, entry := range cat.Items {
		item := entry.CatalogItem()
		if err := repo.Upsert(ctx, &item); err != nil {
			return err
		}
	}
	logger.Info("Seeded catalog", zap.Int("items", len(cat.Items)))
	return nil
}
