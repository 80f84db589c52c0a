package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kaspalytics/internal/auth"
	"kaspalytics/internal/bot"
	"kaspalytics/internal/cache"
	"kaspalytics/internal/config"
	"kaspalytics/internal/db"
	"kaspalytics/internal/handler"
	"kaspalytics/internal/job"
	"kaspalytics/internal/provider"
	"kaspalytics/internal/repository"
	"kaspalytics/internal/service"
	"kaspalytics/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"

	_ "kaspalytics/docs"
)

var (
	loadEnvFunc      = godotenv.Load
	loadConfigFunc   = config.Load
	initPostgresFunc = db.InitPostgres
	initRedisFunc    = cache.InitRedis
	initTracerFunc   = tracing.InitTracer
	newUserStoreFunc = func(ctx context.Context, tracer trace.Tracer) (auth.UserStore, error) {
		if db.Pool == nil {
			return repository.NewMemoryUserRepository(), nil
		}
		repo := repository.NewUserRepository(db.Pool, tracer)
		if err := repo.RunMigrations(ctx); err != nil {
			return nil, err
		}
		if err := repository.SeedDemoAccounts(ctx, repo); err != nil {
			return nil, err
		}
		return repo, nil
	}
	newProviderFunc = func(tracer trace.Tracer) service.MarketDataProvider {
		return provider.NewSyntheticProvider(tracer, time.Now)
	}
	newMarketServiceFunc   = service.NewMarketService
	newCacheWarmerFunc     = job.NewCacheWarmer
	startWarmerFunc        = func(w *job.CacheWarmer, ctx context.Context) { go w.Start(ctx) }
	startTelegramBotFunc   = bot.StartTelegramBot
	newHandlerFunc         = handler.New
	newRouterFunc          = gin.Default
	setupSignalNotify      = signal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           Kaspalytics API
// @version         1.0
// @description     Subscription-gated cryptocurrency analytics for the Kaspa network.

// @host      localhost:8080
// @BasePath  /
func main() {
	loadEnvFunc()

	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init Postgres and Redis
	os.Setenv("DATABASE_URL", cfg.DatabaseURL)
	os.Setenv("REDIS_URL", cfg.RedisURL)
	initPostgresFunc(ctx)
	initRedisFunc(ctx)

	// Init tracing
	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	// User store: Postgres when configured, seeded in-memory accounts otherwise
	userStore, err := newUserStoreFunc(ctx, tracer)
	if err != nil {
		log.Fatalf("failed to initialize user store: %v", err)
	}
	authService := auth.NewService(tracer, userStore, cfg.JWTSecret, time.Duration(cfg.JWTExpiryHours)*time.Hour)

	// Market data: deterministic synthetic provider behind the Redis cache
	dataProvider := newProviderFunc(tracer)
	var redisClient service.RedisClient
	if cache.Client != nil {
		redisClient = cache.Client
	}
	marketService := newMarketServiceFunc(tracer, dataProvider, redisClient)

	// Start cache warmer (background goroutine, stopped by ctx cancel)
	warmer := newCacheWarmerFunc(tracer, marketService, cfg.WarmIntervalSecs, cfg.WarmLookbacks)
	startWarmerFunc(warmer, ctx)

	// Start Telegram bot
	startTelegramBotFunc(cfg.TelegramBotToken, marketService)

	// Create handlers and routes
	h := newHandlerFunc(tracer, marketService, authService, cfg.AdminUsername, cfg.BaseLookbackDays)

	r := newRouterFunc()
	r.Use(otelgin.Middleware("kaspalytics"))

	h.RegisterRoutes(r)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
