// File: homeserve/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homeserve/config"
	"homeserve/database"
	"homeserve/database/repository"
	"homeserve/handlers"
	"homeserve/middleware"
	"homeserve/routes"
	"homeserve/services/booking"
	"homeserve/services/catalog"
	"homeserve/services/review"
	"homeserve/services/user"
	"homeserve/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database.InitDB()
	utils.InitRedis()

	healthCtx, stopHealth := context.WithCancel(context.Background())
	defer stopHealth()
	utils.StartHealthMonitor(healthCtx, utils.RedisClients(), database.MongoClient)

	// repositories.
	repos := repository.NewRepositories(database.Database())

	// booking locks: shared through Redis when available, in-process otherwise.
	lockWait := time.Duration(config.AppConfig.BookingLockWaitMillis) * time.Millisecond
	var locker booking.ProviderLocker
	if lockClient := utils.GetLockClient(); lockClient != nil {
		ttl := time.Duration(config.AppConfig.BookingLockTTLSeconds) * time.Second
		locker = booking.NewRedisProviderLocker(lockClient, ttl, lockWait)
	} else {
		logger.Warn("using in-process booking locks; run a single instance only")
		locker = booking.NewLocalProviderLocker(lockWait)
	}

	metrics := utils.NewMetrics()

	var authCache middleware.AuthCache
	if cacheClient := utils.GetAuthCacheClient(); cacheClient != nil {
		authCache = middleware.NewRedisAuthCache(cacheClient)
	}

	// services.
	userService := user.NewUserService(repos.Users, repos.Bookings)
	userService.Sessions = authCache
	catalogService := catalog.NewCatalogService(repos.Catalog)
	bookingService := booking.NewBookingService(
		repos.Bookings,
		repos.Catalog,
		repos.Providers,
		repos.Users,
		locker,
		metrics,
	)

	reviewService := review.NewReviewService(repos.Reviews, repos.Bookings, repos.Catalog)

	// Assemble the handler bundle.
	handlerBundle := handlers.NewHandlerBundle(
		handlers.NewUserHandler(userService),
		handlers.NewCatalogHandler(catalogService),
		handlers.NewBookingHandler(bookingService, catalogService),
		handlers.NewReviewHandler(reviewService),
	)
	handlerBundle.Accounts = repos.Users
	handlerBundle.AuthCache = authCache

	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))
	routes.RegisterRoutes(router, handlerBundle, metrics)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("starting server", zap.String("addr", srv.Addr), zap.String("env", config.GetEnv()))
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("main: server failed to start", zap.Error(err))
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	if err := database.CloseDB(ctx); err != nil {
		logger.Error("main: failed to close MongoDB", zap.Error(err))
	}
	for _, client := range utils.RedisClients() {
		_ = client.Close()
	}

	logger.Info("main: server stopped gracefully")
}
