package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"slate/config"
	"slate/cron"
	"slate/database"
	"slate/database/kv"
	planRepo "slate/database/repository/plan"
	"slate/handlers"
	"slate/middleware"
	"slate/routes"
	"slate/services/autonomy"
	"slate/services/availability"
	"slate/services/booking"
	"slate/services/group"
	"slate/services/intent"
	"slate/services/notification"
	"slate/services/planner"
	"slate/services/user"
	"slate/services/verification"
	"slate/services/vibe"
	"slate/services/yelp"
	"slate/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	shutdownOtel, err := utils.InitOtel(rootCtx, "slate")
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize telemetry: %v", err)
	}

	// storage.
	redisClient, err := utils.ConnectCache(rootCtx)
	var store kv.Store = kv.NewRedisStore(redisClient, "slate:")
	if err != nil {
		if !config.AppConfig.DemoMode {
			logger.Sugar().Fatalf("main: %v", err)
		}
		logger.Warn("main: Redis unavailable, demo state is kept in memory", zap.Error(err))
		store = kv.NewMemoryStore()
	}

	var plans planRepo.PlanRepository
	if err := database.InitDB(); err != nil {
		logger.Warn("main: MongoDB unavailable, plans are kept in memory", zap.Error(err))
		plans = planRepo.NewMemoryPlanRepo()
	} else {
		mongoPlans, err := planRepo.NewMongoPlanRepo(database.Database())
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize plan archive: %v", err)
		}
		plans = mongoPlans
	}
	utils.StartHealthMonitor(rootCtx, time.Minute, redisClient, database.MongoClient)

	// upstream restaurant data.
	provider, describer := buildProvider(logger)
	scorer := vibe.NewScorer(describer, logger)

	var parser intent.Parser = intent.NewKeywordParser()
	if key := config.AppConfig.GeminiAPIKey; key != "" {
		gemini, err := intent.NewGeminiClient(rootCtx, key)
		if err != nil {
			logger.Warn("main: Gemini unavailable, using keyword intent parser", zap.Error(err))
		} else {
			defer gemini.Close()
			parser = intent.NewGeminiParser(gemini, intent.NewKeywordParser(), logger)
		}
	}

	// messaging.
	queue := asynq.NewClient(cron.RedisOpt())
	defer queue.Close()
	sender := notification.NewTwilioSender(
		config.AppConfig.TwilioAccountSID,
		config.AppConfig.TwilioAuthToken,
		config.AppConfig.TwilioPhoneNumber,
		logger,
	)
	notificationService, err := notification.NewDefaultNotificationService(sender, queue, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}
	conversations := &notification.Conversations{
		Store:   store,
		Notify:  notificationService,
		BaseURL: config.AppConfig.PublicBaseURL,
		Logger:  logger,
	}

	// services.
	plannerService := planner.NewPlannerService(parser, provider, scorer, plans, logger)
	profileService := user.NewProfileService(store, logger)
	groupService := &group.DefaultGroupSessionService{
		Store:         store,
		Solver:        group.NewSolver(provider, logger),
		Booker:        provider,
		Notify:        notificationService,
		Conversations: conversations,
		BaseURL:       config.AppConfig.PublicBaseURL,
		Logger:        logger,
		Now:           time.Now,
	}
	directBooking := &booking.DefaultDirectBookingService{Provider: provider, Logger: logger}
	verificationService := verification.NewVerificationService(store, notificationService, logger)
	autonomyService := autonomy.NewAutonomyService(store, plannerService, profileService, notificationService, logger)
	autonomyService.Conversations = conversations

	worker := cron.NewWorker(notificationService, autonomyService, logger)
	if err := worker.Start(); err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}

	handlerBundle := &handlers.HandlerBundle{
		Plan:     handlers.NewPlanHandler(plannerService, plans, profileService, logger),
		Group:    handlers.NewGroupHandler(groupService, logger),
		Booking:  handlers.NewBookingHandler(directBooking, logger),
		Search:   handlers.NewSearchHandler(provider, logger),
		Profile:  handlers.NewProfileHandler(profileService),
		Verify:   handlers.NewVerifyHandler(verificationService),
		SMS:      handlers.NewSMSHandler(conversations, logger),
		Autonomy: handlers.NewAutonomyHandler(autonomyService),
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.NewRateLimiter(config.AppConfig.MaxRequestsPerMin).Middleware())
	routes.RegisterRoutes(router, handlerBundle)

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	worker.Shutdown()
	stop()
	database.CloseDB(ctx)
	if err := shutdownOtel(ctx); err != nil {
		logger.Warn("main: telemetry shutdown failed", zap.Error(err))
	}
	logger.Info("main: server stopped gracefully")
}

// buildProvider picks live Yelp search when a key is configured and the
// bundled catalogue otherwise. Availability and booking are simulated in
// demo mode.
func buildProvider(logger *zap.Logger) (availability.Provider, vibe.Describer) {
	sim := availability.NewSimulator(config.AppConfig.SimulatorSeed)
	key := config.AppConfig.YelpAPIKey
	if key == "" {
		logger.Info("main: no Yelp key, using the demo catalogue")
		return availability.WithSimulatedBooking(availability.DemoCatalog(), sim), nil
	}
	client := yelp.NewClient(key, config.AppConfig.YelpRPS, logger)
	if config.AppConfig.DemoMode {
		return availability.WithSimulatedBooking(client, sim), client
	}
	return client, client
}
