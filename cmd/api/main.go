package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skillforge-backend/internal/admin"
	"skillforge-backend/internal/auth"
	"skillforge-backend/internal/cache"
	"skillforge-backend/internal/catalog"
	"skillforge-backend/internal/config"
	"skillforge-backend/internal/db"
	"skillforge-backend/internal/enrollments"
	"skillforge-backend/internal/handlers"
	"skillforge-backend/internal/middleware"
	"skillforge-backend/internal/notifications"
	"skillforge-backend/internal/payments"
	"skillforge-backend/internal/reviews"
	"skillforge-backend/internal/validation"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, cols, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Error("mongo connection failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("mongo connected")
	defer client.Disconnect(context.Background())

	if err := db.EnsureIndexes(ctx, cols); err != nil {
		logger.Error("index creation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var cacheStore cache.Cache = cache.NewNoop()
	if cfg.RedisURL != "" || cfg.RedisAddr != "" {
		var redisCache *cache.RedisCache
		var err error
		if cfg.RedisURL != "" {
			redisCache, err = cache.NewRedisFromURL(cfg.RedisURL)
		} else {
			redisCache = cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		}
		if err != nil {
			logger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if err := redisCache.Ping(ctx); err != nil {
			logger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("redis connected")
		cacheStore = redisCache
	}

	var jwtManager *auth.Manager
	if cfg.JWTSecret != "" {
		jwtManager = &auth.Manager{
			Secret:     []byte(cfg.JWTSecret),
			AccessTTL:  time.Duration(cfg.AccessTTLMinutes) * time.Minute,
			RefreshTTL: time.Duration(cfg.RefreshTTLMinutes) * time.Minute,
			Issuer:     "skillforge-backend",
		}
	}

	mailer := notifications.NewBrevoClient(cfg.BrevoAPIKey, cfg.BrevoSenderEmail, cfg.BrevoSenderName, cfg.BrevoSandbox)
	if mailer == nil {
		logger.Info("brevo mailer disabled")
	} else {
		logger.Info("brevo mailer enabled", slog.String("sender", cfg.BrevoSenderEmail), slog.Bool("sandbox", cfg.BrevoSandbox))
	}

	val := validation.New()

	// The admin console state lives in Redis when available, otherwise
	// in a local snapshot file.
	var snapshots admin.SnapshotStore
	if _, ok := cacheStore.(*cache.RedisCache); ok {
		snapshots = admin.NewCacheStore(cacheStore, "admin:state")
		logger.Info("admin snapshots in redis")
	} else {
		fileStore, err := admin.NewFileStore(cfg.AdminStatePath)
		if err != nil {
			logger.Error("admin snapshot store failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		snapshots = fileStore
		logger.Info("admin snapshots on disk", slog.String("path", cfg.AdminStatePath))
	}

	delay := admin.Delay(admin.NoDelay{})
	if cfg.AdminDelayMS > 0 {
		delay = admin.FixedDelay{D: time.Duration(cfg.AdminDelayMS) * time.Millisecond}
	}
	adminStore := admin.NewStore(snapshots, delay, val, logger)
	adminStore.Load(ctx)

	catalogRepo := catalog.NewRepository(cols.Courses)
	catalogService := catalog.NewService(catalogRepo, cacheStore, time.Duration(cfg.CacheTTLSeconds)*time.Second)
	catalogHandler := catalog.NewHandler(catalogService, logger)

	enrollmentsRepo := enrollments.NewRepository(cols.Enrollments)
	enrollmentsHandler := enrollments.NewHandler(enrollmentsRepo, logger)

	reviewsRepo := reviews.NewRepository(cols.Reviews)
	reviewsService := reviews.NewService(reviewsRepo, catalogService, logger)
	reviewsHandler := reviews.NewHandler(reviewsService, val, logger)

	var gateway payments.Gateway
	if g := payments.NewHTTPGateway(cfg.PaymentBaseURL, cfg.PaymentKeyID, cfg.PaymentKeySecret); g != nil {
		gateway = g
		logger.Info("payment gateway enabled")
	} else {
		logger.Info("payment gateway disabled")
	}
	var checkoutMailer payments.Mailer
	if mailer != nil {
		checkoutMailer = mailer
	}
	checkoutService := payments.NewService(gateway, catalogService, enrollmentsRepo, adminStore, checkoutMailer, cfg.PaymentCurrency, logger)
	checkoutHandler := payments.NewHandler(checkoutService, val, logger)

	adminHandler := admin.NewHandler(adminStore, logger)

	server := &handlers.Server{
		Cfg:     cfg,
		Cols:    cols,
		Val:     val,
		Log:     logger,
		Manager: jwtManager,
	}

	r := chi.NewRouter()
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.FrontendOrigins))
	r.Use(chiMiddleware.Timeout(30 * time.Second))

	reviewsLimiter := middleware.NewRateLimiter(cfg.RateLimitReviews, time.Duration(cfg.RateLimitWindowSec)*time.Second)
	checkoutLimiter := middleware.NewRateLimiter(cfg.RateLimitCheckout, time.Duration(cfg.RateLimitWindowSec)*time.Second)

	r.Route("/api/v1", func(api chi.Router) {
		api.Get("/courses", catalogHandler.List)
		api.Get("/courses/popular", catalogHandler.Popular)
		api.Get("/courses/top-revenue", catalogHandler.TopRevenue)
		api.Get("/courses/{slug}", catalogHandler.GetBySlug)
		api.Get("/courses/{slug}/reviews", reviewsHandler.List)
		api.With(reviewsLimiter.Middleware).Post("/courses/{slug}/reviews", reviewsHandler.Create)

		api.With(checkoutLimiter.Middleware).Post("/checkout/order", checkoutHandler.CreateOrder)
		api.With(checkoutLimiter.Middleware).Post("/checkout/verify", checkoutHandler.Verify)
		api.Get("/enrollments", enrollmentsHandler.ListByEmail)

		api.Route("/admin", func(adminRouter chi.Router) {
			adminRouter.Post("/register", server.AdminRegister)
			adminRouter.Post("/login", server.AdminLogin)
			adminRouter.Post("/refresh", server.AdminRefresh)
			adminRouter.Post("/logout", server.AdminLogout)

			// Important (chi): middlewares must be attached before defining
			// routes, so the protected set lives in its own sub-router.
			adminRouter.Group(func(protected chi.Router) {
				protected.Use(middleware.AdminAuth(cfg.AdminAPIKey, jwtManager))

				protected.Post("/users", server.AdminCreateUser)
				protected.Patch("/users/{id}/password", server.AdminUpdateUserPassword)

				protected.Get("/courses", adminHandler.ListCourses)
				protected.Post("/courses", adminHandler.CreateCourse)
				protected.Put("/courses/{id}", adminHandler.UpdateCourse)
				protected.Delete("/courses/{id}", adminHandler.DeleteCourse)
				protected.Get("/courses/export", adminHandler.ExportCourses)

				protected.Get("/learners", adminHandler.ListUsers)
				protected.Post("/learners", adminHandler.CreateUser)
				protected.Put("/learners/{id}", adminHandler.UpdateUser)
				protected.Delete("/learners/{id}", adminHandler.DeleteUser)
				protected.Patch("/learners/{id}/status", adminHandler.SetUserStatus)
				protected.Get("/learners/export", adminHandler.ExportUsers)

				protected.Get("/posts", adminHandler.ListPosts)
				protected.Post("/posts", adminHandler.CreatePost)
				protected.Put("/posts/{id}", adminHandler.UpdatePost)
				protected.Delete("/posts/{id}", adminHandler.DeletePost)
				protected.Patch("/posts/{id}/status", adminHandler.SetPostStatus)

				protected.Get("/instructors", adminHandler.ListInstructors)
				protected.Post("/instructors", adminHandler.CreateInstructor)
				protected.Delete("/instructors/{id}", adminHandler.DeleteInstructor)
				protected.Patch("/instructors/{id}/status", adminHandler.SetInstructorStatus)

				protected.Get("/categories", adminHandler.ListCategories)
				protected.Post("/categories", adminHandler.CreateCategory)
				protected.Put("/categories/{id}", adminHandler.UpdateCategory)
				protected.Delete("/categories/{id}", adminHandler.DeleteCategory)

				protected.Get("/transactions", adminHandler.ListTransactions)
				protected.Patch("/transactions/{id}/status", adminHandler.SetTransactionStatus)
				protected.Get("/transactions/export", adminHandler.ExportTransactions)

				protected.Get("/activity", adminHandler.ListActivity)
			})
		})
	})

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: r,
	}

	go func() {
		logger.Info("server started", slog.String("addr", cfg.ServerAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.String("error", err.Error()))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
	}
}
