package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/contest-api/internal/config"
	"github.com/yourusername/contest-api/internal/domain/entity"
	"github.com/yourusername/contest-api/internal/handler"
	"github.com/yourusername/contest-api/internal/middleware"
	pgRepo "github.com/yourusername/contest-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/contest-api/internal/repository/redis"
	"github.com/yourusername/contest-api/internal/service"
	ws "github.com/yourusername/contest-api/internal/websocket"
	"github.com/yourusername/contest-api/pkg/auth"
	"github.com/yourusername/contest-api/pkg/database"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Применяем миграции
	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к Redis
	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	log.Println("Successfully connected to Redis")

	// Инициализируем репозитории
	userRepo := pgRepo.NewUserRepo(db)
	contestRepo := pgRepo.NewContestRepo(db)
	submissionRepo := pgRepo.NewSubmissionRepo(db)
	paymentRepo := pgRepo.NewPaymentRepo(db)
	winnerRepo := pgRepo.NewWinnerRepo(db)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize CacheRepo: %v", err)
		os.Exit(1)
	}

	// Инициализируем JWT сервис
	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationMins)
	if err != nil {
		log.Printf("Failed to initialize JWTService: %v", err)
		os.Exit(1)
	}

	// Инициализируем платежный шлюз
	gateway, err := service.NewStripeCheckoutGateway(cfg.Payment)
	if err != nil {
		log.Printf("Failed to initialize payment gateway: %v", err)
		os.Exit(1)
	}

	// Инициализируем почтовый сервис
	var emailService service.EmailService
	if cfg.Email.Enabled {
		emailService, err = service.NewResendEmailService(cfg.Email.ResendAPIKey, cfg.Email.FromAddress)
		if err != nil {
			log.Printf("Failed to initialize email service: %v", err)
			os.Exit(1)
		}
	} else {
		emailService = &service.NoopEmailService{}
	}

	// Запускаем websocket-хаб ленты победителей
	hub := ws.NewHub()
	go hub.Run()

	// Инициализируем сервисы
	userService := service.NewUserService(userRepo)
	contestService := service.NewContestService(contestRepo)
	submissionService := service.NewSubmissionService(submissionRepo, contestRepo, userRepo, cacheRepo, emailService, hub)
	paymentService := service.NewPaymentService(paymentRepo, contestRepo, userRepo, gateway)
	winnerService := service.NewWinnerService(winnerRepo, cacheRepo)

	// Инициализируем обработчики
	authHandler := handler.NewAuthHandler(jwtService)
	userHandler := handler.NewUserHandler(userService)
	contestHandler := handler.NewContestHandler(contestService)
	submissionHandler := handler.NewSubmissionHandler(submissionService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	winnerHandler := handler.NewWinnerHandler(winnerService)
	wsHandler := handler.NewWSHandler(hub)

	authMiddleware := middleware.NewAuthMiddleware(jwtService, userRepo)

	isProduction := gin.Mode() == gin.ReleaseMode

	// Инициализируем роутер Gin
	router := gin.Default()

	// Настройка доверенных прокси для корректной работы c.ClientIP()
	if isProduction {
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	// Настройка CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Аутентификация
	router.POST("/jwt", authHandler.IssueToken)

	// Пользователи
	users := router.Group("/users")
	{
		users.POST("", userHandler.Register)

		authedUsers := users.Group("")
		authedUsers.Use(authMiddleware.RequireAuth())
		{
			authedUsers.GET("", userHandler.List)
			authedUsers.GET("/:key", userHandler.GetProfile)
			authedUsers.GET("/:key/role", userHandler.GetRole)
			authedUsers.PATCH("/:key", userHandler.UpdateProfile)
			authedUsers.PATCH("/:key/role",
				authMiddleware.RequireRole(entity.RoleAdmin),
				userHandler.UpdateRole)
		}
	}

	// Конкурсы
	contests := router.Group("/contests")
	{
		contests.GET("", contestHandler.ListAll)
		contests.GET("/approved", contestHandler.ListApproved)

		contests.POST("",
			authMiddleware.RequireAuth(),
			authMiddleware.RequireRole(entity.RoleCreator, entity.RoleAdmin),
			contestHandler.Create)

		authedContests := contests.Group("")
		authedContests.Use(authMiddleware.RequireAuth())
		{
			authedContests.GET("/winner/:userId", contestHandler.FindByWinner)
			authedContests.GET("/:search", contestHandler.FindBySearch)

			authedContests.PATCH("/:search",
				middleware.ExtractObjectIDParam("search", "contestID"),
				authMiddleware.RequireRole(entity.RoleUser, entity.RoleCreator, entity.RoleAdmin),
				contestHandler.Edit)
			authedContests.PATCH("/:search/status",
				middleware.ExtractObjectIDParam("search", "contestID"),
				authMiddleware.RequireRole(entity.RoleAdmin),
				contestHandler.SetStatus)
			authedContests.DELETE("/:search",
				middleware.ExtractObjectIDParam("search", "contestID"),
				authMiddleware.RequireRole(entity.RoleUser, entity.RoleCreator, entity.RoleAdmin),
				contestHandler.Delete)
		}
	}

	// Конкурсные работы
	submissions := router.Group("/submissions")
	{
		submissions.GET("/user-submission-status", submissionHandler.UserSubmissionStatus)

		submissions.POST("", authMiddleware.RequireAuth(), submissionHandler.Submit)

		creatorSubmissions := submissions.Group("")
		creatorSubmissions.Use(
			authMiddleware.RequireAuth(),
			authMiddleware.RequireRole(entity.RoleCreator, entity.RoleAdmin),
		)
		{
			creatorSubmissions.GET("", submissionHandler.ListByContest)
			creatorSubmissions.GET("/export", submissionHandler.Export)
			creatorSubmissions.PATCH("/:id",
				middleware.ExtractObjectIDParam("id", "submissionID"),
				submissionHandler.DeclareWinner)
		}
	}

	// Платежи
	router.POST("/create-checkout-session", authMiddleware.RequireAuth(), paymentHandler.CreateCheckout)
	router.PATCH("/payment-success", authMiddleware.RequireAuth(), paymentHandler.Settle)

	// Лента победителей
	router.GET("/winners", winnerHandler.GetRecentWinners)
	router.GET("/ws/winners", wsHandler.Subscribe)

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Server started on port %s", cfg.Server.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	log.Println("Server exited properly")
}
