package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hntruong/quizdeck/config"
	"github.com/hntruong/quizdeck/database"
	_ "github.com/hntruong/quizdeck/docs" // Swagger docs
	adminctrl "github.com/hntruong/quizdeck/internal/controller/admin"
	authctrl "github.com/hntruong/quizdeck/internal/controller/auth"
	userctrl "github.com/hntruong/quizdeck/internal/controller/user"
	"github.com/hntruong/quizdeck/internal/logger"
	"github.com/hntruong/quizdeck/internal/middleware"
	"github.com/hntruong/quizdeck/internal/model"
	"github.com/hntruong/quizdeck/internal/repository"
	"github.com/hntruong/quizdeck/internal/scoring"
	"github.com/hntruong/quizdeck/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title QuizDeck API
// @version 1.0
// @description Quiz service: users take tests, submissions are graded against a server-held answer key, scores feed a leaderboard.
// @contact.name API Support
// @contact.email support@example.com
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		// Core application components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
			NewKeyStore,
		),

		// Repositories layer
		fx.Provide(
			repository.NewUserRepository,
			repository.NewTestRepository,
			repository.NewTestAttemptRepository,
			repository.NewLeaderboardRepository,
		),

		// Services layer
		fx.Provide(
			service.NewAuthService,
			service.NewUserTestService,
			service.NewTestSubmissionService,
			service.NewLeaderboardService,
			service.NewAdminTestService,
		),

		// API controllers layer
		fx.Provide(
			authctrl.NewAuthController,
			userctrl.NewUserTestController,
			adminctrl.NewAdminTestController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

// NewKeyStore loads the immutable answer-key file once at startup. A missing
// or malformed file is fatal: the service cannot grade without it.
func NewKeyStore(cfg *config.Config) (*scoring.KeyStore, error) {
	keys, err := scoring.LoadKeyStore(cfg.AnswerKeyFile)
	if err != nil {
		return nil, err
	}
	log.Info().Int("tests", keys.Len()).Msg("Answer key store loaded")
	return keys, nil
}

func NewGinEngine(cfg *config.Config) *gin.Engine {
	if cfg.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	// Request logging through the global zerolog instance.
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Be more specific in production
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	authService service.AuthService,
	authCtrl *authctrl.AuthController,
	userTestCtrl *userctrl.UserTestController,
	adminTestCtrl *adminctrl.AdminTestController,
) {
	// Static legal documents (terms of service, privacy policy).
	router.Static("/legal", cfg.LegalDocsDir)

	// Public routes
	publicGroup := router.Group("/api/v1/auth")
	{
		publicGroup.POST("/register", authCtrl.Register)
		publicGroup.POST("/login", authCtrl.Login)
	}

	// Authenticated user routes
	userAPIGroup := router.Group("/api/v1")
	userAPIGroup.Use(middleware.RequireAuth(authService))
	{
		userAPIGroup.GET("/tests", userTestCtrl.GetAllTests)
		userAPIGroup.GET("/tests/:test_id", userTestCtrl.GetTestDetails)

		userAPIGroup.POST("/tests/:test_id/attempts", userTestCtrl.SubmitTestAttempt)
		userAPIGroup.GET("/tests/:test_id/my-attempts", userTestCtrl.GetUserTestAttempts)
		userAPIGroup.GET("/test-attempts/:attempt_id", userTestCtrl.GetSpecificTestAttemptDetails)

		userAPIGroup.GET("/leaderboard", userTestCtrl.GetLeaderboard)
	}

	// Admin routes
	adminAPIGroup := router.Group("/api/v1/admin")
	adminAPIGroup.Use(middleware.RequireAuth(authService), middleware.RequireAdmin())
	{
		adminAPIGroup.POST("/tests", adminTestCtrl.CreateTest)
		adminAPIGroup.PATCH("/tests/:test_id/active", adminTestCtrl.SetTestActive)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("QuizDeck API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.User{},
		&model.Test{},
		&model.Question{},
		&model.TestAttempt{},
		&model.Answer{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
