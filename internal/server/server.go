package server

import (
	"strings"
	"time"

	"anoa.com/tutorcabinet/internal/config"
	"anoa.com/tutorcabinet/internal/handler"
	"anoa.com/tutorcabinet/internal/middleware"
	"anoa.com/tutorcabinet/internal/progress"
	"anoa.com/tutorcabinet/internal/repository"
	"anoa.com/tutorcabinet/internal/search"
	"anoa.com/tutorcabinet/internal/service"
	"anoa.com/tutorcabinet/internal/testgen"
	"anoa.com/tutorcabinet/pkg/logger"
	"anoa.com/tutorcabinet/pkg/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine *gin.Engine
	db     *gorm.DB
	log    *logger.Logger
}

func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, log *logger.Logger) *Server {
	userRepo := repository.NewUserRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	incomeRepo := repository.NewIncomeRepository(db)
	materialRepo := repository.NewMaterialRepository(db)

	fileStorage, err := storage.NewCloudinaryStorage()
	if err != nil {
		log.Fatal("failed to initialize cloudinary storage", "error", err)
	}

	var materialIndex search.MaterialIndex
	if cfg.MeiliMasterKey != "" {
		meiliClient := meilisearch.New(cfg.MeiliSearchHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
		materialIndex = search.NewMaterialIndex(meiliClient, log)
	} else {
		log.Warn("MEILI_MASTER_KEY is not set, material search disabled")
	}

	authSvc := service.NewAuthService(userRepo, redisClient, cfg.JWTSecret, cfg.JWTTTL, cfg.LoginLimit, log)
	authHandler := handler.NewAuthHandler(authSvc)

	studentSvc := service.NewStudentService(userRepo, scheduleRepo, progress.NewByLessonCount(), log)
	studentHandler := handler.NewStudentHandler(studentSvc)

	scheduleSvc := service.NewScheduleService(scheduleRepo, log)
	scheduleHandler := handler.NewScheduleHandler(scheduleSvc)

	incomeSvc := service.NewIncomeService(incomeRepo, log)
	incomeHandler := handler.NewIncomeHandler(incomeSvc)

	materialSvc := service.NewMaterialService(materialRepo, userRepo, fileStorage, materialIndex, log)
	materialHandler := handler.NewMaterialHandler(materialSvc)

	genClient := testgen.NewClient(testgen.Config{
		BaseURL:    cfg.LLMBaseURL,
		Model:      cfg.LLMModel,
		Timeout:    cfg.LLMTimeout,
		MaxRetries: cfg.LLMMaxRetries,
		Materials:  testgen.DirSource{Dir: cfg.MaterialsDir},
	}, log)
	testGenHandler := handler.NewTestGenHandler(genClient)

	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	authMiddleware := middleware.NewAuthMiddleware(userRepo, cfg.JWTSecret)

	api := router.Group("/api")

	// Public routes (no auth required)
	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
	}

	// Protected routes (apply auth middleware explicitly)
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		// Tutor-only routes
		tutorGroup := protected.Group("")
		tutorGroup.Use(authMiddleware.RequireTutor())
		{
			tutorGroup.GET("/students", studentHandler.ListStudents)
			tutorGroup.POST("/students", studentHandler.CreateStudent)
			tutorGroup.DELETE("/students/:id", studentHandler.DeactivateStudent)

			tutorGroup.POST("/schedule", scheduleHandler.CreateSlot)
			tutorGroup.POST("/schedule/:id/lessons", scheduleHandler.RecordLesson)

			tutorGroup.GET("/income", incomeHandler.ListIncome)
			tutorGroup.POST("/income", incomeHandler.AddIncome)
			tutorGroup.PUT("/income/:id/status", incomeHandler.UpdateIncomeStatus)
			tutorGroup.DELETE("/income", incomeHandler.ResetIncome)

			tutorGroup.POST("/materials", materialHandler.UploadMaterial)
			tutorGroup.DELETE("/materials/:id", materialHandler.DeleteMaterial)
		}

		// Routes shared by tutors and students (own view only)
		protected.GET("/schedule", scheduleHandler.ListSchedule)
		protected.GET("/materials", materialHandler.ListMaterials)
		protected.POST("/materials/:id/download", materialHandler.DownloadMaterial)
		protected.GET("/materials/search-token", materialHandler.SearchToken)

		protected.POST("/tests/generate", testGenHandler.GenerateTest)
	}

	return &Server{
		engine: router,
		db:     db,
		log:    log,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
