package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/campushub/scheduling-api/api/swagger"
	"github.com/campushub/scheduling-api/internal/handler"
	"github.com/campushub/scheduling-api/internal/middleware"
	"github.com/campushub/scheduling-api/internal/repository"
	"github.com/campushub/scheduling-api/internal/service"
	"github.com/campushub/scheduling-api/pkg/cache"
	"github.com/campushub/scheduling-api/pkg/config"
	"github.com/campushub/scheduling-api/pkg/database"
	"github.com/campushub/scheduling-api/pkg/logger"
	corsmiddleware "github.com/campushub/scheduling-api/pkg/middleware/cors"
	reqidmiddleware "github.com/campushub/scheduling-api/pkg/middleware/requestid"
)

// @title Scheduling API
// @version 1.0.0
// @description Academic scheduling consistency engine
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect database", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect redis", "error", err)
	}
	defer redisClient.Close()

	// Repositories.
	termRepo := repository.NewTermRepository(db)
	classRepo := repository.NewClassRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	periodRepo := repository.NewLessonPeriodRepository(db)
	offeringRepo := repository.NewClassSubjectRepository(db)
	assignmentRepo := repository.NewTrainerAssignmentRepository(db)
	slotRepo := repository.NewTimetableSlotRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	userRepo := repository.NewUserRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient)

	// Services.
	metricsSvc := service.NewMetricsService()
	termSvc := service.NewTermService(termRepo, nil, logr)
	classSvc := service.NewClassService(classRepo, nil, logr)
	subjectSvc := service.NewSubjectService(subjectRepo, nil, logr)
	roomSvc := service.NewRoomService(roomRepo, nil, logr)
	periodSvc := service.NewLessonPeriodService(periodRepo, nil, logr)
	offeringSvc := service.NewOfferingService(offeringRepo, classRepo, subjectRepo, termRepo, nil, logr)

	var settingsSvc *service.SettingsService
	if cfg.Settings.CacheEnabled {
		settingsSvc = service.NewSettingsService(settingsRepo, cacheRepo, cfg.Settings.CacheTTL, nil, logr)
	} else {
		settingsSvc = service.NewSettingsService(settingsRepo, nil, cfg.Settings.CacheTTL, nil, logr)
	}
	assignmentSvc := service.NewAssignmentService(assignmentRepo, offeringRepo, userRepo, classRepo, settingsSvc, nil, logr)
	availabilitySvc := service.NewAvailabilityService(slotRepo, userRepo, termRepo, periodRepo, roomRepo, nil, logr)
	authSvc := service.NewAuthService(cacheRepo, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		Issuer:            "scheduling-api",
		ChallengeTTL:      cfg.Auth.ChallengeTTL,
	})

	// Handlers.
	termHandler := handler.NewTermHandler(termSvc)
	classHandler := handler.NewClassHandler(classSvc)
	subjectHandler := handler.NewSubjectHandler(subjectSvc)
	roomHandler := handler.NewRoomHandler(roomSvc, availabilitySvc)
	periodHandler := handler.NewLessonPeriodHandler(periodSvc)
	offeringHandler := handler.NewOfferingHandler(offeringSvc)
	assignmentHandler := handler.NewAssignmentHandler(assignmentSvc)
	availabilityHandler := handler.NewAvailabilityHandler(availabilitySvc)
	settingsHandler := handler.NewSettingsHandler(settingsSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.JWT(authSvc))
	{
		api.GET("/terms", termHandler.List)
		api.GET("/terms/current", termHandler.Current)
		api.POST("/terms", middleware.RequirePrivilege(), termHandler.Create)
		api.PUT("/terms/:id", middleware.RequirePrivilege(), termHandler.Update)
		api.GET("/terms/:id/timetable-slots", availabilityHandler.TermSlots)
		api.GET("/term-classes", termHandler.TermClasses)

		api.GET("/classes", classHandler.List)
		api.GET("/classes/:id", classHandler.Get)
		api.POST("/classes", middleware.RequirePrivilege(), classHandler.Create)
		api.PUT("/classes/:id", middleware.RequirePrivilege(), classHandler.Update)
		api.DELETE("/classes/:id", middleware.RequirePrivilege(), classHandler.Remove)
		api.GET("/classes/:id/timetable-slots", availabilityHandler.ClassSlots)
		api.GET("/classes/:id/available-subjects", offeringHandler.AvailableSubjects)
		api.GET("/classes/:id/offered-subjects", offeringHandler.OfferedSubjects)
		api.POST("/classes/:id/offered-subjects", middleware.RequirePrivilege(), offeringHandler.Create)
		api.DELETE("/class-subjects/:id", middleware.RequirePrivilege(), offeringHandler.Remove)

		api.GET("/subjects", subjectHandler.List)
		api.GET("/subjects/:id", subjectHandler.Get)
		api.POST("/subjects", middleware.RequirePrivilege(), subjectHandler.Create)
		api.PUT("/subjects/:id", middleware.RequirePrivilege(), subjectHandler.Update)
		api.DELETE("/subjects/:id", middleware.RequirePrivilege(), subjectHandler.Remove)

		api.GET("/rooms", roomHandler.List)
		api.POST("/rooms", middleware.RequirePrivilege(), roomHandler.Create)
		api.PUT("/rooms/:id", middleware.RequirePrivilege(), roomHandler.Update)
		api.DELETE("/rooms/:id", middleware.RequirePrivilege(), roomHandler.Remove)
		api.GET("/rooms/:id/availability", roomHandler.Availability)

		api.GET("/lesson-periods", periodHandler.List)
		api.POST("/lesson-periods", middleware.RequirePrivilege(), periodHandler.Create)
		api.DELETE("/lesson-periods/:id", middleware.RequirePrivilege(), periodHandler.Remove)

		api.PUT("/trainers/:id/subject-assignment", assignmentHandler.SetSubjectAssignment)
		api.POST("/trainers/:id/classes", middleware.RequirePrivilege(), assignmentHandler.AssignClass)
		api.GET("/trainers/:id/subject-assignments", middleware.PrivilegedOrSelf("id"), assignmentHandler.ListSubjectAssignments)
		api.DELETE("/trainers/:id/classes/:classId", assignmentHandler.RemoveClassAssignment)
		api.GET("/trainers/:id/availability", availabilityHandler.TrainerAvailability)

		api.POST("/timetable-slots", middleware.RequirePrivilege(), availabilityHandler.CreateSlot)
		api.DELETE("/timetable-slots/:id", middleware.RequirePrivilege(), availabilityHandler.CancelSlot)

		api.GET("/settings/timetable", settingsHandler.Get)
		api.PUT("/settings/timetable", settingsHandler.Update)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
