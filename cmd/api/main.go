package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Sahil31312/plant-disease-classifier/config"
	"github.com/Sahil31312/plant-disease-classifier/database"
	"github.com/Sahil31312/plant-disease-classifier/handlers"
	"github.com/Sahil31312/plant-disease-classifier/middleware"
	"github.com/Sahil31312/plant-disease-classifier/services"
	"github.com/Sahil31312/plant-disease-classifier/taxonomy"
	"github.com/Sahil31312/plant-disease-classifier/vision"
)

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("failed to load config", zap.Error(err))
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}
	if err := database.SeedAdmin(db, cfg.Admin, log); err != nil {
		log.Fatal("failed to seed admin account", zap.Error(err))
	}

	if err := os.MkdirAll(cfg.Upload.Dir, 0o755); err != nil {
		log.Fatal("failed to create upload directory", zap.Error(err))
	}

	cache, err := services.NewCacheService(cfg.Redis, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer cache.Close()

	auth := services.NewAuthService(cfg.JWT)
	sessions := services.NewSessionService(cache, cfg.Session)
	audit := services.NewAuditService(db, cache, log)
	knowledge := services.NewKnowledgeService(db, log)
	recorder := services.NewRecorder(db)
	composer := services.NewComposer(knowledge)

	if created, err := knowledge.Sync(nil); err != nil {
		log.Fatal("failed to seed disease knowledge", zap.Error(err))
	} else if created > 0 {
		log.Info("seeded disease knowledge rows", zap.Int("created", created))
	}

	// A missing model keeps the service up; predictions fail fast instead.
	var predictor vision.Predictor
	onnx, err := vision.NewONNXPredictor(cfg.Model, taxonomy.NumClasses(), log)
	if err != nil {
		log.Warn("model not loaded, predictions disabled", zap.Error(err))
		predictor = vision.Unavailable{}
	} else {
		predictor = onnx
		defer onnx.Close()
	}

	normalizer := vision.NewNormalizer(cfg.Model.InputSize)

	sweeper := services.NewSweeper(db, audit, log, cfg.Retention)
	sweeper.Start()
	defer sweeper.Stop()

	authHandler := handlers.NewAuthHandler(db, auth, sessions, audit)
	predictionHandler := handlers.NewPredictionHandler(
		db, normalizer, predictor, recorder, composer, audit, cfg.Upload, cfg.Model, log)
	knowledgeHandler := handlers.NewKnowledgeHandler(knowledge, audit)
	messageHandler := handlers.NewMessageHandler(db, audit)
	userHandler := handlers.NewUserHandler(db, audit)
	logHandler := handlers.NewLogHandler(db, sweeper, audit, cfg.Retention)
	statsHandler := handlers.NewStatsHandler(db, cache, predictor, log)
	languageHandler := handlers.NewLanguageHandler(sessions)

	router := gin.Default()
	router.MaxMultipartMemory = cfg.Upload.MaxBytes
	router.Use(middleware.SetupCORS(cfg.CORS))
	router.Use(middleware.ResolveIdentity(auth, sessions))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":      "ok",
			"model_ready": predictor.Available(),
		})
	})

	// Browser flow
	router.POST("/register", authHandler.Register)
	router.POST("/login", authHandler.Login)
	router.POST("/logout", authHandler.Logout)
	router.GET("/set_lang/:language", languageHandler.SetLanguage)
	router.POST("/predict", predictionHandler.Predict)
	router.POST("/contact", messageHandler.Contact)
	router.GET("/disease_info/:id", knowledgeHandler.DiseaseInfo)
	router.GET("/profile/predictions", middleware.RequireAuth(), predictionHandler.History)

	api := router.Group("/api/v1")
	{
		api.GET("/page_content", languageHandler.PageContent)
		api.GET("/stats", statsHandler.Public)
		api.POST("/predict", middleware.RequireAuth(), predictionHandler.APIPredict)

		admin := api.Group("/admin", middleware.RequireAdmin())
		{
			admin.GET("/diseases", knowledgeHandler.AdminList)
			admin.POST("/diseases/sync", knowledgeHandler.AdminSync)
			admin.GET("/disease/:id/:language", knowledgeHandler.AdminGet)
			admin.PUT("/disease/:id/:language", knowledgeHandler.AdminUpdate)
			admin.DELETE("/disease/:id/:language", knowledgeHandler.AdminDelete)

			admin.GET("/messages", messageHandler.AdminList)
			admin.POST("/message/:id/read", messageHandler.AdminMarkRead)
			admin.POST("/message/:id/reply", messageHandler.AdminMarkReplied)
			admin.DELETE("/message/:id", messageHandler.AdminDelete)

			admin.GET("/users", userHandler.AdminList)
			admin.POST("/user/:id/toggle_active", userHandler.AdminToggleActive)
			admin.POST("/user/:id/make_admin", userHandler.AdminMakeAdmin)
			admin.DELETE("/user/:id", userHandler.AdminDelete)

			admin.GET("/logs", logHandler.AdminList)
			admin.POST("/logs/delete_old", logHandler.AdminDeleteOld)
			admin.POST("/logs/delete_all", logHandler.AdminDeleteAll)

			admin.GET("/stats", statsHandler.Admin)
		}
		// Websocket does its own token check (query param).
		api.GET("/admin/live", handlers.LiveActivity(cache, auth, log))
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info("server starting",
		zap.String("addr", addr),
		zap.Bool("model_ready", predictor.Available()),
		zap.Duration("inference_timeout", time.Duration(cfg.Model.TimeoutSeconds)*time.Second),
	)
	if err := router.Run(addr); err != nil {
		log.Fatal("server exited", zap.Error(err))
	}
}
