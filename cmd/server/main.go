package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/lmittmann/tint"
	config "github.com/maheshrc27/postpilot/configs"
	"github.com/maheshrc27/postpilot/internal/api/handlers"
	"github.com/maheshrc27/postpilot/internal/api/middleware"
	job "github.com/maheshrc27/postpilot/internal/jobs"
	"github.com/maheshrc27/postpilot/internal/queue"
	"github.com/maheshrc27/postpilot/internal/repository"
	"github.com/maheshrc27/postpilot/internal/scheduler"
	"github.com/maheshrc27/postpilot/internal/service"
	"github.com/robfig/cron/v3"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: time.Kitchen,
	})))

	db, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeDB(db)

	if err := db.Ping(); err != nil {
		log.Fatalf("Database is unreachable: %v", err)
	}

	redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI}
	client := asynq.NewClient(redisConn)
	defer client.Close()

	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		BodyLimit:    100 * 1024 * 1024, // 100 MB
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			slog.Error("unhandled error", "path", c.Path(), "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	app.Static("/uploads", cfg.UploadDir)

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	trendingService := service.NewTrendingService()
	aiService := service.NewAIService(cfg.OpenAI)
	r2Service := service.NewR2Service(*cfg)
	imageService := service.NewImageService(cfg.UploadDir, r2Service, cfg.R2.PublicURL)
	facebookService := service.NewFacebookService(*cfg)
	linkedinService := service.NewLinkedinService(*cfg)
	publisherService := service.NewPublisherService(*cfg, facebookService, linkedinService)
	generationService := service.NewGenerationService(userRepo, postRepo, analyticsRepo, trendingService, aiService, imageService, cfg.OpenAI.Model)
	postService := service.NewPostService(postRepo, userRepo, analyticsRepo, publisherService)
	platformService := service.NewPlatformService(*cfg, userRepo)

	sched := scheduler.New(userRepo, generationService)
	userService := service.NewUserService(*cfg, userRepo, aiService, sched)

	if err := sched.StartAll(context.Background()); err != nil {
		slog.Error("unable to restore user schedules", "error", err)
	}

	authMiddleware := middleware.NewAuthMiddleware(*cfg)

	app.Get("/api/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "timestamp": time.Now().UTC()})
	})

	user := handlers.NewUserHandler(*cfg, userService)
	app.Post("/api/users/register", user.Register)
	app.Post("/api/users/login", user.Login)

	api := app.Group("/api")
	api.Use(authMiddleware.AuthMiddleware())

	api.Get("/users/profile", user.GetProfile)
	api.Put("/users/profile", user.UpdateProfile)
	api.Post("/users/onboarding/complete", user.CompleteOnboarding)
	api.Post("/users/social-media/connect", user.ConnectSocial)
	api.Get("/users/profiling/questions", user.ProfilingQuestions)
	api.Post("/users/profiling/answers", user.SaveProfilingAnswers)

	platform := handlers.NewPlatformHandler(platformService)
	api.Get("/users/social-media/facebook/connect", platform.ConnectFacebook)
	api.Get("/users/social-media/facebook/callback", platform.FacebookCallback)

	post := handlers.NewPostHandler(generationService, postService, client)
	api.Post("/posts", post.GeneratePost)
	api.Get("/posts", post.ListPosts)
	api.Get("/posts/analytics/all", post.GetAnalytics)
	api.Get("/posts/:id", post.GetPost)
	api.Put("/posts/:id", post.UpdatePost)
	api.Post("/posts/:id/approve", post.ApprovePost)
	api.Delete("/posts/:id", post.RemovePost)

	image := handlers.NewImageHandler(imageService)
	api.Post("/images", image.UploadImage)
	api.Get("/images", image.ListImages)
	api.Get("/images/:filename/metadata", image.GetImageMetadata)
	api.Delete("/images/:filename", image.DeleteImage)

	schedulerHandler := handlers.NewSchedulerHandler(sched, userService)
	api.Post("/scheduler/start", schedulerHandler.StartScheduler)
	api.Post("/scheduler/stop", schedulerHandler.StopScheduler)
	api.Get("/scheduler/status", schedulerHandler.SchedulerStatus)

	// cron jobs
	engagementJob := job.NewEngagementSyncJob(*cfg, postRepo, userRepo, analyticsRepo, facebookService, linkedinService)

	c := cron.New()
	c.AddFunc("@every 30m", engagementJob.SyncEngagement)
	c.Start()

	//queue
	queueW := queue.NewQueue(postService)

	go func() {
		server := asynq.NewServer(redisConn, asynq.Config{
			Concurrency: 10,
		})

		mux := asynq.NewServeMux()
		mux.HandleFunc(queue.TaskTypePublishPost, queueW.HandlePublishPostTask)

		slog.Info("starting the asynq server")
		if err := server.Run(mux); err != nil {
			log.Fatalf("Could not start Asynq server: %v", err)
		}
	}()

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	slog.Info("server is running", "port", cfg.Port)

	gracefulShutdown(app, db, sched, c)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, db *sql.DB, sched *scheduler.Scheduler, c *cron.Cron) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	slog.Info("shutting down server")

	<-c.Stop().Done()
	sched.Shutdown()

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	closeDB(db)
	slog.Info("server shutdown complete")
}
