package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"cgarcia/trainlog-app/internal/api"
	"cgarcia/trainlog-app/internal/config"
	sqliterepo "cgarcia/trainlog-app/internal/repository/sqlite"
	"cgarcia/trainlog-app/internal/service"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log.Info("Starting TrainLog server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}
	log.Info("Configuration loaded.")

	// --- Database ---
	db, err := sqliterepo.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Could not open database: %v", err)
	}
	defer func() {
		log.Info("Closing database...")
		if err := db.Close(); err != nil {
			log.Errorf("Failed to close database: %v", err)
		}
	}()

	if err := sqliterepo.InitSchema(db); err != nil {
		log.Fatalf("Could not initialize schema: %v", err)
	}
	log.Infof("Database ready at %s", cfg.Database.Path)

	// --- Repositories ---
	userRepo := sqliterepo.NewUserRepository(db)
	movementRepo := sqliterepo.NewMovementRepository(db)
	mesocycleRepo := sqliterepo.NewMesocycleRepository(db)
	workoutRepo := sqliterepo.NewWorkoutRepository(db)
	exerciseRepo := sqliterepo.NewExerciseRepository(db)
	logRepo := sqliterepo.NewExerciseLogRepository(db)

	// --- Services ---
	catalog := service.NewMovementCatalog(movementRepo)
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	managerService := service.NewManagerService(userRepo)
	workoutService := service.NewWorkoutService(userRepo, workoutRepo, mesocycleRepo)
	exerciseService := service.NewExerciseService(userRepo, workoutRepo, exerciseRepo, movementRepo, catalog, cfg.Program.RelinkMovementOnRename)
	logService := service.NewLogService(exerciseRepo, logRepo, catalog)
	mesocycleService := service.NewMesocycleService(userRepo, mesocycleRepo, workoutRepo)
	dashboardService := service.NewDashboardService(userRepo, workoutRepo)

	// --- HTTP ---
	router := gin.Default()
	api.SetupRoutes(
		router,
		cfg.JWT.Secret,
		authService,
		managerService,
		workoutService,
		exerciseService,
		logService,
		mesocycleService,
		dashboardService,
	)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Infof("Server listening on %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ListenAndServe error: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Info("Server exiting.")
}
