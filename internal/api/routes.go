package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cgarcia/trainlog-app/internal/domain"
	"cgarcia/trainlog-app/internal/service"
)

// SetupRoutes wires the full HTTP surface. Mutations on program structure are
// manager-only; the log ledger is user-only; listings split by role.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	managerService service.ManagerService,
	workoutService service.WorkoutService,
	exerciseService service.ExerciseService,
	logService service.LogService,
	mesocycleService service.MesocycleService,
	dashboardService service.DashboardService,
) {
	authHandler := NewAuthHandler(authService)
	userHandler := NewUserHandler(managerService)
	workoutHandler := NewWorkoutHandler(workoutService, dashboardService)
	exerciseHandler := NewExerciseHandler(exerciseService)
	logHandler := NewLogHandler(logService)
	mesocycleHandler := NewMesocycleHandler(mesocycleService)

	authMiddleware := AuthMiddleware(jwtSecret)
	managerOnly := RoleMiddleware(domain.RoleManager)
	userOnly := RoleMiddleware(domain.RoleUser)

	router.Use(RequestIDMiddleware())

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")

	authGroup := apiV1.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		userGroup := protected.Group("/users")
		{
			userGroup.POST("", managerOnly, userHandler.RegisterClient)
			userGroup.GET("/clients", managerOnly, userHandler.GetClients)
			userGroup.GET("/manager/clients", managerOnly, userHandler.GetManagerClients)
			userGroup.GET("/profile", userHandler.GetProfile)
			userGroup.PUT("/:userId", managerOnly, userHandler.UpdateClient)
			userGroup.DELETE("/:userId", managerOnly, userHandler.DeleteClient)
		}

		workoutGroup := protected.Group("/workouts")
		{
			workoutGroup.POST("", managerOnly, workoutHandler.CreateWorkout)
			workoutGroup.GET("/my", userOnly, workoutHandler.GetMyWorkouts)
			workoutGroup.GET("/user/:userId", managerOnly, workoutHandler.GetWorkoutsManager)
			workoutGroup.GET("/dashboard", userOnly, workoutHandler.GetUserDashboard)
			workoutGroup.GET("/manager/:userId/dashboard", managerOnly, workoutHandler.GetManagerDashboard)
			workoutGroup.PUT("/:workoutId", managerOnly, workoutHandler.UpdateWorkout)
			workoutGroup.DELETE("/:workoutId", managerOnly, workoutHandler.DeleteWorkout)
		}

		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.GET("/movements/:userId", managerOnly, exerciseHandler.GetMovementSuggestions)
			exerciseGroup.POST("", managerOnly, exerciseHandler.AddExercise)
			exerciseGroup.GET("/:workoutId", exerciseHandler.GetExercises)
			exerciseGroup.PUT("/:exerciseId", managerOnly, exerciseHandler.UpdateExercise)
			exerciseGroup.DELETE("/:exerciseId", managerOnly, exerciseHandler.DeleteExercise)
		}

		logGroup := protected.Group("/logs")
		logGroup.Use(userOnly)
		{
			logGroup.POST("", logHandler.AddLog)
			logGroup.GET("/:exerciseId", logHandler.GetLogs)
			logGroup.GET("/:exerciseId/last", logHandler.GetLastLog)
			logGroup.PUT("/:logId", logHandler.UpdateLog)
			logGroup.DELETE("/:logId", logHandler.DeleteLog)
		}

		mesocycleGroup := protected.Group("/mesocycles")
		{
			mesocycleGroup.POST("", managerOnly, mesocycleHandler.CreateMesocycle)
			mesocycleGroup.GET("/my", userOnly, mesocycleHandler.GetMyMesocycles)
			mesocycleGroup.GET("/my/:mesocycleId/workouts", userOnly, mesocycleHandler.GetMyMesocycleWorkouts)
			mesocycleGroup.GET("/user/:userId", managerOnly, mesocycleHandler.GetManagerUserMesocycles)
			mesocycleGroup.GET("/user/:userId/:mesocycleId/workouts", managerOnly, mesocycleHandler.GetManagerUserMesocycleWorkouts)
			mesocycleGroup.PUT("/:mesocycleId", managerOnly, mesocycleHandler.UpdateMesocycle)
			mesocycleGroup.DELETE("/:mesocycleId", managerOnly, mesocycleHandler.DeleteMesocycle)
		}
	}
}
