package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cgarcia/trainlog-app/internal/domain"
	"cgarcia/trainlog-app/internal/service"
)

// WorkoutHandler exposes workout CRUD plus the dashboard views.
type WorkoutHandler struct {
	workoutService   service.WorkoutService
	dashboardService service.DashboardService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService, dashboardService service.DashboardService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService, dashboardService: dashboardService}
}

type CreateWorkoutRequest struct {
	Name        string `json:"name" binding:"required"`
	UserID      int64  `json:"userId" binding:"required"`
	MesocycleID *int64 `json:"mesocycleId"`
}

type RenameWorkoutRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateWorkout creates a workout for one of the manager's clients.
func (h *WorkoutHandler) CreateWorkout(c *gin.Context) {
	managerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req CreateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	id, err := h.workoutService.CreateWorkout(c.Request.Context(), managerID, req.UserID, req.Name, req.MesocycleID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "workout created", "id": id})
}

// GetMyWorkouts lists the calling user's active workouts.
func (h *WorkoutHandler) GetMyWorkouts(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	workouts, err := h.workoutService.ListMyWorkouts(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": workouts})
}

// GetWorkoutsManager lists one client's active workouts with exercise counts.
func (h *WorkoutHandler) GetWorkoutsManager(c *gin.Context) {
	managerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	workouts, err := h.workoutService.ListForManager(c.Request.Context(), managerID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": workouts})
}

// mesocycleFilterFromQuery reads the optional ?mesocycleId= query parameter:
// absent means no filter, "unassigned" selects workouts outside any
// mesocycle, a number selects one block.
func mesocycleFilterFromQuery(c *gin.Context) (*domain.MesocycleFilter, bool) {
	raw, present := c.GetQuery("mesocycleId")
	if !present {
		return nil, true
	}
	if raw == "unassigned" {
		return &domain.MesocycleFilter{Unassigned: true}, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		abortWithError(c, http.StatusBadRequest, "invalid mesocycleId")
		return nil, false
	}
	return &domain.MesocycleFilter{MesocycleID: id}, true
}

// GetUserDashboard returns the calling user's dashboard.
func (h *WorkoutHandler) GetUserDashboard(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	filter, ok := mesocycleFilterFromQuery(c)
	if !ok {
		return
	}

	dashboard, err := h.dashboardService.UserDashboard(c.Request.Context(), userID, filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": dashboard})
}

// GetManagerDashboard returns a client's dashboard for their manager.
func (h *WorkoutHandler) GetManagerDashboard(c *gin.Context) {
	managerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	filter, ok := mesocycleFilterFromQuery(c)
	if !ok {
		return
	}

	dashboard, err := h.dashboardService.ManagerDashboard(c.Request.Context(), managerID, userID, filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": dashboard})
}

// UpdateWorkout renames a workout.
func (h *WorkoutHandler) UpdateWorkout(c *gin.Context) {
	managerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	workoutID, ok := pathID(c, "workoutId")
	if !ok {
		return
	}

	var req RenameWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	workout, err := h.workoutService.RenameWorkout(c.Request.Context(), managerID, workoutID, req.Name)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "workout updated", "data": workout})
}

// DeleteWorkout archives a workout and its exercises.
func (h *WorkoutHandler) DeleteWorkout(c *gin.Context) {
	managerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	workoutID, ok := pathID(c, "workoutId")
	if !ok {
		return
	}

	if err := h.workoutService.ArchiveWorkout(c.Request.Context(), managerID, workoutID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "workout archived"})
}
