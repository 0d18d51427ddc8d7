package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"cgarcia/trainlog-app/internal/domain"
	"cgarcia/trainlog-app/internal/service"
)

// ExerciseHandler exposes exercise programming and movement autocomplete.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

type CreateExerciseRequest struct {
	Name       string `json:"name" binding:"required"`
	Sets       int    `json:"sets" binding:"required"`
	Reps       int    `json:"reps" binding:"required"`
	RIR        *int   `json:"rir"`
	RMPercent  *int   `json:"rmPercent"`
	OrderIndex int    `json:"orderIndex" binding:"required"`
	WorkoutID  int64  `json:"workoutId" binding:"required"`
	MovementID *int64 `json:"movementId"`
}

type UpdateExerciseRequest struct {
	Name       *string `json:"name"`
	Sets       *int    `json:"sets"`
	Reps       *int    `json:"reps"`
	RIR        *int    `json:"rir"`
	RMPercent  *int    `json:"rmPercent"`
	OrderIndex *int    `json:"orderIndex"`
	MovementID *int64  `json:"movementId"`
}

// AddExercise programs an exercise into a workout.
func (h *ExerciseHandler) AddExercise(c *gin.Context) {
	managerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req CreateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	id, err := h.exerciseService.CreateExercise(c.Request.Context(), managerID, req.WorkoutID, service.ExerciseInput{
		Name:       req.Name,
		Sets:       req.Sets,
		Reps:       req.Reps,
		RIR:        req.RIR,
		RMPercent:  req.RMPercent,
		OrderIndex: req.OrderIndex,
		MovementID: req.MovementID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "exercise created", "id": id})
}

// GetExercises lists a workout's active exercises in display order.
func (h *ExerciseHandler) GetExercises(c *gin.Context) {
	callerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	role, err := getUserRoleFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user role from token")
		return
	}
	workoutID, ok := pathID(c, "workoutId")
	if !ok {
		return
	}

	exercises, err := h.exerciseService.ListByWorkout(c.Request.Context(), callerID, workoutID, role == domain.RoleManager)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": exercises})
}

// UpdateExercise applies a partial update to an exercise.
func (h *ExerciseHandler) UpdateExercise(c *gin.Context) {
	managerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	exerciseID, ok := pathID(c, "exerciseId")
	if !ok {
		return
	}

	var req UpdateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	exercise, err := h.exerciseService.UpdateExercise(c.Request.Context(), managerID, exerciseID, domain.ExercisePatch{
		Name:       req.Name,
		Sets:       req.Sets,
		Reps:       req.Reps,
		RIR:        req.RIR,
		RMPercent:  req.RMPercent,
		OrderIndex: req.OrderIndex,
		MovementID: req.MovementID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "exercise updated", "data": exercise})
}

// DeleteExercise archives an exercise.
func (h *ExerciseHandler) DeleteExercise(c *gin.Context) {
	managerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	exerciseID, ok := pathID(c, "exerciseId")
	if !ok {
		return
	}

	if err := h.exerciseService.ArchiveExercise(c.Request.Context(), managerID, exerciseID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "exercise archived"})
}

// GetMovementSuggestions autocompletes movement names from a client's
// catalog. The ?q= query is matched against normalized names.
func (h *ExerciseHandler) GetMovementSuggestions(c *gin.Context) {
	managerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	movements, err := h.exerciseService.SuggestMovements(c.Request.Context(), managerID, userID, c.Query("q"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": movements})
}
