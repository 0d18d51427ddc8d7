package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"cgarcia/trainlog-app/internal/service"
)

// MesocycleHandler exposes training block CRUD and listings.
type MesocycleHandler struct {
	mesocycleService service.MesocycleService
}

// NewMesocycleHandler creates a new MesocycleHandler.
func NewMesocycleHandler(mesocycleService service.MesocycleService) *MesocycleHandler {
	return &MesocycleHandler{mesocycleService: mesocycleService}
}

type MesocycleRequest struct {
	Name      string `json:"name" binding:"required"`
	Goal      string `json:"goal"`
	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate" binding:"required"`
	Status    string `json:"status" binding:"required"`
}

type CreateMesocycleRequest struct {
	MesocycleRequest
	UserID int64 `json:"userId" binding:"required"`
}

func (r MesocycleRequest) toInput() service.MesocycleInput {
	return service.MesocycleInput{
		Name:      r.Name,
		Goal:      r.Goal,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		Status:    r.Status,
	}
}

// CreateMesocycle creates a training block for one of the manager's clients.
func (h *MesocycleHandler) CreateMesocycle(c *gin.Context) {
	managerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req CreateMesocycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	id, err := h.mesocycleService.CreateMesocycle(c.Request.Context(), managerID, req.UserID, req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "mesocycle created", "id": id})
}

// GetMyMesocycles lists the calling user's training blocks.
func (h *MesocycleHandler) GetMyMesocycles(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	mesocycles, err := h.mesocycleService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": mesocycles})
}

// GetMyMesocycleWorkouts lists the active workouts of one of the caller's
// blocks.
func (h *MesocycleHandler) GetMyMesocycleWorkouts(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	mesocycleID, ok := pathID(c, "mesocycleId")
	if !ok {
		return
	}

	workouts, err := h.mesocycleService.WorkoutsOfMesocycle(c.Request.Context(), userID, mesocycleID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": workouts})
}

// GetManagerUserMesocycles lists a client's training blocks for their
// manager.
func (h *MesocycleHandler) GetManagerUserMesocycles(c *gin.Context) {
	managerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	mesocycles, err := h.mesocycleService.ListForManager(c.Request.Context(), managerID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": mesocycles})
}

// GetManagerUserMesocycleWorkouts lists the active workouts in one block of
// one client.
func (h *MesocycleHandler) GetManagerUserMesocycleWorkouts(c *gin.Context) {
	managerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	mesocycleID, ok := pathID(c, "mesocycleId")
	if !ok {
		return
	}

	workouts, err := h.mesocycleService.WorkoutsOfMesocycleForManager(c.Request.Context(), managerID, userID, mesocycleID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": workouts})
}

// UpdateMesocycle replaces a block's definition.
func (h *MesocycleHandler) UpdateMesocycle(c *gin.Context) {
	managerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	mesocycleID, ok := pathID(c, "mesocycleId")
	if !ok {
		return
	}

	var req MesocycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	mesocycle, err := h.mesocycleService.UpdateMesocycle(c.Request.Context(), managerID, mesocycleID, req.toInput())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "mesocycle updated", "data": mesocycle})
}

// DeleteMesocycle deletes a block, detaching its workouts.
func (h *MesocycleHandler) DeleteMesocycle(c *gin.Context) {
	managerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	mesocycleID, ok := pathID(c, "mesocycleId")
	if !ok {
		return
	}

	if err := h.mesocycleService.DeleteMesocycle(c.Request.Context(), managerID, mesocycleID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "mesocycle deleted"})
}
