package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"cgarcia/trainlog-app/internal/domain"
	"cgarcia/trainlog-app/internal/service"
)

// LogHandler exposes the user-side log ledger.
type LogHandler struct {
	logService service.LogService
}

// NewLogHandler creates a new LogHandler.
func NewLogHandler(logService service.LogService) *LogHandler {
	return &LogHandler{logService: logService}
}

type AddLogRequest struct {
	ExerciseID int64  `json:"exerciseId" binding:"required"`
	Weight     *int   `json:"weight" binding:"required"`
	Reps       int    `json:"reps" binding:"required"`
	Date       string `json:"date"` // optional YYYY-MM-DD, defaults to today
}

type UpdateLogRequest struct {
	Weight *int   `json:"weight" binding:"required"`
	Reps   int    `json:"reps" binding:"required"`
	Date   string `json:"date" binding:"required"`
}

// LogResponse renders the entry's date back in day precision.
type LogResponse struct {
	ID     int64  `json:"id"`
	Weight int    `json:"weight"`
	Reps   int    `json:"reps"`
	Date   string `json:"date"`
}

func mapLogToResponse(l *domain.ExerciseLog) LogResponse {
	return LogResponse{
		ID:     l.ID,
		Weight: l.Weight,
		Reps:   l.Reps,
		Date:   l.Date.Format("2006-01-02"),
	}
}

// AddLog appends a performed-set entry for one of the caller's exercises.
func (h *LogHandler) AddLog(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req AddLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	id, err := h.logService.AddLog(c.Request.Context(), userID, req.ExerciseID, service.LogInput{
		Weight: *req.Weight,
		Reps:   req.Reps,
		Date:   req.Date,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "log created", "id": id})
}

// GetLogs lists every entry for the exercise's movement, newest first.
func (h *LogHandler) GetLogs(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	exerciseID, ok := pathID(c, "exerciseId")
	if !ok {
		return
	}

	logs, err := h.logService.ListLogs(c.Request.Context(), userID, exerciseID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	responses := make([]LogResponse, 0, len(logs))
	for i := range logs {
		responses = append(responses, mapLogToResponse(&logs[i]))
	}
	c.JSON(http.StatusOK, gin.H{"data": responses})
}

// GetLastLog returns the most recent entry for the exercise's movement, or
// an empty body when the user has never logged it.
func (h *LogHandler) GetLastLog(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	exerciseID, ok := pathID(c, "exerciseId")
	if !ok {
		return
	}

	last, err := h.logService.LastLog(c.Request.Context(), userID, exerciseID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if last == nil {
		c.JSON(http.StatusOK, gin.H{"data": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": mapLogToResponse(last)})
}

// UpdateLog replaces an entry's weight, reps and date.
func (h *LogHandler) UpdateLog(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	logID, ok := pathID(c, "logId")
	if !ok {
		return
	}

	var req UpdateLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	log, err := h.logService.UpdateLog(c.Request.Context(), userID, logID, service.LogInput{
		Weight: *req.Weight,
		Reps:   req.Reps,
		Date:   req.Date,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "log updated", "data": mapLogToResponse(log)})
}

// DeleteLog removes an entry.
func (h *LogHandler) DeleteLog(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	logID, ok := pathID(c, "logId")
	if !ok {
		return
	}

	if err := h.logService.DeleteLog(c.Request.Context(), userID, logID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "log deleted"})
}
