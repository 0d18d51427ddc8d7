package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"cgarcia/trainlog-app/internal/domain"
	"cgarcia/trainlog-app/internal/service"
)

// UserHandler exposes the manager roster operations plus the caller profile.
type UserHandler struct {
	managerService service.ManagerService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(managerService service.ManagerService) *UserHandler {
	return &UserHandler{managerService: managerService}
}

type RegisterClientRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type UpdateClientRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=8"`
}

// RegisterClient creates a client account owned by the calling manager.
func (h *UserHandler) RegisterClient(c *gin.Context) {
	managerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req RegisterClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	client, err := h.managerService.RegisterClient(c.Request.Context(), managerID, req.Name, req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapUserToResponse(client))
}

// GetClients lists the calling manager's clients.
func (h *UserHandler) GetClients(c *gin.Context) {
	managerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	clients, err := h.managerService.GetClients(c.Request.Context(), managerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	responses := make([]UserResponse, 0, len(clients))
	for i := range clients {
		responses = append(responses, MapUserToResponse(&clients[i]))
	}
	c.JSON(http.StatusOK, gin.H{"data": responses})
}

// GetManagerClients returns the roster summaries: one row per client with
// active workout count and last activity.
func (h *UserHandler) GetManagerClients(c *gin.Context) {
	managerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	summaries, err := h.managerService.ClientSummaries(c.Request.Context(), managerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": summaries})
}

// UpdateClient applies a partial profile update to a managed client.
func (h *UserHandler) UpdateClient(c *gin.Context) {
	managerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	client, err := h.managerService.UpdateClient(c.Request.Context(), managerID, userID, domain.ClientPatch{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": MapUserToResponse(client)})
}

// DeleteClient removes a managed client and all of their data.
func (h *UserHandler) DeleteClient(c *gin.Context) {
	managerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	if err := h.managerService.DeleteClient(c.Request.Context(), managerID, userID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "client deleted"})
}

// GetProfile echoes the authenticated identity from the token claims.
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	role, err := getUserRoleFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user role from token")
		return
	}
	c.JSON(http.StatusOK, gin.H{"userId": userID, "role": role})
}
