package service

import (
	"context"
	"errors"

	"cgarcia/trainlog-app/internal/domain"
	"cgarcia/trainlog-app/internal/repository"
)

// DashboardService assembles the training view: active workouts with their
// ordered active exercises, each carrying the most recent log of its
// movement.
type DashboardService interface {
	// UserDashboard returns the caller's own dashboard, optionally filtered
	// to one mesocycle or to workouts not assigned to any.
	UserDashboard(ctx context.Context, userID int64, filter *domain.MesocycleFilter) ([]domain.DashboardWorkout, error)
	// ManagerDashboard returns a client's dashboard; the client must belong
	// to the manager.
	ManagerDashboard(ctx context.Context, managerID, userID int64, filter *domain.MesocycleFilter) ([]domain.DashboardWorkout, error)
}

type dashboardService struct {
	userRepo    repository.UserRepository
	workoutRepo repository.WorkoutRepository
}

// NewDashboardService creates a new instance of dashboardService.
func NewDashboardService(userRepo repository.UserRepository, workoutRepo repository.WorkoutRepository) DashboardService {
	return &dashboardService{userRepo: userRepo, workoutRepo: workoutRepo}
}

func (s *dashboardService) UserDashboard(ctx context.Context, userID int64, filter *domain.MesocycleFilter) ([]domain.DashboardWorkout, error) {
	dashboard, err := s.workoutRepo.Dashboard(ctx, userID, filter)
	if err != nil {
		return nil, internalf("assemble dashboard: %v", err)
	}
	return dashboard, nil
}

func (s *dashboardService) ManagerDashboard(ctx context.Context, managerID, userID int64, filter *domain.MesocycleFilter) ([]domain.DashboardWorkout, error) {
	if _, err := s.userRepo.GetManagedClient(ctx, userID, managerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotManaged
		}
		return nil, internalf("fetch client: %v", err)
	}
	return s.UserDashboard(ctx, userID, filter)
}
