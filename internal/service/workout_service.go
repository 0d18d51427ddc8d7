package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cgarcia/trainlog-app/internal/domain"
	"cgarcia/trainlog-app/internal/repository"
)

// WorkoutService is the workout half of the program structure: managers
// create, rename and archive workouts for their clients; users list their
// own.
type WorkoutService interface {
	CreateWorkout(ctx context.Context, managerID, userID int64, name string, mesocycleID *int64) (int64, error)
	// ListMyWorkouts returns the user's active workouts, newest first.
	ListMyWorkouts(ctx context.Context, userID int64) ([]domain.Workout, error)
	// ListForManager returns the manager view of one client's active
	// workouts (client email, active-exercise counts). An empty result is
	// ErrNotFound, matching the adapter's 404 for empty manager listings.
	ListForManager(ctx context.Context, managerID, userID int64) ([]domain.ManagerWorkout, error)
	RenameWorkout(ctx context.Context, managerID, workoutID int64, name string) (*domain.Workout, error)
	// ArchiveWorkout soft-deletes the workout and all its active exercises
	// atomically. Archiving an archived workout is a no-op success.
	ArchiveWorkout(ctx context.Context, managerID, workoutID int64) error
}

type workoutService struct {
	userRepo      repository.UserRepository
	workoutRepo   repository.WorkoutRepository
	mesocycleRepo repository.MesocycleRepository
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(
	userRepo repository.UserRepository,
	workoutRepo repository.WorkoutRepository,
	mesocycleRepo repository.MesocycleRepository,
) WorkoutService {
	return &workoutService{
		userRepo:      userRepo,
		workoutRepo:   workoutRepo,
		mesocycleRepo: mesocycleRepo,
	}
}

func (s *workoutService) CreateWorkout(ctx context.Context, managerID, userID int64, name string, mesocycleID *int64) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, validationf("workout name cannot be blank")
	}

	if _, err := s.userRepo.GetManagedClient(ctx, userID, managerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrClientNotManaged
		}
		return 0, internalf("fetch client: %v", err)
	}

	if mesocycleID != nil {
		if _, err := s.mesocycleRepo.GetForUser(ctx, *mesocycleID, userID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return 0, validationf("mesocycle does not belong to this user")
			}
			return 0, internalf("fetch mesocycle: %v", err)
		}
	}

	id, err := s.workoutRepo.Create(ctx, &domain.Workout{
		Name:        name,
		UserID:      userID,
		ManagerID:   managerID,
		MesocycleID: mesocycleID,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return 0, ErrWorkoutNameTaken
		}
		return 0, internalf("create workout: %v", err)
	}
	return id, nil
}

func (s *workoutService) ListMyWorkouts(ctx context.Context, userID int64) ([]domain.Workout, error) {
	workouts, err := s.workoutRepo.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, internalf("list workouts: %v", err)
	}
	return workouts, nil
}

func (s *workoutService) ListForManager(ctx context.Context, managerID, userID int64) ([]domain.ManagerWorkout, error) {
	workouts, err := s.workoutRepo.ListForManager(ctx, userID, managerID)
	if err != nil {
		return nil, internalf("list manager workouts: %v", err)
	}
	if len(workouts) == 0 {
		return nil, fmt.Errorf("%w: no workouts for this user", ErrNotFound)
	}
	return workouts, nil
}

func (s *workoutService) RenameWorkout(ctx context.Context, managerID, workoutID int64, name string) (*domain.Workout, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationf("workout name cannot be blank")
	}

	workout, err := s.workoutRepo.GetActiveOwnedByManager(ctx, workoutID, managerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotOwned
		}
		return nil, internalf("fetch workout: %v", err)
	}

	if err := s.workoutRepo.Rename(ctx, workoutID, name); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrWorkoutNameTaken
		case errors.Is(err, repository.ErrNotFound):
			// Archived between the ownership check and the write.
			return nil, ErrWorkoutNotOwned
		}
		return nil, internalf("rename workout: %v", err)
	}
	workout.Name = name
	return workout, nil
}

func (s *workoutService) ArchiveWorkout(ctx context.Context, managerID, workoutID int64) error {
	workout, err := s.workoutRepo.GetOwnedByManager(ctx, workoutID, managerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrWorkoutNotOwned
		}
		return internalf("fetch workout: %v", err)
	}
	if workout.Archived() {
		return nil
	}
	if err := s.workoutRepo.ArchiveCascade(ctx, workoutID); err != nil {
		return internalf("archive workout: %v", err)
	}
	return nil
}
