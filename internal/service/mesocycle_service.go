package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cgarcia/trainlog-app/internal/domain"
	"cgarcia/trainlog-app/internal/repository"
)

// MesocycleInput carries the full mesocycle definition; updates replace every
// field.
type MesocycleInput struct {
	Name      string
	Goal      string
	StartDate string // YYYY-MM-DD
	EndDate   string // YYYY-MM-DD
	Status    string
}

// MesocycleService manages training blocks. Blocks are created by the
// client's manager; both sides can list them and the workouts assigned to
// them.
type MesocycleService interface {
	CreateMesocycle(ctx context.Context, managerID, userID int64, in MesocycleInput) (int64, error)
	// ListByUser returns the caller's own mesocycles.
	ListByUser(ctx context.Context, userID int64) ([]domain.Mesocycle, error)
	// ListForManager returns a client's mesocycles after verifying the
	// client belongs to the manager.
	ListForManager(ctx context.Context, managerID, userID int64) ([]domain.Mesocycle, error)
	UpdateMesocycle(ctx context.Context, managerID, mesocycleID int64, in MesocycleInput) (*domain.Mesocycle, error)
	// DeleteMesocycle detaches the block's workouts and deletes it in one
	// transaction. Workouts and their history survive.
	DeleteMesocycle(ctx context.Context, managerID, mesocycleID int64) error
	// WorkoutsOfMesocycle returns the block's active workouts for its owner.
	WorkoutsOfMesocycle(ctx context.Context, userID, mesocycleID int64) ([]domain.Workout, error)
	// WorkoutsOfMesocycleForManager is the manager variant; the block must
	// belong to the named client and the client to the manager.
	WorkoutsOfMesocycleForManager(ctx context.Context, managerID, userID, mesocycleID int64) ([]domain.Workout, error)
}

type mesocycleService struct {
	userRepo      repository.UserRepository
	mesocycleRepo repository.MesocycleRepository
	workoutRepo   repository.WorkoutRepository
}

// NewMesocycleService creates a new instance of mesocycleService.
func NewMesocycleService(
	userRepo repository.UserRepository,
	mesocycleRepo repository.MesocycleRepository,
	workoutRepo repository.WorkoutRepository,
) MesocycleService {
	return &mesocycleService{
		userRepo:      userRepo,
		mesocycleRepo: mesocycleRepo,
		workoutRepo:   workoutRepo,
	}
}

func validateMesocycleInput(in *MesocycleInput) error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return validationf("mesocycle name cannot be blank")
	}
	in.Goal = strings.TrimSpace(in.Goal)
	if in.Goal == "" {
		return validationf("mesocycle goal cannot be blank")
	}
	start, err := time.Parse("2006-01-02", in.StartDate)
	if err != nil {
		return validationf("startDate must be YYYY-MM-DD")
	}
	end, err := time.Parse("2006-01-02", in.EndDate)
	if err != nil {
		return validationf("endDate must be YYYY-MM-DD")
	}
	if end.Before(start) {
		return validationf("endDate cannot precede startDate")
	}
	if !domain.ValidMesocycleStatus(domain.MesocycleStatus(in.Status)) {
		return validationf("status must be PLANNED, ACTIVE or COMPLETED")
	}
	return nil
}

func (s *mesocycleService) CreateMesocycle(ctx context.Context, managerID, userID int64, in MesocycleInput) (int64, error) {
	if err := validateMesocycleInput(&in); err != nil {
		return 0, err
	}
	if _, err := s.userRepo.GetManagedClient(ctx, userID, managerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrClientNotManaged
		}
		return 0, internalf("fetch client: %v", err)
	}

	id, err := s.mesocycleRepo.Create(ctx, &domain.Mesocycle{
		Name:      in.Name,
		Goal:      in.Goal,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Status:    domain.MesocycleStatus(in.Status),
		UserID:    userID,
	})
	if err != nil {
		return 0, internalf("create mesocycle: %v", err)
	}
	return id, nil
}

func (s *mesocycleService) ListByUser(ctx context.Context, userID int64) ([]domain.Mesocycle, error) {
	mesocycles, err := s.mesocycleRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, internalf("list mesocycles: %v", err)
	}
	return mesocycles, nil
}

func (s *mesocycleService) ListForManager(ctx context.Context, managerID, userID int64) ([]domain.Mesocycle, error) {
	if _, err := s.userRepo.GetManagedClient(ctx, userID, managerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotManaged
		}
		return nil, internalf("fetch client: %v", err)
	}
	return s.ListByUser(ctx, userID)
}

func (s *mesocycleService) UpdateMesocycle(ctx context.Context, managerID, mesocycleID int64, in MesocycleInput) (*domain.Mesocycle, error) {
	if err := validateMesocycleInput(&in); err != nil {
		return nil, err
	}
	mesocycle, err := s.mesocycleRepo.GetForManager(ctx, mesocycleID, managerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMesocycleNotOwned
		}
		return nil, internalf("fetch mesocycle: %v", err)
	}

	mesocycle.Name = in.Name
	mesocycle.Goal = in.Goal
	mesocycle.StartDate = in.StartDate
	mesocycle.EndDate = in.EndDate
	mesocycle.Status = domain.MesocycleStatus(in.Status)
	if err := s.mesocycleRepo.Update(ctx, mesocycle); err != nil {
		return nil, internalf("update mesocycle: %v", err)
	}
	return mesocycle, nil
}

func (s *mesocycleService) DeleteMesocycle(ctx context.Context, managerID, mesocycleID int64) error {
	if _, err := s.mesocycleRepo.GetForManager(ctx, mesocycleID, managerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMesocycleNotOwned
		}
		return internalf("fetch mesocycle: %v", err)
	}
	if err := s.mesocycleRepo.DeleteDetachingWorkouts(ctx, mesocycleID); err != nil {
		return internalf("delete mesocycle: %v", err)
	}
	return nil
}

func (s *mesocycleService) WorkoutsOfMesocycle(ctx context.Context, userID, mesocycleID int64) ([]domain.Workout, error) {
	if _, err := s.mesocycleRepo.GetForUser(ctx, mesocycleID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMesocycleNotOwned
		}
		return nil, internalf("fetch mesocycle: %v", err)
	}
	workouts, err := s.workoutRepo.ListActiveByMesocycle(ctx, userID, mesocycleID)
	if err != nil {
		return nil, internalf("list mesocycle workouts: %v", err)
	}
	return workouts, nil
}

func (s *mesocycleService) WorkoutsOfMesocycleForManager(ctx context.Context, managerID, userID, mesocycleID int64) ([]domain.Workout, error) {
	if _, err := s.userRepo.GetManagedClient(ctx, userID, managerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotManaged
		}
		return nil, internalf("fetch client: %v", err)
	}
	// The client-of-manager check already passed, so a miss here is not an
	// ownership breach: the block simply does not exist for this client.
	if _, err := s.mesocycleRepo.GetForUser(ctx, mesocycleID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: no mesocycle for this user", ErrNotFound)
		}
		return nil, internalf("fetch mesocycle: %v", err)
	}
	workouts, err := s.workoutRepo.ListActiveByMesocycle(ctx, userID, mesocycleID)
	if err != nil {
		return nil, internalf("list mesocycle workouts: %v", err)
	}
	return workouts, nil
}
