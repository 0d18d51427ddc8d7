package service

import (
	"context"
	"errors"
	"strings"

	"cgarcia/trainlog-app/internal/domain"
	"cgarcia/trainlog-app/internal/repository"
)

// ExerciseInput carries the fields a manager supplies when programming an
// exercise. MovementID is optional; when nil the movement is resolved from
// the exercise name through the catalog.
type ExerciseInput struct {
	Name       string
	Sets       int
	Reps       int
	RIR        *int
	RMPercent  *int
	OrderIndex int
	MovementID *int64
}

// ExerciseService manages the programmed exercises inside workouts. All
// mutations are manager-side and ownership-checked through the workout;
// reads are available to the owning user as well.
type ExerciseService interface {
	CreateExercise(ctx context.Context, managerID, workoutID int64, in ExerciseInput) (int64, error)
	// ListByWorkout returns the workout's active exercises in order_index
	// order. The caller may be the owning manager or the owning user.
	ListByWorkout(ctx context.Context, callerID, workoutID int64, callerIsManager bool) ([]domain.Exercise, error)
	UpdateExercise(ctx context.Context, managerID, exerciseID int64, patch domain.ExercisePatch) (*domain.Exercise, error)
	// ArchiveExercise soft-deletes the exercise; archiving an archived
	// exercise is a no-op success.
	ArchiveExercise(ctx context.Context, managerID, exerciseID int64) error
	// SuggestMovements autocompletes movement names from the client's
	// catalog; the client must belong to the manager.
	SuggestMovements(ctx context.Context, managerID, userID int64, query string) ([]domain.Movement, error)
}

type exerciseService struct {
	userRepo     repository.UserRepository
	workoutRepo  repository.WorkoutRepository
	exerciseRepo repository.ExerciseRepository
	movementRepo repository.MovementRepository
	catalog      MovementCatalog
	// relinkOnRename re-resolves the movement when an exercise is renamed,
	// so future logs land under the new name's movement. When false the
	// original movement link is kept across renames.
	relinkOnRename bool
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(
	userRepo repository.UserRepository,
	workoutRepo repository.WorkoutRepository,
	exerciseRepo repository.ExerciseRepository,
	movementRepo repository.MovementRepository,
	catalog MovementCatalog,
	relinkOnRename bool,
) ExerciseService {
	return &exerciseService{
		userRepo:       userRepo,
		workoutRepo:    workoutRepo,
		exerciseRepo:   exerciseRepo,
		movementRepo:   movementRepo,
		catalog:        catalog,
		relinkOnRename: relinkOnRename,
	}
}

func validatePrescription(sets, reps, orderIndex int, rir, rmPercent *int) error {
	if sets <= 0 {
		return validationf("sets must be positive")
	}
	if reps <= 0 {
		return validationf("reps must be positive")
	}
	if orderIndex <= 0 {
		return validationf("orderIndex must be positive")
	}
	if rir != nil && (*rir < 0 || *rir > 10) {
		return validationf("rir must be between 0 and 10")
	}
	if rmPercent != nil && (*rmPercent < 1 || *rmPercent > 100) {
		return validationf("rmPercent must be between 1 and 100")
	}
	return nil
}

// resolveMovement turns the input's movement reference into a concrete
// movement id for userID: an explicit id must exist in the user's catalog,
// otherwise the name is resolved (creating the movement on first use).
func (s *exerciseService) resolveMovement(ctx context.Context, userID int64, name string, movementID *int64) (int64, error) {
	if movementID != nil {
		if _, err := s.movementRepo.GetByIDForUser(ctx, *movementID, userID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return 0, validationf("movement does not belong to this user")
			}
			return 0, internalf("fetch movement: %v", err)
		}
		return *movementID, nil
	}
	return s.catalog.ResolveOrCreate(ctx, userID, name)
}

func (s *exerciseService) CreateExercise(ctx context.Context, managerID, workoutID int64, in ExerciseInput) (int64, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return 0, validationf("exercise name cannot be blank")
	}
	if err := validatePrescription(in.Sets, in.Reps, in.OrderIndex, in.RIR, in.RMPercent); err != nil {
		return 0, err
	}

	workout, err := s.workoutRepo.GetActiveOwnedByManager(ctx, workoutID, managerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrWorkoutNotOwned
		}
		return 0, internalf("fetch workout: %v", err)
	}

	movementID, err := s.resolveMovement(ctx, workout.UserID, in.Name, in.MovementID)
	if err != nil {
		return 0, err
	}

	id, err := s.exerciseRepo.Create(ctx, &domain.Exercise{
		Name:       in.Name,
		Sets:       in.Sets,
		Reps:       in.Reps,
		RIR:        in.RIR,
		RMPercent:  in.RMPercent,
		OrderIndex: in.OrderIndex,
		WorkoutID:  workoutID,
		MovementID: movementID,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return 0, ErrOrderIndexTaken
		case errors.Is(err, repository.ErrNotFound):
			// Archived between the ownership check and the insert.
			return 0, ErrWorkoutNotOwned
		}
		return 0, internalf("create exercise: %v", err)
	}
	return id, nil
}

func (s *exerciseService) ListByWorkout(ctx context.Context, callerID, workoutID int64, callerIsManager bool) ([]domain.Exercise, error) {
	var err error
	if callerIsManager {
		_, err = s.workoutRepo.GetOwnedByManager(ctx, workoutID, callerID)
	} else {
		err = s.workoutOwnedByUser(ctx, workoutID, callerID)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotOwned
		}
		return nil, internalf("fetch workout: %v", err)
	}

	exercises, err := s.exerciseRepo.ListActiveByWorkout(ctx, workoutID)
	if err != nil {
		return nil, internalf("list exercises: %v", err)
	}
	return exercises, nil
}

// workoutOwnedByUser checks workout ownership from the client side. Users
// only ever see active workouts, so the active listing doubles as the check.
func (s *exerciseService) workoutOwnedByUser(ctx context.Context, workoutID, userID int64) error {
	workouts, err := s.workoutRepo.ListActiveByUser(ctx, userID)
	if err != nil {
		return err
	}
	for _, w := range workouts {
		if w.ID == workoutID {
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *exerciseService) UpdateExercise(ctx context.Context, managerID, exerciseID int64, patch domain.ExercisePatch) (*domain.Exercise, error) {
	if patch.IsEmpty() {
		return nil, validationf("no fields to update")
	}

	exercise, userID, err := s.exerciseRepo.GetOwnedByManager(ctx, exerciseID, managerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotOwned
		}
		return nil, internalf("fetch exercise: %v", err)
	}
	if exercise.Archived() {
		return nil, validationf("exercise is archived")
	}

	renamed := false
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, validationf("exercise name cannot be blank")
		}
		renamed = name != exercise.Name
		exercise.Name = name
	}
	if patch.Sets != nil {
		exercise.Sets = *patch.Sets
	}
	if patch.Reps != nil {
		exercise.Reps = *patch.Reps
	}
	if patch.RIR != nil {
		exercise.RIR = patch.RIR
	}
	if patch.RMPercent != nil {
		exercise.RMPercent = patch.RMPercent
	}
	if patch.OrderIndex != nil {
		exercise.OrderIndex = *patch.OrderIndex
	}
	if err := validatePrescription(exercise.Sets, exercise.Reps, exercise.OrderIndex, exercise.RIR, exercise.RMPercent); err != nil {
		return nil, err
	}

	switch {
	case patch.MovementID != nil:
		id, err := s.resolveMovement(ctx, userID, exercise.Name, patch.MovementID)
		if err != nil {
			return nil, err
		}
		exercise.MovementID = id
	case renamed && s.relinkOnRename:
		id, err := s.catalog.ResolveOrCreate(ctx, userID, exercise.Name)
		if err != nil {
			return nil, err
		}
		exercise.MovementID = id
	}

	if err := s.exerciseRepo.Update(ctx, exercise); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrOrderIndexTaken
		case errors.Is(err, repository.ErrNotFound):
			// Archived between the ownership check and the write.
			return nil, ErrExerciseNotOwned
		}
		return nil, internalf("update exercise: %v", err)
	}
	return exercise, nil
}

func (s *exerciseService) ArchiveExercise(ctx context.Context, managerID, exerciseID int64) error {
	exercise, _, err := s.exerciseRepo.GetOwnedByManager(ctx, exerciseID, managerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExerciseNotOwned
		}
		return internalf("fetch exercise: %v", err)
	}
	if exercise.Archived() {
		return nil
	}
	if err := s.exerciseRepo.Archive(ctx, exerciseID); err != nil {
		return internalf("archive exercise: %v", err)
	}
	return nil
}

func (s *exerciseService) SuggestMovements(ctx context.Context, managerID, userID int64, query string) ([]domain.Movement, error) {
	if _, err := s.userRepo.GetManagedClient(ctx, userID, managerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotManaged
		}
		return nil, internalf("fetch client: %v", err)
	}
	return s.catalog.Suggest(ctx, userID, query)
}
