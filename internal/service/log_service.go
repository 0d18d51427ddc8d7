package service

import (
	"context"
	"errors"
	"time"

	"cgarcia/trainlog-app/internal/domain"
	"cgarcia/trainlog-app/internal/repository"
)

// logDateLayout is the wire format for log dates. Entries carry a day, not a
// timestamp; they are stored at a fixed midday time-of-day so ordering within
// a day falls back to insertion order.
const logDateLayout = "2006-01-02"

// LogInput carries a log mutation. Date is optional on create ("" means now)
// and required on update.
type LogInput struct {
	Weight int
	Reps   int
	Date   string // YYYY-MM-DD
}

// LogService is the append-mostly ledger of performed sets. Entries are keyed
// by movement, not by the programmed exercise, so history survives exercise
// archival and recreation.
type LogService interface {
	AddLog(ctx context.Context, userID, exerciseID int64, in LogInput) (int64, error)
	// ListLogs returns every entry for the exercise's movement, newest first.
	ListLogs(ctx context.Context, userID, exerciseID int64) ([]domain.ExerciseLog, error)
	// LastLog returns the most recent entry for the exercise's movement, or
	// nil when none exists.
	LastLog(ctx context.Context, userID, exerciseID int64) (*domain.ExerciseLog, error)
	UpdateLog(ctx context.Context, userID, logID int64, in LogInput) (*domain.ExerciseLog, error)
	DeleteLog(ctx context.Context, userID, logID int64) error
}

type logService struct {
	exerciseRepo repository.ExerciseRepository
	logRepo      repository.ExerciseLogRepository
	catalog      MovementCatalog
}

// NewLogService creates a new instance of logService.
func NewLogService(
	exerciseRepo repository.ExerciseRepository,
	logRepo repository.ExerciseLogRepository,
	catalog MovementCatalog,
) LogService {
	return &logService{
		exerciseRepo: exerciseRepo,
		logRepo:      logRepo,
		catalog:      catalog,
	}
}

func validateLogInput(in LogInput) error {
	if in.Weight < 0 {
		return validationf("weight cannot be negative")
	}
	if in.Reps <= 0 {
		return validationf("reps must be positive")
	}
	return nil
}

// parseLogDate accepts YYYY-MM-DD and pins the entry at 12:00 UTC.
func parseLogDate(s string) (time.Time, error) {
	d, err := time.Parse(logDateLayout, s)
	if err != nil {
		return time.Time{}, validationf("date must be YYYY-MM-DD")
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 12, 0, 0, 0, time.UTC), nil
}

// ownedExercise fetches the exercise through the user's ownership chain and
// guarantees it has a movement, back-filling movement_id on rows that predate
// movement tracking.
func (s *logService) ownedExercise(ctx context.Context, userID, exerciseID int64) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetOwnedByUser(ctx, exerciseID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotOfUser
		}
		return nil, internalf("fetch exercise: %v", err)
	}
	if exercise.MovementID == 0 {
		movementID, err := s.catalog.ResolveOrCreate(ctx, userID, exercise.Name)
		if err != nil {
			return nil, err
		}
		if err := s.exerciseRepo.SetMovement(ctx, exerciseID, movementID); err != nil {
			return nil, internalf("backfill movement: %v", err)
		}
		exercise.MovementID = movementID
	}
	return exercise, nil
}

func (s *logService) AddLog(ctx context.Context, userID, exerciseID int64, in LogInput) (int64, error) {
	if err := validateLogInput(in); err != nil {
		return 0, err
	}
	var date time.Time
	if in.Date != "" {
		var err error
		if date, err = parseLogDate(in.Date); err != nil {
			return 0, err
		}
	}

	exercise, err := s.ownedExercise(ctx, userID, exerciseID)
	if err != nil {
		return 0, err
	}

	id, err := s.logRepo.Create(ctx, &domain.ExerciseLog{
		Weight:     in.Weight,
		Reps:       in.Reps,
		Date:       date,
		UserID:     userID,
		ExerciseID: exerciseID,
		MovementID: exercise.MovementID,
	})
	if err != nil {
		return 0, internalf("create log: %v", err)
	}
	return id, nil
}

func (s *logService) ListLogs(ctx context.Context, userID, exerciseID int64) ([]domain.ExerciseLog, error) {
	exercise, err := s.ownedExercise(ctx, userID, exerciseID)
	if err != nil {
		return nil, err
	}
	logs, err := s.logRepo.ListByMovement(ctx, exercise.MovementID, userID)
	if err != nil {
		return nil, internalf("list logs: %v", err)
	}
	return logs, nil
}

func (s *logService) LastLog(ctx context.Context, userID, exerciseID int64) (*domain.ExerciseLog, error) {
	exercise, err := s.ownedExercise(ctx, userID, exerciseID)
	if err != nil {
		return nil, err
	}
	last, err := s.logRepo.LastByMovement(ctx, exercise.MovementID, userID)
	if err != nil {
		return nil, internalf("last log: %v", err)
	}
	return last, nil
}

func (s *logService) UpdateLog(ctx context.Context, userID, logID int64, in LogInput) (*domain.ExerciseLog, error) {
	if err := validateLogInput(in); err != nil {
		return nil, err
	}
	if in.Date == "" {
		return nil, validationf("date must be YYYY-MM-DD")
	}
	date, err := parseLogDate(in.Date)
	if err != nil {
		return nil, err
	}

	log, err := s.logRepo.GetOwnedByUser(ctx, logID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLogNotOwned
		}
		return nil, internalf("fetch log: %v", err)
	}

	log.Weight = in.Weight
	log.Reps = in.Reps
	log.Date = date
	if err := s.logRepo.Update(ctx, log); err != nil {
		return nil, internalf("update log: %v", err)
	}
	return log, nil
}

func (s *logService) DeleteLog(ctx context.Context, userID, logID int64) error {
	if _, err := s.logRepo.GetOwnedByUser(ctx, logID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrLogNotOwned
		}
		return internalf("fetch log: %v", err)
	}
	if err := s.logRepo.Delete(ctx, logID); err != nil {
		return internalf("delete log: %v", err)
	}
	return nil
}
