package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"cgarcia/trainlog-app/internal/domain"
	"cgarcia/trainlog-app/internal/repository"
	sqliterepo "cgarcia/trainlog-app/internal/repository/sqlite"
)

var testDBCounter atomic.Int64

// testEnv wires every service against a fresh in-memory database.
type testEnv struct {
	userRepo     repository.UserRepository
	movementRepo repository.MovementRepository
	exerciseRepo repository.ExerciseRepository
	workoutRepo  repository.WorkoutRepository
	logRepo      repository.ExerciseLogRepository

	catalog    MovementCatalog
	auth       AuthService
	managers   ManagerService
	workouts   WorkoutService
	exercises  ExerciseService
	logs       LogService
	mesocycles MesocycleService
	dashboards DashboardService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", testDBCounter.Add(1))
	db, err := sqliterepo.Open(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqliterepo.InitSchema(db))

	userRepo := sqliterepo.NewUserRepository(db)
	movementRepo := sqliterepo.NewMovementRepository(db)
	mesocycleRepo := sqliterepo.NewMesocycleRepository(db)
	workoutRepo := sqliterepo.NewWorkoutRepository(db)
	exerciseRepo := sqliterepo.NewExerciseRepository(db)
	logRepo := sqliterepo.NewExerciseLogRepository(db)

	catalog := NewMovementCatalog(movementRepo)
	return &testEnv{
		userRepo:     userRepo,
		movementRepo: movementRepo,
		exerciseRepo: exerciseRepo,
		workoutRepo:  workoutRepo,
		logRepo:      logRepo,
		catalog:      catalog,
		auth:         NewAuthService(userRepo, "test-secret", 0),
		managers:     NewManagerService(userRepo),
		workouts:     NewWorkoutService(userRepo, workoutRepo, mesocycleRepo),
		exercises:    NewExerciseService(userRepo, workoutRepo, exerciseRepo, movementRepo, catalog, true),
		logs:         NewLogService(exerciseRepo, logRepo, catalog),
		mesocycles:   NewMesocycleService(userRepo, mesocycleRepo, workoutRepo),
		dashboards:   NewDashboardService(userRepo, workoutRepo),
	}
}

func (e *testEnv) createManager(t *testing.T, email string) *domain.User {
	t.Helper()
	manager, err := e.auth.RegisterManager(context.Background(), "Manager "+email, email, "password123")
	require.NoError(t, err)
	return manager
}

func (e *testEnv) createClient(t *testing.T, managerID int64, email string) *domain.User {
	t.Helper()
	client, err := e.managers.RegisterClient(context.Background(), managerID, "Client "+email, email, "password123")
	require.NoError(t, err)
	return client
}

func (e *testEnv) createWorkout(t *testing.T, managerID, userID int64, name string) int64 {
	t.Helper()
	id, err := e.workouts.CreateWorkout(context.Background(), managerID, userID, name, nil)
	require.NoError(t, err)
	return id
}

func (e *testEnv) createExercise(t *testing.T, managerID, workoutID int64, name string, orderIndex int) int64 {
	t.Helper()
	id, err := e.exercises.CreateExercise(context.Background(), managerID, workoutID, ExerciseInput{
		Name:       name,
		Sets:       3,
		Reps:       10,
		OrderIndex: orderIndex,
	})
	require.NoError(t, err)
	return id
}

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }
func strPtr(v string) *string { return &v }
