package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateWorkout(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	manager := env.createManager(t, "coach@example.com")
	other := env.createManager(t, "other@example.com")
	client := env.createClient(t, manager.ID, "ana@example.com")

	_, err := env.workouts.CreateWorkout(ctx, manager.ID, client.ID, "  ", nil)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.workouts.CreateWorkout(ctx, other.ID, client.ID, "Día 1", nil)
	assert.ErrorIs(t, err, ErrClientNotManaged)

	id, err := env.workouts.CreateWorkout(ctx, manager.ID, client.ID, "Día 1", nil)
	require.NoError(t, err)
	require.NotZero(t, id)

	// Duplicate active name for the same user conflicts.
	_, err = env.workouts.CreateWorkout(ctx, manager.ID, client.ID, "Día 1", nil)
	assert.ErrorIs(t, err, ErrWorkoutNameTaken)

	// The same name under a different user is fine.
	clientB := env.createClient(t, manager.ID, "bob@example.com")
	_, err = env.workouts.CreateWorkout(ctx, manager.ID, clientB.ID, "Día 1", nil)
	require.NoError(t, err)
}

func TestCreateWorkout_MesocycleMustBelongToUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	manager := env.createManager(t, "coach@example.com")
	clientA := env.createClient(t, manager.ID, "a@example.com")
	clientB := env.createClient(t, manager.ID, "b@example.com")

	mesoID, err := env.mesocycles.CreateMesocycle(ctx, manager.ID, clientA.ID, MesocycleInput{
		Name: "Volumen", Goal: "hipertrofia", StartDate: "2026-09-01", EndDate: "2026-10-01", Status: "ACTIVE",
	})
	require.NoError(t, err)

	_, err = env.workouts.CreateWorkout(ctx, manager.ID, clientB.ID, "Día 1", int64Ptr(mesoID))
	assert.ErrorIs(t, err, ErrValidation)

	id, err := env.workouts.CreateWorkout(ctx, manager.ID, clientA.ID, "Día 1", int64Ptr(mesoID))
	require.NoError(t, err)
	require.NotZero(t, id)
}

func TestArchiveWorkout(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	manager := env.createManager(t, "coach@example.com")
	other := env.createManager(t, "other@example.com")
	client := env.createClient(t, manager.ID, "ana@example.com")

	id := env.createWorkout(t, manager.ID, client.ID, "Día 1")
	env.createExercise(t, manager.ID, id, "Press Banca", 1)

	err := env.workouts.ArchiveWorkout(ctx, other.ID, id)
	assert.ErrorIs(t, err, ErrWorkoutNotOwned)

	require.NoError(t, env.workouts.ArchiveWorkout(ctx, manager.ID, id))

	// Archived workouts leave the user listing.
	active, err := env.workouts.ListMyWorkouts(ctx, client.ID)
	require.NoError(t, err)
	assert.Empty(t, active)

	// Its exercises are archived with it.
	exercises, err := env.exerciseRepo.ListActiveByWorkout(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, exercises)

	// The archive timestamp round-trips through the store.
	archived, err := env.workoutRepo.GetOwnedByManager(ctx, id, manager.ID)
	require.NoError(t, err)
	require.NotNil(t, archived.ArchivedAt)
	assert.WithinDuration(t, time.Now().UTC(), *archived.ArchivedAt, time.Minute)

	// Archiving again is a no-op success.
	require.NoError(t, env.workouts.ArchiveWorkout(ctx, manager.ID, id))

	// The name is free for a new active workout.
	_, err = env.workouts.CreateWorkout(ctx, manager.ID, client.ID, "Día 1", nil)
	require.NoError(t, err)
}

func TestRenameWorkout(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	manager := env.createManager(t, "coach@example.com")
	client := env.createClient(t, manager.ID, "ana@example.com")

	id := env.createWorkout(t, manager.ID, client.ID, "Día 1")
	env.createWorkout(t, manager.ID, client.ID, "Día 2")

	_, err := env.workouts.RenameWorkout(ctx, manager.ID, id, "Día 2")
	assert.ErrorIs(t, err, ErrWorkoutNameTaken)

	renamed, err := env.workouts.RenameWorkout(ctx, manager.ID, id, "Empuje")
	require.NoError(t, err)
	assert.Equal(t, "Empuje", renamed.Name)

	// Archived workouts cannot be renamed.
	require.NoError(t, env.workouts.ArchiveWorkout(ctx, manager.ID, id))
	_, err = env.workouts.RenameWorkout(ctx, manager.ID, id, "Otra vez")
	assert.ErrorIs(t, err, ErrWorkoutNotOwned)
}

func TestListForManager(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	manager := env.createManager(t, "coach@example.com")
	client := env.createClient(t, manager.ID, "ana@example.com")

	// Empty listing is a not-found for the manager view.
	_, err := env.workouts.ListForManager(ctx, manager.ID, client.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	id := env.createWorkout(t, manager.ID, client.ID, "Día 1")
	env.createExercise(t, manager.ID, id, "Press Banca", 1)
	env.createExercise(t, manager.ID, id, "Sentadilla", 2)

	rows, err := env.workouts.ListForManager(ctx, manager.ID, client.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Día 1", rows[0].Name)
	assert.Equal(t, "ana@example.com", rows[0].UserEmail)
	assert.Equal(t, 2, rows[0].ExercisesCount)
}
