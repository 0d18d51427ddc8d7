package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cgarcia/trainlog-app/internal/domain"
)

func TestAddLog(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	manager := env.createManager(t, "coach@example.com")
	client := env.createClient(t, manager.ID, "ana@example.com")
	stranger := env.createClient(t, manager.ID, "bob@example.com")
	workoutID := env.createWorkout(t, manager.ID, client.ID, "Día 1")
	exerciseID := env.createExercise(t, manager.ID, workoutID, "Press Banca", 1)

	_, err := env.logs.AddLog(ctx, client.ID, exerciseID, LogInput{Weight: -1, Reps: 8})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = env.logs.AddLog(ctx, client.ID, exerciseID, LogInput{Weight: 80, Reps: 0})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = env.logs.AddLog(ctx, client.ID, exerciseID, LogInput{Weight: 80, Reps: 8, Date: "30/08/2026"})
	assert.ErrorIs(t, err, ErrValidation)

	// Another user cannot log against this exercise.
	_, err = env.logs.AddLog(ctx, stranger.ID, exerciseID, LogInput{Weight: 80, Reps: 8})
	assert.ErrorIs(t, err, ErrExerciseNotOfUser)

	// Bodyweight entries (weight 0) are allowed.
	id, err := env.logs.AddLog(ctx, client.ID, exerciseID, LogInput{Weight: 0, Reps: 12, Date: "2026-08-30"})
	require.NoError(t, err)
	require.NotZero(t, id)

	logs, err := env.logs.ListLogs(ctx, client.ID, exerciseID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, 0, logs[0].Weight)
	assert.Equal(t, 12, logs[0].Reps)
	assert.Equal(t, "2026-08-30", logs[0].Date.Format("2006-01-02"))
	assert.Equal(t, 12, logs[0].Date.Hour())
}

func TestLogs_KeyedByMovementAcrossRecreation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	manager := env.createManager(t, "coach@example.com")
	client := env.createClient(t, manager.ID, "ana@example.com")
	workoutID := env.createWorkout(t, manager.ID, client.ID, "Día 1")

	first := env.createExercise(t, manager.ID, workoutID, "Press Banca", 1)
	_, err := env.logs.AddLog(ctx, client.ID, first, LogInput{Weight: 80, Reps: 8, Date: "2026-08-01"})
	require.NoError(t, err)

	// Archive the exercise and recreate it under the same name.
	require.NoError(t, env.exercises.ArchiveExercise(ctx, manager.ID, first))
	second := env.createExercise(t, manager.ID, workoutID, "press banca", 1)
	_, err = env.logs.AddLog(ctx, client.ID, second, LogInput{Weight: 85, Reps: 8, Date: "2026-08-08"})
	require.NoError(t, err)

	// Both entries surface through the new exercise.
	logs, err := env.logs.ListLogs(ctx, client.ID, second)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, 85, logs[0].Weight) // newest first
	assert.Equal(t, 80, logs[1].Weight)

	last, err := env.logs.LastLog(ctx, client.ID, second)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, 85, last.Weight)

	// And remain reachable through the archived one.
	logs, err = env.logs.ListLogs(ctx, client.ID, first)
	require.NoError(t, err)
	assert.Len(t, logs, 2)
}

func TestLastLog_NoneYet(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	manager := env.createManager(t, "coach@example.com")
	client := env.createClient(t, manager.ID, "ana@example.com")
	workoutID := env.createWorkout(t, manager.ID, client.ID, "Día 1")
	exerciseID := env.createExercise(t, manager.ID, workoutID, "Press Banca", 1)

	last, err := env.logs.LastLog(ctx, client.ID, exerciseID)
	require.NoError(t, err)
	assert.Nil(t, last)
}

func TestAddLog_BackfillsMovement(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	manager := env.createManager(t, "coach@example.com")
	client := env.createClient(t, manager.ID, "ana@example.com")
	workoutID := env.createWorkout(t, manager.ID, client.ID, "Día 1")

	// A row predating movement tracking has no movement link.
	exerciseID, err := env.exerciseRepo.Create(ctx, &domain.Exercise{
		Name: "Remo", Sets: 3, Reps: 10, OrderIndex: 1, WorkoutID: workoutID,
	})
	require.NoError(t, err)

	_, err = env.logs.AddLog(ctx, client.ID, exerciseID, LogInput{Weight: 60, Reps: 10})
	require.NoError(t, err)

	exercise, err := env.exerciseRepo.GetOwnedByUser(ctx, exerciseID, client.ID)
	require.NoError(t, err)
	assert.NotZero(t, exercise.MovementID)

	// The backfilled movement keys the history.
	logs, err := env.logs.ListLogs(ctx, client.ID, exerciseID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
}

func TestAddLog_DefaultsToNow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	manager := env.createManager(t, "coach@example.com")
	client := env.createClient(t, manager.ID, "ana@example.com")
	workoutID := env.createWorkout(t, manager.ID, client.ID, "Día 1")
	exerciseID := env.createExercise(t, manager.ID, workoutID, "Press Banca", 1)

	_, err := env.logs.AddLog(ctx, client.ID, exerciseID, LogInput{Weight: 80, Reps: 8})
	require.NoError(t, err)

	logs, err := env.logs.ListLogs(ctx, client.ID, exerciseID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.WithinDuration(t, time.Now().UTC(), logs[0].Date, time.Minute)
}

func TestUpdateAndDeleteLog(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	manager := env.createManager(t, "coach@example.com")
	client := env.createClient(t, manager.ID, "ana@example.com")
	stranger := env.createClient(t, manager.ID, "bob@example.com")
	workoutID := env.createWorkout(t, manager.ID, client.ID, "Día 1")
	exerciseID := env.createExercise(t, manager.ID, workoutID, "Press Banca", 1)

	id, err := env.logs.AddLog(ctx, client.ID, exerciseID, LogInput{Weight: 80, Reps: 8, Date: "2026-08-30"})
	require.NoError(t, err)

	_, err = env.logs.UpdateLog(ctx, stranger.ID, id, LogInput{Weight: 85, Reps: 8, Date: "2026-08-30"})
	assert.ErrorIs(t, err, ErrLogNotOwned)
	_, err = env.logs.UpdateLog(ctx, client.ID, id, LogInput{Weight: 85, Reps: 8})
	assert.ErrorIs(t, err, ErrValidation)

	updated, err := env.logs.UpdateLog(ctx, client.ID, id, LogInput{Weight: 85, Reps: 6, Date: "2026-08-31"})
	require.NoError(t, err)
	assert.Equal(t, 85, updated.Weight)
	assert.Equal(t, 6, updated.Reps)
	assert.Equal(t, "2026-08-31", updated.Date.Format("2006-01-02"))

	err = env.logs.DeleteLog(ctx, stranger.ID, id)
	assert.ErrorIs(t, err, ErrLogNotOwned)
	require.NoError(t, env.logs.DeleteLog(ctx, client.ID, id))

	logs, err := env.logs.ListLogs(ctx, client.ID, exerciseID)
	require.NoError(t, err)
	assert.Empty(t, logs)
}
