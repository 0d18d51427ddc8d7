package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cgarcia/trainlog-app/internal/domain"
)

func TestUserDashboard(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	manager := env.createManager(t, "coach@example.com")
	client := env.createClient(t, manager.ID, "ana@example.com")

	workoutID := env.createWorkout(t, manager.ID, client.ID, "Día 1")
	env.createExercise(t, manager.ID, workoutID, "Press Banca", 2)
	squatID := env.createExercise(t, manager.ID, workoutID, "Sentadilla", 1)

	_, err := env.logs.AddLog(ctx, client.ID, squatID, LogInput{Weight: 100, Reps: 5, Date: "2026-08-20"})
	require.NoError(t, err)
	_, err = env.logs.AddLog(ctx, client.ID, squatID, LogInput{Weight: 105, Reps: 5, Date: "2026-08-27"})
	require.NoError(t, err)

	dashboard, err := env.dashboards.UserDashboard(ctx, client.ID, nil)
	require.NoError(t, err)
	require.Len(t, dashboard, 1)
	require.Len(t, dashboard[0].Exercises, 2)

	// Exercises come back in display order.
	assert.Equal(t, "Sentadilla", dashboard[0].Exercises[0].Name)
	assert.Equal(t, "Press Banca", dashboard[0].Exercises[1].Name)

	// The squat carries its most recent entry; the bench has none yet.
	squat := dashboard[0].Exercises[0]
	require.NotNil(t, squat.LastLog)
	assert.Equal(t, 105, squat.LastLog.Weight)
	assert.Contains(t, squat.LastLog.Date, "2026-08-27")
	assert.Nil(t, dashboard[0].Exercises[1].LastLog)
}

func TestUserDashboard_LastLogSurvivesRecreation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	manager := env.createManager(t, "coach@example.com")
	client := env.createClient(t, manager.ID, "ana@example.com")

	workoutID := env.createWorkout(t, manager.ID, client.ID, "Día 1")
	first := env.createExercise(t, manager.ID, workoutID, "Press Banca", 1)
	_, err := env.logs.AddLog(ctx, client.ID, first, LogInput{Weight: 80, Reps: 8, Date: "2026-08-20"})
	require.NoError(t, err)

	require.NoError(t, env.exercises.ArchiveExercise(ctx, manager.ID, first))
	env.createExercise(t, manager.ID, workoutID, "Press Banca", 1)

	dashboard, err := env.dashboards.UserDashboard(ctx, client.ID, nil)
	require.NoError(t, err)
	require.Len(t, dashboard, 1)
	require.Len(t, dashboard[0].Exercises, 1)
	require.NotNil(t, dashboard[0].Exercises[0].LastLog)
	assert.Equal(t, 80, dashboard[0].Exercises[0].LastLog.Weight)
}

func TestUserDashboard_MesocycleFilter(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	manager := env.createManager(t, "coach@example.com")
	client := env.createClient(t, manager.ID, "ana@example.com")

	mesoID, err := env.mesocycles.CreateMesocycle(ctx, manager.ID, client.ID, MesocycleInput{
		Name: "Volumen", Goal: "hipertrofia", StartDate: "2026-09-01", EndDate: "2026-10-01", Status: "ACTIVE",
	})
	require.NoError(t, err)
	_, err = env.workouts.CreateWorkout(ctx, manager.ID, client.ID, "En bloque", int64Ptr(mesoID))
	require.NoError(t, err)
	env.createWorkout(t, manager.ID, client.ID, "Suelto")

	all, err := env.dashboards.UserDashboard(ctx, client.ID, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	inBlock, err := env.dashboards.UserDashboard(ctx, client.ID, &domain.MesocycleFilter{MesocycleID: mesoID})
	require.NoError(t, err)
	require.Len(t, inBlock, 1)
	assert.Equal(t, "En bloque", inBlock[0].Name)

	unassigned, err := env.dashboards.UserDashboard(ctx, client.ID, &domain.MesocycleFilter{Unassigned: true})
	require.NoError(t, err)
	require.Len(t, unassigned, 1)
	assert.Equal(t, "Suelto", unassigned[0].Name)
}

func TestManagerDashboard(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	manager := env.createManager(t, "coach@example.com")
	other := env.createManager(t, "other@example.com")
	client := env.createClient(t, manager.ID, "ana@example.com")
	env.createWorkout(t, manager.ID, client.ID, "Día 1")

	_, err := env.dashboards.ManagerDashboard(ctx, other.ID, client.ID, nil)
	assert.ErrorIs(t, err, ErrClientNotManaged)

	dashboard, err := env.dashboards.ManagerDashboard(ctx, manager.ID, client.ID, nil)
	require.NoError(t, err)
	assert.Len(t, dashboard, 1)
}

func TestUserDashboard_ExcludesArchivedWorkouts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	manager := env.createManager(t, "coach@example.com")
	client := env.createClient(t, manager.ID, "ana@example.com")

	keep := env.createWorkout(t, manager.ID, client.ID, "Mantener")
	gone := env.createWorkout(t, manager.ID, client.ID, "Archivar")
	require.NoError(t, env.workouts.ArchiveWorkout(ctx, manager.ID, gone))

	dashboard, err := env.dashboards.UserDashboard(ctx, client.ID, nil)
	require.NoError(t, err)
	require.Len(t, dashboard, 1)
	assert.Equal(t, keep, dashboard[0].ID)
}
