package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cgarcia/trainlog-app/internal/domain"
)

func TestCreateMesocycle_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	manager := env.createManager(t, "coach@example.com")
	other := env.createManager(t, "other@example.com")
	client := env.createClient(t, manager.ID, "ana@example.com")

	valid := MesocycleInput{Name: "Volumen", Goal: "hipertrofia", StartDate: "2026-09-01", EndDate: "2026-10-01", Status: "PLANNED"}

	broken := valid
	broken.Name = "  "
	_, err := env.mesocycles.CreateMesocycle(ctx, manager.ID, client.ID, broken)
	assert.ErrorIs(t, err, ErrValidation)

	broken = valid
	broken.Goal = " "
	_, err = env.mesocycles.CreateMesocycle(ctx, manager.ID, client.ID, broken)
	assert.ErrorIs(t, err, ErrValidation)

	broken = valid
	broken.StartDate = "01-09-2026"
	_, err = env.mesocycles.CreateMesocycle(ctx, manager.ID, client.ID, broken)
	assert.ErrorIs(t, err, ErrValidation)

	broken = valid
	broken.EndDate = "2026-08-01"
	_, err = env.mesocycles.CreateMesocycle(ctx, manager.ID, client.ID, broken)
	assert.ErrorIs(t, err, ErrValidation)

	broken = valid
	broken.Status = "RUNNING"
	_, err = env.mesocycles.CreateMesocycle(ctx, manager.ID, client.ID, broken)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.mesocycles.CreateMesocycle(ctx, other.ID, client.ID, valid)
	assert.ErrorIs(t, err, ErrClientNotManaged)

	id, err := env.mesocycles.CreateMesocycle(ctx, manager.ID, client.ID, valid)
	require.NoError(t, err)
	require.NotZero(t, id)

	// Single-day blocks are legal (end == start).
	oneDay := valid
	oneDay.Name = "Descarga"
	oneDay.StartDate, oneDay.EndDate = "2026-10-02", "2026-10-02"
	_, err = env.mesocycles.CreateMesocycle(ctx, manager.ID, client.ID, oneDay)
	require.NoError(t, err)
}

func TestUpdateMesocycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	manager := env.createManager(t, "coach@example.com")
	other := env.createManager(t, "other@example.com")
	client := env.createClient(t, manager.ID, "ana@example.com")

	id, err := env.mesocycles.CreateMesocycle(ctx, manager.ID, client.ID, MesocycleInput{
		Name: "Volumen", Goal: "hipertrofia", StartDate: "2026-09-01", EndDate: "2026-10-01", Status: "PLANNED",
	})
	require.NoError(t, err)

	_, err = env.mesocycles.UpdateMesocycle(ctx, other.ID, id, MesocycleInput{
		Name: "X", Goal: "fuerza", StartDate: "2026-09-01", EndDate: "2026-10-01", Status: "ACTIVE",
	})
	assert.ErrorIs(t, err, ErrMesocycleNotOwned)

	updated, err := env.mesocycles.UpdateMesocycle(ctx, manager.ID, id, MesocycleInput{
		Name: "Volumen 2", Goal: "fuerza", StartDate: "2026-09-01", EndDate: "2026-10-15", Status: "ACTIVE",
	})
	require.NoError(t, err)
	assert.Equal(t, "Volumen 2", updated.Name)
	assert.Equal(t, domain.MesocycleActive, updated.Status)
	assert.Equal(t, "2026-10-15", updated.EndDate)
}

func TestDeleteMesocycle_DetachesWorkouts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	manager := env.createManager(t, "coach@example.com")
	client := env.createClient(t, manager.ID, "ana@example.com")

	mesoID, err := env.mesocycles.CreateMesocycle(ctx, manager.ID, client.ID, MesocycleInput{
		Name: "Volumen", Goal: "hipertrofia", StartDate: "2026-09-01", EndDate: "2026-10-01", Status: "ACTIVE",
	})
	require.NoError(t, err)

	workoutID, err := env.workouts.CreateWorkout(ctx, manager.ID, client.ID, "Día 1", int64Ptr(mesoID))
	require.NoError(t, err)

	require.NoError(t, env.mesocycles.DeleteMesocycle(ctx, manager.ID, mesoID))

	// The workout survives, detached from any block.
	workouts, err := env.workouts.ListMyWorkouts(ctx, client.ID)
	require.NoError(t, err)
	require.Len(t, workouts, 1)
	assert.Equal(t, workoutID, workouts[0].ID)
	assert.Nil(t, workouts[0].MesocycleID)

	blocks, err := env.mesocycles.ListByUser(ctx, client.ID)
	require.NoError(t, err)
	assert.Empty(t, blocks)
}

func TestMesocycleWorkoutListings(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	manager := env.createManager(t, "coach@example.com")
	client := env.createClient(t, manager.ID, "ana@example.com")
	otherClient := env.createClient(t, manager.ID, "bob@example.com")

	mesoID, err := env.mesocycles.CreateMesocycle(ctx, manager.ID, client.ID, MesocycleInput{
		Name: "Volumen", Goal: "hipertrofia", StartDate: "2026-09-01", EndDate: "2026-10-01", Status: "ACTIVE",
	})
	require.NoError(t, err)
	_, err = env.workouts.CreateWorkout(ctx, manager.ID, client.ID, "Día 1", int64Ptr(mesoID))
	require.NoError(t, err)
	env.createWorkout(t, manager.ID, client.ID, "Suelto")

	workouts, err := env.mesocycles.WorkoutsOfMesocycle(ctx, client.ID, mesoID)
	require.NoError(t, err)
	assert.Len(t, workouts, 1)

	// Another user cannot read the block.
	_, err = env.mesocycles.WorkoutsOfMesocycle(ctx, otherClient.ID, mesoID)
	assert.ErrorIs(t, err, ErrMesocycleNotOwned)

	// Manager variant requires the block to belong to the named client. A
	// block of a different client of the same manager is simply not found,
	// not an ownership breach.
	workouts, err = env.mesocycles.WorkoutsOfMesocycleForManager(ctx, manager.ID, client.ID, mesoID)
	require.NoError(t, err)
	assert.Len(t, workouts, 1)
	_, err = env.mesocycles.WorkoutsOfMesocycleForManager(ctx, manager.ID, otherClient.ID, mesoID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrOwnership)
}
