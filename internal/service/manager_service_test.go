package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cgarcia/trainlog-app/internal/domain"
	"cgarcia/trainlog-app/internal/repository"
)

func TestRegisterClient(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	manager := env.createManager(t, "coach@example.com")

	client, err := env.managers.RegisterClient(ctx, manager.ID, "Ana", "ana@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, client.Role)
	require.NotNil(t, client.ManagerID)
	assert.Equal(t, manager.ID, *client.ManagerID)

	// The email namespace is global across roles.
	_, err = env.managers.RegisterClient(ctx, manager.ID, "Dup", "coach@example.com", "password123")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestGetClients_OnlyOwn(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	managerA := env.createManager(t, "a@example.com")
	managerB := env.createManager(t, "b@example.com")
	env.createClient(t, managerA.ID, "c1@example.com")
	env.createClient(t, managerA.ID, "c2@example.com")
	env.createClient(t, managerB.ID, "c3@example.com")

	clients, err := env.managers.GetClients(ctx, managerA.ID)
	require.NoError(t, err)
	assert.Len(t, clients, 2)
	for _, c := range clients {
		assert.Empty(t, c.PasswordHash)
	}
}

func TestUpdateClient(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	manager := env.createManager(t, "coach@example.com")
	other := env.createManager(t, "other@example.com")
	client := env.createClient(t, manager.ID, "ana@example.com")

	// A foreign manager cannot touch the client.
	_, err := env.managers.UpdateClient(ctx, other.ID, client.ID, domain.ClientPatch{Name: strPtr("X")})
	assert.ErrorIs(t, err, ErrClientNotManaged)

	// Empty patch is rejected.
	_, err = env.managers.UpdateClient(ctx, manager.ID, client.ID, domain.ClientPatch{})
	assert.ErrorIs(t, err, ErrValidation)

	updated, err := env.managers.UpdateClient(ctx, manager.ID, client.ID, domain.ClientPatch{
		Name:  strPtr("Ana María"),
		Email: strPtr("ana.maria@example.com"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana María", updated.Name)
	assert.Equal(t, "ana.maria@example.com", updated.Email)

	// New password becomes the login credential.
	_, err = env.managers.UpdateClient(ctx, manager.ID, client.ID, domain.ClientPatch{Password: strPtr("newpassword1")})
	require.NoError(t, err)
	_, _, err = env.auth.Login(ctx, "ana.maria@example.com", "newpassword1")
	require.NoError(t, err)
	_, _, err = env.auth.Login(ctx, "ana.maria@example.com", "password123")
	assert.ErrorIs(t, err, ErrAuthenticationFailed)

	// Duplicate email conflicts.
	env.createClient(t, manager.ID, "taken@example.com")
	_, err = env.managers.UpdateClient(ctx, manager.ID, client.ID, domain.ClientPatch{Email: strPtr("taken@example.com")})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestClientSummaries(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	manager := env.createManager(t, "coach@example.com")
	client := env.createClient(t, manager.ID, "ana@example.com")
	idle := env.createClient(t, manager.ID, "idle@example.com")

	workoutID := env.createWorkout(t, manager.ID, client.ID, "Día 1")
	env.createWorkout(t, manager.ID, client.ID, "Día 2")
	exerciseID := env.createExercise(t, manager.ID, workoutID, "Press Banca", 1)
	_, err := env.logs.AddLog(ctx, client.ID, exerciseID, LogInput{Weight: 80, Reps: 8, Date: "2026-08-30"})
	require.NoError(t, err)

	summaries, err := env.managers.ClientSummaries(ctx, manager.ID)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	byID := map[int64]domain.ClientSummary{}
	for _, s := range summaries {
		byID[s.ID] = s
	}
	assert.Equal(t, 2, byID[client.ID].WorkoutsCount)
	require.NotNil(t, byID[client.ID].LastActivity)
	assert.Contains(t, *byID[client.ID].LastActivity, "2026-08-30")
	assert.Equal(t, 0, byID[idle.ID].WorkoutsCount)
	assert.Nil(t, byID[idle.ID].LastActivity)
}

func TestDeleteClient_Cascade(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	manager := env.createManager(t, "coach@example.com")
	other := env.createManager(t, "other@example.com")
	client := env.createClient(t, manager.ID, "ana@example.com")

	workoutID := env.createWorkout(t, manager.ID, client.ID, "Día 1")
	exerciseID := env.createExercise(t, manager.ID, workoutID, "Press Banca", 1)
	_, err := env.logs.AddLog(ctx, client.ID, exerciseID, LogInput{Weight: 80, Reps: 8})
	require.NoError(t, err)
	_, err = env.mesocycles.CreateMesocycle(ctx, manager.ID, client.ID, MesocycleInput{
		Name: "Volumen", Goal: "hipertrofia", StartDate: "2026-09-01", EndDate: "2026-10-01", Status: "PLANNED",
	})
	require.NoError(t, err)

	// Only the owning manager may delete.
	err = env.managers.DeleteClient(ctx, other.ID, client.ID)
	assert.ErrorIs(t, err, ErrClientNotManaged)

	require.NoError(t, env.managers.DeleteClient(ctx, manager.ID, client.ID))

	_, err = env.userRepo.GetByID(ctx, client.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	workouts, err := env.workouts.ListMyWorkouts(ctx, client.ID)
	require.NoError(t, err)
	assert.Empty(t, workouts)
	movements, err := env.catalog.Suggest(ctx, client.ID, "")
	require.NoError(t, err)
	assert.Empty(t, movements)
}
