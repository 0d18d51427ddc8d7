package domain

import "time"

// Workout is one training session template belonging to a client, always
// created by that client's manager. Names are unique per user among active
// (non-archived) workouts only.
type Workout struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	UserID      int64      `json:"userId"`
	ManagerID   int64      `json:"managerId"`
	MesocycleID *int64     `json:"mesocycleId,omitempty"`
	ArchivedAt  *time.Time `json:"archivedAt,omitempty"`
}

// Archived reports whether the workout has been soft-deleted.
func (w *Workout) Archived() bool {
	return w.ArchivedAt != nil
}

// ManagerWorkout is the manager listing row: a workout plus the client email
// and the number of active exercises in it.
type ManagerWorkout struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	UserEmail      string `json:"name_user"`
	ExercisesCount int    `json:"exercises_count"`
}

// MesocycleFilter narrows dashboard and listing queries to one training
// block, or (with Unassigned set) to workouts outside any block. The zero
// value is never used; a nil *MesocycleFilter means "no filter".
type MesocycleFilter struct {
	MesocycleID int64
	Unassigned  bool
}
