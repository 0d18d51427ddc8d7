package domain

import "time"

// Exercise is one programmed movement inside a workout: the prescription
// (sets, reps, optional RIR / %RM) plus its display position. OrderIndex is
// unique per workout among active exercises; it orders the workout view and
// is not a surrogate key.
type Exercise struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	Sets       int        `json:"sets"`
	Reps       int        `json:"reps"`
	RIR        *int       `json:"rir,omitempty"`        // reps in reserve, 0-10
	RMPercent  *int       `json:"rm_percent,omitempty"` // % of one-rep max, 1-100
	OrderIndex int        `json:"order_index"`
	WorkoutID  int64      `json:"workoutId"`
	MovementID int64      `json:"movement_id"` // 0 only for rows predating movement tracking
	ArchivedAt *time.Time `json:"archivedAt,omitempty"`
}

// Archived reports whether the exercise has been soft-deleted. Archived rows
// are kept so historical logs stay linked to them.
func (e *Exercise) Archived() bool {
	return e.ArchivedAt != nil
}

// ExercisePatch carries the optional fields an exercise update may change.
// A nil field is left untouched; each provided field is validated with the
// same rules as creation.
type ExercisePatch struct {
	Name       *string
	Sets       *int
	Reps       *int
	RIR        *int
	RMPercent  *int
	OrderIndex *int
	MovementID *int64
}

// IsEmpty reports whether the patch would change nothing.
func (p ExercisePatch) IsEmpty() bool {
	return p.Name == nil && p.Sets == nil && p.Reps == nil && p.RIR == nil &&
		p.RMPercent == nil && p.OrderIndex == nil && p.MovementID == nil
}
