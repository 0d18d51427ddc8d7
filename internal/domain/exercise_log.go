package domain

import "time"

// ExerciseLog is one performed set entry: what was lifted, when, by whom.
// ExerciseID records provenance (which programmed exercise the entry was
// logged against); MovementID is denormalized from that exercise at write
// time and is the key history is queried by, so entries stay comparable
// after the originating exercise is archived or renamed.
type ExerciseLog struct {
	ID         int64     `json:"id"`
	Weight     int       `json:"weight"` // kilograms, >= 0
	Reps       int       `json:"reps"`   // > 0
	Date       time.Time `json:"date"`
	UserID     int64     `json:"-"`
	ExerciseID int64     `json:"-"`
	MovementID int64     `json:"-"`
}
