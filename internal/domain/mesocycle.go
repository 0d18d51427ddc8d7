package domain

// MesocycleStatus type for the training-block lifecycle
type MesocycleStatus string

const (
	MesocyclePlanned   MesocycleStatus = "PLANNED"
	MesocycleActive    MesocycleStatus = "ACTIVE"
	MesocycleCompleted MesocycleStatus = "COMPLETED"
)

// ValidMesocycleStatus reports whether s is one of the known statuses.
func ValidMesocycleStatus(s MesocycleStatus) bool {
	switch s {
	case MesocyclePlanned, MesocycleActive, MesocycleCompleted:
		return true
	}
	return false
}

// Mesocycle is an optional training block grouping a client's workouts over a
// date range. Deleting a mesocycle detaches its workouts, it never deletes
// them.
type Mesocycle struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Goal      string          `json:"goal"`
	StartDate string          `json:"startDate"` // YYYY-MM-DD
	EndDate   string          `json:"endDate"`   // YYYY-MM-DD, never before StartDate
	Status    MesocycleStatus `json:"status"`
	UserID    int64           `json:"userId"`
}
