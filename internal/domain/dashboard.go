package domain

// LastLog is the trimmed log view attached to a dashboard exercise: the most
// recent entry for the exercise's movement, regardless of which exercise row
// it was originally logged against.
type LastLog struct {
	Weight int    `json:"weight"`
	Reps   int    `json:"reps"`
	Date   string `json:"date"`
}

// DashboardExercise is one exercise row of the dashboard view.
type DashboardExercise struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	Sets       int      `json:"sets"`
	Reps       int      `json:"reps"`
	RIR        *int     `json:"rir"`
	RMPercent  *int     `json:"rm_percent"`
	OrderIndex int      `json:"order_index"`
	MovementID int64    `json:"movement_id"`
	LastLog    *LastLog `json:"last_log"`
}

// DashboardWorkout is one active workout with its active exercises in display
// order, each carrying its movement-scoped last log.
type DashboardWorkout struct {
	ID          int64               `json:"id"`
	Name        string              `json:"name"`
	MesocycleID *int64              `json:"mesocycle_id"`
	Exercises   []DashboardExercise `json:"exercises"`
}
