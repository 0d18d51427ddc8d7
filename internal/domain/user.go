package domain

// Role type to distinguish between user roles
type Role string

// Define constants for roles
const (
	RoleManager Role = "MANAGER"
	RoleUser    Role = "USER"
)

// User represents a user in the system (either a Manager or a managed client).
// The hierarchy is exactly two levels deep: a MANAGER owns zero or more USER
// clients via ManagerID, and a MANAGER always has ManagerID == nil.
type User struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"` // Unique across all users
	Name         string `json:"name"`
	PasswordHash string `json:"-"` // Never expose this via JSON
	Role         Role   `json:"role"`
	ManagerID    *int64 `json:"managerId,omitempty"` // nil for managers
}

func (u *User) IsManager() bool {
	return u.Role == RoleManager
}

func (u *User) IsClient() bool {
	return u.Role == RoleUser
}

// ClientPatch carries the optional fields a manager may change on a client.
// A nil field is left untouched.
type ClientPatch struct {
	Name     *string
	Email    *string
	Password *string // plain text; hashed by the service before storage
}

// IsEmpty reports whether the patch would change nothing.
func (p ClientPatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.Password == nil
}

// ClientSummary is the manager roster row: one client plus the derived
// activity fields the manager dashboard shows.
type ClientSummary struct {
	ID            int64   `json:"id"`
	Email         string  `json:"email"`
	Name          string  `json:"name"`
	WorkoutsCount int     `json:"workouts_count"`
	LastActivity  *string `json:"last_activity"` // formatted timestamp, nil when the client never logged
}
