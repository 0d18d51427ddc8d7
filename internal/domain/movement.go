package domain

// Movement is the canonical, per-user identity of an exercise name.
// Exercise rows come and go (archived, renamed, recreated), but all of them
// resolve to a Movement, and logs are keyed by movement so progress history
// survives the exercise lifecycle.
type Movement struct {
	ID   int64  `json:"id"`
	Name string `json:"name"` // display name, as first entered (trimmed)
	// NameNormalized is the dedup key: trimmed, lower-cased, diacritics
	// stripped, internal whitespace collapsed. (user_id, name_normalized)
	// is unique.
	NameNormalized string `json:"-"`
	UserID         int64  `json:"-"`
}
