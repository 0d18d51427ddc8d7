package service

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"cgarcia/trainlog-app/internal/domain"
	"cgarcia/trainlog-app/internal/repository"
)

// suggestLimit caps autocomplete results.
const suggestLimit = 15

// stripDiacritics decomposes to NFD and drops the combining marks, then
// recomposes. "Sentadílla" and "sentadilla" normalize identically.
var stripDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeMovementName produces the dedup key for a human-entered exercise
// name: trimmed, lower-cased, diacritics stripped, internal whitespace
// collapsed to single spaces.
func NormalizeMovementName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	if out, _, err := transform.String(stripDiacritics, s); err == nil {
		s = out
	}
	return strings.Join(strings.Fields(s), " ")
}

// MovementCatalog resolves human-entered exercise names to stable per-user
// movement identities, so log history survives exercise renames and
// recreations.
type MovementCatalog interface {
	// ResolveOrCreate returns the movement id for (userID, rawName), creating
	// the movement on first use. Idempotent; safe under concurrent callers
	// racing on the same name.
	ResolveOrCreate(ctx context.Context, userID int64, rawName string) (int64, error)
	// Suggest returns up to 15 movements whose normalized key contains the
	// query, alphabetically by display name. Empty catalogs yield an empty
	// slice, never an error.
	Suggest(ctx context.Context, userID int64, query string) ([]domain.Movement, error)
}

type movementCatalog struct {
	movementRepo repository.MovementRepository
}

// NewMovementCatalog creates a new movement catalog service.
func NewMovementCatalog(movementRepo repository.MovementRepository) MovementCatalog {
	return &movementCatalog{movementRepo: movementRepo}
}

func (c *movementCatalog) ResolveOrCreate(ctx context.Context, userID int64, rawName string) (int64, error) {
	normalized := NormalizeMovementName(rawName)

	existing, err := c.movementRepo.GetByNormalized(ctx, userID, normalized)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return 0, internalf("movement lookup: %v", err)
	}

	id, err := c.movementRepo.Create(ctx, &domain.Movement{
		Name:           strings.TrimSpace(rawName),
		NameNormalized: normalized,
		UserID:         userID,
	})
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, repository.ErrDuplicate) {
		return 0, internalf("movement insert: %v", err)
	}

	// Benign race: a concurrent caller created the same normalized name
	// between our lookup and insert. They won; use their row.
	existing, err = c.movementRepo.GetByNormalized(ctx, userID, normalized)
	if err != nil {
		return 0, internalf("movement lookup after lost insert race: %v", err)
	}
	return existing.ID, nil
}

func (c *movementCatalog) Suggest(ctx context.Context, userID int64, query string) ([]domain.Movement, error) {
	movements, err := c.movementRepo.Suggest(ctx, userID, NormalizeMovementName(query), suggestLimit)
	if err != nil {
		return nil, internalf("movement suggest: %v", err)
	}
	return movements, nil
}
