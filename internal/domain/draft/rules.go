package draft

import (
	"errors"
	"fmt"

	"github.com/phantasyphish/setlist-api/internal/domain/song"
)

var (
	ErrInvalidDraftSize     = errors.New("invalid draft size")
	ErrDuplicateSongInDraft = errors.New("duplicate song in draft")
	ErrUnknownSong          = errors.New("unknown song")
)

// Rules stores draft validation parameters.
type Rules struct {
	DraftSize int
}

func DefaultRules() Rules {
	return Rules{DraftSize: DraftSize}
}

// ValidatePicks checks a finished draft: exactly DraftSize distinct
// songs, all present in the catalog.
func ValidatePicks(songIDs []string, catalog song.Catalog, rules Rules) error {
	if len(songIDs) != rules.DraftSize {
		return fmt.Errorf("%w: expected %d, got %d", ErrInvalidDraftSize, rules.DraftSize, len(songIDs))
	}

	return validateEach(songIDs, catalog)
}

// ValidatePicksPartial validates picks while the user is still
// building the draft. It does not require the full draft size yet.
func ValidatePicksPartial(songIDs []string, catalog song.Catalog, rules Rules) error {
	if len(songIDs) == 0 {
		return fmt.Errorf("%w: expected at least 1, got 0", ErrInvalidDraftSize)
	}
	if len(songIDs) > rules.DraftSize {
		return fmt.Errorf("%w: expected at most %d, got %d", ErrInvalidDraftSize, rules.DraftSize, len(songIDs))
	}

	return validateEach(songIDs, catalog)
}

func validateEach(songIDs []string, catalog song.Catalog) error {
	seen := make(map[string]struct{}, len(songIDs))
	for _, id := range songIDs {
		if id == "" {
			return fmt.Errorf("song id is required")
		}
		if _, exists := seen[id]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicateSongInDraft, id)
		}
		seen[id] = struct{}{}

		if !catalog.Has(id) {
			return fmt.Errorf("%w: %s", ErrUnknownSong, id)
		}
	}

	return nil
}
