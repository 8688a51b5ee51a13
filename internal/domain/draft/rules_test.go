package draft

import (
	"errors"
	"fmt"
	"testing"

	"github.com/phantasyphish/setlist-api/internal/domain/song"
)

func testCatalog(size int) song.Catalog {
	songs := make([]song.Song, 0, size)
	for i := 0; i < size; i++ {
		songs = append(songs, song.Song{
			ID:   fmt.Sprintf("song-%02d", i),
			Name: fmt.Sprintf("Song %02d", i),
		})
	}
	return song.NewCatalog(songs)
}

func pickN(n int) []string {
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		ids = append(ids, fmt.Sprintf("song-%02d", i))
	}
	return ids
}

func TestValidatePicks(t *testing.T) {
	t.Parallel()

	catalog := testCatalog(20)
	rules := DefaultRules()

	tests := []struct {
		name    string
		songIDs []string
		wantErr error
	}{
		{
			name:    "valid full draft",
			songIDs: pickN(15),
		},
		{
			name:    "too few",
			songIDs: pickN(14),
			wantErr: ErrInvalidDraftSize,
		},
		{
			name:    "too many",
			songIDs: pickN(16),
			wantErr: ErrInvalidDraftSize,
		},
		{
			name:    "duplicate song",
			songIDs: append(pickN(14), "song-00"),
			wantErr: ErrDuplicateSongInDraft,
		},
		{
			name:    "unknown song",
			songIDs: append(pickN(14), "destiny-unbound"),
			wantErr: ErrUnknownSong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidatePicks(tt.songIDs, catalog, rules)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidatePicksPartial(t *testing.T) {
	t.Parallel()

	catalog := testCatalog(20)
	rules := DefaultRules()

	if err := ValidatePicksPartial(pickN(3), catalog, rules); err != nil {
		t.Fatalf("partial draft of 3 should pass: %v", err)
	}
	if err := ValidatePicksPartial(nil, catalog, rules); !errors.Is(err, ErrInvalidDraftSize) {
		t.Fatalf("expected ErrInvalidDraftSize for empty picks, got %v", err)
	}
	if err := ValidatePicksPartial(pickN(16), catalog, rules); !errors.Is(err, ErrInvalidDraftSize) {
		t.Fatalf("expected ErrInvalidDraftSize for oversized picks, got %v", err)
	}
	if err := ValidatePicksPartial([]string{"song-00", "song-00"}, catalog, rules); !errors.Is(err, ErrDuplicateSongInDraft) {
		t.Fatalf("expected ErrDuplicateSongInDraft, got %v", err)
	}
}
