package memory

import (
	"context"
	"testing"
)

func TestSeed(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	songs := NewSongRepository()
	shows := NewShowRepository()

	if err := Seed(ctx, songs, shows); err != nil {
		t.Fatalf("seed: %v", err)
	}

	allShows, err := shows.List(ctx)
	if err != nil {
		t.Fatalf("list shows: %v", err)
	}
	if len(allShows) != 5 {
		t.Fatalf("expected 5 shows, got %d", len(allShows))
	}

	allSongs, err := songs.List(ctx)
	if err != nil {
		t.Fatalf("list songs: %v", err)
	}
	known := make(map[string]struct{}, len(allSongs))
	for _, s := range allSongs {
		known[s.ID] = struct{}{}
	}

	// Every performed song must resolve in the catalog.
	for _, s := range allShows {
		for _, entry := range s.Flatten() {
			if _, ok := known[entry.SongID]; !ok {
				t.Errorf("show %s references unknown song %s", s.ID, entry.SongID)
			}
		}
	}

	completed, err := shows.ListCompleted(ctx)
	if err != nil {
		t.Fatalf("list completed: %v", err)
	}
	if len(completed) != 4 {
		t.Fatalf("expected 4 completed shows, got %d", len(completed))
	}
}
