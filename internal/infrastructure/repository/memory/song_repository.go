package memory

import (
	"context"
	"sync"

	"github.com/phantasyphish/setlist-api/internal/domain/song"
)

// SongRepository is an in-memory song store for local runs and tests.
type SongRepository struct {
	mu    sync.RWMutex
	songs map[string]song.Song
}

func NewSongRepository() *SongRepository {
	return &SongRepository{songs: make(map[string]song.Song)}
}

func (r *SongRepository) GetByID(_ context.Context, id string) (song.Song, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.songs[id]
	return item, ok, nil
}

func (r *SongRepository) List(_ context.Context) ([]song.Song, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]song.Song, 0, len(r.songs))
	for _, item := range r.songs {
		out = append(out, item)
	}
	return out, nil
}

func (r *SongRepository) Upsert(_ context.Context, s song.Song) error {
	if err := s.ValidateBasic(); err != nil {
		return err
	}

	r.mu.Lock()
	r.songs[s.ID] = s
	r.mu.Unlock()
	return nil
}
