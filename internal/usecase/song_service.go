package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/phantasyphish/setlist-api/internal/domain/song"
)

// SongService serves the song catalog.
type SongService struct {
	songRepo song.Repository
}

func NewSongService(songRepo song.Repository) *SongService {
	return &SongService{songRepo: songRepo}
}

func (s *SongService) GetSong(ctx context.Context, songID string) (song.Song, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SongService.GetSong")
	defer span.End()

	if strings.TrimSpace(songID) == "" {
		return song.Song{}, fmt.Errorf("%w: song id is required", ErrInvalidInput)
	}

	item, exists, err := s.songRepo.GetByID(ctx, songID)
	if err != nil {
		return song.Song{}, fmt.Errorf("get song: %w", err)
	}
	if !exists {
		return song.Song{}, fmt.Errorf("%w: song %s", ErrNotFound, songID)
	}

	return item, nil
}

func (s *SongService) ListSongs(ctx context.Context) ([]song.Song, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SongService.ListSongs")
	defer span.End()

	songs, err := s.songRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list songs: %w", err)
	}

	sort.SliceStable(songs, func(i, j int) bool {
		return songs[i].Name < songs[j].Name
	})
	return songs, nil
}

// Catalog builds the id-indexed catalog used by draft validation and
// scoring.
func (s *SongService) Catalog(ctx context.Context) (song.Catalog, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SongService.Catalog")
	defer span.End()

	songs, err := s.songRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list songs for catalog: %w", err)
	}
	return song.NewCatalog(songs), nil
}
