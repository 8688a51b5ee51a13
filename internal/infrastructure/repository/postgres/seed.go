package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/phantasyphish/setlist-api/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the shared fixtures into an empty database so a
// fresh postgres deployment behaves like the memory driver.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM shows`); err != nil {
		return fmt.Errorf("count shows for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	songRepo := NewSongRepository(db)
	for _, s := range memory.SeedSongs() {
		if err := songRepo.Upsert(ctx, s); err != nil {
			return fmt.Errorf("seed song %s: %w", s.ID, err)
		}
	}

	showRepo := NewShowRepository(db)
	for _, s := range memory.SeedShows() {
		if err := showRepo.Upsert(ctx, s); err != nil {
			return fmt.Errorf("seed show %s: %w", s.ID, err)
		}
	}
	return nil
}
