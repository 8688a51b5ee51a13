package song

import "context"

// Repository describes song catalog persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, id string) (Song, bool, error)
	List(ctx context.Context) ([]Song, error)
	Upsert(ctx context.Context, s Song) error
}
