package show

import "context"

// Repository describes show persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, id string) (Show, bool, error)
	List(ctx context.Context) ([]Show, error)
	ListCompleted(ctx context.Context) ([]Show, error)
	Upsert(ctx context.Context, s Show) error
}
