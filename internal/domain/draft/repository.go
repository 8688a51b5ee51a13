package draft

import "context"

// Repository describes draft persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, id string) (Draft, bool, error)
	List(ctx context.Context) ([]Draft, error)
	ListByShow(ctx context.Context, showID string) ([]Draft, error)
	ListByUser(ctx context.Context, userID string) ([]Draft, error)
	ListByLeague(ctx context.Context, leagueID string) ([]Draft, error)
	Upsert(ctx context.Context, d Draft) error
	Delete(ctx context.Context, id string) error
}
