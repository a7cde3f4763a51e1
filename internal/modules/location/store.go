// README: Location store contract; engine implementations in store_pg.go and store_lite.go.
package location

import "context"

type Store interface {
	ListAll(ctx context.Context) ([]Location, error)
	// ListByAgent returns the agent's allow-list ordered by name; the order
	// is part of the authorization contract (first match wins).
	ListByAgent(ctx context.Context, agentID int64) ([]Location, error)
	Create(ctx context.Context, name string) (*Location, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)

	SetAgentLocations(ctx context.Context, agentID int64, locationIDs []int64) error
	AddAgentLocation(ctx context.Context, agentID, locationID int64) error
	RemoveAgentLocation(ctx context.Context, agentID, locationID int64) error
}
