// README: Agent store contract; engine implementations in store_pg.go and store_lite.go.
package agent

import "context"

type Store interface {
	Create(ctx context.Context, a *Agent) error
	GetByID(ctx context.Context, id int64) (*Agent, error)
	List(ctx context.Context) ([]Agent, error)
	Update(ctx context.Context, a *Agent) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
	CountAdmins(ctx context.Context) (int, error)
}
