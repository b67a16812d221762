package domain

import "context"

// UnitOfWork scopes a read-modify-publish flow to a single transaction when
// the backing store supports one. In-memory stores run fn directly.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
