package app

import "context"

// TxRunner executes fn as one atomic unit against the store: either
// every write inside fn commits or none do. Nested calls join the
// ambient unit instead of opening a second one.
type TxRunner interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}
