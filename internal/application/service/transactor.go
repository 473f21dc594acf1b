package service

import "context"

// Transactor runs fn inside a database transaction. The transaction is
// carried in the context handed to fn; repositories pick it up from there.
// A non-nil error from fn rolls the transaction back and is returned as-is.
type Transactor interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}
