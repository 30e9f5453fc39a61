package repositories

import "context"

// Transactor runs fn inside a database transaction. Repository calls made with the ctx passed
// to fn join that transaction. Nested calls reuse the outer transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
