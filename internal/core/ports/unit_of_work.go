package ports

import (
	"context"
)

// UnitOfWorkFactory produces a fresh UnitOfWork per command execution, so
// concurrent commands never share transaction state.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is the transaction boundary a command handler works inside.
// The handler calls Begin, obtains transaction-bound repositories, and
// finishes with Commit or Rollback. Stock reservation depends on this:
// the row locks taken through ProductRepository hold until the transaction
// ends.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns an error if there is no active transaction or the commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction. Safe to defer after a
	// successful Commit.
	Rollback(ctx context.Context) error

	// ProductRepository returns a ProductRepository bound to the current transaction.
	ProductRepository() ProductRepository

	// OrderRepository returns an OrderRepository bound to the current transaction.
	OrderRepository() OrderRepository

	// FeedbackRepository returns a FeedbackRepository bound to the current transaction.
	FeedbackRepository() FeedbackRepository
}
