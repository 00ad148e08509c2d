// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"marketplace/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ProductRepoFactory provides access to the product repository within a transaction.
	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// FeedbackRepoFactory provides access to the feedback repository within a transaction.
	FeedbackRepoFactory interface {
		FeedbackRepository() ports.FeedbackRepository
	}

	// OrderUoW manages transactions for order-only operations.
	// Used by status transitions, settlement and the pending-order reminder.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// PlacementUoW manages the placement transaction, which spans the catalog
	// (stock decrements) and the new order in one atomic unit.
	PlacementUoW interface {
		TxManager
		ProductRepoFactory
		OrderRepoFactory
	}

	// PlacementUoWFactory creates new placement unit of work instances.
	PlacementUoWFactory interface {
		Create() PlacementUoW
	}

	// FeedbackUoW manages the feedback upsert transaction, which touches the
	// order (existence check), the feedback set and the product's derived
	// rating fields.
	FeedbackUoW interface {
		TxManager
		OrderRepoFactory
		ProductRepoFactory
		FeedbackRepoFactory
	}

	// FeedbackUoWFactory creates new feedback unit of work instances.
	FeedbackUoWFactory interface {
		Create() FeedbackUoW
	}
)
