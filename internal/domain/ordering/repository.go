package ordering

import (
	"context"

	"github.com/google/uuid"
	"github.com/tornado/portal/internal/domain/shared"
)

// OrderRepository defines persistence operations for orders. Save persists
// the header, items and history atomically; the unique index on quote_id
// backs the one-order-per-quote guarantee against racing conversions.
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByNumber(ctx context.Context, orderNumber string) (*Order, error)
	FindByQuote(ctx context.Context, quoteID uuid.UUID) (*Order, error)
	// FindAllActive returns all active orders, unscoped. Privileged callers
	// only.
	FindAllActive(ctx context.Context, filter shared.Filter) ([]Order, error)
	FindByPartner(ctx context.Context, partnerID uuid.UUID, filter shared.Filter) ([]Order, error)
	ExistsByQuote(ctx context.Context, quoteID uuid.UUID) (bool, error)
	Save(ctx context.Context, order *Order) error
}
