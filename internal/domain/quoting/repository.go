package quoting

import (
	"context"

	"github.com/google/uuid"
	"github.com/tornado/portal/internal/domain/shared"
)

// QuoteRepository defines persistence operations for quotes. Save persists
// the header and its items atomically; HardDelete removes items then the
// header in one transaction.
type QuoteRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Quote, error)
	FindByNumber(ctx context.Context, quoteNumber string) (*Quote, error)
	// FindAllActive returns all active quotes, unscoped. Privileged callers
	// only.
	FindAllActive(ctx context.Context, filter shared.Filter) ([]Quote, error)
	// FindByPartner returns a partner's active quotes. When excludeForeignDrafts
	// is set, drafts created outside that partner are suppressed.
	FindByPartner(ctx context.Context, partnerID uuid.UUID, excludeForeignDrafts bool, filter shared.Filter) ([]Quote, error)
	ExistsByNumber(ctx context.Context, quoteNumber string) (bool, error)
	Save(ctx context.Context, quote *Quote) error
	HardDelete(ctx context.Context, id uuid.UUID) error
}
