package quoting

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tornado/portal/internal/domain/catalog"
	"github.com/tornado/portal/internal/domain/identity"
	"github.com/tornado/portal/internal/domain/partner"
	"github.com/tornado/portal/internal/domain/quoting"
	"github.com/tornado/portal/internal/domain/shared"
)

// quoteNumberAttempts bounds the retry loop on number collisions
const quoteNumberAttempts = 5

// QuoteService handles the quote lifecycle from draft to customer response
type QuoteService struct {
	quoteRepo   quoting.QuoteRepository
	productRepo catalog.ProductRepository
	priceRepo   partner.PartnerPriceRepository
	partnerRepo partner.PartnerRepository
	events      shared.EventPublisher
}

// NewQuoteService creates a new QuoteService
func NewQuoteService(
	quoteRepo quoting.QuoteRepository,
	productRepo catalog.ProductRepository,
	priceRepo partner.PartnerPriceRepository,
	partnerRepo partner.PartnerRepository,
	events shared.EventPublisher,
) *QuoteService {
	return &QuoteService{
		quoteRepo:   quoteRepo,
		productRepo: productRepo,
		priceRepo:   priceRepo,
		partnerRepo: partnerRepo,
		events:      events,
	}
}

// Create creates a draft quote with fully resolved two-tier pricing
func (s *QuoteService) Create(ctx context.Context, actor identity.Actor, req CreateQuoteRequest) (*QuoteResponse, error) {
	if err := actor.RequirePermission(identity.PermQuoteCreate); err != nil {
		return nil, err
	}

	partnerID, err := s.resolveQuotePartner(ctx, actor, req.PartnerID)
	if err != nil {
		return nil, err
	}

	p, err := s.partnerRepo.FindByID(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	if !p.IsActive {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot quote for an inactive partner")
	}

	number, err := s.nextQuoteNumber(ctx)
	if err != nil {
		return nil, err
	}

	quote, err := quoting.NewQuote(partnerID, actor.UserID, number, req.CustomerName, req.CustomerID, req.ValidUntil)
	if err != nil {
		return nil, err
	}
	quote.CreatorPartnerID = actor.PartnerID
	if req.Notes != "" {
		quote.SetNotes(req.Notes)
	}

	for _, line := range req.Lines {
		if err := s.addLine(ctx, actor, quote, partnerID, line); err != nil {
			return nil, err
		}
	}

	if err := s.quoteRepo.Save(ctx, quote); err != nil {
		return nil, err
	}
	s.publish(ctx, quote)

	response := ToQuoteResponse(quote)
	return &response, nil
}

// resolveQuotePartner picks the partner a new quote belongs to. Partner
// actors are pinned to their own partner; privileged actors may name any
// partner and fall back to the oldest active one when none is given.
func (s *QuoteService) resolveQuotePartner(ctx context.Context, actor identity.Actor, requested *uuid.UUID) (uuid.UUID, error) {
	if actor.IsPrivileged() && requested == nil {
		first, err := s.partnerRepo.FirstActive(ctx)
		if err != nil {
			return uuid.Nil, err
		}
		return first.ID, nil
	}
	return actor.ScopedPartnerID(requested)
}

// GetByID retrieves a quote under the partner isolation rules
func (s *QuoteService) GetByID(ctx context.Context, actor identity.Actor, quoteID uuid.UUID) (*QuoteResponse, error) {
	if err := actor.RequirePermission(identity.PermQuoteRead); err != nil {
		return nil, err
	}

	quote, err := s.quoteRepo.FindByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	if !s.canView(actor, quote) {
		return nil, shared.ErrNotFound
	}

	response := ToQuoteResponse(quote)
	return &response, nil
}

// List retrieves quotes: everything for privileged actors, the own partner's
// quotes (minus foreign-authored drafts) for partner actors
func (s *QuoteService) List(ctx context.Context, actor identity.Actor, filter shared.Filter) ([]QuoteResponse, error) {
	if err := actor.RequirePermission(identity.PermQuoteRead); err != nil {
		return nil, err
	}

	if actor.IsPrivileged() {
		quotes, err := s.quoteRepo.FindAllActive(ctx, filter)
		if err != nil {
			return nil, err
		}
		return ToQuoteListResponses(quotes), nil
	}

	partnerID, err := actor.ScopedPartnerID(nil)
	if err != nil {
		return nil, err
	}

	quotes, err := s.quoteRepo.FindByPartner(ctx, partnerID, true, filter)
	if err != nil {
		return nil, err
	}
	return ToQuoteListResponses(quotes), nil
}

// Transition applies a parsed, case-insensitive status change. Sending needs
// quote:create on the owning partner; approving and rejecting need
// quote:manage or the self-service path (the acting user is the quote's
// customer).
func (s *QuoteService) Transition(ctx context.Context, actor identity.Actor, quoteID uuid.UUID, req TransitionQuoteRequest) (*QuoteResponse, error) {
	target, err := quoting.ParseQuoteStatus(req.Status)
	if err != nil {
		return nil, err
	}

	quote, err := s.quoteRepo.FindByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if !quote.IsActive {
		return nil, shared.NewDomainError("INVALID_STATE", "Quote is not active")
	}
	if !s.canView(actor, quote) {
		return nil, shared.ErrNotFound
	}

	switch target {
	case quoting.QuoteStatusSent:
		if err := actor.RequirePermission(identity.PermQuoteCreate); err != nil {
			return nil, err
		}
		if err := quote.Send(); err != nil {
			return nil, err
		}
	case quoting.QuoteStatusApproved, quoting.QuoteStatusRejected:
		if !actor.HasPermission(identity.PermQuoteManage) && !quote.CanRespond(actor.UserID) {
			return nil, shared.ErrForbidden
		}
		if target == quoting.QuoteStatusApproved {
			if err := quote.Approve(); err != nil {
				return nil, err
			}
		} else {
			if err := quote.Reject(req.Reason); err != nil {
				return nil, err
			}
		}
	default:
		return nil, shared.NewDomainError("INVALID_STATE", "Quotes cannot move back to draft")
	}

	if err := s.quoteRepo.Save(ctx, quote); err != nil {
		return nil, err
	}
	s.publish(ctx, quote)

	response := ToQuoteResponse(quote)
	return &response, nil
}

// Delete hard-deletes a draft quote and its items. Only the creator or a
// privileged actor may delete.
func (s *QuoteService) Delete(ctx context.Context, actor identity.Actor, quoteID uuid.UUID) error {
	quote, err := s.quoteRepo.FindByID(ctx, quoteID)
	if err != nil {
		return err
	}
	if !s.canView(actor, quote) {
		return shared.ErrNotFound
	}
	if !quote.IsDraft() {
		return shared.NewDomainError("INVALID_STATE", "Only draft quotes can be deleted")
	}

	isCreator := quote.CreatedBy != nil && *quote.CreatedBy == actor.UserID
	if !isCreator && !actor.IsPrivileged() {
		return shared.ErrForbidden
	}

	return s.quoteRepo.HardDelete(ctx, quoteID)
}

// addLine resolves both price tiers for one requested line and appends it
func (s *QuoteService) addLine(ctx context.Context, actor identity.Actor, quote *quoting.Quote, partnerID uuid.UUID, line QuoteLineRequest) error {
	product, err := s.productRepo.FindByID(ctx, line.ProductID)
	if err != nil {
		return err
	}
	if !product.IsActive {
		return shared.NewDomainError("INVALID_STATE", "Product "+product.Code+" is not active")
	}

	partnerScoped := !actor.IsPrivileged()

	var partnerUnit decimal.Decimal
	if line.PartnerUnitPrice != nil && !partnerScoped {
		if line.PartnerUnitPrice.IsNegative() {
			return shared.NewDomainError("INVALID_PRICE", "Partner unit price cannot be negative")
		}
		partnerUnit = *line.PartnerUnitPrice
	} else {
		price, err := s.storedPartnerPrice(ctx, partnerID, product)
		if err != nil {
			return err
		}
		partnerUnit = price
	}

	customerUnit, err := quoting.ResolveCustomerUnitPrice(partnerUnit, line.CustomerUnitPrice, partnerScoped)
	if err != nil {
		return err
	}

	_, err = quote.AddItem(product.ID, product.Name, product.Code, line.Quantity, partnerUnit, customerUnit)
	return err
}

// storedPartnerPrice is the override-else-derived partner price
func (s *QuoteService) storedPartnerPrice(ctx context.Context, partnerID uuid.UUID, product *catalog.Product) (decimal.Decimal, error) {
	override, err := s.priceRepo.FindByPartnerAndProduct(ctx, partnerID, product.ID)
	if err != nil {
		if shared.IsNotFound(err) {
			return partner.DerivePartnerPrice(product.BasePrice).Amount(), nil
		}
		return decimal.Zero, err
	}
	return override.Price.Amount(), nil
}

func (s *QuoteService) canView(actor identity.Actor, quote *quoting.Quote) bool {
	if actor.IsPrivileged() {
		return true
	}
	if actor.PartnerID == nil {
		return false
	}
	return quote.VisibleToPartner(*actor.PartnerID)
}

func (s *QuoteService) nextQuoteNumber(ctx context.Context) (string, error) {
	for i := 0; i < quoteNumberAttempts; i++ {
		number := quoting.NewQuoteNumber(time.Now())
		exists, err := s.quoteRepo.ExistsByNumber(ctx, number)
		if err != nil {
			return "", err
		}
		if !exists {
			return number, nil
		}
	}
	return "", shared.NewDomainError("NUMBER_EXHAUSTED", "Could not allocate a unique quote number")
}

// publish flushes the aggregate's buffered events. Event delivery is best
// effort; the write has already committed.
func (s *QuoteService) publish(ctx context.Context, quote *quoting.Quote) {
	events := quote.GetDomainEvents()
	if len(events) > 0 {
		_ = s.events.Publish(ctx, events...)
	}
	quote.ClearDomainEvents()
}
