package shared

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity carries the identity and audit columns shared by every
// persisted record. IDs are assigned at construction, not by the database,
// so saves can upsert by primary key.
type BaseEntity struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBaseEntity returns a BaseEntity with a fresh ID and timestamps
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// BaseAggregateRoot buffers domain events raised by an aggregate until the
// application layer publishes and clears them after a successful save.
type BaseAggregateRoot struct {
	BaseEntity
	domainEvents []DomainEvent `gorm:"-"`
}

// NewBaseAggregateRoot creates a new base aggregate root
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{BaseEntity: NewBaseEntity()}
}

// AddDomainEvent records an event for publication after the next save
func (a *BaseAggregateRoot) AddDomainEvent(event DomainEvent) {
	a.domainEvents = append(a.domainEvents, event)
}

// GetDomainEvents returns the buffered, unpublished events
func (a *BaseAggregateRoot) GetDomainEvents() []DomainEvent {
	return a.domainEvents
}

// ClearDomainEvents drops the buffered events
func (a *BaseAggregateRoot) ClearDomainEvents() {
	a.domainEvents = nil
}

// PartnerAggregateRoot extends BaseAggregateRoot with partner scoping.
// PartnerID identifies the reseller partner the record belongs to and is the
// unit of data isolation; CreatedBy records the authoring user for
// creator-based visibility rules (e.g. draft quotes).
type PartnerAggregateRoot struct {
	BaseAggregateRoot
	PartnerID uuid.UUID  `gorm:"type:uuid;not null;index"`
	CreatedBy *uuid.UUID `gorm:"type:uuid;index"`
}

// NewPartnerAggregateRoot creates a new partner-scoped aggregate root
func NewPartnerAggregateRoot(partnerID uuid.UUID) PartnerAggregateRoot {
	return PartnerAggregateRoot{
		BaseAggregateRoot: NewBaseAggregateRoot(),
		PartnerID:         partnerID,
	}
}

// NewPartnerAggregateRootWithCreator creates a new partner-scoped aggregate root with creator info
func NewPartnerAggregateRootWithCreator(partnerID, createdBy uuid.UUID) PartnerAggregateRoot {
	return PartnerAggregateRoot{
		BaseAggregateRoot: NewBaseAggregateRoot(),
		PartnerID:         partnerID,
		CreatedBy:         &createdBy,
	}
}

// SetCreatedBy sets the creator user ID
func (p *PartnerAggregateRoot) SetCreatedBy(userID uuid.UUID) {
	p.CreatedBy = &userID
}

// GetCreatedBy returns the creator user ID
func (p *PartnerAggregateRoot) GetCreatedBy() *uuid.UUID {
	return p.CreatedBy
}
