package partner

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tornado/portal/internal/domain/shared"
)

var codePattern = regexp.MustCompile(`^[A-Z0-9][A-Z0-9_-]{1,31}$`)

// Partner represents a reseller organization that buys from the provider and
// resells to its own customers.
type Partner struct {
	shared.BaseAggregateRoot
	Name         string `gorm:"size:200;not null"`
	Code         string `gorm:"size:32;not null;uniqueIndex"`
	ContactName  string `gorm:"size:200"`
	ContactEmail string `gorm:"size:255"`
	ContactPhone string `gorm:"size:50"`
	IsActive     bool   `gorm:"not null;default:true;index"`
}

// NewPartner creates a new active partner
func NewPartner(name, code string) (*Partner, error) {
	name = strings.TrimSpace(name)
	code = strings.ToUpper(strings.TrimSpace(code))

	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Partner name cannot be empty")
	}
	if !codePattern.MatchString(code) {
		return nil, shared.NewDomainError("INVALID_CODE", "Partner code must be 2-32 characters of A-Z, 0-9, '-' or '_'")
	}

	return &Partner{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Code:              code,
		IsActive:          true,
	}, nil
}

// UpdateContact updates the partner contact information
func (p *Partner) UpdateContact(name, email, phone string) {
	p.ContactName = strings.TrimSpace(name)
	p.ContactEmail = strings.TrimSpace(email)
	p.ContactPhone = strings.TrimSpace(phone)
	p.UpdatedAt = time.Now()
}

// Rename changes the partner display name
func (p *Partner) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Partner name cannot be empty")
	}
	p.Name = name
	p.UpdatedAt = time.Now()
	return nil
}

// Deactivate soft-deletes the partner
func (p *Partner) Deactivate() {
	p.IsActive = false
	p.UpdatedAt = time.Now()
}

// PartnerRepository defines persistence operations for partners
type PartnerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Partner, error)
	FindByCode(ctx context.Context, code string) (*Partner, error)
	FindAllActive(ctx context.Context, filter shared.Filter) ([]Partner, error)
	FirstActive(ctx context.Context) (*Partner, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	Save(ctx context.Context, partner *Partner) error
}
