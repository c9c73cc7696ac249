package shared

import "errors"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound           = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists      = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput       = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrUnauthorized       = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden          = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidState       = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrPartnerScope       = NewDomainError("PARTNER_SCOPE", "Resource belongs to another partner")
	ErrCircularDependency = NewDomainError("CIRCULAR_DEPENDENCY", "Product dependency chain would form a cycle")
	ErrNegativeMargin     = NewDomainError("NEGATIVE_MARGIN", "Customer price cannot be below the partner price")
	ErrQuoteConverted     = NewDomainError("QUOTE_CONVERTED", "Quote has already been converted to an order")
	ErrLastAdmin          = NewDomainError("LAST_ADMIN", "A partner must keep at least one active partner admin")
	ErrLastSuperAdmin     = NewDomainError("LAST_SUPER_ADMIN", "The last active super admin cannot be removed or demoted")
)

// IsNotFound reports whether err is the not-found domain error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// CodeOf extracts the domain error code, or INTERNAL for non-domain errors
func CodeOf(err error) string {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return "INTERNAL"
}
