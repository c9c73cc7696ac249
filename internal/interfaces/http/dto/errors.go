package dto

import "net/http"

// Error codes surfaced by the HTTP layer itself. Domain codes pass through
// unchanged so clients can react to them.
const (
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeInternal     = "INTERNAL"
)

// codeStatus maps domain error codes to HTTP status codes. Unknown codes fall
// back to 400: they come from input validation inside the domain layer.
var codeStatus = map[string]int{
	ErrCodeNotFound: http.StatusNotFound,

	"ALREADY_EXISTS":    http.StatusConflict,
	"QUOTE_CONVERTED":   http.StatusConflict,
	"PRODUCT_IN_USE":    http.StatusConflict,
	"DUPLICATE_PRODUCT": http.StatusConflict,

	ErrCodeUnauthorized:   http.StatusUnauthorized,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"TOKEN_EXPIRED":       http.StatusUnauthorized,
	"INVALID_TOKEN":       http.StatusUnauthorized,

	ErrCodeForbidden: http.StatusForbidden,
	"PARTNER_SCOPE":  http.StatusForbidden,

	"INVALID_STATE":       http.StatusUnprocessableEntity,
	"CIRCULAR_DEPENDENCY": http.StatusUnprocessableEntity,
	"NEGATIVE_MARGIN":     http.StatusUnprocessableEntity,
	"LAST_ADMIN":          http.StatusUnprocessableEntity,
	"LAST_SUPER_ADMIN":    http.StatusUnprocessableEntity,
	"NO_ITEMS":            http.StatusUnprocessableEntity,

	ErrCodeInternal: http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for a domain error code
func GetHTTPStatus(code string) int {
	if status, ok := codeStatus[code]; ok {
		return status
	}
	return http.StatusBadRequest
}
