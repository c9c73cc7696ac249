package persistence

import (
	"strings"

	"github.com/tornado/portal/internal/domain/shared"
	"gorm.io/gorm"
)

// sortableColumns whitelists the columns list queries may order by. Anything
// else falls back to created_at to keep user input out of the ORDER BY
// clause.
var sortableColumns = map[string]bool{
	"created_at":    true,
	"updated_at":    true,
	"name":          true,
	"code":          true,
	"username":      true,
	"quote_number":  true,
	"order_number":  true,
	"customer_name": true,
	"status":        true,
}

// applyFilter applies pagination and ordering from a shared.Filter
func applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	orderBy := filter.OrderBy
	if !sortableColumns[orderBy] {
		orderBy = "created_at"
	}
	orderDir := "DESC"
	if strings.EqualFold(filter.OrderDir, "asc") {
		orderDir = "ASC"
	}
	query = query.Order(orderBy + " " + orderDir)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	return query
}
