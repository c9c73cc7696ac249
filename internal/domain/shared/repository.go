package shared

// Filter carries the list-query options every repository understands.
// Search is matched against each aggregate's human-readable columns.
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
}

// DefaultFilter returns the portal-wide list defaults: newest first, twenty
// rows per page.
func DefaultFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: 20,
		OrderBy:  "created_at",
		OrderDir: "desc",
	}
}
