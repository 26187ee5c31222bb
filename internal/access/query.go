package access

import (
	"math"
	"strconv"
	"strings"

	"recruit/internal/entity"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// SortOrder selects the ordering of a list query.
type SortOrder string

const (
	SortNewest SortOrder = "newest"
	SortOldest SortOrder = "oldest"
	SortName   SortOrder = "name"
)

// Filters carries the raw list parameters of a request.
type Filters struct {
	Page     string
	Limit    string
	Search   string
	Position string
	Status   string
	Sort     string
	// OwnerID narrows the result to one owner. Only honoured for admins.
	OwnerID *uint
}

// ScopedQuery is the list descriptor executed by the repository.
type ScopedQuery struct {
	// OwnerID, when set, restricts rows to that owner.
	OwnerID  *uint
	Search   string
	Position string
	Status   string
	Sort     SortOrder
	Page     int
	Limit    int
	Skip     int
}

// Unpaged reports whether the query should return every matching row.
func (q ScopedQuery) Unpaged() bool {
	return q.Limit <= 0
}

// BuildQuery turns request filters into a ScopedQuery. Non-admin actors are
// always pinned to their own records, whatever owner the caller asked for.
func BuildQuery(actor *Actor, f Filters) ScopedQuery {
	page := parsePositive(f.Page, DefaultPage)
	limit := parsePositive(f.Limit, DefaultLimit)
	if limit > MaxLimit {
		limit = MaxLimit
	}

	q := ScopedQuery{
		Search:   strings.TrimSpace(f.Search),
		Position: strings.TrimSpace(f.Position),
		Status:   strings.TrimSpace(f.Status),
		Sort:     ParseSort(f.Sort),
		Page:     page,
		Limit:    limit,
		Skip:     skipFor(page, limit),
	}

	switch {
	case actor.IsAdmin():
		if f.OwnerID != nil {
			q.OwnerID = Owner(*f.OwnerID)
		}
	case actor != nil:
		q.OwnerID = Owner(actor.ID)
	default:
		// anonymous callers match nothing
		q.OwnerID = Owner(0)
	}
	return q
}

// skipFor returns (page-1)*limit. Pages whose offset does not fit in an int
// get math.MaxInt so they land past the last row.
func skipFor(page, limit int) int {
	if page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (page - 1) * limit
}

// ParseSort maps a sort parameter to a SortOrder, defaulting to newest first.
func ParseSort(raw string) SortOrder {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "oldest", "asc", "createdat":
		return SortOldest
	case "name":
		return SortName
	default:
		return SortNewest
	}
}

// NewPagination builds the pagination block returned next to a page of rows.
func NewPagination(q ScopedQuery, total int64) entity.Pagination {
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	page := q.Page
	if page <= 0 {
		page = DefaultPage
	}
	if total < 0 {
		total = 0
	}
	return entity.Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: (total + int64(limit) - 1) / int64(limit),
	}
}

func parsePositive(raw string, fallback int) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
