package repository

import (
	"math"
	"strconv"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100

	defaultOrderField = "name"
)

// Sortable fields exposed by the API mapped to their columns.
var (
	UserOrderFields = map[string]string{
		"id":        "id",
		"name":      "name",
		"email":     "email",
		"isActive":  "is_active",
		"createdAt": "created_at",
		"updatedAt": "updated_at",
	}

	FavoriteCityOrderFields = map[string]string{
		"id":          "id",
		"name":        "name",
		"countryCode": "country_code",
		"lat":         "lat",
		"lon":         "lon",
		"notes":       "notes",
		"userId":      "user_id",
		"createdAt":   "created_at",
		"updatedAt":   "updated_at",
	}
)

// Order is a validated sort instruction.
type Order struct {
	Field  string // API field name
	Column string
	Desc   bool
}

// OrderBy resolves a requested field and direction against an allow-list.
// Unknown fields fall back to name, anything but "asc" sorts descending.
func OrderBy(allowed map[string]string, field, dir string) Order {
	column, ok := allowed[field]
	if !ok {
		field = defaultOrderField
		column = allowed[defaultOrderField]
	}
	return Order{
		Field:  field,
		Column: column,
		Desc:   strings.ToLower(strings.TrimSpace(dir)) != "asc",
	}
}

// Apply adds the order plus an id tiebreaker so equal keys keep a stable
// position between calls.
func (o Order) Apply(db *gorm.DB) *gorm.DB {
	db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: o.Column}, Desc: o.Desc})
	if o.Column != "id" {
		db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}})
	}
	return db
}

// PageRequest is a clamped page/pageSize pair.
type PageRequest struct {
	Page     int
	PageSize int
}

// NewPageRequest parses raw query values. Missing, malformed or
// non-positive values become 1 and 10; pageSize is capped at MaxPageSize.
func NewPageRequest(page, pageSize string) PageRequest {
	p, err := strconv.Atoi(strings.TrimSpace(page))
	if err != nil || p < 1 {
		p = DefaultPage
	}
	s, err := strconv.Atoi(strings.TrimSpace(pageSize))
	if err != nil || s < 1 {
		s = DefaultPageSize
	}
	if s > MaxPageSize {
		s = MaxPageSize
	}
	// Keep (page-1)*pageSize within int.
	if p > math.MaxInt/s {
		p = math.MaxInt / s
	}
	return PageRequest{Page: p, PageSize: s}
}

func (r PageRequest) Offset() int {
	return (r.Page - 1) * r.PageSize
}

// containsPattern builds a LIKE pattern matching term anywhere, with LIKE
// wildcards in term escaped. Use with "LOWER(col) LIKE ? ESCAPE '\'".
func containsPattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(term)) + "%"
}

const nameContains = `LOWER(name) LIKE ? ESCAPE '\'`
