package querybuilder

import (
	"maps"
	"math"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// Reserved parameter keys.
const (
	KeySearchTerm = "searchTerm"
	KeyPage       = "page"
	KeyLimit      = "limit"
	KeySortBy     = "sortBy"
	KeySortOrder  = "sortOrder"
	KeyFields     = "fields"
)

const (
	DefaultPage  = 1
	DefaultLimit = 6
	// MaxLimit caps the page size a caller may request.
	MaxLimit = 100

	// MetadataField is the storage revision counter; it is never returned.
	MetadataField = "__v"
	// IDField is always part of a projection.
	IDField = "id"

	sortOrderDesc = "desc"
)

var reservedKeys = []string{KeySearchTerm, KeyPage, KeyLimit, KeySortBy, KeySortOrder, KeyFields}

// ReservedKeys returns the parameter keys that are never treated as filters.
func ReservedKeys() []string {
	return slices.Clone(reservedKeys)
}

// IsReserved reports whether key is one of the reserved parameter keys.
func IsReserved(key string) bool {
	return slices.Contains(reservedKeys, key)
}

// Params is the raw flat key/value mapping of one request.
type Params map[string]string

// ParamsFromValues keeps the first value of every key.
func ParamsFromValues(values url.Values) Params {
	params := make(Params, len(values))
	for key, vals := range values {
		if len(vals) > 0 {
			params[key] = vals[0]
		}
	}
	return params
}

// Search restricts results to records where any of Fields contains Term, ignoring case.
type Search struct {
	Term   string
	Fields []string
}

// Page is a 1-based page of Limit records.
type Page struct {
	Number int
	Limit  int
}

// Skip is the number of records preceding the page. It is 0 for pages whose
// offset does not fit in an int.
func (p Page) Skip() int {
	if p.Number < 1 || p.Limit < 1 || p.Number-1 > math.MaxInt/p.Limit {
		return 0
	}
	return (p.Number - 1) * p.Limit
}

// TotalPages is the number of pages needed for total records.
func (p Page) TotalPages(total int64) int {
	if p.Limit < 1 || total <= 0 {
		return 0
	}
	return int((total + int64(p.Limit) - 1) / int64(p.Limit))
}

// Sort orders results by Field.
type Sort struct {
	Field      string
	Descending bool
}

// Projection lists the fields to return. An empty Fields means every field.
// MetadataField is always excluded.
type Projection struct {
	Fields []string
}

// All reports whether the projection returns every field.
func (p Projection) All() bool {
	return len(p.Fields) == 0
}

// Includes reports whether field is returned.
func (p Projection) Includes(field string) bool {
	if field == MetadataField {
		return false
	}
	if field == IDField || p.All() {
		return true
	}
	return slices.Contains(p.Fields, field)
}

// Apply drops every key of doc the projection does not return.
func (p Projection) Apply(doc map[string]any) map[string]any {
	out := make(map[string]any, len(doc))
	for key, value := range doc {
		if p.Includes(key) {
			out[key] = value
		}
	}
	return out
}

// Query is the result of a Builder. Nil stages were not requested.
type Query struct {
	Search     *Search
	Filters    map[string]string
	Page       *Page
	Sort       *Sort
	Projection Projection
}

// FilterKeys returns the filter keys in a stable order.
func (q Query) FilterKeys() []string {
	return slices.Sorted(maps.Keys(q.Filters))
}

// Builder refines a Query stage by stage from raw Params.
type Builder struct {
	params Params
	query  Query
}

// New starts a Builder over a copy of params.
func New(params Params) *Builder {
	return &Builder{params: maps.Clone(params)}
}

// Standard runs every stage in the conventional order.
func Standard(params Params, searchableFields ...string) Query {
	return New(params).
		Search(searchableFields...).
		Filter().
		Sort().
		Paginate().
		Select().
		Query()
}

// Search records a case-insensitive contains-match of searchTerm over fields.
// The term is kept as given. An absent or blank term leaves the query unrestricted.
func (b *Builder) Search(fields ...string) *Builder {
	term := b.params[KeySearchTerm]
	if strings.TrimSpace(term) == "" || len(fields) == 0 {
		b.query.Search = nil
		return b
	}

	b.query.Search = &Search{
		Term:   term,
		Fields: slices.Clone(fields),
	}
	return b
}

// Filter turns every non-reserved parameter into an exact-match criterion.
func (b *Builder) Filter() *Builder {
	filters := maps.Clone(b.params)
	if filters == nil {
		filters = make(map[string]string)
	}
	for _, key := range reservedKeys {
		delete(filters, key)
	}

	b.query.Filters = filters
	return b
}

// Paginate applies page and limit, falling back to the defaults for anything
// that is not a positive integer. The limit is capped at MaxLimit and a page
// whose offset would overflow falls back to DefaultPage.
func (b *Builder) Paginate() *Builder {
	limit := min(positiveIntOr(b.params[KeyLimit], DefaultLimit), MaxLimit)
	number := positiveIntOr(b.params[KeyPage], DefaultPage)
	if number-1 > math.MaxInt/limit {
		number = DefaultPage
	}

	b.query.Page = &Page{
		Number: number,
		Limit:  limit,
	}
	return b
}

// Sort applies sortBy and sortOrder when both are present.
func (b *Builder) Sort() *Builder {
	sortBy := strings.TrimSpace(b.params[KeySortBy])
	sortOrder := strings.TrimSpace(b.params[KeySortOrder])
	if sortBy == "" || sortOrder == "" {
		b.query.Sort = nil
		return b
	}

	b.query.Sort = &Sort{
		Field:      sortBy,
		Descending: sortOrder == sortOrderDesc,
	}
	return b
}

// Select restricts the returned fields to the comma-separated fields parameter.
func (b *Builder) Select() *Builder {
	var fields []string
	for _, field := range strings.Split(b.params[KeyFields], ",") {
		field = strings.TrimSpace(field)
		if field == "" || field == MetadataField || slices.Contains(fields, field) {
			continue
		}
		fields = append(fields, field)
	}

	b.query.Projection = Projection{Fields: fields}
	return b
}

// Query returns the refined query. The Builder may keep being used afterwards.
func (b *Builder) Query() Query {
	q := b.query
	q.Filters = maps.Clone(b.query.Filters)
	q.Projection.Fields = slices.Clone(b.query.Projection.Fields)
	if b.query.Search != nil {
		s := *b.query.Search
		s.Fields = slices.Clone(s.Fields)
		q.Search = &s
	}
	if b.query.Page != nil {
		p := *b.query.Page
		q.Page = &p
	}
	if b.query.Sort != nil {
		s := *b.query.Sort
		q.Sort = &s
	}
	return q
}

func positiveIntOr(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
