package querybuilder

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultSortField orders results when no usable sort was requested.
const DefaultSortField = "createdAt"

// Kind is the storage type of a queryable field.
type Kind int

const (
	KindString Kind = iota + 1
	KindNumber
	KindBool
	KindID
	KindTime
)

// Schema declares the fields of one resource that may be filtered and sorted.
type Schema struct {
	fields   map[string]Kind
	sortable map[string]struct{}
}

// NewSchema builds a Schema. Every sortable field must also be listed in fields.
func NewSchema(fields map[string]Kind, sortable ...string) Schema {
	s := Schema{
		fields:   make(map[string]Kind, len(fields)),
		sortable: make(map[string]struct{}, len(sortable)+1),
	}
	for name, kind := range fields {
		s.fields[name] = kind
	}
	for _, name := range sortable {
		if _, ok := s.fields[name]; ok {
			s.sortable[name] = struct{}{}
		}
	}
	s.sortable[DefaultSortField] = struct{}{}
	return s
}

// Kind returns the kind of field.
func (s Schema) Kind(field string) (Kind, bool) {
	kind, ok := s.fields[field]
	return kind, ok
}

// Coerce converts the raw filter value of field to its kind. It reports false
// for unknown fields and values that do not parse; such filters match nothing.
func (s Schema) Coerce(field, raw string) (any, bool) {
	kind, ok := s.fields[field]
	if !ok {
		return nil, false
	}

	switch kind {
	case KindString:
		return raw, true
	case KindNumber:
		n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		return n, err == nil
	case KindBool:
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		return b, err == nil
	case KindID:
		id, err := uuid.Parse(strings.TrimSpace(raw))
		return id, err == nil
	case KindTime:
		return parseTime(strings.TrimSpace(raw))
	default:
		return nil, false
	}
}

// Cents converts a coerced decimal amount to whole cents. It is meant as a
// storage Convert for amount fields kept in cents.
func Cents(v any) (any, bool) {
	amount, ok := v.(float64)
	if !ok || math.IsNaN(amount) || amount < 0 || amount > math.MaxInt64/100 {
		return nil, false
	}
	return int64(math.Round(amount * 100)), true
}

// Text converts a coerced value, such as an id, to its stored string form.
func Text(v any) (any, bool) {
	s, ok := v.(interface{ String() string })
	if !ok {
		return nil, false
	}
	return s.String(), true
}

// ResolveSort returns the requested sort when its field is sortable, and the
// default ordering otherwise.
func (s Schema) ResolveSort(sort *Sort) Sort {
	if sort != nil {
		if _, ok := s.sortable[sort.Field]; ok {
			return *sort
		}
	}
	return Sort{Field: DefaultSortField}
}

func parseTime(raw string) (any, bool) {
	for _, layout := range []string{time.RFC3339Nano, time.DateOnly} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return nil, false
}
