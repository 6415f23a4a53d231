// Package querybuilder turns the flat query-string parameters of list endpoints
// into a storage-agnostic Query: a case-insensitive search over chosen fields,
// exact-match filters, pagination, sorting and a field projection.
//
// The Builder is fluent; every stage reads the raw parameters it owns and records
// its result on the Query:
//
//	q := querybuilder.New(querybuilder.ParamsFromValues(r.URL.Query())).
//		Search("name", "description").
//		Filter().
//		Sort().
//		Paginate().
//		Select().
//		Query()
//
// Reserved keys (searchTerm, page, limit, sortBy, sortOrder, fields) never become
// filters. Malformed input never fails: non-numeric or non-positive page and limit
// values fall back to the defaults (1 and 6), a sort needs both sortBy and sortOrder,
// and an empty search term is ignored.
//
// Storage adapters translate a Query with the help of a Schema, which declares
// the kind of every filterable field so raw string values can be coerced.
package querybuilder
