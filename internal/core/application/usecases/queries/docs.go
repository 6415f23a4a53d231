// Package queries contains the read side of the application: single lookups
// and paginated list queries over meals, orders and users.
//
// Query handlers read through the repository ports outside any transaction and
// return domain aggregates. Rendering them (and applying field projection) is
// left to the inbound adapters.
package queries
