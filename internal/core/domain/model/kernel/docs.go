// Package kernel holds the value objects shared by every aggregate of the
// meal-ordering domain.
//
// The package includes:
//   - UUID: an identifier value object whose zero value is invalid
//   - Money: an amount in cents with half-up rounding for rates
//
// Both types are immutable and safe for concurrent use.
package kernel
