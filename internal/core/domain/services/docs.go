// Package services holds domain logic that spans more than one aggregate.
//
// The package includes:
//   - CheckoutPricer: turns a cart into priced order line items from the current meal catalog
package services
