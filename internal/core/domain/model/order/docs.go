// Package order holds the Order aggregate and its lifecycle.
//
// The package includes:
//   - Order: the aggregate root created at checkout
//   - Status: the single ordered state machine of an order
//   - Stage and TrackingUpdate: the append-only tracking log and its milestones
//   - LineItem, Pricing and Totals: what was ordered and what it costs
//
// Key business rules:
//   - total = subtotal + tax + shipping, tax = round(subtotal × tax rate)
//   - the tracking stages shown to customers are derived from Status, never stored
//   - tracking updates move forward only; the tracking number is set once
//   - only the customer of a delivered order may rate the meals in it
package order
