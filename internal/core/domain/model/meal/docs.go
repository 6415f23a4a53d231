// Package meal holds the Meal aggregate: a dish in a provider's catalog, the
// customization a customer may choose at checkout, and its customer reviews.
//
// A meal's rating is kept as a running sum and count of review scores so
// storage can add a review and update the rating in one atomic write.
package meal
