// Package user holds the User aggregate and its roles.
//
// Customers place orders and rate meals, providers own meals, admins manage
// accounts. Only customers and providers can sign up; admins are seeded.
package user
