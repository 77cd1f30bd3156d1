// Package user models the people who interact with the storehouse.
//
// A User is a tagged variant: Kind selects Customer or Employee, and each kind
// supplies its own default roles. Customers whose identity is below
// PremiumIDMax are premium and are always served ahead of other customers in
// the order queue.
package user
