// Package delivery contains the Delivery aggregate root and its lifecycle
// rules: role-validated creation, exactly-once completion, and driver-only
// route reordering.
package delivery
