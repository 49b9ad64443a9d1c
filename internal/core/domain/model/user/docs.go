// Package user contains the User entity and its Role classification.
// Users are owned by the identity service; this core treats them as
// read-only participants whose roles gate delivery assignments.
package user
