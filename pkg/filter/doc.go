// Package filter decides whether a peripheral's advertisement satisfies a
// request's filter expression.
//
// An Expression is either AcceptAll or an ordered, non-empty list of
// clauses. A peripheral matches when any clause matches (OR), and a clause
// matches only when every criterion it sets matches (AND).
//
// A criterion the advertisement does not carry is a non-match: a clause
// with Name set never matches a peripheral that advertises no name, and a
// service-data clause never matches a peripheral without that service's
// data. Nothing is treated as a wildcard.
//
// Options arrive in the Web Bluetooth JSON shape and are validated once by
// ParseRequestDeviceOptions. Everything downstream works on the tagged,
// already-validated form.
package filter
