// Package identity assigns opaque device identifiers to peripheral
// addresses.
//
// An identifier is minted the first time an address is seen and stays
// bound to it for the life of the Cache. The mapping is one-to-one:
// concurrent first sightings of the same address converge on a single
// identifier, and distinct addresses never share one. Identifiers carry
// no information about the address they stand for.
//
// The cache never evicts. A long-lived process scanning busy surroundings
// grows it by one entry per distinct address seen; Len exposes the size so
// callers can monitor it.
package identity
