package identity

import (
	"encoding/base64"
	"sync"

	"github.com/26F-Studio/webble/pkg/ble"
	"github.com/google/uuid"
)

// DeviceID is an opaque identifier handed to callers in place of a
// hardware address.
type DeviceID string

// String returns the identifier as text.
func (id DeviceID) String() string {
	return string(id)
}

// Generator mints a fresh identifier. It must not return the same value
// twice within a process.
type Generator func() (DeviceID, error)

// NewRandomID is the default Generator: the base64 encoding of the textual
// form of a random (version 4) UUID.
func NewRandomID() (DeviceID, error) {
	u, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return DeviceID(base64.StdEncoding.EncodeToString([]byte(u.String()))), nil
}

// entry is what the cache holds per identifier.
type entry[H any] struct {
	addr   ble.Address
	handle H
}

// Cache maps addresses to identifiers and identifiers to the peripheral
// handle of type H captured when the identifier was minted. The zero
// value is not usable; create one with New.
type Cache[H any] struct {
	mu     sync.RWMutex
	byAddr map[ble.Address]DeviceID
	byID   map[DeviceID]entry[H]
	gen    Generator

	// onInsert, if set, is called with the new size after every insert,
	// outside the lock.
	onInsert func(size int)
}

// Option configures a Cache.
type Option func(*options)

type options struct {
	gen      Generator
	onInsert func(size int)
}

// WithGenerator replaces the identifier generator.
func WithGenerator(g Generator) Option {
	return func(o *options) {
		o.gen = g
	}
}

// WithInsertHook registers fn to observe the cache size after inserts.
func WithInsertHook(fn func(size int)) Option {
	return func(o *options) {
		o.onInsert = fn
	}
}

// New creates an empty cache.
func New[H any](opts ...Option) *Cache[H] {
	o := options{gen: NewRandomID}
	for _, opt := range opts {
		opt(&o)
	}
	return &Cache[H]{
		byAddr:   make(map[ble.Address]DeviceID),
		byID:     make(map[DeviceID]entry[H]),
		gen:      o.gen,
		onInsert: o.onInsert,
	}
}

// ResolveOrInsert returns the identifier bound to addr, minting and
// recording a new one together with handle if addr has not been seen.
// For a known address the cached handle is kept and handle is ignored.
// Concurrent callers with the same address all receive the same
// identifier.
func (c *Cache[H]) ResolveOrInsert(addr ble.Address, handle H) (DeviceID, error) {
	c.mu.RLock()
	id, ok := c.byAddr[addr]
	c.mu.RUnlock()
	if ok {
		return id, nil
	}

	// Mint outside the write lock; a lost race discards the value. A
	// generator collision with an existing identifier draws again.
	for {
		fresh, err := c.gen()
		if err != nil {
			return "", err
		}

		c.mu.Lock()
		if id, ok := c.byAddr[addr]; ok {
			c.mu.Unlock()
			return id, nil
		}
		if _, taken := c.byID[fresh]; taken {
			c.mu.Unlock()
			continue
		}
		c.byAddr[addr] = fresh
		c.byID[fresh] = entry[H]{addr: addr, handle: handle}
		size := len(c.byAddr)
		c.mu.Unlock()

		if c.onInsert != nil {
			c.onInsert(size)
		}
		return fresh, nil
	}
}

// Lookup returns the peripheral handle bound to id.
func (c *Cache[H]) Lookup(id DeviceID) (H, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.byID[id]
	return e.handle, ok
}

// AddressOf returns the address bound to id.
func (c *Cache[H]) AddressOf(id DeviceID) (ble.Address, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.byID[id]
	return e.addr, ok
}

// IDFor returns the identifier bound to addr without minting one.
func (c *Cache[H]) IDFor(addr ble.Address) (DeviceID, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	id, ok := c.byAddr[addr]
	return id, ok
}

// Len returns the number of bound addresses.
func (c *Cache[H]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byAddr)
}
