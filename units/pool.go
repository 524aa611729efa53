// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package units

import (
	"log/slog"
	"runtime"
	"sync"
	"weak"
)

// pool interns values of type T under comparable keys. Entries are held
// weakly: once no caller references the canonical value any more, the
// garbage collector reclaims it and a cleanup drops the entry.
//
// Lookup and insertion happen in one critical section, so two goroutines
// racing on equal keys always receive the same pointer.
type pool[K comparable, T any] struct {
	name    string
	mu      sync.Mutex
	entries map[K]weak.Pointer[T]
	metrics *poolMetrics
	logger  func() *slog.Logger
}

type poolEntry[K comparable, T any] struct {
	key K
	ptr weak.Pointer[T]
}

func newPool[K comparable, T any](name string, metrics *poolMetrics, logger func() *slog.Logger) *pool[K, T] {
	return &pool[K, T]{
		name:    name,
		entries: make(map[K]weak.Pointer[T]),
		metrics: metrics,
		logger:  logger,
	}
}

// intern returns the live value registered under the first of keys that
// has one, registering it under the remaining keys as well. When none of
// the keys has a live value, build is called and its result is
// registered under every key.
func (p *pool[K, T]) intern(build func() *T, keys ...K) *T {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, key := range keys {
		ptr, ok := p.entries[key]
		if !ok {
			continue
		}
		existing := ptr.Value()
		if existing == nil {
			continue
		}
		for j, other := range keys {
			if j != i {
				p.adopt(other, existing, ptr)
			}
		}
		p.metrics.hit(p.name)
		return existing
	}

	candidate := build()
	ptr := weak.Make(candidate)
	for _, key := range keys {
		p.adopt(key, candidate, ptr)
	}
	p.metrics.miss(p.name)
	return candidate
}

// canonicalize returns the live value equal to candidate (as identified by
// key) or registers candidate itself.
func (p *pool[K, T]) canonicalize(key K, candidate *T) *T {
	return p.intern(func() *T { return candidate }, key)
}

// adopt registers value under key unless key already maps to a live
// value. Must be called with p.mu held.
func (p *pool[K, T]) adopt(key K, value *T, ptr weak.Pointer[T]) {
	if current, ok := p.entries[key]; ok && current.Value() != nil {
		return
	}
	p.entries[key] = ptr
	runtime.AddCleanup(value, p.evict, poolEntry[K, T]{key: key, ptr: ptr})
}

func (p *pool[K, T]) evict(e poolEntry[K, T]) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if current, ok := p.entries[e.key]; ok && current == e.ptr {
		delete(p.entries, e.key)
		p.metrics.eviction(p.name)
		p.logger().Debug("evicted unit pool entry", "pool", p.name, "remaining", len(p.entries))
	}
}

// live counts the distinct values still reachable from the pool.
func (p *pool[K, T]) live() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	seen := make(map[*T]struct{}, len(p.entries))
	for _, ptr := range p.entries {
		if v := ptr.Value(); v != nil {
			seen[v] = struct{}{}
		}
	}
	return len(seen)
}
