// Package cache gives an embedding host (an editor server, an
// incremental build tool) a place to keep parsed modules keyed by
// content hash, so repeated compiles of an unchanged file skip lexing
// and parsing entirely. Every phase is idempotent on equal input, so
// this cache is an optional speedup, never a requirement of the core
// pipeline.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
)

// Key identifies one cached unit: a file path plus the hash of its
// contents at the time it was parsed. A host re-reads a file, hashes
// it, and only re-parses if the resulting Key isn't already present.
type Key struct {
	FilePath    string
	ContentHash string
}

// HashContent returns the content-hash half of a Key for the given
// source bytes.
func HashContent(src []byte) string {
	sum := sha256.Sum256(src)
	return hex.EncodeToString(sum[:])
}

// ModuleCache stores one entry per (file_path, content_hash). Entries
// never expire on their own: a stale entry is simply never looked up
// again once the file's content hash changes, so there is no TTL to
// manage, unlike a path-keyed cache that must invalidate by watching
// the filesystem.
type ModuleCache[T any] struct {
	mutex   sync.RWMutex
	entries map[Key]T
}

// NewModuleCache returns an empty cache for values of type T — the
// loader accepts one instantiated with *ir.Module.
func NewModuleCache[T any]() *ModuleCache[T] {
	return &ModuleCache[T]{entries: make(map[Key]T)}
}

func (c *ModuleCache[T]) Get(key Key) (T, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	v, ok := c.entries[key]
	return v, ok
}

func (c *ModuleCache[T]) Set(key Key, value T) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.entries[key] = value
}

// Invalidate drops every cached entry for a file path regardless of
// hash, used when a host knows a file was deleted or moved.
func (c *ModuleCache[T]) Invalidate(filePath string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	for k := range c.entries {
		if k.FilePath == filePath {
			delete(c.entries, k)
		}
	}
}

func (c *ModuleCache[T]) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.entries)
}
