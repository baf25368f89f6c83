// Package cache provides a small generic LRU cache.
//
//	c := cache.New[int, []huecycle.Color](8)
//	cols := c.GetOrCreate(width, func() []huecycle.Color { ... })
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
