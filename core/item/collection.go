// Copyright 2024 The Musify Authors.
// All rights reserved.

package item

// Identified is anything a Collection can index by key, path, or name.
type Identified interface {
	Named
	URIAware
}

// Pather is implemented by items that also carry a filesystem path
// (LocalTrack). Collections of local items support path lookups; remote
// collections simply never satisfy this interface.
type Pather interface {
	ItemPath() string
}

// ItemPath implements Pather for LocalTrack.
func (t *LocalTrack) ItemPath() string { return t.Path }

// Collection is an ordered, optionally duplicate-free sequence of items:
// a single generic container plus lookup helpers. T is typically
// *LocalTrack or *RemoteTrack.
type Collection[T Identified] struct {
	name           string
	items          []T
	allowDuplicates bool
}

// NewCollection builds a Collection. When allowDuplicates is false, Append
// and Insert silently skip items whose Key (URI, else name) already
// appears in the collection.
func NewCollection[T Identified](name string, allowDuplicates bool) *Collection[T] {
	return &Collection[T]{name: name, allowDuplicates: allowDuplicates}
}

// Name returns the collection's display name.
func (c *Collection[T]) Name() string { return c.name }

// Len returns the number of items.
func (c *Collection[T]) Len() int { return len(c.items) }

// Items returns the underlying slice. Callers must not retain it across
// mutating calls.
func (c *Collection[T]) Items() []T { return c.items }

func key(it Identified) string {
	if u := it.ItemURI(); u != "" {
		return u
	}
	return it.ItemName()
}

// Contains reports whether an item with the same key (URI, else name)
// already exists in the collection.
func (c *Collection[T]) Contains(it T) bool {
	k := key(it)
	for _, existing := range c.items {
		if key(existing) == k {
			return true
		}
	}
	return false
}

// Append adds it to the end of the collection, honoring allowDuplicates.
// Returns false if the item was skipped as a duplicate.
func (c *Collection[T]) Append(it T) bool {
	if !c.allowDuplicates && c.Contains(it) {
		return false
	}
	c.items = append(c.items, it)
	return true
}

// Extend appends each item in its, honoring allowDuplicates, and returns
// the count actually added.
func (c *Collection[T]) Extend(its []T) int {
	n := 0
	for _, it := range its {
		if c.Append(it) {
			n++
		}
	}
	return n
}

// Insert places it at index idx, honoring allowDuplicates. Returns false
// if the item was skipped as a duplicate.
func (c *Collection[T]) Insert(idx int, it T) bool {
	if !c.allowDuplicates && c.Contains(it) {
		return false
	}
	if idx < 0 {
		idx = 0
	}
	if idx > len(c.items) {
		idx = len(c.items)
	}
	c.items = append(c.items, it)
	copy(c.items[idx+1:], c.items[idx:])
	c.items[idx] = it
	return true
}

// RemoveAt deletes the item at idx.
func (c *Collection[T]) RemoveAt(idx int) {
	if idx < 0 || idx >= len(c.items) {
		return
	}
	c.items = append(c.items[:idx], c.items[idx+1:]...)
}

// IndexOf returns the index of the first item whose key matches it's, or
// -1 if absent.
func (c *Collection[T]) IndexOf(it T) int {
	k := key(it)
	for i, existing := range c.items {
		if key(existing) == k {
			return i
		}
	}
	return -1
}

// ByURI returns the first item with the given URI.
func (c *Collection[T]) ByURI(uri string) (T, bool) {
	var zero T
	for _, it := range c.items {
		if it.ItemURI() == uri {
			return it, true
		}
	}
	return zero, false
}

// ByName returns the first item with the given display name.
func (c *Collection[T]) ByName(name string) (T, bool) {
	var zero T
	for _, it := range c.items {
		if it.ItemName() == name {
			return it, true
		}
	}
	return zero, false
}

// ByPath returns the first item whose path matches p. Only meaningful for
// collections of types implementing Pather (e.g. *LocalTrack); returns
// false for any type that doesn't.
func (c *Collection[T]) ByPath(p string) (T, bool) {
	var zero T
	for _, it := range c.items {
		pather, ok := any(it).(Pather)
		if ok && pather.ItemPath() == p {
			return it, true
		}
	}
	return zero, false
}

// Filter returns a new Collection containing only items for which keep
// returns true. The result shares the same allowDuplicates setting.
func (c *Collection[T]) Filter(keep func(T) bool) *Collection[T] {
	out := NewCollection[T](c.name, c.allowDuplicates)
	for _, it := range c.items {
		if keep(it) {
			out.items = append(out.items, it)
		}
	}
	return out
}
