// Copyright 2024 The Musify Authors.
// All rights reserved.

// Package sortx implements the auto-playlist Sorter: a stable multi-field
// sort plus a group-by-field helper shared with the Library aggregator.
package sortx

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Key is a single comparable value extracted from an item for one sort
// field. Exactly one of the typed fields is meaningful, selected by Kind.
type Key struct {
	Kind  KeyKind
	Str   string
	Num   float64
	IsNil bool
}

// KeyKind discriminates which field of Key holds the comparable value.
type KeyKind int

const (
	KindString KeyKind = iota
	KindNumber
)

// Field describes one level of a multi-field sort: how to extract a key
// from an item, and whether stop-words should be ignored when the key is
// a string.
type Field struct {
	Extract      func(item interface{}) Key
	Descending   bool
	IgnoreStops  bool
}

var leadingStops = []string{"the ", "a "}

// stringSortKey produces a two-level key: whether the string starts with a
// character that is neither a letter nor a digit (such strings sort after
// the rest), paired with the case-folded string with any leading stop-word
// stripped (so "The Beatles" sorts under B, not T).
func stringSortKey(s string, ignoreStops bool) (bool, string) {
	folded := strings.ToLower(s)
	if !ignoreStops {
		return false, folded
	}
	r, _ := utf8.DecodeRuneInString(folded)
	special := folded != "" && !unicode.IsLetter(r) && !unicode.IsDigit(r)
	for _, stop := range leadingStops {
		if strings.HasPrefix(folded, stop) {
			return special, strings.TrimPrefix(folded, stop)
		}
	}
	return special, folded
}

// Sort stably sorts items in place according to fields, applied in order
// (first field is primary). Null keys (IsNil) sort last ascending, first
// descending.
func Sort(items []interface{}, fields []Field) {
	sort.SliceStable(items, func(i, j int) bool {
		for _, f := range fields {
			ki := f.Extract(items[i])
			kj := f.Extract(items[j])
			cmp := compareKeys(ki, kj, f.IgnoreStops)
			if f.Descending {
				cmp = -cmp
			}
			if cmp != 0 {
				return cmp < 0
			}
		}
		return false
	})
}

func compareKeys(a, b Key, ignoreStops bool) int {
	if a.IsNil || b.IsNil {
		switch {
		case a.IsNil && b.IsNil:
			return 0
		case a.IsNil:
			return 1 // nil sorts last ascending
		default:
			return -1
		}
	}
	switch a.Kind {
	case KindNumber:
		switch {
		case a.Num < b.Num:
			return -1
		case a.Num > b.Num:
			return 1
		default:
			return 0
		}
	default:
		aSpecial, aKey := stringSortKey(a.Str, ignoreStops)
		bSpecial, bKey := stringSortKey(b.Str, ignoreStops)
		if aSpecial != bSpecial {
			if aSpecial {
				return 1
			}
			return -1
		}
		switch {
		case aKey < bKey:
			return -1
		case aKey > bKey:
			return 1
		default:
			return 0
		}
	}
}

// GroupByField partitions items into buckets keyed by the string returned
// by keyOf, preserving relative order within each bucket. Used by Library
// to derive folder/album/artist/genre views.
func GroupByField[T any](items []T, keyOf func(T) string) map[string][]T {
	groups := make(map[string][]T)
	for _, it := range items {
		k := keyOf(it)
		groups[k] = append(groups[k], it)
	}
	return groups
}

// GroupByMultiField is like GroupByField but a single item can belong to
// multiple groups (used for set-valued tags such as genres: a track
// appears in each genre group its genres contain).
func GroupByMultiField[T any](items []T, keysOf func(T) []string) map[string][]T {
	groups := make(map[string][]T)
	for _, it := range items {
		for _, k := range keysOf(it) {
			groups[k] = append(groups[k], it)
		}
	}
	return groups
}
