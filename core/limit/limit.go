// Copyright 2024 The Musify Authors.
// All rights reserved.

// Package limit implements the auto-playlist Limiter:
// truncating an ordered item list by count, album count, duration, or
// size, under a chosen pre-sort and with an always-kept ignore set.
package limit

import (
	"math/rand"
	"sort"
)

// Kind selects what unit Max is measured in.
type Kind int

const (
	KindItems Kind = iota
	KindAlbums
	KindSeconds
	KindMinutes
	KindHours
	KindDays
	KindWeeks
	KindBytes
	KindKB
	KindMB
	KindGB
	KindTB
)

// unitBytes gives the byte multiplier for the size-based Kinds.
var unitBytes = map[Kind]float64{
	KindBytes: 1,
	KindKB:    1 << 10,
	KindMB:    1 << 20,
	KindGB:    1 << 30,
	KindTB:    1 << 40,
}

// unitSeconds gives the seconds multiplier for the duration-based Kinds.
var unitSeconds = map[Kind]float64{
	KindSeconds: 1,
	KindMinutes: 60,
	KindHours:   3600,
	KindDays:    86400,
	KindWeeks:   604800,
}

// PreSort selects how the candidate list is ordered before limiting.
type PreSort int

const (
	PreSortNone PreSort = iota
	PreSortRandom
	PreSortHighestRating
	PreSortLowestRating
	PreSortMostRecentlyAdded
	PreSortLeastRecentlyAdded
	PreSortMostRecentlyPlayed
	PreSortLeastRecentlyPlayed
	PreSortMostOftenPlayed
	PreSortLeastOftenPlayed
)

// Item is the view a Limiter needs of a track: rating/dates/play-count for
// pre-sorting, album identity for album-kind limiting, and value(track)
// for duration/size limiting.
type Item struct {
	Track      interface{}
	Rating     float64
	DateAdded  int64 // unix seconds
	LastPlayed int64
	PlayCount  int
	Album      string
	Value      float64 // seconds or bytes, depending on Kind
	Ignore     bool
}

// Limiter truncates an ordered []Item under Max.
type Limiter struct {
	Max       float64
	Kind      Kind
	PreSort   PreSort
	Allowance float64 // defaults to 1.0
	Rand      *rand.Rand
}

// Apply runs the limiter's algorithm and returns the
// admitted items in order. Max == 0 disables limiting entirely.
func (l *Limiter) Apply(items []Item) []Item {
	if l.Max == 0 {
		return items
	}
	allowance := l.Allowance
	if allowance == 0 {
		allowance = 1.0
	}

	sorted := l.preSort(items)

	var ignored, rest []Item
	for _, it := range sorted {
		if it.Ignore {
			ignored = append(ignored, it)
		} else {
			rest = append(rest, it)
		}
	}

	out := append([]Item{}, ignored...)

	switch l.Kind {
	case KindItems:
		n := int(l.Max)
		if n > len(rest) {
			n = len(rest)
		}
		out = append(out, rest[:n]...)
	case KindAlbums:
		seen := map[string]bool{}
		maxAlbums := int(l.Max)
		for _, it := range rest {
			if seen[it.Album] {
				out = append(out, it)
				continue
			}
			if len(seen) < maxAlbums {
				seen[it.Album] = true
				out = append(out, it)
			}
		}
	default:
		var acc float64
		limit := l.Max
		if mult, ok := unitSeconds[l.Kind]; ok {
			limit = l.Max * mult
		} else if mult, ok := unitBytes[l.Kind]; ok {
			limit = l.Max * mult
		}
		for _, it := range rest {
			if acc+it.Value > limit*allowance {
				break
			}
			acc += it.Value
			out = append(out, it)
			if acc > limit {
				break
			}
		}
	}
	return out
}

func (l *Limiter) preSort(items []Item) []Item {
	sorted := append([]Item{}, items...)
	switch l.PreSort {
	case PreSortNone:
		return sorted
	case PreSortRandom:
		r := l.Rand
		if r == nil {
			r = rand.New(rand.NewSource(1))
		}
		r.Shuffle(len(sorted), func(i, j int) { sorted[i], sorted[j] = sorted[j], sorted[i] })
	case PreSortHighestRating:
		stableSortBy(sorted, func(a, b Item) bool { return a.Rating > b.Rating })
	case PreSortLowestRating:
		stableSortBy(sorted, func(a, b Item) bool { return a.Rating < b.Rating })
	case PreSortMostRecentlyAdded:
		stableSortBy(sorted, func(a, b Item) bool { return a.DateAdded > b.DateAdded })
	case PreSortLeastRecentlyAdded:
		stableSortBy(sorted, func(a, b Item) bool { return a.DateAdded < b.DateAdded })
	case PreSortMostRecentlyPlayed:
		stableSortBy(sorted, func(a, b Item) bool { return a.LastPlayed > b.LastPlayed })
	case PreSortLeastRecentlyPlayed:
		stableSortBy(sorted, func(a, b Item) bool { return a.LastPlayed < b.LastPlayed })
	case PreSortMostOftenPlayed:
		stableSortBy(sorted, func(a, b Item) bool { return a.PlayCount > b.PlayCount })
	case PreSortLeastOftenPlayed:
		stableSortBy(sorted, func(a, b Item) bool { return a.PlayCount < b.PlayCount })
	}
	return sorted
}

func stableSortBy(items []Item, less func(a, b Item) bool) {
	sort.SliceStable(items, func(i, j int) bool { return less(items[i], items[j]) })
}
