// Copyright 2024 The Musify Authors.
// All rights reserved.

package auto

import (
	"time"

	"github.com/musify-sync/musify/core/compare"
	"github.com/musify-sync/musify/core/item"
	"github.com/musify-sync/musify/core/sortx"
)

// SortField describes one level of a rule's multi-field sort: which track
// field to key on, sort direction, and whether leading stop-words should be
// ignored for string fields.
type SortField struct {
	Field       compare.Field
	Descending  bool
	IgnoreStops bool
}

// toSortxField adapts a SortField into sortx.Field, extracting the
// comparable key from the interface{} item a sortx.Sort call passes it
// (always a *item.LocalTrack here).
func (f SortField) toSortxField() sortx.Field {
	return sortx.Field{
		Descending:  f.Descending,
		IgnoreStops: f.IgnoreStops,
		Extract: func(v interface{}) sortx.Key {
			t := v.(*item.LocalTrack)
			val := TrackFields{t}.FieldValue(f.Field)
			return sortKeyOf(val)
		},
	}
}

func sortKeyOf(val interface{}) sortx.Key {
	switch v := val.(type) {
	case nil:
		return sortx.Key{IsNil: true}
	case string:
		if v == "" {
			return sortx.Key{IsNil: true}
		}
		return sortx.Key{Kind: sortx.KindString, Str: v}
	case int:
		return sortx.Key{Kind: sortx.KindNumber, Num: float64(v)}
	case float64:
		return sortx.Key{Kind: sortx.KindNumber, Num: v}
	case time.Time:
		if v.IsZero() {
			return sortx.Key{IsNil: true}
		}
		return sortx.Key{Kind: sortx.KindNumber, Num: float64(v.Unix())}
	default:
		return sortx.Key{IsNil: true}
	}
}

// applySort stably sorts tracks according to fields, first field primary.
func applySort(tracks []*item.LocalTrack, fields []SortField) {
	items := make([]interface{}, len(tracks))
	for i, t := range tracks {
		items[i] = t
	}
	sx := make([]sortx.Field, len(fields))
	for i, f := range fields {
		sx[i] = f.toSortxField()
	}
	sortx.Sort(items, sx)
	for i, it := range items {
		tracks[i] = it.(*item.LocalTrack)
	}
}
