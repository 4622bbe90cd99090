// Copyright 2024 The Musify Authors.
// All rights reserved.

package auto

import (
	"time"

	"github.com/musify-sync/musify/core/item"
	"github.com/musify-sync/musify/core/limit"
)

// limitItemOf builds the limit.Item view the Limiter needs from a local
// track, picking Value's unit according to k: duration kinds read track
// length, size kinds read file size.
func limitItemOf(t *item.LocalTrack, k limit.Kind) limit.Item {
	li := limit.Item{
		Track:      t,
		Rating:     t.Tags.Rating,
		PlayCount:  t.State.PlayCount,
		Album:      t.Tags.Album,
		DateAdded:  timeKey(t.State.DateAdded),
		LastPlayed: timeKey(t.State.LastPlayed),
	}
	switch k {
	case limit.KindBytes, limit.KindKB, limit.KindMB, limit.KindGB, limit.KindTB:
		li.Value = float64(t.Props.Size)
	default:
		li.Value = t.Tags.Length
	}
	return li
}

func timeKey(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

// applyLimiter runs l over tracks in order, respecting the ignore set ign
// (members kept regardless of the limit).
func applyLimiter(l *limit.Limiter, tracks []*item.LocalTrack, ign map[*item.LocalTrack]bool) []*item.LocalTrack {
	if l == nil {
		return tracks
	}
	items := make([]limit.Item, len(tracks))
	for i, t := range tracks {
		li := limitItemOf(t, l.Kind)
		li.Ignore = ign[t]
		items[i] = li
	}
	out := l.Apply(items)
	result := make([]*item.LocalTrack, len(out))
	for i, li := range out {
		result[i] = li.Track.(*item.LocalTrack)
	}
	return result
}
