// Copyright 2024 The Musify Authors.
// All rights reserved.

package auto

import (
	"github.com/musify-sync/musify/core/compare"
	"github.com/musify-sync/musify/core/item"
	"github.com/musify-sync/musify/core/limit"
)

// Rule is a complete auto-playlist definition: comparer
// predicates, include/exclude path sets, a limiter, and a sorter.
type Rule struct {
	Comparers []*compare.Comparer
	MatchAll  bool // true = AND all comparers; false = OR

	IncludePaths []string
	ExcludePaths []string
	PathConfig   PathConfig

	Limiter *limit.Limiter
	Sort    []SortField
}

// isTrivial reports whether comparers should be treated as "contains
// everything": either no comparers at all, or the single sentinel
// comparer whose Field is FieldNone, which the rule file format uses to
// mean "no filtering, just includes/excludes".
func isTrivial(comparers []*compare.Comparer) bool {
	if len(comparers) == 0 {
		return true
	}
	return len(comparers) == 1 && comparers[0].Field == compare.FieldNone
}

// Evaluate runs the full rule pipeline: build include/exclude sets from
// normalized paths, apply the comparer predicate (or skip straight to
// includes-minus-excludes when comparers are trivial), union with includes,
// subtract excludes, then apply the limiter and sorter in order. reference
// is used for comparers configured with no expected values (the "[playing
// track]" sentinel); it may be nil when no comparer needs one.
func Evaluate(universe []*item.LocalTrack, reference *item.LocalTrack, rule Rule) ([]*item.LocalTrack, error) {
	includeKeys, excludeKeys := NormalizePaths(rule.IncludePaths, rule.ExcludePaths, rule.PathConfig)
	includeSet := toSet(includeKeys)
	excludeSet := toSet(excludeKeys)

	pathKey := func(t *item.LocalTrack) string { return rule.PathConfig.Key(t.Path) }

	var refFields compare.Track
	if reference != nil {
		refFields = TrackFields{reference}
	}

	var result []*item.LocalTrack
	if isTrivial(rule.Comparers) {
		for _, t := range universe {
			k := pathKey(t)
			if includeSet[k] && !excludeSet[k] {
				result = append(result, t)
			}
		}
	} else {
		for _, t := range universe {
			k := pathKey(t)
			if excludeSet[k] {
				continue
			}
			matched, err := matchesComparers(t, rule.Comparers, rule.MatchAll, refFields)
			if err != nil {
				return nil, err
			}
			if matched || includeSet[k] {
				result = append(result, t)
			}
		}
	}

	ign := map[*item.LocalTrack]bool{}
	result = applyLimiter(rule.Limiter, result, ign)
	applySort(result, rule.Sort)
	return result, nil
}

func toSet(keys []string) map[string]bool {
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return set
}

func matchesComparers(t *item.LocalTrack, comparers []*compare.Comparer, matchAll bool, reference compare.Track) (bool, error) {
	fields := TrackFields{t}
	if matchAll {
		for _, c := range comparers {
			ok, err := c.Compare(fields, reference)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		return true, nil
	}
	for _, c := range comparers {
		ok, err := c.Compare(fields, reference)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
