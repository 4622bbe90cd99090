// Copyright 2024 The Musify Authors.
// All rights reserved.

package match

import (
	"fmt"

	"github.com/xrash/smetrics"
)

// Trace is one decision-trace record.
// Callers may print these or discard them; Matcher never logs directly.
type Trace struct {
	// Prefix is "> Testing" for an in-progress test or "< Matched" for a
	// final selection.
	Prefix string
	Source string
	Detail string
}

func (t Trace) String() string {
	return fmt.Sprintf("%s %s | %s", t.Prefix, t.Source, t.Detail)
}

// Options groups the settings of one match call. ScoreMatch does not take
// an Options value: it reads the score thresholds and match fields from
// its arguments, and the karaoke and year-range settings from the Matcher.
type Options struct {
	MinScore     float64
	MaxScore     float64
	MatchOn      []Field
	AllowKaraoke bool
	YearRange    int // 0 means DefaultYearRange
}

func clampScore(v float64) float64 {
	if v < 0.01 {
		return 0.01
	}
	if v > 1.0 {
		return 1.0
	}
	return v
}

// Matcher is stateless between calls; it carries only
// tuning knobs.
type Matcher struct {
	AllowKaraoke bool
	YearRange    int
}

// New returns a Matcher with the defaults: karaoke candidates disallowed,
// a 10-year window for year scoring.
func New() *Matcher {
	return &Matcher{YearRange: DefaultYearRange}
}

// ScoreMatch scores every
// candidate against source, short-circuiting once maxScore is reached,
// and returns the best candidate plus a decision trace. The returned
// bool is false when no candidate scores above minScore.
func (m *Matcher) ScoreMatch(source Taggable, candidates []Taggable, minScore, maxScore float64, matchOn []Field) (Taggable, []Trace, bool) {
	minScore = clampScore(minScore)
	maxScore = clampScore(maxScore)
	if maxScore < minScore {
		maxScore = minScore
	}
	if len(matchOn) == 0 {
		matchOn = AllFields
	}
	yearRange := m.YearRange
	if yearRange == 0 {
		yearRange = DefaultYearRange
	}

	var traces []Trace
	var best Taggable
	bestScore := -1.0

	for _, cand := range candidates {
		if !m.AllowKaraoke && !notKaraoke(cand) {
			traces = append(traces, Trace{Prefix: "> Testing", Source: source.RawName(), Detail: "karaoke filter rejected candidate"})
			continue
		}
		score, fieldTraces := m.scoreOne(source, cand, matchOn, yearRange)
		traces = append(traces, fieldTraces...)
		if score > bestScore {
			bestScore = score
			best = cand
		}
		if bestScore >= maxScore {
			break
		}
	}

	if best == nil || bestScore <= minScore {
		return nil, traces, false
	}
	traces = append(traces, Trace{
		Prefix: "< Matched",
		Source: source.RawName(),
		Detail: fmt.Sprintf("score %.2f (min %.2f, max %.2f)", bestScore, minScore, maxScore),
	})
	return best, traces, true
}

func (m *Matcher) scoreOne(source, cand Taggable, matchOn []Field, yearRange int) (float64, []Trace) {
	var traces []Trace
	var sum float64
	var n int
	for _, f := range matchOn {
		var s float64
		switch f {
		case FieldName:
			s = scoreName(source, cand)
		case FieldArtist:
			s = scoreArtist(source, cand)
		case FieldAlbum:
			s = scoreAlbum(source, cand)
			s = tieBreakAlbum(source, cand, s)
		case FieldLength:
			s = scoreLength(source, cand)
		case FieldYear:
			s = scoreYear(source, cand, yearRange)
		case FieldItems:
			if sc, ok := source.(Collection); ok {
				if cc, ok := cand.(Collection); ok {
					s = m.scoreItems(sc, cc)
				}
			}
		default:
			continue
		}
		traces = append(traces, Trace{
			Prefix: "> Testing",
			Source: source.RawName(),
			Detail: fmt.Sprintf("%-10s=%.2f", f.String(), s),
		})
		sum += s
		n++
	}
	if n == 0 {
		return 0, traces
	}
	return sum / float64(n), traces
}

// tieBreakAlbum nudges an already-computed token-overlap album score with
// a small Jaro-Winkler refinement so that near-identical album titles
// that differ only by punctuation or minor spelling don't tie exactly at
// the same overlap fraction (e.g. during candidate ordering comparisons).
// The overlap score still dominates; this only breaks exact ties.
func tieBreakAlbum(source, cand Taggable, overlapScore float64) float64 {
	a := source.CleanTags().Album
	b := cand.CleanTags().Album
	if a == "" || b == "" {
		return overlapScore
	}
	jw := smetrics.JaroWinkler(a, b, 0.7, 4)
	return overlapScore + jw*1e-6
}

// scoreItems implements the recursive collection-vs-collection "items"
// score: mean over source items of each item's best score
// against the candidate's items, recursion depth 1 (no nested "items"
// field inside the recursive call).
func (m *Matcher) scoreItems(source, cand Collection) float64 {
	srcItems := source.Items()
	candItems := make([]Taggable, len(cand.Items()))
	copy(candItems, cand.Items())
	if len(srcItems) == 0 || len(candItems) == 0 {
		return 0
	}
	innerFields := []Field{FieldName, FieldArtist, FieldLength}
	var total float64
	for _, it := range srcItems {
		best := 0.0
		for _, c := range candItems {
			s, _ := m.scoreOne(it, c, innerFields, DefaultYearRange)
			if s > best {
				best = s
			}
		}
		total += best
	}
	return total / float64(len(srcItems))
}
