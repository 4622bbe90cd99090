// Copyright 2024 The Musify Authors.
// All rights reserved.

// Package playlistfile reads and writes the on-disk playlist formats:
// MusicBee's ".xautopf" auto-playlist XML and plain M3U. The XML side uses
// encoding/xml struct tags mirroring how client.Config uses encoding/json
// struct tags; M3U is a plain scanner-based line format.
package playlistfile

import (
	"encoding/xml"
	"fmt"
	"os"
	"strings"

	"github.com/musify-sync/musify/core/auto"
	"github.com/musify-sync/musify/core/compare"
	"github.com/musify-sync/musify/core/limit"
)

// SmartPlaylist is the root element of a .xautopf file.
type SmartPlaylist struct {
	XMLName xml.Name `xml:"SmartPlaylist"`
	Source  Source   `xml:"Source"`
}

// Source holds a MusicBee auto-playlist's rule definition. Only
// ExceptionsInclude and Exceptions are rewritten on Save; the
// rest round-trip unchanged.
type Source struct {
	Description       string      `xml:"Description,omitempty"`
	Conditions        *Conditions `xml:"Conditions"`
	Limit             *Limit      `xml:"Limit"`
	SortBy            *SortBy     `xml:"SortBy"`
	DefinedSort       *int        `xml:"DefinedSort"`
	ExceptionsInclude string      `xml:"ExceptionsInclude"`
	Exceptions        string      `xml:"Exceptions"`
}

// Conditions holds the rule's comparer list and how they combine.
type Conditions struct {
	CombineMethod string      `xml:"CombineMethod,attr"`
	Condition     []Condition `xml:"Condition"`
}

// Condition is one MusicBee-style comparer: a field, a comparison name,
// and its expected value(s).
type Condition struct {
	Field      string `xml:"Field,attr"`
	Comparison string `xml:"Comparison,attr"`
	Value      string `xml:"Value,attr"`
}

// Limit is the rule's result-count/size cap.
type Limit struct {
	Enabled    bool   `xml:"Enabled,attr"`
	Count      int    `xml:"Count,attr"`
	Type       string `xml:"Type,attr,omitempty"`
	SelectedBy string `xml:"SelectedBy,attr,omitempty"`
}

// SortBy is one level of the rule's explicit sort order.
type SortBy struct {
	Field     string `xml:"Field,attr"`
	Direction string `xml:"Direction,attr,omitempty"`
}

// Read parses a .xautopf file.
func Read(path string) (*SmartPlaylist, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sp SmartPlaylist
	if err := xml.Unmarshal(b, &sp); err != nil {
		return nil, fmt.Errorf("playlistfile: parse %s: %w", path, err)
	}
	return &sp, nil
}

// Save rewrites path's ExceptionsInclude and Exceptions keys (pipe-
// separated path lists) from includes/excludes, leaving every other field
// of sp untouched. Comparer/limiter/sorter edits are never re-serialized;
// only the path lists round-trip.
func Save(path string, sp *SmartPlaylist, includes, excludes []string) error {
	sp.Source.ExceptionsInclude = strings.Join(includes, "|")
	sp.Source.Exceptions = strings.Join(excludes, "|")

	b, err := xml.MarshalIndent(sp, "", "  ")
	if err != nil {
		return err
	}
	b = append([]byte(xml.Header), b...)
	return os.WriteFile(path, b, 0644)
}

// ToRule converts a parsed SmartPlaylist into an auto.Rule the evaluator
// can run, resolving field/condition names through core/compare's closed
// enums and failing at load time on anything unrecognized: an unknown
// condition or field name is fatal here, not at evaluation time.
func ToRule(sp *SmartPlaylist, pathCfg auto.PathConfig) (auto.Rule, error) {
	rule := auto.Rule{PathConfig: pathCfg}

	if sp.Source.ExceptionsInclude != "" {
		rule.IncludePaths = splitPipes(sp.Source.ExceptionsInclude)
	}
	if sp.Source.Exceptions != "" {
		rule.ExcludePaths = splitPipes(sp.Source.Exceptions)
	}

	if c := sp.Source.Conditions; c != nil {
		rule.MatchAll = !strings.EqualFold(c.CombineMethod, "Any")
		for _, cond := range c.Condition {
			field, err := compare.ParseField(cond.Field)
			if err != nil {
				return auto.Rule{}, err
			}
			var expected []string
			if cond.Value != "" {
				expected = []string{cond.Value}
			}
			cmp, err := compare.NewComparer(field, cond.Comparison, expected)
			if err != nil {
				return auto.Rule{}, err
			}
			rule.Comparers = append(rule.Comparers, cmp)
		}
	}

	if l := sp.Source.Limit; l != nil && l.Enabled {
		kind, err := parseLimitKind(l.Type)
		if err != nil {
			return auto.Rule{}, err
		}
		preSort, err := parsePreSort(l.SelectedBy)
		if err != nil {
			return auto.Rule{}, err
		}
		rule.Limiter = &limit.Limiter{Max: float64(l.Count), Kind: kind, PreSort: preSort, Allowance: 1.0}
	}

	if sb := sp.Source.SortBy; sb != nil {
		field, err := compare.ParseField(sb.Field)
		if err != nil {
			return auto.Rule{}, err
		}
		rule.Sort = append(rule.Sort, auto.SortField{
			Field:      field,
			Descending: strings.EqualFold(sb.Direction, "Descending"),
		})
	}

	return rule, nil
}

func splitPipes(s string) []string {
	var out []string
	for _, p := range strings.Split(s, "|") {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

var limitKindNames = map[string]limit.Kind{
	"items":   limit.KindItems,
	"albums":  limit.KindAlbums,
	"seconds": limit.KindSeconds,
	"minutes": limit.KindMinutes,
	"hours":   limit.KindHours,
	"days":    limit.KindDays,
	"weeks":   limit.KindWeeks,
	"bytes":   limit.KindBytes,
	"kb":      limit.KindKB,
	"mb":      limit.KindMB,
	"gb":      limit.KindGB,
	"tb":      limit.KindTB,
}

func parseLimitKind(s string) (limit.Kind, error) {
	k, ok := limitKindNames[strings.ToLower(s)]
	if !ok {
		return 0, fmt.Errorf("playlistfile: unrecognized limit type %q", s)
	}
	return k, nil
}

var preSortNames = map[string]limit.PreSort{
	"":                        limit.PreSortNone,
	"random":                  limit.PreSortRandom,
	"highest_rating":          limit.PreSortHighestRating,
	"lowest_rating":           limit.PreSortLowestRating,
	"most_recently_added":     limit.PreSortMostRecentlyAdded,
	"least_recently_added":    limit.PreSortLeastRecentlyAdded,
	"most_recently_played":    limit.PreSortMostRecentlyPlayed,
	"least_recently_played":   limit.PreSortLeastRecentlyPlayed,
	"most_often_played":       limit.PreSortMostOftenPlayed,
	"least_often_played":      limit.PreSortLeastOftenPlayed,
}

func parsePreSort(s string) (limit.PreSort, error) {
	p, ok := preSortNames[strings.ToLower(s)]
	if !ok {
		return 0, fmt.Errorf("playlistfile: unrecognized pre_sort %q", s)
	}
	return p, nil
}
