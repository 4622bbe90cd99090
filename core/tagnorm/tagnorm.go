// Copyright 2024 The Musify Authors.
// All rights reserved.

// Package tagnorm implements the tag-cleaning pipeline that produces
// item.CleanTags from an item's raw name/title/artist/album/length/year.
package tagnorm

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/musify-sync/musify/core/item"
)

// normalizer case-folds via Unicode NFKD and strips combining marks so
// accented and unaccented spellings compare equal.
var normalizer = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

func foldCase(s string) string {
	out, _, err := transform.String(normalizer, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

var (
	parenRe   = regexp.MustCompile(`\([^)]*\)`)
	bracketRe = regexp.MustCompile(`\[[^\]]*\]`)
	nonWordRe = regexp.MustCompile(`[^\p{L}\p{N}]+`)
)

// FieldConfig describes how a single string field is cleaned: an optional
// preprocess hook, a per-field stoplist, and a per-field split-keep-left
// token set.
type FieldConfig struct {
	Preprocess func(string) string
	Remove     map[string]bool
	Split      map[string]bool
}

// globalRemove is applied to every field in addition to its own stoplist.
var globalRemove = map[string]bool{"the": true, "a": true, "&": true, "and": true}

// Config holds the per-field cleaning configuration.
type Config struct {
	Title  FieldConfig
	Artist FieldConfig
	Album  FieldConfig
	Name   FieldConfig
}

// DefaultConfig returns the standard field configuration.
func DefaultConfig() Config {
	return Config{
		Title: FieldConfig{
			Remove: map[string]bool{"part": true},
			Split:  map[string]bool{"featuring": true, "feat.": true, "ft.": true, "/": true},
		},
		Artist: FieldConfig{
			Split: map[string]bool{"featuring": true, "feat.": true, "ft.": true, "vs": true},
		},
		Album: FieldConfig{
			Remove:     map[string]bool{"ep": true},
			Preprocess: func(s string) string { return strings.SplitN(s, "-", 2)[0] },
		},
		Name: FieldConfig{},
	}
}

// Source is the minimal raw-tag view the normalizer needs. Callers adapt
// their concrete item type (LocalTrack, RemoteTrack, ...) to it.
type Source struct {
	Name   string
	Title  string
	Artist string
	Album  string
	Length float64
	Year   int
}

// Clean runs the normalization pipeline and returns item.CleanTags. Name
// is not cleaned independently: it mirrors whichever raw attribute equals
// the item's name (title, for a track), cleaned through that attribute's
// config, so the name score sees the same stoplist and split tokens as
// the field it came from.
func Clean(src Source, cfg Config) item.CleanTags {
	ct := item.CleanTags{
		Title:  cleanField(src.Title, cfg.Title),
		Artist: cleanField(src.Artist, cfg.Artist),
		Album:  cleanField(src.Album, cfg.Album),
		Length: src.Length,
		Year:   src.Year,
	}
	switch {
	case src.Name == src.Title:
		ct.Name = ct.Title
	case src.Name == src.Artist:
		ct.Name = ct.Artist
	case src.Name == src.Album:
		ct.Name = ct.Album
	default:
		ct.Name = cleanField(src.Name, cfg.Name)
	}
	return ct
}

func cleanField(raw string, fc FieldConfig) string {
	if raw == "" {
		return ""
	}
	s := raw
	if fc.Preprocess != nil {
		s = fc.Preprocess(s)
	}
	s = parenRe.ReplaceAllString(s, "")
	s = bracketRe.ReplaceAllString(s, "")
	s = foldCase(s)
	s = removeStopwords(s, fc.Remove)
	s = splitKeepLeft(s, fc.Split)
	s = nonWordRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// removeStopwords deletes whitespace-bounded occurrences of any word in
// globalRemove or fieldRemove.
func removeStopwords(s string, fieldRemove map[string]bool) string {
	fields := strings.Fields(s)
	out := fields[:0:0]
	for _, f := range fields {
		if globalRemove[f] || fieldRemove[f] {
			continue
		}
		out = append(out, f)
	}
	return strings.Join(out, " ")
}

// splitKeepLeft cuts the string at the first occurrence of any split
// token (matched whitespace-bounded among the field's words) and keeps
// everything before it.
func splitKeepLeft(s string, split map[string]bool) string {
	if len(split) == 0 {
		return s
	}
	fields := strings.Fields(s)
	for i, f := range fields {
		if split[f] {
			return strings.Join(fields[:i], " ")
		}
	}
	return s
}
