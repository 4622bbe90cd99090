// Copyright 2024 The Musify Authors.
// All rights reserved.

package match

import (
	"strings"

	"github.com/musify-sync/musify/core/item"
)

// Taggable is the minimal view the Matcher needs of a source or candidate
// item: its cleaned tags (for scoring) plus the raw, uncleaned fields the
// karaoke filter and name-reduction penalty need to see through cleaning.
type Taggable interface {
	CleanTags() item.CleanTags
	RawName() string
	RawArtist() string
	RawAlbum() string
	// ArtistList returns the candidate's constituent artists in priority
	// order, split by whatever separator that item's tags use for
	// multi-artist strings.
	ArtistList() []string
}

// Collection is a Taggable that also owns constituent items, enabling the
// recursive "items" score for collection-vs-collection matches.
type Collection interface {
	Taggable
	Items() []Taggable
}

// KaraokeTags are the default karaoke-identifying keywords.
var KaraokeTags = []string{"karaoke", "backing", "instrumental"}

// ReductionKeywords are words whose presence in a candidate's raw name
// (but not the source's) penalizes the name score.
var ReductionKeywords = append([]string{"live", "demo", "acoustic"}, KaraokeTags...)

// DefaultYearRange is the default year window used by scoreYear.
const DefaultYearRange = 10

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func tokens(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Fields(s)
}

// scoreOverlap returns the fraction of source's whitespace tokens that
// appear as a substring of candidate, used identically for name and
// album scoring.
func scoreOverlap(source, candidate string) float64 {
	if source == "" || candidate == "" {
		return 0
	}
	toks := tokens(source)
	if len(toks) == 0 {
		return 0
	}
	hits := 0
	for _, t := range toks {
		if strings.Contains(candidate, t) {
			hits++
		}
	}
	return float64(hits) / float64(len(toks))
}

// scoreName computes token overlap between cleaned names, then applies the
// reduction-keyword penalty.
func scoreName(source, candidate Taggable) float64 {
	score := scoreOverlap(source.CleanTags().Name, candidate.CleanTags().Name)
	if score == 0 {
		return 0
	}
	srcRaw := strings.ToLower(source.RawName())
	candRaw := strings.ToLower(candidate.RawName())
	for _, kw := range ReductionKeywords {
		if strings.Contains(candRaw, kw) && !strings.Contains(srcRaw, kw) {
			score -= 0.5
			if score < 0 {
				score = 0
			}
			break
		}
	}
	return score
}

// scoreArtist computes token overlap against each of the candidate's
// artists, scaling artist k's contribution by 1/k.
func scoreArtist(source, candidate Taggable) float64 {
	srcArtist := source.CleanTags().Artist
	if srcArtist == "" {
		return 0
	}
	artists := candidate.ArtistList()
	if len(artists) == 0 {
		return 0
	}
	srcTokens := tokens(srcArtist)
	if len(srcTokens) == 0 {
		return 0
	}
	var total float64
	for i, artist := range artists {
		k := i + 1
		hits := 0
		artistTokens := tokens(strings.ToLower(artist))
		for _, t := range srcTokens {
			for _, at := range artistTokens {
				if t == at {
					hits++
					break
				}
			}
		}
		total += (float64(hits) / float64(len(srcTokens))) * (1.0 / float64(k))
	}
	return total
}

func scoreAlbum(source, candidate Taggable) float64 {
	return scoreOverlap(source.CleanTags().Album, candidate.CleanTags().Album)
}

func scoreLength(source, candidate Taggable) float64 {
	s := source.CleanTags().Length
	c := candidate.CleanTags().Length
	if s == 0 || c == 0 {
		return 0
	}
	diff := s - c
	if diff < 0 {
		diff = -diff
	}
	score := s - diff
	if score < 0 {
		score = 0
	}
	return score / s
}

func scoreYear(source, candidate Taggable, yearRange int) float64 {
	s := source.CleanTags().Year
	c := candidate.CleanTags().Year
	if s == 0 || c == 0 {
		return 0
	}
	diff := s - c
	if diff < 0 {
		diff = -diff
	}
	score := yearRange - diff
	if score < 0 {
		score = 0
	}
	return float64(score) / float64(yearRange)
}

// notKaraoke implements the karaoke filter: 1 when none of
// candidate name/artist/album case-fold-contains a karaoke keyword, else
// 0.
func notKaraoke(candidate Taggable) bool {
	check := func(s string) bool {
		for _, kw := range KaraokeTags {
			if containsFold(s, kw) {
				return true
			}
		}
		return false
	}
	if check(candidate.RawName()) {
		return false
	}
	if check(candidate.RawArtist()) {
		return false
	}
	if check(candidate.RawAlbum()) {
		return false
	}
	return true
}
