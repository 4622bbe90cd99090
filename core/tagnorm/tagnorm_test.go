// Copyright 2024 The Musify Authors.
// All rights reserved.

package tagnorm

import "testing"

func TestCleanField(t *testing.T) {
	cfg := DefaultConfig()
	cases := []struct {
		name string
		in   string
		fc   FieldConfig
		want string
	}{
		{"drops parens", "Love Song (Live Version)", cfg.Name, "love song"},
		{"drops brackets", "Track One [Remastered]", cfg.Name, "track one"},
		{"title split feat", "Alone feat. Bono", cfg.Title, "alone"},
		{"title removes part", "Symphony part two", cfg.Title, "symphony two"},
		{"artist split vs", "Alpha vs Beta", cfg.Artist, "alpha"},
		{"album preprocess dash", "Greatest Hits - Deluxe", cfg.Album, "greatest hits"},
		{"global stoplist the/a/and", "The Cat and a Dog", cfg.Name, "cat dog"},
		{"empty stays empty", "", cfg.Name, ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := cleanField(c.in, c.fc)
			if got != c.want {
				t.Errorf("cleanField(%q) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}

func TestClean(t *testing.T) {
	cfg := DefaultConfig()
	src := Source{
		Name:   "Love Song (Live)",
		Title:  "Love Song (Live)",
		Artist: "The Band",
		Album:  "Greatest Hits - Deluxe",
		Length: 180.5,
		Year:   1999,
	}
	got := Clean(src, cfg)
	if got.Name != "love song" {
		t.Errorf("Name = %q", got.Name)
	}
	if got.Artist != "band" {
		t.Errorf("Artist = %q", got.Artist)
	}
	if got.Album != "greatest hits" {
		t.Errorf("Album = %q", got.Album)
	}
	if got.Length != 180.5 || got.Year != 1999 {
		t.Errorf("Length/Year not passed through: %+v", got)
	}
}

func TestCleanNameMirrorsMatchingField(t *testing.T) {
	cfg := DefaultConfig()

	// A track's name is its title, so the name must be cleaned with the
	// title's split tokens and stoplist, not a bare default.
	got := Clean(Source{Name: "Alone feat. Bono", Title: "Alone feat. Bono"}, cfg)
	if got.Name != "alone" {
		t.Errorf("Name = %q, want %q (title config applied)", got.Name, "alone")
	}
	if got.Name != got.Title {
		t.Errorf("Name = %q, Title = %q; want them aliased", got.Name, got.Title)
	}

	// An album collection's name is its album string.
	got = Clean(Source{Name: "Greatest Hits - Deluxe", Album: "Greatest Hits - Deluxe"}, cfg)
	if got.Name != "greatest hits" {
		t.Errorf("Name = %q, want %q (album config applied)", got.Name, "greatest hits")
	}

	// A name matching no raw field falls back to the base config.
	got = Clean(Source{Name: "standalone.mp3", Title: "Something Else"}, cfg)
	if got.Name != "standalone mp3" {
		t.Errorf("Name = %q, want %q (base config fallback)", got.Name, "standalone mp3")
	}
}

func TestCleanIsIdempotentUpToRetokenization(t *testing.T) {
	cfg := DefaultConfig()
	once := cleanField("The Beatles & Friends", cfg.Name)
	twice := cleanField(once, cfg.Name)
	if once != twice {
		t.Errorf("not idempotent: once=%q twice=%q", once, twice)
	}
}
