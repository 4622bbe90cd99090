// Copyright 2024 The Musify Authors.
// All rights reserved.

package auto

import (
	"os"
	"strings"
)

// PathConfig configures path sanitization: replacing a configured
// "other folder" stem with the canonical library folder, normalizing path
// separators to the library's convention, and optionally rejecting paths
// that don't exist on disk.
type PathConfig struct {
	LibraryFolder  string
	OtherFolders   []string
	Separator      string // e.g. "/" or "\"; defaults to "/"
	ValidateExists bool
}

func (c PathConfig) separator() string {
	if c.Separator == "" {
		return "/"
	}
	return c.Separator
}

// NormalizePath applies other-folder prefix
// replacement and separator normalization (lowercasing is left to
// NormalizePaths, which also handles exclude precedence; callers comparing
// single paths should lowercase themselves). Idempotent: normalizing an
// already-normalized path returns it unchanged.
func (c PathConfig) NormalizePath(p string) string {
	for _, other := range c.OtherFolders {
		if other == "" {
			continue
		}
		if strings.HasPrefix(p, other) {
			p = c.LibraryFolder + strings.TrimPrefix(p, other)
			break
		}
	}
	sep := c.separator()
	other := "/"
	if sep == "/" {
		other = "\\"
	}
	p = strings.ReplaceAll(p, other, sep)
	return p
}

// Key returns the normalized, lowercased form of p used for include/exclude
// set membership comparisons.
func (c PathConfig) Key(p string) string {
	return strings.ToLower(c.NormalizePath(p))
}

// exists reports whether p is present on disk; used only when
// cfg.ValidateExists is set.
func exists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

// NormalizePaths sanitizes a rule's include and exclude path lists:
// normalize both, lowercase for comparison, optionally drop nonexistent
// paths, then drop from includes anything that also appears in excludes
// (excludes take precedence).
func NormalizePaths(includes, excludes []string, cfg PathConfig) (normIncludes, normExcludes []string) {
	clean := func(paths []string) []string {
		out := make([]string, 0, len(paths))
		seen := map[string]bool{}
		for _, p := range paths {
			n := cfg.Key(p)
			if cfg.ValidateExists && !exists(n) {
				continue
			}
			if !seen[n] {
				seen[n] = true
				out = append(out, n)
			}
		}
		return out
	}
	normIncludes = clean(includes)
	normExcludes = clean(excludes)

	excludeSet := make(map[string]bool, len(normExcludes))
	for _, p := range normExcludes {
		excludeSet[p] = true
	}
	filtered := normIncludes[:0:0]
	for _, p := range normIncludes {
		if !excludeSet[p] {
			filtered = append(filtered, p)
		}
	}
	normIncludes = filtered
	return normIncludes, normExcludes
}
