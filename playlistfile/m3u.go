// Copyright 2024 The Musify Authors.
// All rights reserved.

package playlistfile

import (
	"bufio"
	"os"
	"strings"

	"github.com/musify-sync/musify/core/auto"
)

// ReadM3U reads path as a plain M3U playlist: one path per line, UTF-8, no
// BOM. Blank lines are skipped; "#EXT" comment lines are
// tolerated but not interpreted, since this format only needs bare paths.
func ReadM3U(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var paths []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimPrefix(sc.Text(), "\xef\xbb\xbf")
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		paths = append(paths, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return paths, nil
}

// WriteM3U writes paths to path, one per line, normalized through cfg's
// stem-replacement and separator convention first so the file always uses
// the library's separator convention.
func WriteM3U(path string, paths []string, cfg auto.PathConfig) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, p := range paths {
		if _, err := w.WriteString(cfg.NormalizePath(p)); err != nil {
			return err
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return w.Flush()
}
