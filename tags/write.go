// Copyright 2024 The Musify Authors.
// All rights reserved.

package tags

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bogem/id3v2/v2"
)

// Write applies mutations (field → new value: string, []string, int, or
// float64) to path's tags and returns which fields were touched and why.
// replace clears a field's existing frame(s) before writing the
// new value; otherwise the new value is appended alongside what's there
// for multi-valued fields (genres, comments). dryRun computes the same
// result without calling Save.
func Write(path string, mutations map[string]interface{}, replace, dryRun bool) (SyncResultTrack, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return SyncResultTrack{}, err
	}
	defer tag.Close()

	updated := map[string]int{}
	for _, field := range sortedKeys(mutations) {
		ids := TagIDs(field)
		if len(ids) == 0 {
			return SyncResultTrack{}, fmt.Errorf("tags: unsupported field %q", field)
		}
		existed := hasFrame(tag, ids[0])
		if replace {
			for _, id := range ids {
				deleteFrame(tag, id)
			}
		}
		if err := applyMutation(tag, ids[0], mutations[field]); err != nil {
			return SyncResultTrack{}, err
		}
		if existed {
			updated[field] = ReasonReplaced
		} else {
			updated[field] = ReasonAdded
		}
	}

	if dryRun {
		return SyncResultTrack{Saved: false, Updated: updated}, nil
	}
	if err := tag.Save(); err != nil {
		return SyncResultTrack{}, err
	}
	return SyncResultTrack{Saved: true, Updated: updated}, nil
}

// DeleteTags clears each named field's frame(s) from path's tags.
func DeleteTags(path string, fields []string, dryRun bool) (SyncResultTrack, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return SyncResultTrack{}, err
	}
	defer tag.Close()

	updated := map[string]int{}
	for _, field := range fields {
		ids := TagIDs(field)
		if len(ids) == 0 {
			return SyncResultTrack{}, fmt.Errorf("tags: unsupported field %q", field)
		}
		for _, id := range ids {
			deleteFrame(tag, id)
		}
		updated[field] = ReasonCleared
	}

	if dryRun {
		return SyncResultTrack{Saved: false, Updated: updated}, nil
	}
	if err := tag.Save(); err != nil {
		return SyncResultTrack{}, err
	}
	return SyncResultTrack{Saved: true, Updated: updated}, nil
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// hasFrame reports whether id (a plain frame ID, or "TXXX:desc"/"UFID:owner")
// already has a value set.
func hasFrame(tag *id3v2.Tag, id string) bool {
	base, desc := splitID(id)
	switch base {
	case "TXXX":
		for _, f := range tag.GetFrames(base) {
			if udtf, ok := f.(id3v2.UserDefinedTextFrame); ok && udtf.Description == desc {
				return true
			}
		}
		return false
	case "UFID":
		for _, f := range tag.GetFrames(base) {
			if uf, ok := f.(id3v2.UFIDFrame); ok && uf.OwnerIdentifier == desc {
				return true
			}
		}
		return false
	default:
		return tag.GetTextFrame(base).Text != ""
	}
}

// deleteFrame removes id's value, preserving sibling TXXX/UFID frames under
// the same base ID that carry a different description/owner.
func deleteFrame(tag *id3v2.Tag, id string) {
	base, desc := splitID(id)
	switch base {
	case "TXXX":
		frames := tag.GetFrames(base)
		tag.DeleteFrames(base)
		for _, f := range frames {
			if udtf, ok := f.(id3v2.UserDefinedTextFrame); ok && udtf.Description != desc {
				tag.AddUserDefinedTextFrame(udtf)
			}
		}
	case "UFID":
		frames := tag.GetFrames(base)
		tag.DeleteFrames(base)
		for _, f := range frames {
			if uf, ok := f.(id3v2.UFIDFrame); ok && uf.OwnerIdentifier != desc {
				tag.AddFrame(base, uf)
			}
		}
	default:
		tag.DeleteFrames(base)
	}
}

// applyMutation writes value into id, dispatching to the right frame type
// for TXXX/UFID/COMM ids and plain text frames otherwise.
func applyMutation(tag *id3v2.Tag, id string, value interface{}) error {
	base, desc := splitID(id)
	text, err := formatValue(value)
	if err != nil {
		return err
	}
	switch base {
	case "TXXX":
		tag.AddUserDefinedTextFrame(id3v2.UserDefinedTextFrame{
			Encoding:    id3v2.EncodingUTF8,
			Description: desc,
			Value:       text,
		})
	case "UFID":
		tag.AddFrame(base, id3v2.UFIDFrame{
			OwnerIdentifier: desc,
			Identifier:      []byte(text),
		})
	case "COMM":
		tag.AddCommentFrame(id3v2.CommentFrame{
			Encoding:    id3v2.EncodingUTF8,
			Language:    "eng",
			Description: "",
			Text:        text,
		})
	default:
		tag.AddTextFrame(base, id3v2.EncodingUTF8, text)
	}
	return nil
}

// splitID separates a "BASE:desc" tag ID into its ID3 frame ID and the
// TXXX description / UFID owner it carries, or returns id unchanged with
// an empty desc for plain text frames.
func splitID(id string) (base, desc string) {
	if i := strings.IndexByte(id, ':'); i >= 0 {
		return id[:i], id[i+1:]
	}
	return id, ""
}

func formatValue(value interface{}) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []string:
		return strings.Join(v, "; "), nil
	case int:
		return fmt.Sprintf("%d", v), nil
	case float64:
		return fmt.Sprintf("%v", v), nil
	default:
		return "", fmt.Errorf("tags: unsupported mutation value type %T", value)
	}
}
