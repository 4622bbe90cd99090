// Copyright 2024 The Musify Authors.
// All rights reserved.

package check

import (
	"context"
	"strings"
	"testing"
)

func TestStdioPrompterReadsLines(t *testing.T) {
	p := NewStdioPrompter(strings.NewReader("s\n"), &strings.Builder{})
	got, err := p.Prompt(context.Background(), "continue?")
	if err != nil {
		t.Fatalf("Prompt failed: %v", err)
	}
	if got != "s" {
		t.Errorf("Prompt() = %q, want %q", got, "s")
	}
}

func TestStdioPrompterReturnsEOFWhenExhausted(t *testing.T) {
	p := NewStdioPrompter(strings.NewReader(""), &strings.Builder{})
	if _, err := p.Prompt(context.Background(), "continue?"); err == nil {
		t.Fatal("expected an error once input is exhausted")
	}
}
