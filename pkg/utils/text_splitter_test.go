package utils

import (
	"strings"
	"testing"
)

func TestSplitText(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		chunkSize  int
		overlap    int
		wantChunks int
	}{
		{"short text is a single chunk", "hello world", 100, 10, 1},
		{"exact boundary is a single chunk", strings.Repeat("a", 100), 100, 10, 1},
		{"long text splits with overlap", strings.Repeat("a", 250), 100, 20, 3},
		{"overlap >= chunkSize falls back to plain stepping", strings.Repeat("a", 200), 50, 50, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := SplitText(tt.text, tt.chunkSize, tt.overlap)
			if len(chunks) != tt.wantChunks {
				t.Errorf("SplitText() = %d chunks, want %d", len(chunks), tt.wantChunks)
			}
			for i, chunk := range chunks {
				if len([]rune(chunk)) > tt.chunkSize {
					t.Errorf("chunk %d has %d runes, exceeds chunkSize %d", i, len([]rune(chunk)), tt.chunkSize)
				}
			}
		})
	}
}

func TestSplitTextOverlapPreservesBoundary(t *testing.T) {
	text := strings.Repeat("x", 90) + strings.Repeat("y", 90)
	chunks := SplitText(text, 100, 20)

	if len(chunks) < 2 {
		t.Fatalf("expected at least 2 chunks, got %d", len(chunks))
	}
	// The tail of chunk N reappears at the head of chunk N+1.
	first := []rune(chunks[0])
	second := []rune(chunks[1])
	tail := string(first[len(first)-20:])
	head := string(second[:20])
	if tail != head {
		t.Errorf("overlap mismatch: tail %q, head %q", tail, head)
	}
}

func TestSplitTextMultibyte(t *testing.T) {
	text := strings.Repeat("日本語のテキスト", 30)
	chunks := SplitText(text, 50, 10)

	var rejoined strings.Builder
	for i, chunk := range chunks {
		if i == 0 {
			rejoined.WriteString(chunk)
			continue
		}
		rejoined.WriteString(string([]rune(chunk)[10:]))
	}
	if rejoined.String() != text {
		t.Error("rejoined chunks do not reproduce the original text")
	}
}
