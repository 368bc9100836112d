package embedding

import (
	"math"
	"testing"
)

func TestLocalProviderDeterministic(t *testing.T) {
	provider := NewLocalProvider(768)

	first, err := provider.Generate("the quick brown fox", "RETRIEVAL_DOCUMENT")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	second, err := provider.Generate("the quick brown fox", "RETRIEVAL_DOCUMENT")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if len(first.Embedding.Values) != 768 {
		t.Fatalf("dimension = %d, want 768", len(first.Embedding.Values))
	}
	for i := range first.Embedding.Values {
		if first.Embedding.Values[i] != second.Embedding.Values[i] {
			t.Fatalf("vectors differ at index %d", i)
		}
	}
}

func TestLocalProviderNormalized(t *testing.T) {
	provider := NewLocalProvider(64)

	resp, err := provider.Generate("journaling every morning clears the head", "RETRIEVAL_QUERY")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	var norm float64
	for _, v := range resp.Embedding.Values {
		norm += float64(v) * float64(v)
	}
	norm = math.Sqrt(norm)

	if math.Abs(norm-1.0) > 1e-5 {
		t.Errorf("norm = %f, want 1.0", norm)
	}
}

func TestLocalProviderDefaultDimensions(t *testing.T) {
	provider := NewLocalProvider(0)

	resp, err := provider.Generate("x", "RETRIEVAL_DOCUMENT")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(resp.Embedding.Values) != 768 {
		t.Errorf("dimension = %d, want 768", len(resp.Embedding.Values))
	}
}
