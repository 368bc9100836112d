package embedding

import (
	"hash/fnv"
	"strings"
)

// LocalProvider is a deterministic, dependency-free embedding backend. It
// hashes word features into a fixed-size bag-of-words vector, which is good
// enough for development environments and tests where no model server runs.
type LocalProvider struct {
	Dimensions int
}

func NewLocalProvider(dimensions int) EmbeddingProvider {
	if dimensions <= 0 {
		dimensions = 768
	}
	return &LocalProvider{Dimensions: dimensions}
}

func (p *LocalProvider) Generate(text string, taskType string) (*EmbeddingResponse, error) {
	values := make([]float32, p.Dimensions)

	for _, word := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		h.Write([]byte(word))
		idx := int(h.Sum32()) % p.Dimensions
		if idx < 0 {
			idx += p.Dimensions
		}
		values[idx] += 1
	}

	return &EmbeddingResponse{
		Embedding: EmbeddingResponseEmbedding{
			Values: normalizeVector(values),
		},
	}, nil
}
