package mapper

import (
	"reflecto-be/internal/entity"
	"reflecto-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type EntryEmbeddingMapper struct{}

func NewEntryEmbeddingMapper() *EntryEmbeddingMapper {
	return &EntryEmbeddingMapper{}
}

func (m *EntryEmbeddingMapper) ToEntity(e *model.EntryEmbedding) *entity.EntryEmbedding {
	if e == nil {
		return nil
	}
	return &entity.EntryEmbedding{
		Id:             e.Id,
		Document:       e.Document,
		EmbeddingValue: e.EmbeddingValue.Slice(),
		EntryId:        e.EntryId,
		ChunkIndex:     e.ChunkIndex,
		CreatedAt:      e.CreatedAt,
	}
}

func (m *EntryEmbeddingMapper) ToModel(e *entity.EntryEmbedding) *model.EntryEmbedding {
	if e == nil {
		return nil
	}
	return &model.EntryEmbedding{
		Id:             e.Id,
		Document:       e.Document,
		EmbeddingValue: pgvector.NewVector(e.EmbeddingValue),
		EntryId:        e.EntryId,
		ChunkIndex:     e.ChunkIndex,
		CreatedAt:      e.CreatedAt,
	}
}

func (m *EntryEmbeddingMapper) ToModels(embeddings []*entity.EntryEmbedding) []*model.EntryEmbedding {
	models := make([]*model.EntryEmbedding, len(embeddings))
	for i, e := range embeddings {
		models[i] = m.ToModel(e)
	}
	return models
}
