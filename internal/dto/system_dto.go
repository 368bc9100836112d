package dto

// EmbeddingQueueStatusResponse reports the state of the embedding
// generation queue.
type EmbeddingQueueStatusResponse struct {
	Queued    int64 `json:"queued"`
	Processed int64 `json:"processed"`
	Failed    int64 `json:"failed"`
	Pending   int64 `json:"pending"`
	Vectors   int64 `json:"vectors"`
}
