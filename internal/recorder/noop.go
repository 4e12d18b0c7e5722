package recorder

import "goldpredict/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not
// configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) Record(_ *model.PredictionResponse) error { return nil }
func (n *NoopRecorder) Recent(_ int) ([]PredictionRow, error)    { return nil, nil }
func (n *NoopRecorder) Close() error                             { return nil }
