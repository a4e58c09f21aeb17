package services

import (
	"context"
	"fmt"
	"io"

	"github.com/NicholasSynovic/joss-dataset/internal/core/domain"
	"github.com/NicholasSynovic/joss-dataset/internal/core/ports/driven"
	"github.com/NicholasSynovic/joss-dataset/internal/core/ports/driving"
)

// Ensure ExportService implements the interface.
var _ driving.ExportService = (*ExportService)(nil)

// ExportService writes stored submissions in a portable format.
type ExportService struct {
	dataset driven.DatasetStore
	encoder driven.SubmissionEncoder
}

// NewExportService creates an export service.
func NewExportService(dataset driven.DatasetStore, encoder driven.SubmissionEncoder) *ExportService {
	return &ExportService{dataset: dataset, encoder: encoder}
}

// Export encodes every stored submission to w and returns the count.
func (s *ExportService) Export(ctx context.Context, w io.Writer, format domain.ExportFormat) (int, error) {
	subs, err := s.dataset.ListSubmissions(ctx)
	if err != nil {
		return 0, fmt.Errorf("list submissions: %w", err)
	}
	if err := s.encoder.Encode(w, format, subs); err != nil {
		return 0, fmt.Errorf("encode %s: %w", format, err)
	}
	return len(subs), nil
}
