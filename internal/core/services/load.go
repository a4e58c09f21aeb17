package services

import (
	"context"
	"fmt"

	"github.com/NicholasSynovic/joss-dataset/internal/core/domain"
	"github.com/NicholasSynovic/joss-dataset/internal/core/ports/driven"
	"github.com/NicholasSynovic/joss-dataset/internal/core/ports/driving"
	"github.com/NicholasSynovic/joss-dataset/internal/logger"
)

// Ensure LoadService implements the interface.
var _ driving.LoadService = (*LoadService)(nil)

// LoadService copies artifacts into the dataset store.
type LoadService struct {
	artifacts driven.ArtifactStore
	dataset   driven.DatasetStore
}

// NewLoadService creates a load service.
func NewLoadService(artifacts driven.ArtifactStore, dataset driven.DatasetStore) *LoadService {
	return &LoadService{artifacts: artifacts, dataset: dataset}
}

// Load writes a normalized issue or submission artifact to the store.
// The artifact kind is inferred from the file name. The artifact replaces
// the table's previous contents, so loading the same file twice is harmless.
func (s *LoadService) Load(ctx context.Context, inputPath string) (*driving.LoadResult, error) {
	kind, ok := domain.ArtifactKindFromFilename(inputPath)
	if !ok {
		return nil, fmt.Errorf("%w: cannot infer artifact kind of %s", domain.ErrInvalidInput, inputPath)
	}

	logger.Section("Load")
	logger.Info("Loading %s artifact %s", kind, inputPath)

	var n int
	switch kind {
	case domain.ArtifactNormalizedIssues:
		issues, err := s.artifacts.ReadIssues(inputPath)
		if err != nil {
			return nil, err
		}
		if err := s.dataset.SaveIssues(ctx, issues); err != nil {
			return nil, fmt.Errorf("save issues: %w", err)
		}
		n = len(issues)
	case domain.ArtifactSubmissions:
		subs, err := s.artifacts.ReadSubmissions(inputPath)
		if err != nil {
			return nil, err
		}
		if err := s.dataset.SaveSubmissions(ctx, subs); err != nil {
			return nil, fmt.Errorf("save submissions: %w", err)
		}
		n = len(subs)
	default:
		return nil, fmt.Errorf("%w: %s artifacts are not loadable; run transform first", domain.ErrInvalidInput, kind)
	}

	logger.Info("Loaded %d records", n)
	return &driving.LoadResult{Kind: kind, Records: n}, nil
}
