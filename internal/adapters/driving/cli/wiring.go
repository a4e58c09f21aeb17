package cli

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/NicholasSynovic/joss-dataset/internal/adapters/driven/artifact"
	"github.com/NicholasSynovic/joss-dataset/internal/adapters/driven/auth"
	"github.com/NicholasSynovic/joss-dataset/internal/adapters/driven/storage/sqlite"
	githubconn "github.com/NicholasSynovic/joss-dataset/internal/connectors/github"
	"github.com/NicholasSynovic/joss-dataset/internal/core/domain"
	"github.com/NicholasSynovic/joss-dataset/internal/core/ports/driven"
	"github.com/NicholasSynovic/joss-dataset/internal/core/ports/driving"
	"github.com/NicholasSynovic/joss-dataset/internal/core/services"
	githubnorm "github.com/NicholasSynovic/joss-dataset/internal/normalisers/github"
)

// accountClient reports on the configured GitHub credential.
type accountClient interface {
	ValidateCredentials(ctx context.Context) (string, error)
	Quota(ctx context.Context) (githubconn.RateLimitSnapshot, error)
}

// Service constructors. Tests replace these to run commands without
// network or disk access.
var (
	newIngestService    = buildIngestService
	newTransformService = buildTransformService
	newParseService     = buildParseService
	newDatasetStore     = buildDatasetStore
	newAccountClient    = buildAccountClient
	newQueryService     = buildQueryService
	newLoadService      = buildLoadService
)

func noop() {}

// newGitHubClient reads the token first so a missing credential fails
// before any network call.
func newGitHubClient(ctx context.Context, s domain.Settings) (*githubconn.Client, error) {
	return githubconn.NewClient(ctx, auth.NewEnvTokenProvider(s.TokenEnv),
		githubconn.WithBaseURL(s.APIURL),
		githubconn.WithRequestsPerSecond(s.RequestsPerSecond),
	)
}

func buildIngestService(
	ctx context.Context, s domain.Settings, onPage func(driven.PageProgress),
) (driving.IngestService, func(), error) {
	client, err := newGitHubClient(ctx, s)
	if err != nil {
		return nil, noop, err
	}
	paginator := githubconn.NewPaginator(client, s.Direction)
	paginator.OnPage(onPage)

	dataset, closeDataset, err := newDatasetStore(s)
	if err != nil {
		return nil, noop, err
	}

	svc := services.NewIngestService(paginator, artifact.NewStore(s.OutputDir), dataset, time.Now, uuid.NewString)
	return svc, closeDataset, nil
}

func buildTransformService(s domain.Settings) driving.TransformService {
	return services.NewTransformService(githubnorm.NewIssueNormaliser(), artifact.NewStore(s.OutputDir), time.Now)
}

func buildParseService(s domain.Settings) driving.ParseService {
	resolver := githubconn.NewRedirectResolver(nil, githubconn.RedirectRetryPolicy())
	extractor := githubnorm.NewSubmissionExtractor(resolver)
	return services.NewParseService(extractor, artifact.NewStore(s.OutputDir), time.Now)
}

func buildDatasetStore(s domain.Settings) (driven.DatasetStore, func(), error) {
	store, err := sqlite.NewStore(s.StorageDir)
	if err != nil {
		return nil, noop, err
	}
	return store, func() { _ = store.Close() }, nil
}

func buildAccountClient(ctx context.Context, s domain.Settings) (accountClient, error) {
	client, err := newGitHubClient(ctx, s)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func buildQueryService(dataset driven.DatasetStore) driving.QueryService {
	return services.NewQueryService(dataset)
}

func buildLoadService(s domain.Settings, dataset driven.DatasetStore) driving.LoadService {
	return services.NewLoadService(artifact.NewStore(s.OutputDir), dataset)
}
