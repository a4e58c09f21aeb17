package domain

import (
	"fmt"
	"strings"
)

// Default settings.
const (
	DefaultOwner       = "openjournals"
	DefaultRepo        = "joss-reviews"
	DefaultPerPage     = 100
	MaxPerPage         = 100
	DefaultDirection   = DirectionAsc
	DefaultTokenEnv    = "GITHUB_TOKEN"
	DefaultAPIURL      = "https://api.github.com/"
	DefaultOutputDir   = "."
	DefaultLogDir      = "."
	DefaultStorageName = "joss.db"
)

// Direction is the ordering of the issue listing by creation time.
type Direction string

// Available directions.
const (
	DirectionAsc  Direction = "asc"
	DirectionDesc Direction = "desc"
)

// IsValid returns true if the direction is recognised.
func (d Direction) IsValid() bool {
	return d == DirectionAsc || d == DirectionDesc
}

// String returns the string representation.
func (d Direction) String() string {
	return string(d)
}

// RepoTarget identifies a GitHub repository.
type RepoTarget struct {
	Owner string
	Repo  string
}

// FullName returns the repository in owner/repo form.
func (t RepoTarget) FullName() string {
	return t.Owner + "/" + t.Repo
}

// ParseRepoTarget parses an owner/repo string.
func ParseRepoTarget(s string) (RepoTarget, error) {
	owner, repo, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return RepoTarget{}, NewConfigurationError("repository", fmt.Sprintf("expected owner/repo, got %q", s))
	}
	return RepoTarget{Owner: owner, Repo: repo}, nil
}

// Settings holds the typed runtime configuration.
type Settings struct {
	// Target is the repository whose issues are collected.
	Target RepoTarget

	// PerPage is the page size requested from the API (1..100).
	PerPage int

	// MaxPages caps the number of pages fetched. Zero means unbounded.
	MaxPages int

	// Direction orders the listing by creation time.
	Direction Direction

	// TokenEnv names the environment variable holding the bearer token.
	TokenEnv string

	// APIURL is the base URL of the REST API.
	APIURL string

	// RequestsPerSecond enables proactive throttling. Zero disables it.
	RequestsPerSecond float64

	// OutputDir receives JSON artifacts.
	OutputDir string

	// LogDir receives log files.
	LogDir string

	// StorageDir holds the SQLite database. Empty means ~/.joss/data.
	StorageDir string
}

// DefaultSettings returns settings with every default applied.
func DefaultSettings() Settings {
	return Settings{
		Target:    RepoTarget{Owner: DefaultOwner, Repo: DefaultRepo},
		PerPage:   DefaultPerPage,
		Direction: DefaultDirection,
		TokenEnv:  DefaultTokenEnv,
		APIURL:    DefaultAPIURL,
		OutputDir: DefaultOutputDir,
		LogDir:    DefaultLogDir,
	}
}

// Validate checks the settings for values the pipeline cannot run with.
func (s Settings) Validate() error {
	if s.Target.Owner == "" || s.Target.Repo == "" {
		return NewConfigurationError("github.owner/github.repo", "repository must be set")
	}
	if s.PerPage < 1 || s.PerPage > MaxPerPage {
		return NewConfigurationError("github.per_page", fmt.Sprintf("must be between 1 and %d, got %d", MaxPerPage, s.PerPage))
	}
	if s.MaxPages < 0 {
		return NewConfigurationError("github.max_pages", fmt.Sprintf("must not be negative, got %d", s.MaxPages))
	}
	if !s.Direction.IsValid() {
		return NewConfigurationError("github.direction", fmt.Sprintf("must be asc or desc, got %q", s.Direction))
	}
	if strings.TrimSpace(s.TokenEnv) == "" {
		return NewConfigurationError("github.token_env", "must name an environment variable")
	}
	if s.RequestsPerSecond < 0 {
		return NewConfigurationError("github.requests_per_second", "must not be negative")
	}
	return nil
}
