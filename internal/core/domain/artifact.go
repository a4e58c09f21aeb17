package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ArtifactKind identifies a pipeline artifact by its file name prefix.
type ArtifactKind string

// Artifact kinds. Files are named <kind>_<unix timestamp>.json.
const (
	ArtifactRawIssues        ArtifactKind = "github_issues"
	ArtifactNormalizedIssues ArtifactKind = "github_issues_normalized"
	ArtifactSubmissions      ArtifactKind = "joss_submissions"
)

// ArtifactFileName returns <kind>_<timestamp>.json.
func ArtifactFileName(kind ArtifactKind, timestamp int64) string {
	return fmt.Sprintf("%s_%d.json", kind, timestamp)
}

// ArtifactKindFromFilename infers the kind of an artifact from its name.
func ArtifactKindFromFilename(name string) (ArtifactKind, bool) {
	base := filepath.Base(name)
	// Longest prefix first: normalized issue files also start with github_issues_.
	for _, kind := range []ArtifactKind{ArtifactNormalizedIssues, ArtifactSubmissions, ArtifactRawIssues} {
		if strings.HasPrefix(base, string(kind)+"_") {
			return kind, true
		}
	}
	return "", false
}

// ExportFormat is a dataset serialisation format.
type ExportFormat string

// Supported export formats.
const (
	FormatJSON ExportFormat = "json"
	FormatYAML ExportFormat = "yaml"
)

// ParseExportFormat validates a format name.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch f := ExportFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", NewConfigurationError("format", fmt.Sprintf("must be json or yaml, got %q", s))
	}
}
