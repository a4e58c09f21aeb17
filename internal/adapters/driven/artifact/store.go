package artifact

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/NicholasSynovic/joss-dataset/internal/core/domain"
	"github.com/NicholasSynovic/joss-dataset/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.ArtifactStore = (*Store)(nil)

// Store reads and writes JSON artifacts in a directory.
type Store struct {
	dir string
}

// NewStore creates a store writing into dir. An empty dir means the
// current directory.
func NewStore(dir string) *Store {
	if dir == "" {
		dir = "."
	}
	return &Store{dir: dir}
}

// Dir returns the output directory.
func (s *Store) Dir() string {
	return s.dir
}

// ReadRawIssues reads a JSON array without interpreting its elements.
func (s *Store) ReadRawIssues(path string) ([]domain.RawIssue, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	issues, err := domain.RawIssues(data)
	if err != nil {
		return nil, invalid(path, err)
	}
	return issues, nil
}

// ReadIssues reads an array of normalized issues.
func (s *Store) ReadIssues(path string) ([]domain.NormalizedIssue, error) {
	var issues []domain.NormalizedIssue
	if err := readArray(path, &issues); err != nil {
		return nil, err
	}
	for i := range issues {
		if issues[i].Labels == nil {
			issues[i].Labels = []string{}
		}
	}
	return issues, nil
}

// ReadSubmissions reads an array of submissions.
func (s *Store) ReadSubmissions(path string) ([]domain.Submission, error) {
	var subs []domain.Submission
	if err := readArray(path, &subs); err != nil {
		return nil, err
	}
	for i := range subs {
		if subs[i].Labels == nil {
			subs[i].Labels = []string{}
		}
		if subs[i].Reviewers == nil {
			subs[i].Reviewers = []string{}
		}
	}
	return subs, nil
}

// Write serialises v as indented JSON to <dir>/<kind>_<timestamp>.json.
// The file is written to a temporary name first and renamed into place.
func (s *Store) Write(kind domain.ArtifactKind, timestamp int64, v any) (string, error) {
	data, err := encode(kind, v)
	if err != nil {
		return "", fmt.Errorf("encoding %s: %w", kind, err)
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	path := filepath.Join(s.dir, domain.ArtifactFileName(kind, timestamp))

	tmp, err := os.CreateTemp(s.dir, "."+string(kind)+"-*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("closing %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("renaming %s: %w", path, err)
	}
	return path, nil
}

// encode renders v with two-space indentation and a trailing newline.
// HTML characters are left unescaped since issue bodies are full of them.
func encode(kind domain.ArtifactKind, v any) ([]byte, error) {
	if kind != domain.ArtifactRawIssues {
		sorted, err := sortKeys(v)
		if err != nil {
			return nil, err
		}
		v = sorted
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// sortKeys round-trips v through a generic value so objects are emitted
// with sorted keys. Numbers are kept verbatim.
func sortKeys(v any) (any, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	dec := json.NewDecoder(&buf)
	dec.UseNumber()
	var generic any
	if err := dec.Decode(&generic); err != nil {
		return nil, err
	}
	return generic, nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s does not exist", domain.ErrInvalidInput, path)
		}
		return nil, fmt.Errorf("%w: reading %s: %w", domain.ErrInvalidInput, path, err)
	}
	return data, nil
}

// readArray decodes a JSON array into dst, a pointer to a slice.
func readArray(path string, dst any) error {
	data, err := readFile(path)
	if err != nil {
		return err
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return fmt.Errorf("%w: %s is not a JSON array", domain.ErrInvalidInput, path)
	}
	if err := json.Unmarshal(trimmed, dst); err != nil {
		return invalid(path, err)
	}
	return nil
}

func invalid(path string, err error) error {
	if errors.Is(err, domain.ErrInvalidInput) {
		return fmt.Errorf("%w: %s is not a JSON array", domain.ErrInvalidInput, path)
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrInvalidInput, path, err)
}
