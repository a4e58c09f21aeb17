package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/NicholasSynovic/joss-dataset/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/NicholasSynovic/joss-dataset/internal/core/domain"
	"github.com/NicholasSynovic/joss-dataset/internal/core/ports/driven"
)

// DatabaseName is the file name of the database inside the data directory.
const DatabaseName = "joss.db"

// Store is the SQLite-backed dataset store.
type Store struct {
	db   *sql.DB
	path string
}

var _ driven.DatasetStore = (*Store)(nil)

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.joss/data/joss.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".joss", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DatabaseName)

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: dbPath}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// SchemaVersion returns the highest applied migration version.
func (s *Store) SchemaVersion(ctx context.Context) (int, error) {
	var v int
	row := s.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&v); err != nil {
		return 0, fmt.Errorf("getting schema version: %w", err)
	}
	return v, nil
}

// migrate runs all pending migrations, each in its own transaction.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	currentVersion, err := s.SchemaVersion(context.Background())
	if err != nil {
		return err
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("beginning migration %s: %w", name, err)
		}
		if _, err := tx.Exec(string(content)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %s: %w", name, err)
		}
	}

	return nil
}

// inTx runs fn inside a transaction, rolling back on error.
func (s *Store) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// ==================== Issues ====================

// SaveIssues replaces the stored issues with issues. Every record is
// kept, including defaulted ones sharing the -1 id.
func (s *Store) SaveIssues(ctx context.Context, issues []domain.NormalizedIssue) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM github_issues"); err != nil {
			return fmt.Errorf("clearing issues: %w", err)
		}
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO github_issues (id, number, user_id, user_login, labels, state,
				created_at, updated_at, closed_at, body, is_pull_request)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("preparing issue insert: %w", err)
		}
		defer stmt.Close()

		for _, issue := range issues {
			labels, err := encodeList(issue.Labels)
			if err != nil {
				return fmt.Errorf("marshalling labels of issue %d: %w", issue.Number, err)
			}
			if _, err := stmt.ExecContext(ctx, issue.ID, issue.Number, issue.UserID, issue.UserLogin,
				labels, issue.State, issue.CreatedAt, issue.UpdatedAt, issue.ClosedAt,
				issue.Body, issue.IsPullRequest); err != nil {
				return fmt.Errorf("saving issue %d: %w", issue.Number, err)
			}
		}
		return nil
	})
}

// ListIssues returns stored issues ordered by number.
func (s *Store) ListIssues(ctx context.Context) ([]domain.NormalizedIssue, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, number, user_id, user_login, labels, state,
			created_at, updated_at, closed_at, body, is_pull_request
		FROM github_issues ORDER BY number, id, row_id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying issues: %w", err)
	}
	defer rows.Close()

	issues := make([]domain.NormalizedIssue, 0)
	for rows.Next() {
		var issue domain.NormalizedIssue
		var labels string
		if err := rows.Scan(&issue.ID, &issue.Number, &issue.UserID, &issue.UserLogin,
			&labels, &issue.State, &issue.CreatedAt, &issue.UpdatedAt, &issue.ClosedAt,
			&issue.Body, &issue.IsPullRequest); err != nil {
			return nil, fmt.Errorf("scanning issue: %w", err)
		}
		if issue.Labels, err = decodeList(labels); err != nil {
			return nil, fmt.Errorf("unmarshaling labels of issue %d: %w", issue.Number, err)
		}
		issues = append(issues, issue)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating issues: %w", err)
	}
	return issues, nil
}

// ==================== Submissions ====================

// SaveSubmissions replaces the stored submissions with subs.
func (s *Store) SaveSubmissions(ctx context.Context, subs []domain.Submission) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM joss_submissions"); err != nil {
			return fmt.Errorf("clearing submissions: %w", err)
		}
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO joss_submissions (issue_number, submitting_author, author_name, orcid,
				repository, branch, version, editor, managing_eic, reviewers, archive,
				joss_url, labels, opened, closed, json_str)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("preparing submission insert: %w", err)
		}
		defer stmt.Close()

		for _, sub := range subs {
			reviewers, err := encodeList(sub.Reviewers)
			if err != nil {
				return fmt.Errorf("marshalling reviewers of submission %d: %w", sub.IssueNumber, err)
			}
			labels, err := encodeList(sub.Labels)
			if err != nil {
				return fmt.Errorf("marshalling labels of submission %d: %w", sub.IssueNumber, err)
			}
			if _, err := stmt.ExecContext(ctx, sub.IssueNumber, sub.SubmittingAuthor, sub.AuthorName,
				sub.ORCID, sub.Repository, sub.Branch, sub.Version, sub.Editor, sub.ManagingEiC,
				reviewers, sub.Archive, sub.JOSSURL, labels, sub.Opened, sub.Closed,
				sub.JSONStr); err != nil {
				return fmt.Errorf("saving submission %d: %w", sub.IssueNumber, err)
			}
		}
		return nil
	})
}

// ListSubmissions returns stored submissions ordered by issue number.
func (s *Store) ListSubmissions(ctx context.Context) ([]domain.Submission, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT issue_number, submitting_author, author_name, orcid, repository, branch,
			version, editor, managing_eic, reviewers, archive, joss_url, labels,
			opened, closed, json_str
		FROM joss_submissions ORDER BY issue_number, row_id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying submissions: %w", err)
	}
	defer rows.Close()

	subs := make([]domain.Submission, 0)
	for rows.Next() {
		var sub domain.Submission
		var reviewers, labels string
		if err := rows.Scan(&sub.IssueNumber, &sub.SubmittingAuthor, &sub.AuthorName, &sub.ORCID,
			&sub.Repository, &sub.Branch, &sub.Version, &sub.Editor, &sub.ManagingEiC,
			&reviewers, &sub.Archive, &sub.JOSSURL, &labels, &sub.Opened, &sub.Closed,
			&sub.JSONStr); err != nil {
			return nil, fmt.Errorf("scanning submission: %w", err)
		}
		if sub.Reviewers, err = decodeList(reviewers); err != nil {
			return nil, fmt.Errorf("unmarshaling reviewers of submission %d: %w", sub.IssueNumber, err)
		}
		if sub.Labels, err = decodeList(labels); err != nil {
			return nil, fmt.Errorf("unmarshaling labels of submission %d: %w", sub.IssueNumber, err)
		}
		subs = append(subs, sub)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating submissions: %w", err)
	}
	return subs, nil
}

// ==================== Ingest Runs ====================

// SaveRun records an ingest run. Saving the same id again replaces it.
func (s *Store) SaveRun(ctx context.Context, run domain.IngestRun) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ingest_runs (id, repository, started_at, finished_at, pages, issues, output_path)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			repository = excluded.repository,
			started_at = excluded.started_at,
			finished_at = excluded.finished_at,
			pages = excluded.pages,
			issues = excluded.issues,
			output_path = excluded.output_path
	`, run.ID, run.Repository, run.StartedAt, run.FinishedAt, run.Pages, run.Issues, run.OutputPath)
	if err != nil {
		return fmt.Errorf("saving ingest run: %w", err)
	}
	return nil
}

// ListRuns returns ingest runs, most recent first.
func (s *Store) ListRuns(ctx context.Context) ([]domain.IngestRun, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, repository, started_at, finished_at, pages, issues, output_path
		FROM ingest_runs ORDER BY started_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying ingest runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.IngestRun //nolint:prealloc // size unknown from query
	for rows.Next() {
		var run domain.IngestRun
		if err := rows.Scan(&run.ID, &run.Repository, &run.StartedAt, &run.FinishedAt,
			&run.Pages, &run.Issues, &run.OutputPath); err != nil {
			return nil, fmt.Errorf("scanning ingest run: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ingest runs: %w", err)
	}
	return runs, nil
}

// ==================== Helpers ====================

// encodeList stores a string list as a JSON array; nil becomes [].
func encodeList(list []string) (string, error) {
	if list == nil {
		return "[]", nil
	}
	data, err := json.Marshal(list)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// decodeList reverses encodeList and never returns nil.
func decodeList(s string) ([]string, error) {
	list := []string{}
	if s == "" {
		return list, nil
	}
	if err := json.Unmarshal([]byte(s), &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []string{}
	}
	return list, nil
}
