package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/NicholasSynovic/joss-dataset/internal/core/domain"
	"github.com/NicholasSynovic/joss-dataset/internal/core/ports/driven"
	"github.com/NicholasSynovic/joss-dataset/internal/logger"
)

// Sentinel tags embedded in JOSS review issue bodies.
const (
	TagAuthorHandle     = "author-handle"
	TagTargetRepository = "target-repository"
	TagBranch           = "branch"
	TagVersion          = "version"
	TagEditor           = "editor"
	TagReviewersList    = "reviewers-list"
	TagArchive          = "archive"
)

// tagPattern matches <!--TAG-->CONTENT<!--end-TAG--> across lines,
// trimming surrounding whitespace.
const tagPattern = `(?s)<!--%[1]s-->\s*(.*?)\s*<!--end-%[1]s-->`

// tagRule binds a sentinel tag to the submission field it fills.
type tagRule struct {
	tag   string
	re    *regexp.Regexp
	apply func(s *domain.Submission, value string)
}

func newTagRule(tag string, apply func(*domain.Submission, string)) tagRule {
	return tagRule{
		tag:   tag,
		re:    regexp.MustCompile(fmt.Sprintf(tagPattern, regexp.QuoteMeta(tag))),
		apply: apply,
	}
}

var tagRules = []tagRule{
	newTagRule(TagAuthorHandle, func(s *domain.Submission, v string) { s.SubmittingAuthor = v }),
	newTagRule(TagTargetRepository, func(s *domain.Submission, v string) { s.Repository = v }),
	newTagRule(TagBranch, func(s *domain.Submission, v string) { s.Branch = v }),
	newTagRule(TagVersion, func(s *domain.Submission, v string) { s.Version = v }),
	newTagRule(TagEditor, func(s *domain.Submission, v string) { s.Editor = v }),
	newTagRule(TagReviewersList, func(s *domain.Submission, v string) { s.Reviewers = splitReviewers(v) }),
	newTagRule(TagArchive, func(s *domain.Submission, v string) { s.Archive = v }),
}

var (
	// Older bodies carry the repository as plain text or a link.
	repositoryLineRe = regexp.MustCompile(
		`\*\*Repository:\*\*\s*(?:<a[^>]*href="(https?://github\.com/[^"\s]+)"[^>]*>[^<]*</a>|(https?://github\.com/[^\s<>)"]+))`)
	orcidRe       = regexp.MustCompile(`<a[^>]*href="https?://orcid\.org/([^"]+)"[^>]*>([^<]+)</a>`)
	managingEiCRe = regexp.MustCompile(`\*\*Managing EiC:\*\*[ \t]*([^\r\n]+)`)
	statusBadgeRe = regexp.MustCompile(`\[!\[status\]\([^)]+\)\]\((https://joss\.theoj\.org/papers/[^)]+)\)`)
	reviewerSepRe = regexp.MustCompile(`[,\n]+`)
)

// Ensure SubmissionExtractor implements the interface.
var _ driven.SubmissionExtractor = (*SubmissionExtractor)(nil)

// SubmissionExtractor populates submissions from review issue bodies.
// It is not safe for concurrent use.
type SubmissionExtractor struct {
	resolver driven.URLResolver
	failures int
}

// NewSubmissionExtractor creates an extractor. A nil resolver keeps badge
// URLs as found.
func NewSubmissionExtractor(resolver driven.URLResolver) *SubmissionExtractor {
	return &SubmissionExtractor{resolver: resolver}
}

// RedirectFailures returns how many publication URLs could not be resolved.
func (e *SubmissionExtractor) RedirectFailures() int {
	return e.failures
}

// Extract populates a submission from in and classifies it. The submission
// is filled for every state; the state only decides whether it is emitted.
// The publication URL is resolved only for issues labelled accepted.
func (e *SubmissionExtractor) Extract(ctx context.Context, in domain.ExtractInput) (domain.Submission, domain.ExtractionState) {
	sub := domain.Submission{
		IssueNumber: in.Number,
		Reviewers:   []string{},
		Labels:      append([]string{}, in.Labels...),
		Opened:      in.CreatedAt,
		Closed:      in.ClosedAt,
	}
	if sub.Closed == domain.UnknownTime {
		sub.Closed = 0
	}

	hasAuthor := false
	for _, rule := range tagRules {
		m := rule.re.FindStringSubmatch(in.Body)
		if m == nil {
			continue
		}
		if rule.tag == TagAuthorHandle {
			hasAuthor = true
		}
		rule.apply(&sub, strings.TrimSpace(m[1]))
	}

	if sub.Repository == "" {
		sub.Repository = repositoryFromLine(in.Body)
	}
	if m := orcidRe.FindStringSubmatch(in.Body); m != nil {
		sub.ORCID = strings.TrimSpace(m[1])
		sub.AuthorName = strings.TrimSpace(m[2])
	}
	if m := managingEiCRe.FindStringSubmatch(in.Body); m != nil {
		sub.ManagingEiC = strings.TrimSpace(m[1])
	}

	accepted := sub.HasLabel(domain.AcceptedLabel)
	if accepted {
		if m := statusBadgeRe.FindStringSubmatch(in.Body); m != nil {
			sub.JOSSURL = e.resolve(ctx, m[1])
		}
	}

	digest, err := CanonicalDigest(sub)
	if err != nil {
		logger.Warn("Issue #%d: computing digest: %v", in.Number, err)
	}
	sub.JSONStr = digest

	state := classify(in, hasAuthor, &sub, accepted)
	logger.Debug("Issue #%d: %s", in.Number, state)
	return sub, state
}

// classify evaluates the extraction states in order.
func classify(in domain.ExtractInput, hasAuthor bool, sub *domain.Submission, accepted bool) domain.ExtractionState {
	switch {
	case strings.TrimSpace(in.Body) == "":
		return domain.StateSkippedNoBody
	case !hasAuthor:
		return domain.StateSkippedNotReview
	case in.IsPullRequest:
		return domain.StateSkippedPullRequest
	case sub.Repository == "":
		return domain.StateSkippedMissingRepository
	case !accepted:
		return domain.StateSkippedMissingAccepted
	case sub.JOSSURL == "":
		return domain.StateSkippedAcceptedNoURL
	default:
		return domain.StateNormalized
	}
}

func (e *SubmissionExtractor) resolve(ctx context.Context, url string) string {
	if e.resolver == nil {
		return url
	}
	final, err := e.resolver.Resolve(ctx, url)
	if err != nil {
		e.failures++
		logger.Info("Keeping unresolved URL %s: %v", url, err)
		return url
	}
	if final == "" {
		return url
	}
	return final
}

// repositoryFromLine reads the **Repository:** line used by older bodies.
func repositoryFromLine(body string) string {
	m := repositoryLineRe.FindStringSubmatch(body)
	if m == nil {
		return ""
	}
	if m[1] != "" {
		return m[1]
	}
	return m[2]
}

// splitReviewers splits on commas and newlines, dropping blank entries.
func splitReviewers(raw string) []string {
	reviewers := []string{}
	for _, part := range reviewerSepRe.Split(raw, -1) {
		if p := strings.TrimSpace(part); p != "" {
			reviewers = append(reviewers, p)
		}
	}
	return reviewers
}

// CanonicalDigest serialises every field of sub except JSON_str with keys
// sorted and no HTML escaping. The result depends only on field values.
func CanonicalDigest(sub domain.Submission) (string, error) {
	sub.JSONStr = ""
	raw, err := json.Marshal(sub)
	if err != nil {
		return "", err
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return "", err
	}
	delete(fields, "JSON_str")

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(fields); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
