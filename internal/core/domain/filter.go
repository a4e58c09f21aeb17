package domain

import "strings"

// SubmissionFilter narrows a list of submissions. Zero fields match
// everything; set fields must all match.
type SubmissionFilter struct {
	// Text is matched case-insensitively against the repository, the
	// submitting author handle, the author name and the editor.
	Text string

	// Label must be carried by the submission.
	Label string

	// Reviewer must appear in the reviewer list, with or without a
	// leading @.
	Reviewer string

	// PublishedOnly keeps submissions that have a JOSS URL.
	PublishedOnly bool

	// Limit caps the number of results; 0 means no cap.
	Limit int
}

// Matches reports whether sub satisfies every set field of f.
func (f SubmissionFilter) Matches(sub Submission) bool {
	if f.PublishedOnly && sub.JOSSURL == "" {
		return false
	}
	if f.Label != "" && !sub.HasLabel(f.Label) {
		return false
	}
	if f.Reviewer != "" && !hasHandle(sub.Reviewers, f.Reviewer) {
		return false
	}
	if f.Text != "" {
		needle := strings.ToLower(strings.TrimSpace(f.Text))
		found := false
		for _, field := range []string{sub.Repository, sub.SubmittingAuthor, sub.AuthorName, sub.Editor} {
			if strings.Contains(strings.ToLower(field), needle) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Apply returns the submissions matching f, in input order, capped at Limit.
func (f SubmissionFilter) Apply(subs []Submission) []Submission {
	out := []Submission{}
	for _, sub := range subs {
		if f.Limit > 0 && len(out) >= f.Limit {
			break
		}
		if f.Matches(sub) {
			out = append(out, sub)
		}
	}
	return out
}

func hasHandle(handles []string, want string) bool {
	want = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(want), "@"))
	for _, h := range handles {
		if strings.ToLower(strings.TrimPrefix(h, "@")) == want {
			return true
		}
	}
	return false
}
