package domain

// Sentinel defaults substituted for missing or malformed fields.
const (
	// UnknownID marks a numeric identifier that was absent or not an integer.
	UnknownID int64 = -1

	// UnknownTime marks a timestamp that was absent or unparseable.
	UnknownTime int64 = -1
)

// NormalizedIssue is the fixed-shape form of a RawIssue.
// Every field always holds a value of its declared type; absence in the
// source is expressed through the sentinel defaults, never a missing key.
type NormalizedIssue struct {
	ID            int64    `json:"id"`
	Number        int64    `json:"number"`
	UserID        int64    `json:"user_id"`
	UserLogin     string   `json:"user_login"`
	Labels        []string `json:"labels"`
	State         string   `json:"state"`
	CreatedAt     int64    `json:"created_at"`
	UpdatedAt     int64    `json:"updated_at"`
	ClosedAt      int64    `json:"closed_at"`
	Body          string   `json:"body"`
	IsPullRequest bool     `json:"is_pull_request"`
}

// DefaultIssue returns the all-defaults record.
func DefaultIssue() NormalizedIssue {
	return NormalizedIssue{
		ID:        UnknownID,
		Number:    UnknownID,
		UserID:    UnknownID,
		UserLogin: "",
		Labels:    []string{},
		State:     "",
		CreatedAt: UnknownTime,
		UpdatedAt: UnknownTime,
		ClosedAt:  UnknownTime,
		Body:      "",
	}
}

// HasLabel reports whether the issue carries the named label.
func (i NormalizedIssue) HasLabel(name string) bool {
	return containsLabel(i.Labels, name)
}

func containsLabel(labels []string, name string) bool {
	for _, l := range labels {
		if l == name {
			return true
		}
	}
	return false
}

// NormaliseResult is a normalized issue tagged with the fields that fell
// back to a default. Defaulted is empty for a fully well-formed payload.
type NormaliseResult struct {
	Issue     NormalizedIssue
	Defaulted []string
}

// UsedDefaults reports whether any field fell back to a default.
func (r NormaliseResult) UsedDefaults() bool {
	return len(r.Defaulted) > 0
}
