package github

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/NicholasSynovic/joss-dataset/internal/core/domain"
	"github.com/NicholasSynovic/joss-dataset/internal/core/ports/driven"
)

// Field names reported in NormaliseResult.Defaulted.
const (
	FieldID        = "id"
	FieldNumber    = "number"
	FieldUserID    = "user_id"
	FieldUserLogin = "user_login"
	FieldLabels    = "labels"
	FieldState     = "state"
	FieldCreatedAt = "created_at"
	FieldUpdatedAt = "updated_at"
	FieldClosedAt  = "closed_at"
	FieldBody      = "body"
)

// allFields lists every field in record order.
var allFields = []string{
	FieldID, FieldNumber, FieldUserID, FieldUserLogin, FieldLabels,
	FieldState, FieldCreatedAt, FieldUpdatedAt, FieldClosedAt, FieldBody,
}

// Ensure IssueNormaliser implements the interface.
var _ driven.IssueNormaliser = (*IssueNormaliser)(nil)

// IssueNormaliser adapts Normalise to the driven port.
type IssueNormaliser struct{}

// NewIssueNormaliser creates a new GitHub issue normaliser.
func NewIssueNormaliser() *IssueNormaliser {
	return &IssueNormaliser{}
}

// Normalise converts one raw payload.
func (n *IssueNormaliser) Normalise(raw domain.RawIssue) domain.NormaliseResult {
	return Normalise(raw)
}

// Normalise maps raw onto a NormalizedIssue. It never fails: a value that
// is not a JSON object yields the all-defaults record with every field
// reported. Required fields (id, number, user id and login, state,
// created_at) are reported whenever they hold their sentinel; optional
// fields only when present but malformed.
func Normalise(raw domain.RawIssue) domain.NormaliseResult {
	obj, ok := decodeObject(raw)
	if !ok {
		return domain.NormaliseResult{
			Issue:     domain.DefaultIssue(),
			Defaulted: append([]string(nil), allFields...),
		}
	}

	issue := domain.DefaultIssue()
	var defaulted []string
	report := func(field string) { defaulted = append(defaulted, field) }

	if v, ok := intValue(obj["id"]); ok {
		issue.ID = v
	} else {
		report(FieldID)
	}
	if v, ok := intValue(obj["number"]); ok {
		issue.Number = v
	} else {
		report(FieldNumber)
	}

	user, _ := obj["user"].(map[string]any)
	if v, ok := intValue(user["id"]); ok {
		issue.UserID = v
	} else {
		report(FieldUserID)
	}
	if v, ok := user["login"].(string); ok && v != "" {
		issue.UserLogin = v
	} else {
		report(FieldUserLogin)
	}

	if labels, ok := labelNames(obj["labels"]); ok {
		issue.Labels = labels
	} else {
		report(FieldLabels)
	}

	if v, ok := obj["state"].(string); ok && v != "" {
		issue.State = v
	} else {
		report(FieldState)
	}

	if ts, ok := timestamp(obj["created_at"]); ok {
		issue.CreatedAt = ts
	} else {
		report(FieldCreatedAt)
	}
	if ts, ok := optionalTimestamp(obj, "updated_at"); ok {
		issue.UpdatedAt = ts
	} else {
		report(FieldUpdatedAt)
	}
	if ts, ok := optionalTimestamp(obj, "closed_at"); ok {
		issue.ClosedAt = ts
	} else {
		report(FieldClosedAt)
	}

	switch v := obj["body"].(type) {
	case string:
		issue.Body = v
	case nil:
	default:
		report(FieldBody)
	}

	pr, has := obj["pull_request"]
	issue.IsPullRequest = has && pr != nil

	return domain.NormaliseResult{Issue: issue, Defaulted: defaulted}
}

// UsedDefaults reports whether any required field of issue holds its
// sentinel default.
func UsedDefaults(issue domain.NormalizedIssue) bool {
	return issue.ID == domain.UnknownID ||
		issue.Number == domain.UnknownID ||
		issue.UserID == domain.UnknownID ||
		issue.UserLogin == "" ||
		issue.State == "" ||
		issue.CreatedAt == domain.UnknownTime
}

// decodeObject decodes raw as a JSON object, keeping numbers exact.
func decodeObject(raw domain.RawIssue) (map[string]any, bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, false
	}
	if dec.More() {
		return nil, false
	}
	obj, ok := v.(map[string]any)
	return obj, ok
}

// intValue accepts only JSON integers. Floats, strings and booleans fail.
func intValue(v any) (int64, bool) {
	n, ok := v.(json.Number)
	if !ok {
		return 0, false
	}
	i, err := strconv.ParseInt(n.String(), 10, 64)
	if err != nil {
		return 0, false
	}
	return i, true
}

func timestamp(v any) (int64, bool) {
	s, ok := v.(string)
	if !ok {
		return domain.UnknownTime, false
	}
	return domain.ISOToUnix(s)
}

// optionalTimestamp treats an absent or null value as a valid unknown time.
func optionalTimestamp(obj map[string]any, key string) (int64, bool) {
	v, has := obj[key]
	if !has || v == nil {
		return domain.UnknownTime, true
	}
	return timestamp(v)
}

// labelNames reads label objects with a string name, or bare strings.
// Other items are skipped. Absent or null labels yield an empty list.
func labelNames(v any) ([]string, bool) {
	if v == nil {
		return []string{}, true
	}
	items, ok := v.([]any)
	if !ok {
		return []string{}, false
	}
	names := make([]string, 0, len(items))
	for _, item := range items {
		switch l := item.(type) {
		case map[string]any:
			if name, ok := l["name"].(string); ok {
				names = append(names, name)
			}
		case string:
			names = append(names, l)
		}
	}
	return names, true
}

// UsedDefaults implements the driven port.
func (n *IssueNormaliser) UsedDefaults(issue domain.NormalizedIssue) bool {
	return UsedDefaults(issue)
}
