package domain

import "encoding/json"

// RawIssue is a single issue payload exactly as returned by the issue tracker.
// It may be any JSON value; fields are read defensively by the normaliser.
// It is consumed immediately and never held beyond one pipeline step.
type RawIssue = json.RawMessage

// RawIssues decodes a JSON array into its raw elements.
// The array elements are not validated.
func RawIssues(data []byte) ([]RawIssue, error) {
	var issues []RawIssue
	if err := json.Unmarshal(data, &issues); err != nil {
		return nil, err
	}
	if issues == nil {
		// JSON null decodes without error.
		return nil, ErrInvalidInput
	}
	return issues, nil
}
