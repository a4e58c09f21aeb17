package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractionState_Emitted(t *testing.T) {
	for _, s := range AllExtractionStates() {
		t.Run(string(s), func(t *testing.T) {
			assert.Equal(t, s == StateNormalized, s.Emitted())
			assert.NotEqual(t, "Unknown", s.Description())
		})
	}
}

func TestExtractionState_IsReviewSubmission(t *testing.T) {
	assert.True(t, StateNormalized.IsReviewSubmission())
	assert.True(t, StateSkippedMissingAccepted.IsReviewSubmission())
	assert.True(t, StateSkippedAcceptedNoURL.IsReviewSubmission())
	assert.False(t, StateSkippedNoBody.IsReviewSubmission())
	assert.False(t, StateSkippedNotReview.IsReviewSubmission())
	assert.False(t, StateSkippedPullRequest.IsReviewSubmission())
	assert.False(t, StateSkippedMissingRepository.IsReviewSubmission())
	assert.Equal(t, "Unknown", ExtractionState("bogus").Description())
}

func TestSubmission_Helpers(t *testing.T) {
	s := Submission{Labels: []string{"review", AcceptedLabel}}
	assert.True(t, s.HasLabel(AcceptedLabel))
	assert.False(t, s.HasLabel("rejected"))
	assert.True(t, s.IsOpen())

	s.Closed = 1700000000
	assert.False(t, s.IsOpen())
}

func TestDefaultIssue(t *testing.T) {
	issue := DefaultIssue()
	assert.Equal(t, UnknownID, issue.ID)
	assert.Equal(t, UnknownID, issue.Number)
	assert.Equal(t, UnknownID, issue.UserID)
	assert.Equal(t, UnknownTime, issue.CreatedAt)
	assert.Equal(t, UnknownTime, issue.UpdatedAt)
	assert.Equal(t, UnknownTime, issue.ClosedAt)
	assert.NotNil(t, issue.Labels)
	assert.Empty(t, issue.Labels)
	assert.False(t, issue.HasLabel(AcceptedLabel))
}

func TestSummary(t *testing.T) {
	s := NewSummary()
	s.Record(StateNormalized)
	s.Record(StateSkippedNoBody)
	s.Record(StateSkippedPullRequest)
	s.Record(StateSkippedNoBody)

	assert.Equal(t, 3, s.Skipped())
	assert.Equal(t, []StateCount{
		{State: StateSkippedNoBody, Count: 2},
		{State: StateSkippedPullRequest, Count: 1},
		{State: StateNormalized, Count: 1},
	}, s.StateCounts())

	var zero Summary
	zero.Record(StateNormalized)
	assert.Equal(t, 1, zero.States[StateNormalized])
}
