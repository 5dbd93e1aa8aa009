package verification

import (
	"errors"
	"testing"

	"givehaven/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayFor_MappedStatuses(t *testing.T) {
	tests := []struct {
		status    Status
		title     string
		tone      string
		celebrate bool
	}{
		{StatusPending, "Verification Pending", "amber", false},
		{StatusReviewing, "Verification In Review", "blue", false},
		{StatusNeedsDocuments, "Documents Needed", "orange", false},
		{StatusVerified, "Home Verified!", "green", true},
		{StatusApproved, "Home Approved!", "green", true},
		{StatusRejected, "Verification Unsuccessful", "red", false},
	}

	seenTitles := map[string]Status{}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			d := DisplayFor(string(tt.status))
			assert.Equal(t, string(tt.status), d.Status)
			assert.Equal(t, tt.title, d.Title)
			assert.Equal(t, tt.tone, d.Tone)
			assert.Equal(t, tt.celebrate, d.Celebrate)
			assert.NotEmpty(t, d.Message)
			assert.NotEmpty(t, d.Icon)
		})
		if other, ok := seenTitles[tt.title]; ok {
			t.Fatalf("%s and %s share a title", other, tt.status)
		}
		seenTitles[tt.title] = tt.status
	}

	assert.Len(t, tests, len(Statuses()))
}

func TestDisplayFor_FallbackEchoesRawStatus(t *testing.T) {
	d := DisplayFor("on_hold")

	assert.Equal(t, "Verification Status: on_hold", d.Title)
	assert.Equal(t, "gray", d.Tone)
	assert.Equal(t, "on_hold", d.Status)
	assert.False(t, d.Celebrate)
	assert.True(t, d.Dismissible)
}

func TestDisplayFor_IsCaseSensitive(t *testing.T) {
	assert.Equal(t, "Verification Status: Verified", DisplayFor("Verified").Title)
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("needs_documents")
	require.NoError(t, err)
	assert.Equal(t, StatusNeedsDocuments, s)

	_, err = ParseStatus("bogus")
	assert.True(t, errors.Is(err, types.ErrInvalidStatus))
}

func TestReviewQueue(t *testing.T) {
	assert.Equal(t, []string{"pending", "reviewing", "needs_documents"}, ReviewQueue())
}
