package absence

import (
	"testing"

	"github.com/deskcontrol/deskcontrol-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAbsenceRequest_Validate(t *testing.T) {
	valid := CreateAbsenceRequest{
		StartDate: "2024-03-01",
		EndDate:   "2024-03-03",
		Reason:    "Vacation",
	}
	assert.NoError(t, valid.Validate())

	sameDay := CreateAbsenceRequest{
		StartDate: "2024-03-01",
		EndDate:   "2024-03-01",
		Reason:    "Medical appointment",
	}
	assert.NoError(t, sameDay.Validate())
}

func TestCreateAbsenceRequest_EndBeforeStart(t *testing.T) {
	req := CreateAbsenceRequest{
		StartDate: "2024-03-03",
		EndDate:   "2024-03-01",
		Reason:    "Vacation",
	}

	var errs validator.ValidationErrors
	require.ErrorAs(t, req.Validate(), &errs)
	assert.Contains(t, errs.ToMap(), "end_date")
}

func TestCreateAbsenceRequest_BadDateFormat(t *testing.T) {
	req := CreateAbsenceRequest{
		StartDate: "03/01/2024",
		EndDate:   "2024-03-03",
		Reason:    "Vacation",
	}

	var errs validator.ValidationErrors
	require.ErrorAs(t, req.Validate(), &errs)
	assert.Contains(t, errs.ToMap(), "start_date")
}

func TestRejectAbsenceRequest_CommentRequired(t *testing.T) {
	req := RejectAbsenceRequest{RequestID: "req-1"}

	var errs validator.ValidationErrors
	require.ErrorAs(t, req.Validate(), &errs)
	assert.Contains(t, errs.ToMap(), "comment")

	req.Comment = "Coverage is too thin"
	assert.NoError(t, req.Validate())
}

func TestStatusPredicates(t *testing.T) {
	assert.True(t, StatusApproved.Processed())
	assert.True(t, StatusRejected.Processed())
	assert.True(t, StatusCancelled.Processed())
	assert.False(t, StatusPending.Processed())
	assert.False(t, StatusCancelRequested.Processed())

	assert.True(t, StatusRejected.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.False(t, StatusApproved.Terminal())

	assert.True(t, ValidStatus("cancel_requested"))
	assert.False(t, ValidStatus("cancel_pending"))
	assert.False(t, ValidStatus("canceled"))
}
