package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/vietanh2810/mesas-api/internal/domain"
)

const maxDetailsPerReport = 1000

// VoteDetailRequest is not validated here: AggregateDetails checks each entry
// and names it in the error field, e.g. details[2].votes.
type VoteDetailRequest struct {
	CandidateID string `json:"candidate_id"`
	Votes       int    `json:"votes"`
}

type SubmitReportRequest struct {
	Details  []VoteDetailRequest `json:"details"`
	Notes    string              `json:"notes,omitempty"`
	PhotoURL string              `json:"photo_url,omitempty"`
}

// Validate checks the request shape. Entry contents, vote bounds and the
// at-least-one-candidate rule are enforced when the report is aggregated.
func (req *SubmitReportRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Details, validation.Length(0, maxDetailsPerReport)),
		validation.Field(&req.Notes, validation.Length(0, 2000)),
		validation.Field(&req.PhotoURL, validation.Length(0, 1024), is.URL),
	)
}

func (req *SubmitReportRequest) ToSubmission(assignmentID string) domain.ReportSubmission {
	details := make([]domain.DetailInput, len(req.Details))
	for i, d := range req.Details {
		details[i] = domain.DetailInput{CandidateID: d.CandidateID, Votes: d.Votes}
	}

	return domain.ReportSubmission{
		AssignmentID: assignmentID,
		Details:      details,
		Notes:        req.Notes,
		PhotoURL:     req.PhotoURL,
	}
}
