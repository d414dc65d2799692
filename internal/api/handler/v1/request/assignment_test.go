package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllocateTablesRequest_Validate(t *testing.T) {
	const locationID = "0f8fad5b-d9cb-469f-a165-70867728950e"

	tests := []struct {
		name    string
		req     AllocateTablesRequest
		wantErr error
		ok      bool
	}{
		{name: "location id", req: AllocateTablesRequest{LocationID: locationID, Tables: []int{1}}, ok: true},
		{name: "station code", req: AllocateTablesRequest{StationCode: "01-A7", Tables: []int{1}}, ok: true},
		{name: "padded station code", req: AllocateTablesRequest{StationCode: " 0101 ", Tables: []int{1}}, ok: true},
		{name: "no target", req: AllocateTablesRequest{Tables: []int{1}}, wantErr: errTargetRequired},
		{name: "both targets", req: AllocateTablesRequest{LocationID: locationID, StationCode: "0101", Tables: []int{1}}, wantErr: errTargetAmbiguous},
		{name: "all zeros", req: AllocateTablesRequest{StationCode: "0000", Tables: []int{1}}, wantErr: errInvalidStationCode},
		{name: "leading dash", req: AllocateTablesRequest{StationCode: "-01", Tables: []int{1}}, wantErr: errInvalidStationCode},
		{name: "spaces inside", req: AllocateTablesRequest{StationCode: "01 02", Tables: []int{1}}, wantErr: errInvalidStationCode},
		{name: "malformed location id", req: AllocateTablesRequest{LocationID: "loc-1", Tables: []int{1}}},
		{name: "empty tables unassign", req: AllocateTablesRequest{LocationID: locationID, Tables: []int{}}, ok: true},
		{name: "missing tables", req: AllocateTablesRequest{LocationID: locationID}, wantErr: errTablesMissing},
		{name: "too many tables", req: AllocateTablesRequest{LocationID: locationID, Tables: make([]int, maxTablesPerRequest+1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			switch {
			case tt.ok:
				assert.NoError(t, err)
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			default:
				assert.Error(t, err)
			}
		})
	}
}

func TestAllocateTablesRequest_ToAllocation(t *testing.T) {
	req := AllocateTablesRequest{StationCode: " 0101 ", Tables: []int{3, 1}}
	assert.NoError(t, req.Validate())

	alloc := req.ToAllocation("d-1")
	assert.Equal(t, "d-1", alloc.DelegateID)
	assert.Equal(t, "0101", alloc.Target.StationCode)
	assert.Equal(t, []int{3, 1}, alloc.Tables)
}

func TestSubmitReportRequest_Validate(t *testing.T) {
	valid := SubmitReportRequest{
		Details:  []VoteDetailRequest{{CandidateID: "c-1", Votes: 3}},
		PhotoURL: "https://photos.example/acta.jpg",
	}
	assert.NoError(t, valid.Validate())

	// entries are checked by the aggregation so its error can name them
	negative := SubmitReportRequest{Details: []VoteDetailRequest{{CandidateID: "c-1", Votes: -1}}}
	assert.NoError(t, negative.Validate())
	assert.Equal(t, -1, negative.ToSubmission("a-1").Details[0].Votes)

	tooMany := SubmitReportRequest{Details: make([]VoteDetailRequest, maxDetailsPerReport+1)}
	assert.Error(t, tooMany.Validate())

	badPhoto := SubmitReportRequest{Details: valid.Details, PhotoURL: "not a url"}
	assert.Error(t, badPhoto.Validate())

	empty := SubmitReportRequest{}
	assert.NoError(t, empty.Validate())
	assert.Empty(t, empty.ToSubmission("a-1").Details)
}
