package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	NoPosition = "Sin cargo"
	NoParty    = "Sin partido"

	// MaxVotesPerCandidate bounds one candidate's votes on one table, after
	// duplicates are summed. No polling table seats that many voters.
	MaxVotesPerCandidate = 100000
)

type Candidate struct {
	ID           string `json:"id"`
	FullName     string `json:"full_name"`
	Party        string `json:"party"`
	Position     string `json:"position"`
	BallotNumber int    `json:"ballot_number"`
	Color        string `json:"color,omitempty"`
}

// DetailInput is one (candidate, votes) pair as entered in the field.
type DetailInput struct {
	CandidateID string `json:"candidate_id"`
	Votes       int    `json:"votes"`
}

type VoteDetail struct {
	CandidateID string `json:"candidate_id"`
	Votes       int    `json:"votes"`
}

type PartyVoteDetail struct {
	Position string `json:"position"`
	Party    string `json:"party"`
	Votes    int    `json:"votes"`
}

type VoteReport struct {
	ID           string            `json:"id"`
	AssignmentID string            `json:"assignment_id"`
	DelegateID   string            `json:"delegate_id"`
	LocationID   string            `json:"location_id,omitempty"`
	Department   string            `json:"department"`
	Municipality string            `json:"municipality"`
	Address      string            `json:"address"`
	StationCode  string            `json:"station_code"`
	TableNumber  int               `json:"table_number"`
	TotalVotes   int               `json:"total_votes"`
	Notes        string            `json:"notes,omitempty"`
	PhotoURL     string            `json:"photo_url,omitempty"`
	ReportedAt   time.Time         `json:"reported_at"`
	Details      []VoteDetail      `json:"details"`
	Parties      []PartyVoteDetail `json:"parties,omitempty"`
}

// ReportSubmission is a tally as entered for one assignment.
type ReportSubmission struct {
	AssignmentID string
	Details      []DetailInput
	Notes        string
	PhotoURL     string
}

type ReportReceipt struct {
	ReportID   string `json:"report_id"`
	TotalVotes int    `json:"total_votes"`
	Updated    bool   `json:"updated"`
}

// AggregateDetails validates every entry and sums repeated candidates. Votes
// are bounded by MaxVotesPerCandidate per entry and per summed candidate. The
// result is ordered by candidate id so writes are deterministic.
func AggregateDetails(in []DetailInput) ([]VoteDetail, error) {
	if len(in) == 0 {
		return nil, NewValidationError("details", "no candidates with votes")
	}

	sums := make(map[string]int, len(in))
	for i, d := range in {
		id, err := uuid.Parse(strings.TrimSpace(d.CandidateID))
		if err != nil {
			return nil, NewValidationError(fmt.Sprintf("details[%d].candidate_id", i), "must be a valid identifier")
		}
		field := fmt.Sprintf("details[%d].votes", i)
		if d.Votes < 0 {
			return nil, NewValidationError(field, "must be a non-negative integer")
		}
		if d.Votes > MaxVotesPerCandidate {
			return nil, NewValidationError(field, fmt.Sprintf("must be at most %d", MaxVotesPerCandidate))
		}
		key := id.String()
		if sums[key]+d.Votes > MaxVotesPerCandidate {
			return nil, NewValidationError(field, fmt.Sprintf("combined votes for candidate %s must be at most %d", key, MaxVotesPerCandidate))
		}
		sums[key] += d.Votes
	}

	out := make([]VoteDetail, 0, len(sums))
	for id, votes := range sums {
		out = append(out, VoteDetail{CandidateID: id, Votes: votes})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CandidateID < out[j].CandidateID })
	return out, nil
}

func TotalVotes(details []VoteDetail) int {
	total := 0
	for _, d := range details {
		total += d.Votes
	}
	return total
}

// MissingCandidates returns the ids in details that are not in known.
func MissingCandidates(details []VoteDetail, known map[string]Candidate) []string {
	var missing []string
	for _, d := range details {
		if _, ok := known[d.CandidateID]; !ok {
			missing = append(missing, d.CandidateID)
		}
	}
	return missing
}

// RollupByParty groups candidate votes by (position, party).
func RollupByParty(details []VoteDetail, candidates map[string]Candidate) []PartyVoteDetail {
	type key struct{ position, party string }
	sums := make(map[key]int)
	for _, d := range details {
		c := candidates[d.CandidateID]
		k := key{position: orDefault(c.Position, NoPosition), party: orDefault(c.Party, NoParty)}
		sums[k] += d.Votes
	}

	out := make([]PartyVoteDetail, 0, len(sums))
	for k, votes := range sums {
		out = append(out, PartyVoteDetail{Position: k.position, Party: k.party, Votes: votes})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].Party < out[j].Party
	})
	return out
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
