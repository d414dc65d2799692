package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vietanh2810/mesas-api/internal/domain"
	"github.com/vietanh2810/mesas-api/internal/observability/metrics"
	"github.com/vietanh2810/mesas-api/internal/repository"
)

type ReportRepository interface {
	Transaction(ctx context.Context, fn func(tx *repository.ReportTx) error) error
	FindByAssignment(ctx context.Context, assignmentID string) (domain.VoteReport, error)
	FindAssignment(ctx context.Context, id string) (domain.TableAssignment, error)
}

type ReportService struct {
	repo    ReportRepository
	policy  domain.ResolutionPolicy
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewReportService(repo ReportRepository, policy domain.ResolutionPolicy, m *metrics.Metrics) *ReportService {
	if len(policy) == 0 {
		policy = domain.DefaultResolutionPolicy()
	}

	return &ReportService{
		repo:    repo,
		policy:  policy,
		metrics: m,
		now:     time.Now,
	}
}

// SubmitVoteReport records the tally of one assigned table. Only the delegate
// holding the assignment may submit. A resubmission overwrites the previous
// report in place, details included.
func (s *ReportService) SubmitVoteReport(ctx context.Context, caller domain.Identity, in domain.ReportSubmission) (domain.ReportReceipt, error) {
	receipt, err := s.submit(ctx, caller, in)

	outcome := metrics.OutcomeCreated
	if receipt.Updated {
		outcome = metrics.OutcomeUpdated
	}
	s.metrics.RecordReport(outcomeOf(err, outcome), receipt.TotalVotes)

	return receipt, err
}

func (s *ReportService) submit(ctx context.Context, caller domain.Identity, in domain.ReportSubmission) (domain.ReportReceipt, error) {
	if caller.DelegateID == "" {
		return domain.ReportReceipt{}, domain.ErrForbidden
	}

	aggregated, err := domain.AggregateDetails(in.Details)
	if err != nil {
		return domain.ReportReceipt{}, err
	}
	total := domain.TotalVotes(aggregated)

	var receipt domain.ReportReceipt
	err = s.repo.Transaction(ctx, func(tx *repository.ReportTx) error {
		assignment, err := tx.FindAssignment(ctx, in.AssignmentID)
		if err != nil {
			return fmt.Errorf("tx.FindAssignment -> %w", err)
		}
		// tallies come from the delegate at the table, privileged roles only read them
		if assignment.DelegateID != caller.DelegateID {
			return domain.ErrForbidden
		}

		loc, err := tx.FindLocationFor(ctx, assignment)
		if err != nil {
			return fmt.Errorf("tx.FindLocationFor -> %w", err)
		}
		delegate, err := tx.FindDelegate(ctx, assignment.DelegateID)
		if err != nil {
			return fmt.Errorf("tx.FindDelegate -> %w", err)
		}
		fields := s.policy.ResolveLocation(loc, assignment, delegate)

		ids := make([]string, len(aggregated))
		for i, d := range aggregated {
			ids[i] = d.CandidateID
		}
		candidates, err := tx.FindCandidates(ctx, ids)
		if err != nil {
			return fmt.Errorf("tx.FindCandidates -> %w", err)
		}
		if missing := domain.MissingCandidates(aggregated, candidates); len(missing) > 0 {
			return domain.NewValidationError("details", "unknown candidate: "+strings.Join(missing, ", "))
		}

		locationID := assignment.LocationID
		if locationID == "" && loc != nil {
			locationID = loc.ID
		}

		reportID, updated, err := tx.Upsert(ctx, domain.VoteReport{
			ID:           uuid.NewString(),
			AssignmentID: assignment.ID,
			DelegateID:   assignment.DelegateID,
			LocationID:   locationID,
			Department:   fields.Department,
			Municipality: fields.Municipality,
			Address:      fields.Address,
			StationCode:  fields.StationCode,
			TableNumber:  assignment.TableNumber,
			TotalVotes:   total,
			Notes:        strings.TrimSpace(in.Notes),
			PhotoURL:     strings.TrimSpace(in.PhotoURL),
			ReportedAt:   s.now().UTC(),
		})
		if err != nil {
			return fmt.Errorf("tx.Upsert -> %w", err)
		}

		if err := tx.ReplaceDetails(ctx, reportID, aggregated, domain.RollupByParty(aggregated, candidates)); err != nil {
			return fmt.Errorf("tx.ReplaceDetails -> %w", err)
		}

		receipt = domain.ReportReceipt{ReportID: reportID, TotalVotes: total, Updated: updated}
		return nil
	})
	if err != nil {
		return domain.ReportReceipt{}, err
	}

	zap.L().Info("vote report stored",
		zap.String("report_id", receipt.ReportID),
		zap.String("assignment_id", in.AssignmentID),
		zap.Int("total_votes", receipt.TotalVotes),
		zap.Bool("updated", receipt.Updated))

	return receipt, nil
}

// GetReport returns the report filed for an assignment. Only the assigned
// delegate and privileged roles may read it.
func (s *ReportService) GetReport(ctx context.Context, caller domain.Identity, assignmentID string) (domain.VoteReport, error) {
	if caller.DelegateID == "" {
		return domain.VoteReport{}, domain.ErrForbidden
	}

	assignment, err := s.repo.FindAssignment(ctx, assignmentID)
	if err != nil {
		return domain.VoteReport{}, fmt.Errorf("s.repo.FindAssignment -> %w", err)
	}
	if !caller.CanActFor(assignment.DelegateID) {
		return domain.VoteReport{}, domain.ErrForbidden
	}

	report, err := s.repo.FindByAssignment(ctx, assignmentID)
	if err != nil {
		return domain.VoteReport{}, fmt.Errorf("s.repo.FindByAssignment -> %w", err)
	}

	return report, nil
}
