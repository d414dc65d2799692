package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vietanh2810/mesas-api/internal/domain"
	"github.com/vietanh2810/mesas-api/internal/observability/metrics"
	"github.com/vietanh2810/mesas-api/internal/repository"
)

var (
	ErrDelegateNotFound   = repository.ErrDelegateNotFound
	ErrLocationNotFound   = repository.ErrLocationNotFound
	ErrAssignmentNotFound = repository.ErrAssignmentNotFound
	ErrReportNotFound     = repository.ErrReportNotFound
)

type AssignmentRepository interface {
	Transaction(ctx context.Context, fn func(tx *repository.AssignmentTx) error) error
	ListByDelegate(ctx context.Context, delegateID string) ([]domain.TableAssignment, error)
}

type AllocatorService struct {
	repo    AssignmentRepository
	caps    domain.Capabilities
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewAllocatorService(repo AssignmentRepository, caps domain.Capabilities, m *metrics.Metrics) *AllocatorService {
	return &AllocatorService{
		repo:    repo,
		caps:    caps,
		metrics: m,
		now:     time.Now,
	}
}

// AllocateTables replaces the whole table set of alloc.DelegateID with
// alloc.Tables at alloc.Target. Tables held by another delegate at the same
// target abort the call with a *domain.ConflictError and nothing is written.
func (s *AllocatorService) AllocateTables(ctx context.Context, caller domain.Identity, alloc domain.Allocation) ([]domain.TableAssignment, error) {
	assigned, err := s.allocate(ctx, caller, alloc)
	s.metrics.RecordAllocation(outcomeOf(err, metrics.OutcomeOK))
	if err != nil {
		var conflict *domain.ConflictError
		if errors.As(err, &conflict) {
			zap.L().Info("allocation rejected",
				zap.String("delegate_id", alloc.DelegateID),
				zap.Ints("tables", conflict.Tables))
		}
		return nil, err
	}

	return assigned, nil
}

func (s *AllocatorService) allocate(ctx context.Context, caller domain.Identity, alloc domain.Allocation) ([]domain.TableAssignment, error) {
	if !caller.CanActFor(alloc.DelegateID) {
		return nil, domain.ErrForbidden
	}
	if alloc.DelegateID == "" {
		return nil, domain.NewValidationError("delegate_id", "is required")
	}
	if err := alloc.Target.Validate(); err != nil {
		return nil, err
	}
	alloc.Target.LocationID = strings.TrimSpace(alloc.Target.LocationID)
	alloc.Target.StationCode = strings.TrimSpace(alloc.Target.StationCode)

	tables, err := domain.NormalizeTables(alloc.Tables)
	if err != nil {
		return nil, err
	}

	var assigned []domain.TableAssignment
	err = s.repo.Transaction(ctx, func(tx *repository.AssignmentTx) error {
		delegate, err := tx.FindDelegate(ctx, alloc.DelegateID)
		if err != nil {
			return fmt.Errorf("tx.FindDelegate -> %w", err)
		}

		var loc *domain.PollingLocation
		found, err := tx.FindLocation(ctx, alloc.Target)
		switch {
		case err == nil:
			loc = &found
		case alloc.Target.Legacy() && errors.Is(err, ErrLocationNotFound):
			// free-text station codes need not be in the catalog
		default:
			return fmt.Errorf("tx.FindLocation -> %w", err)
		}

		if loc != nil {
			if err := domain.CheckTableBounds(tables, *loc); err != nil {
				return err
			}
		}

		target, err := s.storedTarget(alloc.Target, loc)
		if err != nil {
			return err
		}

		taken, err := tx.TakenTables(ctx, target, tables, alloc.DelegateID)
		if err != nil {
			return fmt.Errorf("tx.TakenTables -> %w", err)
		}
		if len(taken) > 0 {
			return &domain.ConflictError{Tables: taken}
		}

		prior, err := tx.Current(ctx, alloc.DelegateID)
		if err != nil {
			return fmt.Errorf("tx.Current -> %w", err)
		}

		assigned = s.buildRows(delegate, target, loc, tables, prior)
		if err := tx.Replace(ctx, alloc.DelegateID, assigned); err != nil {
			return fmt.Errorf("tx.Replace -> %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return assigned, nil
}

// storedTarget is the reference actually written on the rows. Without the
// location_id column a catalog location is stored by its station code.
func (s *AllocatorService) storedTarget(ref domain.LocationRef, loc *domain.PollingLocation) (domain.LocationRef, error) {
	if ref.Legacy() {
		return domain.LocationRef{StationCode: ref.StationCode}, nil
	}

	target := domain.LocationRef{LocationID: loc.ID, StationCode: strings.TrimSpace(loc.StationCode)}
	if !s.caps.LocationLinkage {
		if target.StationCode == "" {
			return domain.LocationRef{}, domain.NewValidationError("location_id", "location has no station code and this schema cannot store location ids")
		}
		target.LocationID = ""
	}

	return target, nil
}

// buildRows creates one assignment per table. A table the delegate already
// held at the same target keeps its assignment id so reports filed against
// it stay linked.
func (s *AllocatorService) buildRows(delegate domain.Delegate, target domain.LocationRef, loc *domain.PollingLocation, tables []int, prior []domain.TableAssignment) []domain.TableAssignment {
	kept := make(map[int]domain.TableAssignment, len(prior))
	for _, p := range prior {
		if sameTarget(p, target) {
			kept[p.TableNumber] = p
		}
	}

	department, municipality, address := delegate.Department, delegate.Municipality, ""
	if loc != nil {
		department, municipality, address = loc.Department, loc.Municipality, loc.Address
	}

	now := s.now().UTC()
	rows := make([]domain.TableAssignment, 0, len(tables))
	for _, t := range tables {
		row := domain.TableAssignment{
			ID:           uuid.NewString(),
			DelegateID:   delegate.ID,
			LocationID:   target.LocationID,
			StationCode:  target.StationCode,
			TableNumber:  t,
			Department:   department,
			Municipality: municipality,
			Address:      address,
			CreatedAt:    now,
		}
		if p, ok := kept[t]; ok {
			row.ID = p.ID
			row.CreatedAt = p.CreatedAt
		}
		rows = append(rows, row)
	}

	return rows
}

func sameTarget(a domain.TableAssignment, target domain.LocationRef) bool {
	if target.LocationID != "" && a.LocationID != "" {
		return a.LocationID == target.LocationID
	}
	return target.StationCode != "" && a.StationCode == target.StationCode
}

// ListAssignments returns the tables of delegateID with their report status.
func (s *AllocatorService) ListAssignments(ctx context.Context, caller domain.Identity, delegateID string) ([]domain.TableAssignment, error) {
	if !caller.CanActFor(delegateID) {
		return nil, domain.ErrForbidden
	}

	assignments, err := s.repo.ListByDelegate(ctx, delegateID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListByDelegate -> %w", err)
	}

	return assignments, nil
}

// outcomeOf maps a service error onto a metrics outcome label.
func outcomeOf(err error, success string) string {
	if err == nil {
		return success
	}

	var (
		conflict   *domain.ConflictError
		validation *domain.ValidationError
	)
	switch {
	case errors.As(err, &conflict):
		return metrics.OutcomeConflict
	case errors.As(err, &validation):
		return metrics.OutcomeInvalid
	case errors.Is(err, domain.ErrForbidden):
		return metrics.OutcomeForbidden
	case errors.Is(err, domain.ErrNotFound):
		return metrics.OutcomeNotFound
	default:
		return metrics.OutcomeError
	}
}
