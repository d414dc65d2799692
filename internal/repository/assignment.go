package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/vietanh2810/mesas-api/internal/domain"
	"github.com/vietanh2810/mesas-api/internal/repository/dao"
)

var (
	ErrAssignmentNotFound = dao.ErrAssignmentNotFound
)

type AssignmentRepository struct {
	db   *gorm.DB
	caps domain.Capabilities
}

func NewAssignmentRepository(db *gorm.DB, caps domain.Capabilities) *AssignmentRepository {
	return &AssignmentRepository{
		db:   db,
		caps: caps,
	}
}

// Transaction runs fn with an AssignmentTx bound to a single database
// transaction. A unique index violation anywhere inside is reported as a
// *domain.ConflictError.
func (r *AssignmentRepository) Transaction(ctx context.Context, fn func(tx *AssignmentTx) error) error {
	err := dao.Transact(ctx, r.db, func(tx *gorm.DB) error {
		return fn(&AssignmentTx{
			assignments: dao.NewAssignmentDAO(tx, r.caps.LocationLinkage),
			delegates:   dao.NewDelegateDAO(tx, r.caps.RosterCount),
			locations:   dao.NewLocationDAO(tx),
		})
	})
	if err != nil && dao.IsUniqueViolation(err) {
		return &domain.ConflictError{}
	}

	return err
}

// ListByDelegate returns the delegate's assignments ordered by table number,
// each flagged with whether a report was filed for it.
func (r *AssignmentRepository) ListByDelegate(ctx context.Context, delegateID string) ([]domain.TableAssignment, error) {
	rows, err := dao.NewAssignmentDAO(r.db, r.caps.LocationLinkage).FindByDelegateWithReports(ctx, delegateID)
	if err != nil {
		return nil, fmt.Errorf("dao.FindByDelegateWithReports -> %w", err)
	}

	out := make([]domain.TableAssignment, len(rows))
	for i, row := range rows {
		out[i] = assignmentDaoToDomain(row.TableAssignment)
		out[i].Reported = row.ReportID != nil
	}

	return out, nil
}

// AssignmentTx is the set of operations the allocator performs atomically.
type AssignmentTx struct {
	assignments *dao.AssignmentDAO
	delegates   *dao.DelegateDAO
	locations   *dao.LocationDAO
}

func (t *AssignmentTx) FindDelegate(ctx context.Context, id string) (domain.Delegate, error) {
	found, err := t.delegates.FindByID(ctx, id)
	if err != nil {
		return domain.Delegate{}, fmt.Errorf("t.delegates.FindByID -> %w", err)
	}

	return delegateDaoToDomain(found), nil
}

// FindLocation resolves ref against the catalog. A legacy station code that
// is not in the catalog yields ErrLocationNotFound.
func (t *AssignmentTx) FindLocation(ctx context.Context, ref domain.LocationRef) (domain.PollingLocation, error) {
	var (
		found dao.PollingLocation
		err   error
	)
	if ref.Legacy() {
		found, err = t.locations.FindByStationCode(ctx, ref.StationCode)
	} else {
		found, err = t.locations.FindByID(ctx, ref.LocationID)
	}
	if err != nil {
		return domain.PollingLocation{}, fmt.Errorf("t.locations.Find -> %w", err)
	}

	return locationDaoToDomain(found), nil
}

// TakenTables returns which of tables at target are held by other delegates.
func (t *AssignmentTx) TakenTables(ctx context.Context, target domain.LocationRef, tables []int, delegateID string) ([]int, error) {
	taken, err := t.assignments.TakenTables(ctx, targetToDao(target), tables, delegateID)
	if err != nil {
		return nil, fmt.Errorf("t.assignments.TakenTables -> %w", err)
	}

	return taken, nil
}

func (t *AssignmentTx) Current(ctx context.Context, delegateID string) ([]domain.TableAssignment, error) {
	rows, err := t.assignments.FindByDelegate(ctx, delegateID)
	if err != nil {
		return nil, fmt.Errorf("t.assignments.FindByDelegate -> %w", err)
	}

	out := make([]domain.TableAssignment, len(rows))
	for i, row := range rows {
		out[i] = assignmentDaoToDomain(row)
	}

	return out, nil
}

// Replace deletes every assignment of delegateID, inserts rows and refreshes
// the delegate's roster count.
func (t *AssignmentTx) Replace(ctx context.Context, delegateID string, rows []domain.TableAssignment) error {
	if err := t.assignments.DeleteByDelegate(ctx, delegateID); err != nil {
		return fmt.Errorf("t.assignments.DeleteByDelegate -> %w", err)
	}

	batch := make([]dao.TableAssignment, len(rows))
	for i, a := range rows {
		batch[i] = dao.TableAssignment{
			ID:           a.ID,
			DelegateID:   delegateID,
			LocationID:   optional(a.LocationID),
			StationCode:  optional(a.StationCode),
			TableNumber:  a.TableNumber,
			Department:   a.Department,
			Municipality: a.Municipality,
			Address:      a.Address,
			CreatedAt:    a.CreatedAt,
		}
	}
	if err := t.assignments.InsertBatch(ctx, batch); err != nil {
		return fmt.Errorf("t.assignments.InsertBatch -> %w", err)
	}

	if err := t.delegates.SetAssignedTables(ctx, delegateID, len(rows)); err != nil {
		return fmt.Errorf("t.delegates.SetAssignedTables -> %w", err)
	}

	return nil
}

func targetToDao(ref domain.LocationRef) dao.Target {
	return dao.Target{
		LocationID:  optional(ref.LocationID),
		StationCode: optional(ref.StationCode),
	}
}

func assignmentDaoToDomain(a dao.TableAssignment) domain.TableAssignment {
	return domain.TableAssignment{
		ID:           a.ID,
		DelegateID:   a.DelegateID,
		LocationID:   deref(a.LocationID),
		StationCode:  deref(a.StationCode),
		TableNumber:  a.TableNumber,
		Department:   a.Department,
		Municipality: a.Municipality,
		Address:      a.Address,
		CreatedAt:    a.CreatedAt,
	}
}

// IsNotFound reports whether err is any of the repository not-found errors.
func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
