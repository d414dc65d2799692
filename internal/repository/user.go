package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/vietanh2810/mesas-api/internal/domain"
	"github.com/vietanh2810/mesas-api/internal/repository/dao"
)

var (
	ErrDelegateNotFound = dao.ErrDelegateNotFound
	ErrDelegateExists   = errors.New("delegate already exists")
)

type DelegateDAO interface {
	Insert(ctx context.Context, delegate dao.Delegate) (dao.Delegate, error)
	FindByID(ctx context.Context, id string) (dao.Delegate, error)
}

type DelegateRepository struct {
	dao DelegateDAO
}

func NewDelegateRepository(dao DelegateDAO) *DelegateRepository {
	return &DelegateRepository{
		dao: dao,
	}
}

func (r *DelegateRepository) Create(ctx context.Context, delegate domain.Delegate) (domain.Delegate, error) {
	if delegate.ID == "" {
		delegate.ID = uuid.NewString()
	}

	created, err := r.dao.Insert(ctx, dao.Delegate{
		ID:           delegate.ID,
		Name:         delegate.Name,
		Phone:        delegate.Phone,
		Email:        delegate.Email,
		Department:   delegate.Department,
		Municipality: delegate.Municipality,
		StationCode:  delegate.StationCode,
	})
	if err != nil {
		if dao.IsUniqueViolation(err) {
			return domain.Delegate{}, ErrDelegateExists
		}

		return domain.Delegate{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return delegateDaoToDomain(created), nil
}

func (r *DelegateRepository) FindByID(ctx context.Context, id string) (domain.Delegate, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Delegate{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return delegateDaoToDomain(found), nil
}

func delegateDaoToDomain(d dao.Delegate) domain.Delegate {
	return domain.Delegate{
		ID:             d.ID,
		Name:           d.Name,
		Phone:          d.Phone,
		Email:          d.Email,
		Department:     d.Department,
		Municipality:   d.Municipality,
		StationCode:    d.StationCode,
		AssignedTables: d.AssignedTables,
		CreatedAt:      d.CreatedAt,
	}
}
