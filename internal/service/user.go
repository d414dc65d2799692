package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/vietanh2810/mesas-api/internal/domain"
	"github.com/vietanh2810/mesas-api/internal/repository"
)

var (
	ErrDelegateExists = repository.ErrDelegateExists
)

type DelegateRepository interface {
	Create(ctx context.Context, delegate domain.Delegate) (domain.Delegate, error)
	FindByID(ctx context.Context, id string) (domain.Delegate, error)
}

type DelegateService struct {
	repo DelegateRepository
}

func NewDelegateService(repo DelegateRepository) *DelegateService {
	return &DelegateService{
		repo: repo,
	}
}

func (s *DelegateService) GetDelegate(ctx context.Context, caller domain.Identity, id string) (domain.Delegate, error) {
	if !caller.CanActFor(id) {
		return domain.Delegate{}, domain.ErrForbidden
	}

	delegate, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Delegate{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return delegate, nil
}

// RegisterDelegate adds a delegate to the roster. Only privileged roles may
// do so.
func (s *DelegateService) RegisterDelegate(ctx context.Context, caller domain.Identity, delegate domain.Delegate) (domain.Delegate, error) {
	if !caller.Privileged() {
		return domain.Delegate{}, domain.ErrForbidden
	}
	delegate.Name = strings.TrimSpace(delegate.Name)
	if delegate.Name == "" {
		return domain.Delegate{}, domain.NewValidationError("name", "is required")
	}
	delegate.AssignedTables = 0

	created, err := s.repo.Create(ctx, delegate)
	if err != nil {
		return domain.Delegate{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}
