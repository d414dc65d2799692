package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/vietanh2810/mesas-api/internal/domain"
)

const (
	ScopeMe  = "me"
	ScopeAll = "all"
)

type ComplianceStats interface {
	Compliance(ctx context.Context, delegateID string) ([]domain.ComplianceItem, error)
}

type ComplianceService struct {
	stats ComplianceStats
}

func NewComplianceService(stats ComplianceStats) *ComplianceService {
	return &ComplianceService{
		stats: stats,
	}
}

// GetCompliance reports assigned against reported tables. Scope "me" (the
// default) covers the caller only, "all" every delegate and is restricted to
// privileged roles.
func (s *ComplianceService) GetCompliance(ctx context.Context, caller domain.Identity, scope string) (domain.ComplianceReport, error) {
	var delegateID string

	switch strings.ToLower(strings.TrimSpace(scope)) {
	case "", ScopeMe:
		if caller.DelegateID == "" {
			return domain.ComplianceReport{}, domain.ErrForbidden
		}
		delegateID = caller.DelegateID
	case ScopeAll:
		if !caller.Privileged() {
			return domain.ComplianceReport{}, domain.ErrForbidden
		}
	default:
		return domain.ComplianceReport{}, domain.NewValidationError("scope", "must be one of me, all")
	}

	items, err := s.stats.Compliance(ctx, delegateID)
	if err != nil {
		return domain.ComplianceReport{}, fmt.Errorf("s.stats.Compliance -> %w", err)
	}

	return domain.BuildCompliance(items), nil
}
