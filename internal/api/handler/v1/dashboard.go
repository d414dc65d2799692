package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/mesas-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/mesas-api/internal/domain"
)

type ComplianceService interface {
	GetCompliance(ctx context.Context, caller domain.Identity, scope string) (domain.ComplianceReport, error)
}

type CoverageService interface {
	GetCoverageSummary(ctx context.Context, caller domain.Identity, delegateID string) (domain.CoverageSummary, error)
}

type DashboardHandler struct {
	compliance ComplianceService
	coverage   CoverageService
}

func NewDashboardHandler(compliance ComplianceService, coverage CoverageService) *DashboardHandler {
	return &DashboardHandler{
		compliance: compliance,
		coverage:   coverage,
	}
}

// HandleGetCompliance godoc
// @Summary      Assigned vs reported tables
// @Description  Scope "me" covers the caller, "all" every delegate and needs a coordinator or admin role.
// @Tags         dashboard
// @Produce      json
// @Param        scope  query     string  false  "me or all"  Enums(me, all)
// @Success      200    {object}  domain.ComplianceReport
// @Failure      400    {object}  response.Err
// @Failure      401    {object}  response.Err
// @Failure      403    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /compliance [get]
// @Security BearerAuth
func (h *DashboardHandler) HandleGetCompliance(ctx *gin.Context) {
	caller, respErr := identityFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	report, err := h.compliance.GetCompliance(ctx.Request.Context(), caller, ctx.Query("scope"))
	if err != nil {
		err = fmt.Errorf("HandleGetCompliance -> h.compliance.GetCompliance -> %w", err)
		response.RenderErr(ctx, response.FromDomain(err))
		return
	}

	ctx.JSON(http.StatusOK, report)
}

// HandleGetCoverage godoc
// @Summary      War-room coverage summary
// @Description  Vote totals, municipal coverage, alerts and the latest reports. Without delegate_id privileged callers get every delegate.
// @Tags         dashboard
// @Produce      json
// @Param        delegate_id  query     string  false  "Delegate ID"
// @Success      200          {object}  domain.CoverageSummary
// @Failure      401          {object}  response.Err
// @Failure      403          {object}  response.Err
// @Failure      500          {object}  response.Err
// @Router       /dashboard/coverage [get]
// @Security BearerAuth
func (h *DashboardHandler) HandleGetCoverage(ctx *gin.Context) {
	caller, respErr := identityFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	summary, err := h.coverage.GetCoverageSummary(ctx.Request.Context(), caller, ctx.Query("delegate_id"))
	if err != nil {
		err = fmt.Errorf("HandleGetCoverage -> h.coverage.GetCoverageSummary -> %w", err)
		response.RenderErr(ctx, response.FromDomain(err))
		return
	}

	ctx.JSON(http.StatusOK, summary)
}
