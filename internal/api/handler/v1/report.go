package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/mesas-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/mesas-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/mesas-api/internal/domain"
)

type ReportService interface {
	SubmitVoteReport(ctx context.Context, caller domain.Identity, in domain.ReportSubmission) (domain.ReportReceipt, error)
	GetReport(ctx context.Context, caller domain.Identity, assignmentID string) (domain.VoteReport, error)
}

type ReportHandler struct {
	svc ReportService
}

func NewReportHandler(svc ReportService) *ReportHandler {
	return &ReportHandler{
		svc: svc,
	}
}

// HandleSubmitReport godoc
// @Summary      Submit the tally of a table
// @Description  Creates or overwrites the vote report of an assignment. Only the assigned delegate may submit. Repeated candidates are summed.
// @Tags         reports
// @Accept       json
// @Produce      json
// @Param        assignmentID  path      string                        true  "Assignment ID"
// @Param        request       body      request.SubmitReportRequest   true  "request body"
// @Success      201           {object}  domain.ReportReceipt
// @Success      200           {object}  domain.ReportReceipt
// @Failure      400           {object}  response.Err
// @Failure      401           {object}  response.Err
// @Failure      403           {object}  response.Err
// @Failure      404           {object}  response.Err
// @Failure      500           {object}  response.Err
// @Router       /assignments/{assignmentID}/report [put]
// @Security BearerAuth
func (h *ReportHandler) HandleSubmitReport(ctx *gin.Context) {
	caller, respErr := identityFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.SubmitReportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	receipt, err := h.svc.SubmitVoteReport(ctx.Request.Context(), caller, req.ToSubmission(ctx.Param("assignmentID")))
	if err != nil {
		err = fmt.Errorf("HandleSubmitReport -> h.svc.SubmitVoteReport -> %w", err)
		response.RenderErr(ctx, response.FromDomain(err))
		return
	}

	status := http.StatusCreated
	if receipt.Updated {
		status = http.StatusOK
	}
	ctx.JSON(status, receipt)
}

// HandleGetReport godoc
// @Summary      Get the report of a table
// @Tags         reports
// @Produce      json
// @Param        assignmentID  path      string  true  "Assignment ID"
// @Success      200           {object}  domain.VoteReport
// @Failure      401           {object}  response.Err
// @Failure      403           {object}  response.Err
// @Failure      404           {object}  response.Err
// @Failure      500           {object}  response.Err
// @Router       /assignments/{assignmentID}/report [get]
// @Security BearerAuth
func (h *ReportHandler) HandleGetReport(ctx *gin.Context) {
	caller, respErr := identityFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	report, err := h.svc.GetReport(ctx.Request.Context(), caller, ctx.Param("assignmentID"))
	if err != nil {
		err = fmt.Errorf("HandleGetReport -> h.svc.GetReport -> %w", err)
		response.RenderErr(ctx, response.FromDomain(err))
		return
	}

	ctx.JSON(http.StatusOK, report)
}
