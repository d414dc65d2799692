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

type AllocatorService interface {
	AllocateTables(ctx context.Context, caller domain.Identity, alloc domain.Allocation) ([]domain.TableAssignment, error)
	ListAssignments(ctx context.Context, caller domain.Identity, delegateID string) ([]domain.TableAssignment, error)
}

type AssignmentHandler struct {
	svc AllocatorService
}

func NewAssignmentHandler(svc AllocatorService) *AssignmentHandler {
	return &AssignmentHandler{
		svc: svc,
	}
}

// HandleAllocateTables godoc
// @Summary      Replace the tables of a delegate
// @Description  Assigns the given tables at one polling location and releases every table the delegate held before. Tables held by another delegate fail the whole request.
// @Tags         assignments
// @Accept       json
// @Produce      json
// @Param        delegateID  path      string                          true  "Delegate ID"
// @Param        request     body      request.AllocateTablesRequest   true  "request body"
// @Success      200         {array}   domain.TableAssignment
// @Failure      400         {object}  response.Err
// @Failure      401         {object}  response.Err
// @Failure      403         {object}  response.Err
// @Failure      404         {object}  response.Err
// @Failure      409         {object}  response.Err
// @Failure      500         {object}  response.Err
// @Router       /delegates/{delegateID}/assignments [put]
// @Security BearerAuth
func (h *AssignmentHandler) HandleAllocateTables(ctx *gin.Context) {
	caller, respErr := identityFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.AllocateTablesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	assigned, err := h.svc.AllocateTables(ctx.Request.Context(), caller, req.ToAllocation(ctx.Param("delegateID")))
	if err != nil {
		err = fmt.Errorf("HandleAllocateTables -> h.svc.AllocateTables -> %w", err)
		response.RenderErr(ctx, response.FromDomain(err))
		return
	}

	ctx.JSON(http.StatusOK, assigned)
}

// HandleListAssignments godoc
// @Summary      List the tables of a delegate
// @Tags         assignments
// @Produce      json
// @Param        delegateID  path      string  true  "Delegate ID"
// @Success      200         {array}   domain.TableAssignment
// @Failure      401         {object}  response.Err
// @Failure      403         {object}  response.Err
// @Failure      500         {object}  response.Err
// @Router       /delegates/{delegateID}/assignments [get]
// @Security BearerAuth
func (h *AssignmentHandler) HandleListAssignments(ctx *gin.Context) {
	h.listAssignments(ctx, ctx.Param("delegateID"))
}

// HandleListMyAssignments godoc
// @Summary      List the tables of the caller
// @Tags         assignments
// @Produce      json
// @Success      200  {array}   domain.TableAssignment
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /me/assignments [get]
// @Security BearerAuth
func (h *AssignmentHandler) HandleListMyAssignments(ctx *gin.Context) {
	h.listAssignments(ctx, "")
}

func (h *AssignmentHandler) listAssignments(ctx *gin.Context, delegateID string) {
	caller, respErr := identityFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	if delegateID == "" {
		delegateID = caller.DelegateID
	}

	assignments, err := h.svc.ListAssignments(ctx.Request.Context(), caller, delegateID)
	if err != nil {
		err = fmt.Errorf("HandleListAssignments -> h.svc.ListAssignments -> %w", err)
		response.RenderErr(ctx, response.FromDomain(err))
		return
	}

	ctx.JSON(http.StatusOK, assignments)
}
