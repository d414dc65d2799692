package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/mesas-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/mesas-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/mesas-api/internal/domain"
	"github.com/vietanh2810/mesas-api/internal/service"
)

type DelegateService interface {
	GetDelegate(ctx context.Context, caller domain.Identity, id string) (domain.Delegate, error)
	RegisterDelegate(ctx context.Context, caller domain.Identity, delegate domain.Delegate) (domain.Delegate, error)
}

type DelegateHandler struct {
	svc DelegateService
}

func NewDelegateHandler(svc DelegateService) *DelegateHandler {
	return &DelegateHandler{
		svc: svc,
	}
}

// HandleGetDelegate godoc
// @Summary      Get a delegate
// @Tags         delegates
// @Produce      json
// @Param        delegateID  path      string  true  "Delegate ID"
// @Success      200         {object}  domain.Delegate
// @Failure      401         {object}  response.Err
// @Failure      403         {object}  response.Err
// @Failure      404         {object}  response.Err
// @Failure      500         {object}  response.Err
// @Router       /delegates/{delegateID} [get]
// @Security BearerAuth
func (h *DelegateHandler) HandleGetDelegate(ctx *gin.Context) {
	caller, respErr := identityFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	id := ctx.Param("delegateID")
	delegate, err := h.svc.GetDelegate(ctx.Request.Context(), caller, id)
	if err != nil {
		if errors.Is(err, service.ErrDelegateNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("delegate", "ID", id))
			return
		}

		err = fmt.Errorf("HandleGetDelegate -> h.svc.GetDelegate -> %w", err)
		response.RenderErr(ctx, response.FromDomain(err))
		return
	}

	ctx.JSON(http.StatusOK, delegate)
}

// HandleRegisterDelegate godoc
// @Summary      Register a delegate
// @Description  Adds a delegate to the roster. Coordinators and admins only.
// @Tags         delegates
// @Accept       json
// @Produce      json
// @Param        request  body      request.RegisterDelegateRequest  true  "request body"
// @Success      201      {object}  domain.Delegate
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /delegates [post]
// @Security BearerAuth
func (h *DelegateHandler) HandleRegisterDelegate(ctx *gin.Context) {
	caller, respErr := identityFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.RegisterDelegateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.svc.RegisterDelegate(ctx.Request.Context(), caller, req.ToDelegate())
	if err != nil {
		if errors.Is(err, service.ErrDelegateExists) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrDelegateExists))
			return
		}

		err = fmt.Errorf("HandleRegisterDelegate -> h.svc.RegisterDelegate -> %w", err)
		response.RenderErr(ctx, response.FromDomain(err))
		return
	}

	ctx.JSON(http.StatusCreated, created)
}
