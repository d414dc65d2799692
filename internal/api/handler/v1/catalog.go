package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/mesas-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/mesas-api/internal/domain"
	"github.com/vietanh2810/mesas-api/internal/service"
)

type CatalogService interface {
	ListCandidates(ctx context.Context) ([]domain.Candidate, error)
	ListLocations(ctx context.Context, municipality string) ([]domain.PollingLocation, error)
	GetLocation(ctx context.Context, id string) (domain.PollingLocation, error)
}

type CatalogHandler struct {
	svc CatalogService
}

func NewCatalogHandler(svc CatalogService) *CatalogHandler {
	return &CatalogHandler{
		svc: svc,
	}
}

// HandleListCandidates godoc
// @Summary      List candidates
// @Tags         catalog
// @Produce      json
// @Success      200  {array}   domain.Candidate
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /catalog/candidates [get]
// @Security BearerAuth
func (h *CatalogHandler) HandleListCandidates(ctx *gin.Context) {
	candidates, err := h.svc.ListCandidates(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("HandleListCandidates -> h.svc.ListCandidates -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, candidates)
}

// HandleListLocations godoc
// @Summary      List polling locations
// @Tags         catalog
// @Produce      json
// @Param        municipality  query     string  false  "Municipality name"
// @Success      200           {array}   domain.PollingLocation
// @Failure      401           {object}  response.Err
// @Failure      500           {object}  response.Err
// @Router       /catalog/locations [get]
// @Security BearerAuth
func (h *CatalogHandler) HandleListLocations(ctx *gin.Context) {
	locations, err := h.svc.ListLocations(ctx.Request.Context(), ctx.Query("municipality"))
	if err != nil {
		err = fmt.Errorf("HandleListLocations -> h.svc.ListLocations -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, locations)
}

// HandleGetLocation godoc
// @Summary      Get a polling location
// @Tags         catalog
// @Produce      json
// @Param        locationID  path      string  true  "Location ID"
// @Success      200         {object}  domain.PollingLocation
// @Failure      401         {object}  response.Err
// @Failure      404         {object}  response.Err
// @Failure      500         {object}  response.Err
// @Router       /catalog/locations/{locationID} [get]
// @Security BearerAuth
func (h *CatalogHandler) HandleGetLocation(ctx *gin.Context) {
	id := ctx.Param("locationID")

	location, err := h.svc.GetLocation(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrLocationNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("location", "ID", id))
			return
		}

		err = fmt.Errorf("HandleGetLocation -> h.svc.GetLocation -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, location)
}
