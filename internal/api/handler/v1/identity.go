package v1

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/mesas-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/mesas-api/internal/api/middleware"
	"github.com/vietanh2810/mesas-api/internal/domain"
)

var errNoIdentity = errors.New("no caller identity on request")

func identityFromContext(ctx *gin.Context) (domain.Identity, *response.Err) {
	identity, ok := middleware.IdentityFrom(ctx)
	if !ok {
		return domain.Identity{}, response.ErrUnauthorized(errNoIdentity)
	}

	return identity, nil
}
