package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/mesas-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/mesas-api/internal/domain"
	"github.com/vietanh2810/mesas-api/internal/pkg/jwthelper"
)

const identityKey = "identity"

var (
	errMissingToken = errors.New("missing bearer token")
)

type Authenticator struct {
	signingKey string
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: signingKey,
	}
}

// VerifyJWT rejects requests without a valid bearer token and stores the
// caller identity for the handlers.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if len(header) <= 7 || !strings.EqualFold(header[:7], "Bearer ") {
			response.RenderErr(ctx, response.ErrUnauthorized(errMissingToken))
			return
		}

		identity, err := jwthelper.ParseToken(a.signingKey, strings.TrimSpace(header[7:]))
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(err))
			return
		}

		ctx.Set(identityKey, identity)
		ctx.Next()
	}
}

// IdentityFrom returns the caller stored by VerifyJWT.
func IdentityFrom(ctx *gin.Context) (domain.Identity, bool) {
	v, ok := ctx.Get(identityKey)
	if !ok {
		return domain.Identity{}, false
	}
	identity, ok := v.(domain.Identity)

	return identity, ok
}
