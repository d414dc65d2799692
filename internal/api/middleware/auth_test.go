package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/mesas-api/internal/domain"
	"github.com/vietanh2810/mesas-api/internal/pkg/jwthelper"
)

const testKey = "middleware-test-key"

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AccessLog(nil))
	r.GET("/whoami", NewAuthenticator(testKey).VerifyJWT(), func(ctx *gin.Context) {
		identity, ok := IdentityFrom(ctx)
		if !ok {
			ctx.Status(http.StatusInternalServerError)
			return
		}
		ctx.JSON(http.StatusOK, identity)
	})

	return r
}

func TestVerifyJWT(t *testing.T) {
	valid, err := jwthelper.GenerateToken(testKey, domain.Identity{DelegateID: "d-1", Role: domain.RoleDelegate}, time.Hour)
	require.NoError(t, err)
	foreign, err := jwthelper.GenerateToken("another-key", domain.Identity{DelegateID: "d-1", Role: domain.RoleDelegate}, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "valid token", header: "Bearer " + valid, wantStatus: http.StatusOK},
		{name: "lowercase scheme", header: "bearer " + valid, wantStatus: http.StatusOK},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "foreign signature", header: "Bearer " + foreign, wantStatus: http.StatusUnauthorized},
	}

	router := newRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.JSONEq(t, `{"delegate_id":"d-1","role":"delegate"}`, rec.Body.String())
			}
		})
	}
}
