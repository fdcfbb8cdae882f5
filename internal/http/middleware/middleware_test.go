package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nurpe/painel-mulher/internal/auth"
	"github.com/nurpe/painel-mulher/internal/model"
)

type mockParser struct {
	claims auth.Claims
	err    error
}

func (m mockParser) Parse(raw string) (auth.Claims, error) {
	return m.claims, m.err
}

type mockRoles struct {
	role model.Role
	err  error
}

func (m mockRoles) RoleOf(ctx context.Context, userID uuid.UUID) (model.Role, error) {
	return m.role, m.err
}

func init() {
	gin.SetMode(gin.TestMode)
}

func call(t *testing.T, mw gin.HandlerFunc, header string) (*httptest.ResponseRecorder, *model.Principal) {
	t.Helper()

	var seen *model.Principal
	router := gin.New()
	router.GET("/test", mw, func(c *gin.Context) {
		if p, ok := MustPrincipal(c); ok {
			seen = &p
		}
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec, seen
}

func TestAuth(t *testing.T) {
	userID := uuid.New()
	claims := auth.Claims{UserID: userID, Email: "gestora@ce.gov.br"}

	t.Run("missing header", func(t *testing.T) {
		rec, _ := call(t, Auth(mockParser{claims: claims}, mockRoles{role: model.RoleAdmin}), "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		rec, _ := call(t, Auth(mockParser{err: auth.ErrInvalidToken}, mockRoles{role: model.RoleAdmin}), "Bearer x")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid token")
	})

	t.Run("no role row", func(t *testing.T) {
		rec, _ := call(t, Auth(mockParser{claims: claims}, mockRoles{err: gorm.ErrRecordNotFound}), "Bearer x")
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("role lookup failure", func(t *testing.T) {
		rec, _ := call(t, Auth(mockParser{claims: claims}, mockRoles{err: errors.New("timeout")}), "Bearer x")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("principal set", func(t *testing.T) {
		rec, seen := call(t, Auth(mockParser{claims: claims}, mockRoles{role: model.RoleViewer}), "Bearer x")
		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, seen)
		assert.Equal(t, userID, seen.UserID)
		assert.Equal(t, model.RoleViewer, seen.Role)
		assert.Equal(t, "gestora@ce.gov.br", seen.Email)
	})
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	router := gin.New()
	router.Use(RequestLogger(log))
	router.GET("/missing/:id", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing/1", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), `"path":"/missing/:id"`)
	assert.Contains(t, buf.String(), `"status":404`)
}
