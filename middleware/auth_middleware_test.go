package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"robolibrary/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-test-secret"

func newAuthedRouter(requiredRoles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	group := router.Group("/protected")
	group.Use(AuthMiddleware(testSecret))
	if len(requiredRoles) > 0 {
		group.Use(RequireRole(requiredRoles...))
	}
	group.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"role": c.GetString("role")})
	})
	return router
}

func requestWithToken(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	router := newAuthedRouter()

	rec := requestWithToken(router, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareRejectsBadToken(t *testing.T) {
	router := newAuthedRouter()

	rec := requestWithToken(router, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	foreign, err := utils.GenerateJWTToken("u", "e", "n", RoleTeacher, "some-other-secret", time.Hour)
	require.NoError(t, err)
	rec = requestWithToken(router, foreign)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	router := newAuthedRouter()

	token, err := utils.GenerateJWTToken("u", "e", "n", RoleStudent, testSecret, time.Hour)
	require.NoError(t, err)

	rec := requestWithToken(router, token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), RoleStudent)
}

func TestRequireRoleGatesByRole(t *testing.T) {
	router := newAuthedRouter(RoleSuperadmin, RoleSchool, RoleTeacher)

	teacher, err := utils.GenerateJWTToken("u", "e", "n", RoleTeacher, testSecret, time.Hour)
	require.NoError(t, err)
	student, err := utils.GenerateJWTToken("u", "e", "n", RoleStudent, testSecret, time.Hour)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, requestWithToken(router, teacher).Code)
	assert.Equal(t, http.StatusForbidden, requestWithToken(router, student).Code)
}
