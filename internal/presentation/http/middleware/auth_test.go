package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcifuentes/caja-api/internal/infrastructure/posclient"
	"github.com/rcifuentes/caja-api/pkg/utils"
)

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	manager := utils.NewJWTManager("test-secret", time.Hour)
	cashierID := uuid.New()

	token, err := manager.GenerateAccessToken(cashierID, "mrodriguez", []string{"cashier"})
	require.NoError(t, err)

	var gotID any
	var gotToken string
	router := gin.New()
	router.GET("/protected", AuthMiddleware(manager), func(c *gin.Context) {
		gotID, _ = c.Get("cashier_id")
		gotToken, _ = posclient.CashierTokenFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, cashierID, gotID)
	assert.Equal(t, token, gotToken)
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthMiddleware(utils.NewJWTManager("test-secret", time.Hour)), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsMalformedHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthMiddleware(utils.NewJWTManager("test-secret", time.Hour)), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareDistinguishesExpiredTokens(t *testing.T) {
	gin.SetMode(gin.TestMode)
	manager := utils.NewJWTManager("test-secret", -time.Minute)

	expired, err := manager.GenerateAccessToken(uuid.New(), "mrodriguez", nil)
	require.NoError(t, err)

	router := gin.New()
	router.GET("/protected", AuthMiddleware(manager), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token has expired")
}

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(roles []string) *gin.Engine {
		router := gin.New()
		router.Use(func(c *gin.Context) {
			if roles != nil {
				c.Set("cashier_roles", roles)
			}
			c.Next()
		})
		router.POST("/close", RequireRole("cashier"), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		return router
	}

	cases := []struct {
		name  string
		roles []string
		want  int
	}{
		{"cashier role allowed", []string{"cashier"}, http.StatusOK},
		{"other role denied", []string{"supervisor"}, http.StatusForbidden},
		{"no roles denied", nil, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			newRouter(tc.roles).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/close", nil))
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestAuthMiddlewareRejectsForeignToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	foreign, err := utils.NewJWTManager("other-secret", time.Hour).
		GenerateAccessToken(uuid.New(), "mrodriguez", nil)
	require.NoError(t, err)

	router := gin.New()
	router.GET("/protected", AuthMiddleware(utils.NewJWTManager("test-secret", time.Hour)), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+foreign)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
