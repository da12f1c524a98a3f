package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caregrid/utils"
)

func authRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(JWTAuthMiddleware())
	router.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, UserID(c))
	})
	return router
}

func getWithAuth(router *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddleware_ValidToken(t *testing.T) {
	router := authRouter()

	token, err := utils.GenerateToken("user-1", "user@example.com", time.Hour)
	require.NoError(t, err)

	w := getWithAuth(router, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", w.Body.String())
}

func TestJWTAuthMiddleware_RejectsBadTokens(t *testing.T) {
	router := authRouter()

	expired, err := utils.GenerateToken("user-1", "user@example.com", -time.Hour)
	require.NoError(t, err)

	cases := map[string]string{
		"missing header": "",
		"no bearer":      "Token abc",
		"garbage":        "Bearer not-a-jwt",
		"expired":        "Bearer " + expired,
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			w := getWithAuth(router, header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}
