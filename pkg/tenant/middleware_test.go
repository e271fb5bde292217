package tenant

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestContextRoundTrip(t *testing.T) {
	ctx := SetTenantIDContext(context.Background(), "t1")
	assert.Equal(t, "t1", GetTenantIDFromContext(ctx))
	assert.Equal(t, "", GetTenantIDFromContext(context.Background()))
}

func TestTenantMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	validator := ValidatorFunc(func(_ context.Context, id string) (bool, error) {
		switch id {
		case "ativo":
			return true, nil
		case "erro":
			return false, errors.New("banco indisponível")
		}
		return false, nil
	})

	cases := map[string]int{
		"":        http.StatusBadRequest,
		"ativo":   http.StatusOK,
		"inativo": http.StatusForbidden,
		"erro":    http.StatusInternalServerError,
	}
	for id, want := range cases {
		r := gin.New()
		r.GET("/", func(c *gin.Context) {
			if id != "" {
				c.Set("tenant_id", id)
			}
		}, TenantMiddleware(validator), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, want, w.Code, id)
	}
}
