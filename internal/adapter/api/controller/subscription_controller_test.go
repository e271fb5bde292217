package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/hugohenrick/erp-estoque/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-estoque/internal/domain/movement"
	"github.com/hugohenrick/erp-estoque/internal/domain/product"
	"github.com/hugohenrick/erp-estoque/internal/domain/subscription"
	"github.com/hugohenrick/erp-estoque/internal/service"
	"github.com/hugohenrick/erp-estoque/pkg/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionController_Plans(t *testing.T) {
	r := newRouter()
	r.GET("/plans", NewSubscriptionController(nil, nil).Plans)

	w := doJSON(t, r, http.MethodGet, "/plans", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.PlanListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 3)

	starter, professional, enterprise := resp.Data[0], resp.Data[1], resp.Data[2]
	assert.Equal(t, "starter", starter.Plan)
	assert.Equal(t, "0.00", starter.Price)
	assert.Equal(t, 100, starter.Limits.MaxProducts)
	assert.False(t, starter.Limits.Features["csvImportExport"])

	assert.Equal(t, "1599.00", professional.Price)
	assert.Equal(t, -1, professional.Limits.MaxProducts)
	assert.Equal(t, 5, professional.Limits.MaxTeamMembers)
	assert.True(t, professional.Limits.Features["advancedAnalytics"])

	assert.Equal(t, -1, enterprise.Limits.MaxTeamMembers)
	assert.True(t, enterprise.Limits.Features["slaGuarantee"])
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{product.ErrProductNotFound, http.StatusNotFound},
		{fmt.Errorf("buscar: %w", movement.ErrMovementNotFound), http.StatusNotFound},
		{product.ErrDuplicateSKU, http.StatusConflict},
		{service.ErrInvalidTransition, http.StatusConflict},
		{subscription.ErrTeamLimitReached, http.StatusPaymentRequired},
		{subscription.ErrFeatureUnavailable, http.StatusPaymentRequired},
		{service.ErrNotInvitedByYou, http.StatusForbidden},
		{auth.ErrExpiredToken, http.StatusUnauthorized},
		{movement.ErrInsufficientStock, http.StatusBadRequest},
		{&product.ValidationError{Field: "sku", Message: "SKU inválido"}, http.StatusBadRequest},
		{errors.New("timeout"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.status, statusFor(tt.err), tt.err.Error())
	}
}
