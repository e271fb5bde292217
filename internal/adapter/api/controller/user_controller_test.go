package controller

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/hugohenrick/erp-estoque/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-estoque/internal/domain/user"
	"github.com/hugohenrick/erp-estoque/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthController_Login(t *testing.T) {
	accounts := &fakeAccounts{
		login: func(email, password string) (*service.Session, error) {
			if password != "segredo123" {
				return nil, user.ErrInvalidCredentials
			}
			return &service.Session{
				Token:     "jwt-token",
				ExpiresIn: 3600,
				User:      &user.User{ID: testUser, TenantID: testTenant, Email: email, Roles: []user.Role{user.RoleAdmin}},
				Role:      user.RoleAdmin,
			}, nil
		},
	}
	r := newRouter()
	r.POST("/auth/login", NewAuthController(accounts).Login)

	w := doJSON(t, r, http.MethodPost, "/auth/login", map[string]string{"email": "ana@loja.com", "password": "segredo123"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "jwt-token", resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, "admin", resp.Role)
	assert.Equal(t, []string{"admin"}, resp.User.Roles)

	w = doJSON(t, r, http.MethodPost, "/auth/login", map[string]string{"email": "ana@loja.com", "password": "errada"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/auth/login", map[string]string{"email": "não-é-email", "password": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserController_DeleteStaff(t *testing.T) {
	var gotAdmin service.Actor
	accounts := &fakeAccounts{
		deleteStaff: func(admin service.Actor, staffID string) error {
			gotAdmin = admin
			if staffID != "staff-1" {
				return service.ErrNotInvitedByYou
			}
			return nil
		},
	}
	r := newRouter()
	r.DELETE("/staff/:id", NewUserController(accounts).DeleteStaff)

	w := doJSON(t, r, http.MethodDelete, "/staff/staff-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, service.Actor{TenantID: testTenant, UserID: testUser}, gotAdmin)

	w = doJSON(t, r, http.MethodDelete, "/staff/staff-2", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
