package service

import (
	"context"
	"testing"
	"time"

	"github.com/hugohenrick/erp-estoque/internal/domain/subscription"
	"github.com/hugohenrick/erp-estoque/internal/domain/user"
	"github.com/hugohenrick/erp-estoque/pkg/auth"
	"github.com/hugohenrick/erp-estoque/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAccounts(t *testing.T) (*fixture, *AccountService, *auth.JWTService) {
	t.Helper()
	f := newFixture(t)
	jwtService, err := auth.NewJWTService("test-secret", time.Hour)
	require.NoError(t, err)
	svc := NewAccountService(memTenants{f.db}, memUsers{f.db}, f.billing, jwtService, logger.NewNop())
	return f, svc, jwtService
}

func signup(t *testing.T, svc *AccountService, email string) *Session {
	t.Helper()
	s, err := svc.Signup(context.Background(), SignupInput{
		BusinessName: "Mercadinho",
		FullName:     "Ana Souza",
		Email:        email,
		Password:     "Segura123",
	})
	require.NoError(t, err)
	return s
}

func adminActor(s *Session) Actor {
	return Actor{TenantID: s.User.TenantID, UserID: s.User.ID}
}

func TestAccountService_Signup(t *testing.T) {
	f, svc, jwtService := newAccounts(t)

	_, err := svc.Signup(context.Background(), SignupInput{FullName: "X", Email: "x@y.z", Password: "fraca"})
	assert.ErrorIs(t, err, user.ErrWeakPassword)

	session := signup(t, svc, " Ana@Exemplo.com ")
	assert.Equal(t, user.RoleAdmin, session.Role)
	assert.Equal(t, "ana@exemplo.com", session.User.Email)
	assert.Equal(t, int64(3600), session.ExpiresIn)

	claims, err := jwtService.ValidateToken(session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.User.TenantID, claims.TenantID)
	assert.Equal(t, "admin", claims.Role)

	assert.Contains(t, f.db.tenants, session.User.TenantID)
	assert.Contains(t, f.db.subs, session.User.TenantID)

	_, err = svc.Signup(context.Background(), SignupInput{FullName: "B", Email: "ana@exemplo.com", Password: "Segura123"})
	assert.ErrorIs(t, err, user.ErrDuplicateEmail)
}

func TestAccountService_Login(t *testing.T) {
	_, svc, _ := newAccounts(t)
	signup(t, svc, "ana@exemplo.com")
	ctx := context.Background()

	session, err := svc.Login(ctx, "ANA@exemplo.com", "Segura123")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)

	_, err = svc.Login(ctx, "ana@exemplo.com", "errada")
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "ninguem@exemplo.com", "Segura123")
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestAccountService_RefreshRecomputesRole(t *testing.T) {
	_, svc, jwtService := newAccounts(t)
	ctx := context.Background()
	session := signup(t, svc, "ana@exemplo.com")

	require.NoError(t, svc.AssignRole(ctx, session.User.TenantID, session.User.ID, user.RoleStaff))
	require.NoError(t, svc.RemoveRole(ctx, session.User.TenantID, session.User.ID, user.RoleAdmin))

	refreshed, err := svc.Refresh(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, user.RoleStaff, refreshed.Role)

	claims, err := jwtService.ValidateToken(refreshed.Token)
	require.NoError(t, err)
	assert.Equal(t, "staff", claims.Role)

	_, err = svc.Refresh(ctx, "not-a-token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestAccountService_Roles(t *testing.T) {
	_, svc, _ := newAccounts(t)
	ctx := context.Background()
	session := signup(t, svc, "ana@exemplo.com")
	tenantID := session.User.TenantID

	err := svc.AssignRole(ctx, tenantID, session.User.ID, user.RoleAdmin)
	assert.ErrorIs(t, err, user.ErrDuplicateRole)
	assert.Equal(t, "Usuário já possui este papel", Message(err))

	assert.ErrorIs(t, svc.AssignRole(ctx, tenantID, session.User.ID, user.Role("owner")), user.ErrInvalidRole)
	assert.ErrorIs(t, svc.AssignRole(ctx, "other-tenant", session.User.ID, user.RoleStaff), user.ErrUserNotFound)
	assert.ErrorIs(t, svc.RemoveRole(ctx, tenantID, session.User.ID, user.RoleStaff), user.ErrRoleNotFound)

	roles, err := svc.Roles(ctx, session.User.ID)
	require.NoError(t, err)
	assert.Equal(t, []user.Role{user.RoleAdmin}, roles)
}

func TestAccountService_Profile(t *testing.T) {
	_, svc, _ := newAccounts(t)
	ctx := context.Background()
	session := signup(t, svc, "ana@exemplo.com")

	_, err := svc.UpdateProfile(ctx, session.User.ID, "   ")
	assert.ErrorIs(t, err, ErrEmptyFullName)

	u, err := svc.UpdateProfile(ctx, session.User.ID, " Ana Lima ")
	require.NoError(t, err)
	assert.Equal(t, "Ana Lima", u.FullName)

	assert.ErrorIs(t, svc.ChangePassword(ctx, session.User.ID, "errada", "NovaSenha1"), ErrWrongPassword)
	assert.ErrorIs(t, svc.ChangePassword(ctx, session.User.ID, "Segura123", "curta"), user.ErrWeakPassword)
	require.NoError(t, svc.ChangePassword(ctx, session.User.ID, "Segura123", "NovaSenha1"))

	_, err = svc.Login(ctx, "ana@exemplo.com", "NovaSenha1")
	assert.NoError(t, err)
}

func TestAccountService_InviteStaffValidationOrder(t *testing.T) {
	f, svc, _ := newAccounts(t)
	ctx := context.Background()
	session := signup(t, svc, "ana@exemplo.com")
	admin := adminActor(session)

	_, err := svc.InviteStaff(ctx, admin, "", "123", "")
	assert.ErrorIs(t, err, ErrMissingStaffFields)

	_, err = svc.InviteStaff(ctx, admin, "ana@exemplo.com", "123", "")
	assert.ErrorIs(t, err, ErrStaffPasswordLength)

	_, err = svc.InviteStaff(ctx, admin, "ana@exemplo.com", "123456", "")
	assert.ErrorIs(t, err, ErrStaffEmailTaken)

	_, err = svc.InviteStaff(ctx, admin, "joao@exemplo.com", "123456", "João")
	assert.ErrorIs(t, err, subscription.ErrTeamLimitReached)

	_, err = f.billing.ChangePlan(ctx, admin.TenantID, subscription.PlanProfessional)
	require.NoError(t, err)

	staff, err := svc.InviteStaff(ctx, admin, "joao@exemplo.com", "123456", "João")
	require.NoError(t, err)
	assert.Equal(t, []user.Role{user.RoleStaff}, staff.Roles)
	assert.True(t, staff.WasInvitedBy(admin.UserID))
	assert.Equal(t, admin.TenantID, staff.TenantID)

	list, err := svc.ListStaff(ctx, admin)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, staff.ID, list[0].ID)

	login, err := svc.Login(ctx, "joao@exemplo.com", "123456")
	require.NoError(t, err)
	assert.Equal(t, user.RoleStaff, login.Role)
}

func TestAccountService_DeleteStaff(t *testing.T) {
	f, svc, _ := newAccounts(t)
	ctx := context.Background()
	session := signup(t, svc, "ana@exemplo.com")
	admin := adminActor(session)
	_, err := f.billing.ChangePlan(ctx, admin.TenantID, subscription.PlanProfessional)
	require.NoError(t, err)
	staff, err := svc.InviteStaff(ctx, admin, "joao@exemplo.com", "123456", "João")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteStaff(ctx, admin, ""), ErrMissingStaffID)
	assert.ErrorIs(t, svc.DeleteStaff(ctx, Actor{TenantID: admin.TenantID, UserID: "outro-admin"}, staff.ID), ErrNotInvitedByYou)
	assert.ErrorIs(t, svc.DeleteStaff(ctx, admin, "missing"), ErrNotInvitedByYou)

	require.NoError(t, svc.DeleteStaff(ctx, admin, staff.ID))
	_, err = svc.Profile(ctx, staff.ID)
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}
