package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/hugohenrick/erp-estoque/internal/domain/product"
	"github.com/hugohenrick/erp-estoque/internal/domain/subscription"
	"github.com/hugohenrick/erp-estoque/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBillingService_CurrentCreatesTrialOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.billing.Current(ctx, "tenant-1")
	require.NoError(t, err)
	assert.Equal(t, subscription.PlanStarter, first.Plan)
	assert.Equal(t, subscription.StatusTrialing, first.Status)
	require.NotNil(t, first.TrialEndsAt)
	assert.Equal(t, fixedNow.AddDate(0, 0, subscription.TrialDays), *first.TrialEndsAt)

	second, err := f.billing.Current(ctx, "tenant-1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, f.db.subs, 1)
}

func TestBillingService_HasFeature(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ok, err := f.billing.HasFeature(ctx, "tenant-1", subscription.FeatureBarcodeScanning)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.billing.HasFeature(ctx, "tenant-1", subscription.FeatureCSVImportExport)
	require.NoError(t, err)
	assert.False(t, ok)

	f.upgrade(t, subscription.PlanProfessional)
	ok, err = f.billing.HasFeature(ctx, "tenant-1", subscription.FeatureCSVImportExport)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBillingService_ProductLimit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 100; i++ {
		p, err := product.NewProduct("tenant-1", product.Attributes{Name: fmt.Sprintf("Item %d", i), SKU: fmt.Sprintf("SKU-%d", i)})
		require.NoError(t, err)
		f.db.products = append(f.db.products, p)
	}

	assert.ErrorIs(t, f.billing.CheckProductLimit(ctx, "tenant-1"), subscription.ErrProductLimitReached)

	f.upgrade(t, subscription.PlanProfessional)
	assert.NoError(t, f.billing.CheckProductLimit(ctx, "tenant-1"))
}

func TestBillingService_TeamLimitCountsAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.db.users["admin"] = &user.User{ID: "admin", TenantID: "tenant-1", Email: "a@b.c", Roles: []user.Role{user.RoleAdmin}}

	assert.ErrorIs(t, f.billing.CheckTeamLimit(ctx, "tenant-1"), subscription.ErrTeamLimitReached)

	f.upgrade(t, subscription.PlanProfessional)
	assert.NoError(t, f.billing.CheckTeamLimit(ctx, "tenant-1"))
}

func TestBillingService_Overview(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addProduct(t, "Leite", "LEI-1", 3)
	f.db.users["admin"] = &user.User{ID: "admin", TenantID: "tenant-1", Email: "a@b.c"}

	ov, err := f.billing.Overview(ctx, "tenant-1")
	require.NoError(t, err)
	assert.Equal(t, "Starter", ov.Info.DisplayName)
	assert.Equal(t, 1, ov.Usage.Products)
	assert.Equal(t, subscription.Limit(99), ov.Usage.RemainingProducts)
	assert.Equal(t, subscription.Limit(0), ov.Usage.RemainingTeamMembers)
	assert.Equal(t, subscription.TrialDays, ov.TrialDaysRemaining)
	assert.True(t, ov.IsTrialing)
	assert.False(t, ov.IsTrialExpired)
	assert.True(t, ov.IsActive)
}

func TestBillingService_ChangePlan(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sub, err := f.billing.ChangePlan(ctx, "tenant-1", subscription.PlanEnterprise)
	require.NoError(t, err)
	assert.Equal(t, subscription.StatusActive, sub.Status)
	require.NotNil(t, sub.CurrentPeriodEnd)
	assert.Equal(t, fixedNow.AddDate(0, 0, subscription.PeriodDays), *sub.CurrentPeriodEnd)

	stored, err := f.billing.Current(ctx, "tenant-1")
	require.NoError(t, err)
	assert.Equal(t, subscription.PlanEnterprise, stored.Plan)

	_, err = f.billing.ChangePlan(ctx, "tenant-1", subscription.Plan("gold"))
	assert.ErrorIs(t, err, subscription.ErrInvalidPlan)
}
