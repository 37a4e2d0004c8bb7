package services

import (
	"errors"
	"testing"
	"time"

	"pgmgmt/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dueTenant(id uint, renewal time.Time) *models.Tenant {
	tenant := &models.Tenant{
		Due:            false,
		ContinuousStay: true,
		RenewalDate:    &renewal,
	}
	tenant.ID = id
	return tenant
}

func TestEvaluateDueStatus_DateBoundaries(t *testing.T) {
	ref := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	tenants := newFakeTenantStore(
		dueTenant(1, ref),                   // 续期日当天：标记
		dueTenant(2, ref.AddDate(0, 0, 1)),  // 明天到期：不动
		dueTenant(3, ref.AddDate(0, 0, -1)), // 昨天已过：标记
	)
	svc := NewTenantDueService(tenants, time.UTC)

	flipped, err := svc.EvaluateDueStatus(ref)

	require.NoError(t, err)
	assert.Equal(t, 2, flipped)
	assert.True(t, tenants.get(1).Due)
	assert.False(t, tenants.get(2).Due)
	assert.True(t, tenants.get(3).Due)
	assert.Equal(t, 1, tenants.saveAllCalls)
	assert.Equal(t, 2, tenants.saveAllSize, "只保存翻转的租客")
}

func TestEvaluateDueStatus_RenewalTimeOfDayIgnored(t *testing.T) {
	ref := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	// 当天深夜的续期时刻仍算当天
	tenants := newFakeTenantStore(
		dueTenant(1, time.Date(2025, 3, 10, 23, 30, 0, 0, time.UTC)),
	)
	svc := NewTenantDueService(tenants, time.UTC)

	flipped, err := svc.EvaluateDueStatus(ref)

	require.NoError(t, err)
	assert.Equal(t, 1, flipped)
	assert.True(t, tenants.get(1).Due)
}

func TestEvaluateDueStatus_EmptyCandidatesNoWrite(t *testing.T) {
	// 已标记、无续期日或非连续居住的都不是候选
	renewal := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	alreadyDue := dueTenant(1, renewal)
	alreadyDue.Due = true
	noRenewal := &models.Tenant{ContinuousStay: true}
	noRenewal.ID = 2
	vacating := dueTenant(3, renewal)
	vacating.ContinuousStay = false

	tenants := newFakeTenantStore(alreadyDue, noRenewal, vacating)
	svc := NewTenantDueService(tenants, time.UTC)

	flipped, err := svc.EvaluateDueStatus(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.Zero(t, flipped)
	assert.Zero(t, tenants.saveAllCalls, "空候选集不触发批量保存")
}

func TestEvaluateDueStatus_NoFlipsNoWrite(t *testing.T) {
	ref := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	tenants := newFakeTenantStore(
		dueTenant(1, ref.AddDate(0, 0, 7)),
		dueTenant(2, ref.AddDate(0, 1, 0)),
	)
	svc := NewTenantDueService(tenants, time.UTC)

	flipped, err := svc.EvaluateDueStatus(ref)

	require.NoError(t, err)
	assert.Zero(t, flipped)
	assert.Zero(t, tenants.saveAllCalls, "无人翻转不触发批量保存")
	assert.False(t, tenants.get(1).Due)
}

func TestEvaluateDueStatus_SaveFailureSurfaces(t *testing.T) {
	storeErr := errors.New("存储不可用")
	ref := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	tenants := newFakeTenantStore(dueTenant(1, ref))
	tenants.saveErr = storeErr
	svc := NewTenantDueService(tenants, time.UTC)

	flipped, err := svc.EvaluateDueStatus(ref)

	require.ErrorIs(t, err, storeErr)
	assert.Zero(t, flipped)
	assert.False(t, tenants.get(1).Due, "保存失败时存储侧未提交")
}
