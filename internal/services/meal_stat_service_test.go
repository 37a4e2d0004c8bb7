package services

import (
	"errors"
	"testing"
	"time"

	"pgmgmt/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsVegPreference(t *testing.T) {
	tests := []struct {
		preference string
		want       bool
	}{
		{"Veg", true},
		{" vegetarian ", true},
		{"VEG-", true},
		{"veg etarian", true},
		{"Non-Veg", false},
		{"", false},
		{"chicken", false},
		{"nonveg", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsVegPreference(tt.preference), "preference=%q", tt.preference)
	}
}

func TestComputeActiveSnapshot_FiltersAndCounts(t *testing.T) {
	roomNo := "A1"
	tenants := newFakeTenantStore(
		&models.Tenant{BaseModel: models.BaseModel{ID: 1}, IsActive: true, RoomNo: &roomNo, MealPreference: "Veg"},
		&models.Tenant{BaseModel: models.BaseModel{ID: 2}, IsActive: true, RoomNo: &roomNo, MealPreference: "Non-Veg"},
		&models.Tenant{BaseModel: models.BaseModel{ID: 3}, IsActive: true, RoomNo: &roomNo, MealPreference: ""},
		// 未分配房间或停用的不参与统计
		&models.Tenant{BaseModel: models.BaseModel{ID: 4}, IsActive: true, MealPreference: "Veg"},
		&models.Tenant{BaseModel: models.BaseModel{ID: 5}, IsActive: false, RoomNo: &roomNo, MealPreference: "Veg"},
	)
	svc := NewMealStatService(tenants, newFakeMealStatStore(), time.UTC)

	snapshot, err := svc.ComputeActiveSnapshot()

	require.NoError(t, err)
	assert.Equal(t, int64(3), snapshot.TotalCount)
	assert.Equal(t, int64(1), snapshot.VegCount)
	assert.Equal(t, int64(2), snapshot.NonVegCount)
}

func TestCaptureMealSnapshot_UpsertsByDateAndMeal(t *testing.T) {
	roomNo := "A1"
	tenants := newFakeTenantStore(
		&models.Tenant{BaseModel: models.BaseModel{ID: 1}, IsActive: true, RoomNo: &roomNo, MealPreference: "Veg"},
	)
	stats := newFakeMealStatStore()
	svc := NewMealStatService(tenants, stats, time.UTC)

	statDate := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	first, err := svc.CaptureSnapshot(models.MealBreakfast, statDate)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.VegCount)
	assert.Len(t, stats.stats, 1)

	// 数据变化后重采同一(日期, 餐次)：覆盖同一行
	tenants.tenants[2] = &models.Tenant{BaseModel: models.BaseModel{ID: 2}, IsActive: true, RoomNo: &roomNo, MealPreference: "chicken"}

	second, err := svc.CaptureSnapshot(models.MealBreakfast, statDate)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "重采不产生新行")
	assert.Len(t, stats.stats, 1)
	assert.Equal(t, int64(2), stats.stats[0].TotalCount)
	assert.Equal(t, int64(1), stats.stats[0].NonVegCount)

	// 不同餐次各自独立成行
	_, err = svc.CaptureSnapshot(models.MealLunch, statDate)
	require.NoError(t, err)
	assert.Len(t, stats.stats, 2)
}

func TestCaptureMealSnapshot_NormalizesStatDate(t *testing.T) {
	stats := newFakeMealStatStore()
	svc := NewMealStatService(newFakeTenantStore(), stats, time.UTC)

	// 带时刻的日期与当日零点收敛到同一(日期, 餐次)行
	noon := time.Date(2025, 3, 10, 11, 5, 0, 0, time.UTC)
	first, err := svc.CaptureSnapshot(models.MealLunch, noon)
	require.NoError(t, err)
	assert.True(t, first.StatDate.Equal(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)))

	second, err := svc.CaptureSnapshot(models.MealLunch, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, stats.stats, 1)
}

func TestCaptureMealSnapshot_SaveFailureSurfaces(t *testing.T) {
	storeErr := errors.New("存储不可用")
	stats := newFakeMealStatStore()
	stats.saveErr = storeErr
	svc := NewMealStatService(newFakeTenantStore(), stats, time.UTC)

	_, err := svc.CaptureSnapshot(models.MealBreakfast, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))

	require.ErrorIs(t, err, storeErr)
	assert.Empty(t, stats.stats)
}
