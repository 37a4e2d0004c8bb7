package services

import (
	"fmt"
	"strings"
	"time"

	"pgmgmt/internal/models"
	"pgmgmt/internal/repository"
	"pgmgmt/pkg/logger"
)

// MealSnapshot 当前餐饮偏好汇总
type MealSnapshot struct {
	TotalCount  int64 `json:"total_count"`
	VegCount    int64 `json:"veg_count"`
	NonVegCount int64 `json:"non_veg_count"`
}

// MealStatService 餐饮偏好快照服务
type MealStatService struct {
	tenants  repository.TenantStore
	stats    repository.MealStatStore
	location *time.Location // 统计日期归一时区
}

// NewMealStatService 创建餐饮快照服务
func NewMealStatService(tenants repository.TenantStore, stats repository.MealStatStore, location *time.Location) *MealStatService {
	return &MealStatService{
		tenants:  tenants,
		stats:    stats,
		location: location,
	}
}

// ComputeActiveSnapshot 统计在住且已分配房间租客的餐饮偏好
// 素食判定见IsVegPreference，非素食数 = 总数 - 素食数
func (s *MealStatService) ComputeActiveSnapshot() (*MealSnapshot, error) {
	tenants, err := s.tenants.FindActiveAssigned()
	if err != nil {
		return nil, fmt.Errorf("查询在住租客失败: %w", err)
	}

	total := int64(len(tenants))
	var veg int64
	for _, tenant := range tenants {
		if IsVegPreference(tenant.MealPreference) {
			veg++
		}
	}

	return &MealSnapshot{
		TotalCount:  total,
		VegCount:    veg,
		NonVegCount: total - veg,
	}, nil
}

// CaptureSnapshot 采集指定餐次与日期的餐饮快照
// 时刻部分被丢弃，按统计时区归一到当日零点后作为统计日期；
// (日期, 餐次)唯一，存在则覆盖，不存在则新建
func (s *MealStatService) CaptureSnapshot(mealNo int, statDate time.Time) (*models.MealStat, error) {
	statDate = StartOfDay(statDate, s.location)

	snapshot, err := s.ComputeActiveSnapshot()
	if err != nil {
		return nil, err
	}

	stat, err := s.stats.FindByStatDateAndMealNo(statDate, mealNo)
	if err != nil {
		return nil, fmt.Errorf("查询餐饮快照失败: %w", err)
	}
	if stat == nil {
		stat = &models.MealStat{StatDate: statDate, MealNo: mealNo}
	}

	stat.TotalCount = snapshot.TotalCount
	stat.VegCount = snapshot.VegCount
	stat.NonVegCount = snapshot.NonVegCount
	stat.CapturedAt = time.Now()

	if err := s.stats.Save(stat); err != nil {
		return nil, fmt.Errorf("保存餐饮快照失败: %w", err)
	}

	logger.GetLogger().Infof("餐饮快照已保存 date=%s meal=%d total=%d veg=%d nonVeg=%d",
		statDate.Format("2006-01-02"), mealNo, stat.TotalCount, stat.VegCount, stat.NonVegCount)

	return stat, nil
}

// LoadChronological 按(日期, 餐次)顺序加载全部餐饮快照
func (s *MealStatService) LoadChronological() ([]models.MealStat, error) {
	return s.stats.FindAllChronological()
}

// IsVegPreference 素食偏好判定
// 忽略大小写、空格和连字符后等于veg或vegetarian视为素食，
// 其余取值（包括空值）一律计入非素食
func IsVegPreference(preference string) bool {
	normalized := strings.ToLower(preference)
	normalized = strings.ReplaceAll(normalized, " ", "")
	normalized = strings.ReplaceAll(normalized, "-", "")
	return normalized == "veg" || normalized == "vegetarian"
}
