package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pgmgmt/internal/models"
	"pgmgmt/internal/repository"
	"pgmgmt/pkg/logger"

	"github.com/go-redis/redis/v8"
)

const dashboardCacheKey = "pgmgmt:dashboard:summary"

// DashboardCounts 仪表盘核心计数
type DashboardCounts struct {
	TotalActive       int64 `json:"total_active"`
	VegCount          int64 `json:"veg_count"`
	NonVegCount       int64 `json:"non_veg_count"`
	TotalCapacity     int64 `json:"total_capacity"`
	AllocatedCapacity int64 `json:"allocated_capacity"`
	VacantCapacity    int64 `json:"vacant_capacity"`
}

// TenantSummary 仪表盘租客摘要
type TenantSummary struct {
	ID          uint       `json:"id"`
	Name        string     `json:"name"`
	RoomNo      *string    `json:"room_no"`
	RenewalDate *time.Time `json:"renewal_date"`
}

// DashboardSummary 仪表盘汇总响应
type DashboardSummary struct {
	Counts          DashboardCounts `json:"counts"`
	VacateAlerts    []TenantSummary `json:"vacate_alerts"`
	PendingPayments []TenantSummary `json:"pending_payments"`
}

// DashboardService 汇聚租客、餐饮和占用数据供管理端展示
type DashboardService struct {
	tenants         repository.TenantStore
	mealStats       *MealStatService
	allocationStats *AllocationStatService
	cache           *redis.Client
	cacheTTL        time.Duration
}

// NewDashboardService 创建仪表盘服务
// cache可以为nil，此时每次请求都重新计算
func NewDashboardService(
	tenants repository.TenantStore,
	mealStats *MealStatService,
	allocationStats *AllocationStatService,
	cache *redis.Client,
	cacheTTL time.Duration,
) *DashboardService {
	return &DashboardService{
		tenants:         tenants,
		mealStats:       mealStats,
		allocationStats: allocationStats,
		cache:           cache,
		cacheTTL:        cacheTTL,
	}
}

// LoadSummary 加载仪表盘汇总
// 结果在Redis中按固定键短期缓存，只靠TTL过期，不做主动失效
func (s *DashboardService) LoadSummary(ctx context.Context) (*DashboardSummary, error) {
	if cached := s.loadCached(ctx); cached != nil {
		return cached, nil
	}

	mealSnapshot, err := s.mealStats.ComputeActiveSnapshot()
	if err != nil {
		return nil, err
	}

	allocationSnapshot, err := s.allocationStats.ComputeCurrentSnapshot()
	if err != nil {
		return nil, err
	}

	vacate, err := s.tenants.FindVacateAlert()
	if err != nil {
		return nil, fmt.Errorf("查询退租提醒租客失败: %w", err)
	}

	pending, err := s.tenants.FindPendingPayment()
	if err != nil {
		return nil, fmt.Errorf("查询待缴费租客失败: %w", err)
	}

	summary := &DashboardSummary{
		Counts: DashboardCounts{
			TotalActive:       mealSnapshot.TotalCount,
			VegCount:          mealSnapshot.VegCount,
			NonVegCount:       mealSnapshot.NonVegCount,
			TotalCapacity:     allocationSnapshot.TotalCapacity,
			AllocatedCapacity: allocationSnapshot.AllocatedCount,
			VacantCapacity:    allocationSnapshot.VacantCount,
		},
		VacateAlerts:    mapTenantSummaries(vacate),
		PendingPayments: mapTenantSummaries(pending),
	}

	s.storeCached(ctx, summary)
	return summary, nil
}

// LoadMealTimeline 餐饮快照时间线
func (s *DashboardService) LoadMealTimeline() ([]models.MealStat, error) {
	return s.mealStats.LoadChronological()
}

// LoadAllocationTimeline 占用快照时间线
func (s *DashboardService) LoadAllocationTimeline() ([]models.AllocationStat, error) {
	return s.allocationStats.LoadChronological()
}

// loadCached 读缓存，任何失败都按未命中处理
func (s *DashboardService) loadCached(ctx context.Context) *DashboardSummary {
	if s.cache == nil {
		return nil
	}

	raw, err := s.cache.Get(ctx, dashboardCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.GetLogger().Warnf("读取仪表盘缓存失败: %v", err)
		}
		return nil
	}

	var summary DashboardSummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		logger.GetLogger().Warnf("解析仪表盘缓存失败: %v", err)
		return nil
	}
	return &summary
}

// storeCached 写缓存，失败只记日志不影响响应
func (s *DashboardService) storeCached(ctx context.Context, summary *DashboardSummary) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}

	raw, err := json.Marshal(summary)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, dashboardCacheKey, raw, s.cacheTTL).Err(); err != nil {
		logger.GetLogger().Warnf("写入仪表盘缓存失败: %v", err)
	}
}

func mapTenantSummaries(tenants []models.Tenant) []TenantSummary {
	summaries := make([]TenantSummary, 0, len(tenants))
	for _, tenant := range tenants {
		summaries = append(summaries, TenantSummary{
			ID:          tenant.ID,
			Name:        tenant.Name,
			RoomNo:      tenant.RoomNo,
			RenewalDate: tenant.RenewalDate,
		})
	}
	return summaries
}
