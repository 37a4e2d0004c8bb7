package handlers

import (
	"time"

	"pgmgmt/internal/models"
	"pgmgmt/internal/services"
	"pgmgmt/pkg/response"

	"github.com/gin-gonic/gin"
)

// DashboardHandler 仪表盘处理器
type DashboardHandler struct {
	dashboard       *services.DashboardService
	allocationStats *services.AllocationStatService
	mealStats       *services.MealStatService
	location        *time.Location
}

// NewDashboardHandler 创建仪表盘处理器实例
func NewDashboardHandler(
	dashboard *services.DashboardService,
	allocationStats *services.AllocationStatService,
	mealStats *services.MealStatService,
	location *time.Location,
) *DashboardHandler {
	return &DashboardHandler{
		dashboard:       dashboard,
		allocationStats: allocationStats,
		mealStats:       mealStats,
		location:        location,
	}
}

// GetSummary 获取仪表盘汇总
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	summary, err := h.dashboard.LoadSummary(c.Request.Context())
	if err != nil {
		response.ServerError(c, "加载仪表盘失败")
		return
	}
	response.Success(c, summary)
}

// GetMealStats 获取餐饮快照时间线
func (h *DashboardHandler) GetMealStats(c *gin.Context) {
	stats, err := h.dashboard.LoadMealTimeline()
	if err != nil {
		response.ServerError(c, "查询失败")
		return
	}
	response.Success(c, stats)
}

// GetAllocationStats 获取占用快照时间线
func (h *DashboardHandler) GetAllocationStats(c *gin.Context) {
	stats, err := h.dashboard.LoadAllocationTimeline()
	if err != nil {
		response.ServerError(c, "查询失败")
		return
	}
	response.Success(c, stats)
}

// CaptureToday 手动补采今日快照
// 采集是幂等覆盖，定时任务失败后可随时重触发
func (h *DashboardHandler) CaptureToday(c *gin.Context) {
	statDate := services.StartOfDay(time.Now(), h.location)

	allocation, err := h.allocationStats.CaptureSnapshot(statDate)
	if err != nil {
		response.ServerError(c, "占用快照采集失败")
		return
	}

	meals := make([]*models.MealStat, 0, 3)
	for _, mealNo := range []int{models.MealBreakfast, models.MealLunch, models.MealDinner} {
		stat, err := h.mealStats.CaptureSnapshot(mealNo, statDate)
		if err != nil {
			response.ServerError(c, "餐饮快照采集失败")
			return
		}
		meals = append(meals, stat)
	}

	response.Success(c, gin.H{
		"allocation": allocation,
		"meals":      meals,
	})
}
