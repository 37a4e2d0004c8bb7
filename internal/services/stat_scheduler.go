package services

import (
	"fmt"
	"time"

	"pgmgmt/internal/models"
	"pgmgmt/pkg/config"
	"pgmgmt/pkg/logger"

	"github.com/robfig/cron/v3"
)

// StatScheduler 统计任务调度器
//
// 只负责在固定时区的固定时间点触发各项采集，本身不含业务
// 逻辑：计算"统计时区的今天零点"后转交对应服务。所有采集都
// 是按自然键查找后覆盖的幂等操作，重复触发不会破坏数据。
type StatScheduler struct {
	allocationStats *AllocationStatService
	mealStats       *MealStatService
	tenantDue       *TenantDueService
	schedule        config.ScheduleConfig
	location        *time.Location
	cron            *cron.Cron
	running         bool
}

// NewStatScheduler 创建统计调度器
func NewStatScheduler(
	allocationStats *AllocationStatService,
	mealStats *MealStatService,
	tenantDue *TenantDueService,
	schedule config.ScheduleConfig,
	location *time.Location,
) *StatScheduler {
	return &StatScheduler{
		allocationStats: allocationStats,
		mealStats:       mealStats,
		tenantDue:       tenantDue,
		schedule:        schedule,
		location:        location,
		cron:            cron.New(cron.WithLocation(location)),
	}
}

// Start 启动调度器
func (s *StatScheduler) Start() error {
	if s.running {
		return fmt.Errorf("调度器已经在运行")
	}

	appLogger := logger.GetLogger()
	appLogger.Info("启动统计任务调度器")

	// 重新启动时重建cron实例，避免任务重复注册
	s.cron = cron.New(cron.WithLocation(s.location))

	jobs := []struct {
		spec string
		name string
		fn   func()
	}{
		{s.schedule.AllocationCron, "占用快照", s.runAllocationSnapshot},
		{s.schedule.BreakfastCron, "早餐快照", func() { s.runMealSnapshot(models.MealBreakfast) }},
		{s.schedule.LunchCron, "午餐快照", func() { s.runMealSnapshot(models.MealLunch) }},
		{s.schedule.DinnerCron, "晚餐快照", func() { s.runMealSnapshot(models.MealDinner) }},
		{s.schedule.DueCron, "到期标记", s.runDueEvaluation},
	}

	for _, job := range jobs {
		if _, err := s.cron.AddFunc(job.spec, job.fn); err != nil {
			return fmt.Errorf("注册定时任务[%s]失败: %v", job.name, err)
		}
	}

	s.cron.Start()
	s.running = true

	appLogger.Infof("统计任务调度器启动成功，已注册 %d 个定时任务，时区 %s", len(jobs), s.location)
	return nil
}

// Stop 停止调度器
func (s *StatScheduler) Stop() {
	if !s.running {
		return
	}

	logger.GetLogger().Info("停止统计任务调度器")
	s.cron.Stop()
	s.running = false
}

// runAllocationSnapshot 采集今日占用快照
func (s *StatScheduler) runAllocationSnapshot() {
	statDate := s.referenceDate()
	if _, err := s.allocationStats.CaptureSnapshot(statDate); err != nil {
		logger.GetLogger().Errorf("占用快照采集失败: %v", err)
	}
}

// runMealSnapshot 采集今日指定餐次快照
func (s *StatScheduler) runMealSnapshot(mealNo int) {
	statDate := s.referenceDate()
	if _, err := s.mealStats.CaptureSnapshot(mealNo, statDate); err != nil {
		logger.GetLogger().Errorf("餐饮快照采集失败 meal=%d: %v", mealNo, err)
	}
}

// runDueEvaluation 执行今日到期标记
func (s *StatScheduler) runDueEvaluation() {
	if _, err := s.tenantDue.EvaluateDueStatus(s.referenceDate()); err != nil {
		logger.GetLogger().Errorf("到期评估失败: %v", err)
	}
}

// referenceDate 统计时区的今天零点
func (s *StatScheduler) referenceDate() time.Time {
	return StartOfDay(time.Now(), s.location)
}

// StartOfDay 给定时刻在指定时区内所属日期的零点
func StartOfDay(t time.Time, location *time.Location) time.Time {
	local := t.In(location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, location)
}
