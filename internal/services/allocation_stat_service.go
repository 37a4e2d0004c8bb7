package services

import (
	"fmt"
	"time"

	"pgmgmt/internal/models"
	"pgmgmt/internal/repository"
	"pgmgmt/pkg/logger"
)

// AllocationSnapshot 当前占用汇总
type AllocationSnapshot struct {
	TotalCapacity  int64 `json:"total_capacity"`
	AllocatedCount int64 `json:"allocated_count"`
	VacantCount    int64 `json:"vacant_count"`
}

// AllocationStatService 房间占用快照服务
type AllocationStatService struct {
	rooms    repository.RoomStore
	stats    repository.AllocationStatStore
	location *time.Location // 统计日期归一时区
}

// NewAllocationStatService 创建占用快照服务
func NewAllocationStatService(rooms repository.RoomStore, stats repository.AllocationStatStore, location *time.Location) *AllocationStatService {
	return &AllocationStatService{
		rooms:    rooms,
		stats:    stats,
		location: location,
	}
}

// ComputeCurrentSnapshot 汇总所有房间的容量与占用，只读不写
// 空位数向下钳制到0，容量为0（不限）的房间不贡献容量
func (s *AllocationStatService) ComputeCurrentSnapshot() (*AllocationSnapshot, error) {
	rooms, err := s.rooms.FindAll()
	if err != nil {
		return nil, fmt.Errorf("查询房间列表失败: %w", err)
	}

	var totalCapacity, allocated int64
	for _, room := range rooms {
		totalCapacity += int64(room.Capacity)
		allocated += int64(room.AllocatedCount)
	}

	vacant := totalCapacity - allocated
	if vacant < 0 {
		vacant = 0
	}

	return &AllocationSnapshot{
		TotalCapacity:  totalCapacity,
		AllocatedCount: allocated,
		VacantCount:    vacant,
	}, nil
}

// CaptureSnapshot 采集指定日期的占用快照
// 时刻部分被丢弃，按统计时区归一到当日零点后作为统计日期；
// 存在则覆盖计数，不存在则新建，同一天重复采集收敛到最新值
func (s *AllocationStatService) CaptureSnapshot(statDate time.Time) (*models.AllocationStat, error) {
	statDate = StartOfDay(statDate, s.location)

	snapshot, err := s.ComputeCurrentSnapshot()
	if err != nil {
		return nil, err
	}

	stat, err := s.stats.FindByStatDate(statDate)
	if err != nil {
		return nil, fmt.Errorf("查询占用快照失败: %w", err)
	}
	if stat == nil {
		stat = &models.AllocationStat{StatDate: statDate}
	}

	stat.TotalCount = snapshot.TotalCapacity
	stat.AllocatedCount = snapshot.AllocatedCount
	stat.VacantCount = snapshot.VacantCount
	stat.CapturedAt = time.Now()

	if err := s.stats.Save(stat); err != nil {
		return nil, fmt.Errorf("保存占用快照失败: %w", err)
	}

	logger.GetLogger().Infof("占用快照已保存 date=%s total=%d allocated=%d vacant=%d",
		statDate.Format("2006-01-02"), stat.TotalCount, stat.AllocatedCount, stat.VacantCount)

	return stat, nil
}

// LoadChronological 按时间顺序加载全部占用快照，供图表使用
func (s *AllocationStatService) LoadChronological() ([]models.AllocationStat, error) {
	return s.stats.FindAllChronological()
}
