package models

import (
	"time"
)

// AllocationStat 每日房间占用快照
// StatDate为统计时区当日零点，每天唯一一条，重复采集覆盖旧值
type AllocationStat struct {
	BaseModel
	StatDate       time.Time `json:"stat_date" gorm:"uniqueIndex;not null"`
	TotalCount     int64     `json:"total_count" gorm:"not null;default:0"`
	AllocatedCount int64     `json:"allocated_count" gorm:"not null;default:0"`
	VacantCount    int64     `json:"vacant_count" gorm:"not null;default:0"`
	CapturedAt     time.Time `json:"captured_at"`
}

// TableName 表名
func (s *AllocationStat) TableName() string {
	return "allocation_stats"
}
