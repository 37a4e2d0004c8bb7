package models

import (
	"time"
)

// 餐次编号
const (
	MealBreakfast = 1
	MealLunch     = 2
	MealDinner    = 3
)

// MealStat 每日餐饮偏好快照
// (StatDate, MealNo)复合唯一，每个餐次独立一条记录
type MealStat struct {
	BaseModel
	StatDate    time.Time `json:"stat_date" gorm:"uniqueIndex:idx_stat_date_meal;not null"`
	MealNo      int       `json:"meal_no" gorm:"uniqueIndex:idx_stat_date_meal;not null"`
	TotalCount  int64     `json:"total_count" gorm:"not null;default:0"`
	VegCount    int64     `json:"veg_count" gorm:"not null;default:0"`
	NonVegCount int64     `json:"non_veg_count" gorm:"not null;default:0"`
	CapturedAt  time.Time `json:"captured_at"`
}

// TableName 表名
func (s *MealStat) TableName() string {
	return "meal_stats"
}
