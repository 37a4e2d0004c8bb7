package models

import (
	"time"
)

// Tenant 租客模型 - 贫血模型，只包含数据结构
// RoomNo为空表示未分配房间；房间分配只能通过分配引擎修改，
// 保证与Room.TenantIDs双向一致
type Tenant struct {
	BaseModel
	PublicID       string     `json:"public_id" gorm:"type:uuid;uniqueIndex;not null"`
	Name           string     `json:"name" gorm:"size:100"`
	Email          string     `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Phone          string     `json:"phone" gorm:"size:30"`
	PictureURL     string     `json:"picture_url" gorm:"size:500"`
	MealPreference string     `json:"meal_preference" gorm:"size:50"` // Veg / Non-Veg，自由文本
	RoomNo         *string    `json:"room_no" gorm:"size:50;index"`
	Due            bool       `json:"due" gorm:"not null;default:false"`
	IsActive       bool       `json:"is_active" gorm:"not null;default:true"`
	RenewalDate    *time.Time `json:"renewal_date"`
	ContinuousStay bool       `json:"continuous_stay" gorm:"not null;default:false"`
}

// TableName 表名
func (t *Tenant) TableName() string {
	return "tenants"
}
