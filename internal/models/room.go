package models

import (
	"gorm.io/datatypes"
)

// Room 房间模型 - 贫血模型，只包含数据结构
// 不变量：AllocatedCount恒等于TenantIDs长度；
// Capacity为0表示不限人数，否则TenantIDs长度不得超过Capacity
type Room struct {
	BaseModel
	RoomNo         string                      `json:"room_no" gorm:"uniqueIndex;not null;size:50"`
	Capacity       int                         `json:"capacity" gorm:"not null;default:0"`
	FloorNo        string                      `json:"floor_no" gorm:"size:20"`
	Comments       string                      `json:"comments" gorm:"size:500"`
	AllocatedCount int                         `json:"allocated_count" gorm:"not null;default:0"`
	TenantIDs      datatypes.JSONSlice[string] `json:"tenant_ids"` // 住户租客PublicID列表
}

// TableName 表名
func (r *Room) TableName() string {
	return "rooms"
}
