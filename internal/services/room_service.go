package services

import (
	"fmt"
	"strings"

	"pgmgmt/internal/models"
	"pgmgmt/internal/repository"
	"pgmgmt/pkg/errors"
)

// RoomService 房间管理服务
type RoomService struct {
	rooms repository.RoomStore
}

// NewRoomService 创建房间管理服务
func NewRoomService(rooms repository.RoomStore) *RoomService {
	return &RoomService{rooms: rooms}
}

// RoomUpdate 房间局部更新，nil字段表示不修改
type RoomUpdate struct {
	Capacity *int
	FloorNo  *string
	Comments *string
}

// Create 创建房间
// 房间号去除空白后必须非空且唯一；新房间无住户
func (s *RoomService) Create(room *models.Room) (*models.Room, error) {
	room.RoomNo = strings.TrimSpace(room.RoomNo)
	if room.RoomNo == "" {
		return nil, fmt.Errorf("房间号不能为空")
	}
	if room.Capacity < 0 {
		return nil, fmt.Errorf("容量不能为负数")
	}
	room.FloorNo = strings.TrimSpace(room.FloorNo)

	existing, err := s.rooms.FindByRoomNo(room.RoomNo)
	if err != nil {
		return nil, fmt.Errorf("查询房间失败: %w", err)
	}
	if existing != nil {
		return nil, errors.ErrRoomNoExists
	}

	room.AllocatedCount = 0
	room.TenantIDs = nil
	if err := s.rooms.Save(room); err != nil {
		return nil, fmt.Errorf("保存房间失败: %w", err)
	}
	return room, nil
}

// GetAll 获取全部房间
func (s *RoomService) GetAll() ([]models.Room, error) {
	return s.rooms.FindAll()
}

// GetByRoomNo 按房间号获取房间，不存在时返回(nil, nil)
func (s *RoomService) GetByRoomNo(roomNo string) (*models.Room, error) {
	return s.rooms.FindByRoomNo(strings.TrimSpace(roomNo))
}

// Update 局部更新房间属性
// 房间号和住户列表不在此处修改：住户列表归分配引擎管理，
// 房间号是租客侧引用的外键，改号会破坏双向一致
func (s *RoomService) Update(roomNo string, update *RoomUpdate) (*models.Room, error) {
	room, err := s.rooms.FindByRoomNo(strings.TrimSpace(roomNo))
	if err != nil {
		return nil, fmt.Errorf("查询房间失败: %w", err)
	}
	if room == nil {
		return nil, nil
	}

	if update.Capacity != nil {
		if *update.Capacity < 0 {
			return nil, fmt.Errorf("容量不能为负数")
		}
		// 容量不得压到现有住户数以下，0表示改为不限
		if *update.Capacity > 0 && *update.Capacity < len(room.TenantIDs) {
			return nil, errors.ErrRoomAtCapacity
		}
		room.Capacity = *update.Capacity
	}
	if update.FloorNo != nil {
		room.FloorNo = strings.TrimSpace(*update.FloorNo)
	}
	if update.Comments != nil {
		room.Comments = strings.TrimSpace(*update.Comments)
	}

	if err := s.rooms.Save(room); err != nil {
		return nil, fmt.Errorf("保存房间失败: %w", err)
	}
	return room, nil
}

// Delete 删除房间，仍有住户时拒绝
func (s *RoomService) Delete(roomNo string) error {
	room, err := s.rooms.FindByRoomNo(strings.TrimSpace(roomNo))
	if err != nil {
		return fmt.Errorf("查询房间失败: %w", err)
	}
	if room == nil {
		return nil
	}

	if len(room.TenantIDs) > 0 {
		return errors.ErrRoomOccupied
	}

	return s.rooms.Delete(room.ID)
}
