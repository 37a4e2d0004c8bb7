package services

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"pgmgmt/internal/models"
	"pgmgmt/internal/repository"
	"pgmgmt/pkg/errors"
	"pgmgmt/pkg/logger"
)

// AllocationService 房间分配引擎
// 维护租客与房间的双向不变量：Tenant.RoomNo非空当且仅当
// 该租客的PublicID出现在对应房间的TenantIDs中，且
// Room.AllocatedCount恒等于TenantIDs长度。
//
// 容量校验和两次房间写入之间没有跨文档事务，改用按房间号的
// 互斥锁串行化（见roomLock），同一房间的并发改派在进程内排队。
type AllocationService struct {
	rooms   repository.RoomStore
	tenants repository.TenantStore

	mu    sync.Mutex
	locks map[string]*sync.Mutex // roomNo -> 房间锁
}

// NewAllocationService 创建分配引擎
func NewAllocationService(rooms repository.RoomStore, tenants repository.TenantStore) *AllocationService {
	return &AllocationService{
		rooms:   rooms,
		tenants: tenants,
		locks:   make(map[string]*sync.Mutex),
	}
}

// ReassignRoom 变更租客的房间分配
//
// requestedRoomNo为nil或空白表示取消分配。校验失败时整个操作
// 中止，两侧存储均不产生写入；校验通过后最多写入两个房间和
// 一条租客记录。
func (s *AllocationService) ReassignRoom(tenant *models.Tenant, requestedRoomNo *string) (*models.Tenant, error) {
	existingRoomNo := normalizeRoomNo(tenant.RoomNo)
	newRoomNo := normalizeRoomNo(requestedRoomNo)

	// 目标与现状一致，无操作
	if equalRoomNo(existingRoomNo, newRoomNo) {
		return tenant, nil
	}

	unlock := s.lockRooms(existingRoomNo, newRoomNo)
	defer unlock()

	// 先完成全部校验，旧房间在校验通过前不动
	var newRoom *models.Room
	if newRoomNo != nil {
		room, err := s.rooms.FindByRoomNo(*newRoomNo)
		if err != nil {
			return nil, fmt.Errorf("查询房间失败: %w", err)
		}
		if room == nil {
			return nil, errors.ErrRoomNotFound
		}
		if !canAssign(room, tenant.PublicID) {
			return nil, errors.ErrRoomAtCapacity
		}
		newRoom = room
	}

	if existingRoomNo != nil {
		if err := s.removeFromRoom(*existingRoomNo, tenant.PublicID); err != nil {
			return nil, err
		}
	}

	if newRoom != nil {
		if err := s.addToRoom(newRoom, tenant.PublicID); err != nil {
			return nil, err
		}
		tenant.RoomNo = newRoomNo
	} else {
		tenant.RoomNo = nil
	}

	if err := s.tenants.Save(tenant); err != nil {
		return nil, fmt.Errorf("保存租客失败: %w", err)
	}

	logger.GetLogger().Infof("租客 %s 房间变更: %s -> %s",
		tenant.PublicID, roomNoOrDash(existingRoomNo), roomNoOrDash(newRoomNo))

	return tenant, nil
}

// canAssign 容量校验：已是住户（幂等）、不限容量或尚有空位时允许
func canAssign(room *models.Room, tenantID string) bool {
	if containsID(room.TenantIDs, tenantID) {
		return true
	}
	if room.Capacity <= 0 {
		return true
	}
	return len(room.TenantIDs) < room.Capacity
}

// addToRoom 将租客加入房间住户列表并同步计数
func (s *AllocationService) addToRoom(room *models.Room, tenantID string) error {
	if !containsID(room.TenantIDs, tenantID) {
		room.TenantIDs = append(room.TenantIDs, tenantID)
	}
	room.AllocatedCount = len(room.TenantIDs)
	if err := s.rooms.Save(room); err != nil {
		return fmt.Errorf("保存房间失败: %w", err)
	}
	return nil
}

// removeFromRoom 将租客移出旧房间并同步计数
// 计数与列表不一致时即使没有移除任何元素也回写修复
func (s *AllocationService) removeFromRoom(roomNo, tenantID string) error {
	room, err := s.rooms.FindByRoomNo(roomNo)
	if err != nil {
		return fmt.Errorf("查询房间失败: %w", err)
	}
	if room == nil {
		// 旧房间记录已不存在，只需清掉租客侧的引用
		return nil
	}

	ids := make([]string, 0, len(room.TenantIDs))
	removed := false
	for _, id := range room.TenantIDs {
		if id == tenantID {
			removed = true
			continue
		}
		ids = append(ids, id)
	}

	if !removed && room.AllocatedCount == len(ids) {
		return nil
	}

	room.TenantIDs = ids
	room.AllocatedCount = len(ids)
	if err := s.rooms.Save(room); err != nil {
		return fmt.Errorf("保存房间失败: %w", err)
	}
	return nil
}

// lockRooms 按房间号加锁，固定按字典序加锁避免死锁
func (s *AllocationService) lockRooms(roomNos ...*string) func() {
	keys := make([]string, 0, len(roomNos))
	for _, no := range roomNos {
		if no == nil {
			continue
		}
		duplicate := false
		for _, k := range keys {
			if k == *no {
				duplicate = true
				break
			}
		}
		if !duplicate {
			keys = append(keys, *no)
		}
	}
	sort.Strings(keys)

	muxes := make([]*sync.Mutex, 0, len(keys))
	for _, key := range keys {
		mux := s.roomLock(key)
		mux.Lock()
		muxes = append(muxes, mux)
	}

	return func() {
		for i := len(muxes) - 1; i >= 0; i-- {
			muxes[i].Unlock()
		}
	}
}

func (s *AllocationService) roomLock(roomNo string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	mux, ok := s.locks[roomNo]
	if !ok {
		mux = &sync.Mutex{}
		s.locks[roomNo] = mux
	}
	return mux
}

// normalizeRoomNo 去除首尾空白，空串视为未分配
func normalizeRoomNo(roomNo *string) *string {
	if roomNo == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*roomNo)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func equalRoomNo(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func roomNoOrDash(roomNo *string) string {
	if roomNo == nil {
		return "-"
	}
	return *roomNo
}
