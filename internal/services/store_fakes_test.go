package services

import (
	"time"

	"pgmgmt/internal/models"

	"gorm.io/datatypes"
)

// 存储接口的内存假实现，记录写入次数以便断言副作用

type fakeRoomStore struct {
	rooms     map[string]*models.Room
	saveCount int
	findErr   error
	saveErr   error
}

func newFakeRoomStore(rooms ...*models.Room) *fakeRoomStore {
	store := &fakeRoomStore{rooms: make(map[string]*models.Room)}
	for _, room := range rooms {
		store.rooms[room.RoomNo] = cloneRoom(room)
	}
	return store
}

func (f *fakeRoomStore) FindByRoomNo(roomNo string) (*models.Room, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	room, ok := f.rooms[roomNo]
	if !ok {
		return nil, nil
	}
	return cloneRoom(room), nil
}

func (f *fakeRoomStore) FindAll() ([]models.Room, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	rooms := make([]models.Room, 0, len(f.rooms))
	for _, room := range f.rooms {
		rooms = append(rooms, *cloneRoom(room))
	}
	return rooms, nil
}

func (f *fakeRoomStore) Save(room *models.Room) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saveCount++
	f.rooms[room.RoomNo] = cloneRoom(room)
	return nil
}

func (f *fakeRoomStore) Delete(id uint) error {
	for no, room := range f.rooms {
		if room.ID == id {
			delete(f.rooms, no)
			return nil
		}
	}
	return nil
}

func (f *fakeRoomStore) get(roomNo string) *models.Room {
	return f.rooms[roomNo]
}

func cloneRoom(room *models.Room) *models.Room {
	clone := *room
	clone.TenantIDs = append(datatypes.JSONSlice[string]{}, room.TenantIDs...)
	return &clone
}

type fakeTenantStore struct {
	tenants      map[uint]*models.Tenant
	saveCount    int
	saveAllCalls int
	saveAllSize  int
	findErr      error
	saveErr      error
}

func newFakeTenantStore(tenants ...*models.Tenant) *fakeTenantStore {
	store := &fakeTenantStore{tenants: make(map[uint]*models.Tenant)}
	for _, tenant := range tenants {
		clone := *tenant
		store.tenants[tenant.ID] = &clone
	}
	return store
}

func (f *fakeTenantStore) FindByID(id uint) (*models.Tenant, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	tenant, ok := f.tenants[id]
	if !ok {
		return nil, nil
	}
	clone := *tenant
	return &clone, nil
}

func (f *fakeTenantStore) FindByEmail(email string) (*models.Tenant, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, tenant := range f.tenants {
		if tenant.Email == email {
			clone := *tenant
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeTenantStore) FindAll() ([]models.Tenant, error) {
	tenants := make([]models.Tenant, 0, len(f.tenants))
	for _, tenant := range f.tenants {
		tenants = append(tenants, *tenant)
	}
	return tenants, nil
}

func (f *fakeTenantStore) Save(tenant *models.Tenant) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saveCount++
	clone := *tenant
	f.tenants[tenant.ID] = &clone
	return nil
}

func (f *fakeTenantStore) SaveAll(tenants []*models.Tenant) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saveAllCalls++
	f.saveAllSize = len(tenants)
	for _, tenant := range tenants {
		clone := *tenant
		f.tenants[tenant.ID] = &clone
	}
	return nil
}

func (f *fakeTenantStore) Delete(id uint) error {
	delete(f.tenants, id)
	return nil
}

func (f *fakeTenantStore) FindDueEligible() ([]models.Tenant, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	var result []models.Tenant
	for _, tenant := range f.tenants {
		if !tenant.Due && tenant.RenewalDate != nil && tenant.ContinuousStay {
			result = append(result, *tenant)
		}
	}
	return result, nil
}

func (f *fakeTenantStore) FindActiveAssigned() ([]models.Tenant, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	var result []models.Tenant
	for _, tenant := range f.tenants {
		if tenant.IsActive && tenant.RoomNo != nil {
			result = append(result, *tenant)
		}
	}
	return result, nil
}

func (f *fakeTenantStore) FindVacateAlert() ([]models.Tenant, error) {
	var result []models.Tenant
	for _, tenant := range f.tenants {
		if !tenant.ContinuousStay && tenant.RoomNo != nil && tenant.RenewalDate != nil {
			result = append(result, *tenant)
		}
	}
	return result, nil
}

func (f *fakeTenantStore) FindPendingPayment() ([]models.Tenant, error) {
	var result []models.Tenant
	for _, tenant := range f.tenants {
		if tenant.ContinuousStay && tenant.RoomNo != nil && tenant.Due {
			result = append(result, *tenant)
		}
	}
	return result, nil
}

func (f *fakeTenantStore) get(id uint) *models.Tenant {
	return f.tenants[id]
}

type fakeAllocationStatStore struct {
	stats     []*models.AllocationStat
	nextID    uint
	saveCount int
	saveErr   error
}

func newFakeAllocationStatStore() *fakeAllocationStatStore {
	return &fakeAllocationStatStore{nextID: 1}
}

func (f *fakeAllocationStatStore) FindByStatDate(statDate time.Time) (*models.AllocationStat, error) {
	for _, stat := range f.stats {
		if stat.StatDate.Equal(statDate) {
			clone := *stat
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeAllocationStatStore) Save(stat *models.AllocationStat) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saveCount++
	if stat.ID == 0 {
		stat.ID = f.nextID
		f.nextID++
		clone := *stat
		f.stats = append(f.stats, &clone)
		return nil
	}
	for i, existing := range f.stats {
		if existing.ID == stat.ID {
			clone := *stat
			f.stats[i] = &clone
			return nil
		}
	}
	clone := *stat
	f.stats = append(f.stats, &clone)
	return nil
}

func (f *fakeAllocationStatStore) FindAllChronological() ([]models.AllocationStat, error) {
	stats := make([]models.AllocationStat, 0, len(f.stats))
	for _, stat := range f.stats {
		stats = append(stats, *stat)
	}
	return stats, nil
}

type fakeMealStatStore struct {
	stats     []*models.MealStat
	nextID    uint
	saveCount int
	saveErr   error
}

func newFakeMealStatStore() *fakeMealStatStore {
	return &fakeMealStatStore{nextID: 1}
}

func (f *fakeMealStatStore) FindByStatDateAndMealNo(statDate time.Time, mealNo int) (*models.MealStat, error) {
	for _, stat := range f.stats {
		if stat.StatDate.Equal(statDate) && stat.MealNo == mealNo {
			clone := *stat
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeMealStatStore) Save(stat *models.MealStat) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saveCount++
	if stat.ID == 0 {
		stat.ID = f.nextID
		f.nextID++
		clone := *stat
		f.stats = append(f.stats, &clone)
		return nil
	}
	for i, existing := range f.stats {
		if existing.ID == stat.ID {
			clone := *stat
			f.stats[i] = &clone
			return nil
		}
	}
	clone := *stat
	f.stats = append(f.stats, &clone)
	return nil
}

func (f *fakeMealStatStore) FindAllChronological() ([]models.MealStat, error) {
	stats := make([]models.MealStat, 0, len(f.stats))
	for _, stat := range f.stats {
		stats = append(stats, *stat)
	}
	return stats, nil
}
