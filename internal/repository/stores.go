package repository

import (
	"time"

	"pgmgmt/internal/models"
)

// 存储接口层：核心服务只依赖这些接口，构造时注入，
// 不直接持有全局数据库句柄，便于替换实现和测试

// RoomStore 房间存储
type RoomStore interface {
	// FindByRoomNo 按房间号查找，不存在时返回(nil, nil)
	FindByRoomNo(roomNo string) (*models.Room, error)
	FindAll() ([]models.Room, error)
	Save(room *models.Room) error
	Delete(id uint) error
}

// TenantStore 租客存储
type TenantStore interface {
	// FindByID 按主键查找，不存在时返回(nil, nil)
	FindByID(id uint) (*models.Tenant, error)
	// FindByEmail 按邮箱查找，不存在时返回(nil, nil)
	FindByEmail(email string) (*models.Tenant, error)
	FindAll() ([]models.Tenant, error)
	Save(tenant *models.Tenant) error
	SaveAll(tenants []*models.Tenant) error
	Delete(id uint) error

	// FindDueEligible 到期评估候选集：due=false且设置了续期日且连续居住
	FindDueEligible() ([]models.Tenant, error)
	// FindActiveAssigned 在住且已分配房间的租客
	FindActiveAssigned() ([]models.Tenant, error)
	// FindVacateAlert 计划退租提醒：非连续居住、已分配房间、设置了续期日，按续期日升序
	FindVacateAlert() ([]models.Tenant, error)
	// FindPendingPayment 待缴费：连续居住、已分配房间、due=true，按续期日升序
	FindPendingPayment() ([]models.Tenant, error)
}

// AllocationStatStore 占用快照存储
type AllocationStatStore interface {
	// FindByStatDate 按统计日期查找，不存在时返回(nil, nil)
	FindByStatDate(statDate time.Time) (*models.AllocationStat, error)
	Save(stat *models.AllocationStat) error
	FindAllChronological() ([]models.AllocationStat, error)
}

// MealStatStore 餐饮快照存储
type MealStatStore interface {
	// FindByStatDateAndMealNo 按(统计日期, 餐次)查找，不存在时返回(nil, nil)
	FindByStatDateAndMealNo(statDate time.Time, mealNo int) (*models.MealStat, error)
	Save(stat *models.MealStat) error
	FindAllChronological() ([]models.MealStat, error)
}
