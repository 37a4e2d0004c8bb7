package services

import (
	"fmt"
	"time"

	"pgmgmt/internal/models"
	"pgmgmt/internal/repository"
	"pgmgmt/pkg/errors"

	"github.com/google/uuid"
)

// TenantService 租客管理服务
// 只负责租客档案本身的增删改查，房间分配一律经由分配引擎
type TenantService struct {
	tenants    repository.TenantStore
	allocation *AllocationService
}

// NewTenantService 创建租客管理服务
func NewTenantService(tenants repository.TenantStore, allocation *AllocationService) *TenantService {
	return &TenantService{
		tenants:    tenants,
		allocation: allocation,
	}
}

// TenantProfileUpdate 租客档案更新，nil字段表示不修改
type TenantProfileUpdate struct {
	Phone          *string
	MealPreference *string
	RenewalDate    *time.Time
	RenewalDateSet bool // 区分"不修改"和"清空续期日"
	ContinuousStay *bool
	Due            *bool
}

// Create 创建租客，邮箱唯一
func (s *TenantService) Create(tenant *models.Tenant) (*models.Tenant, error) {
	existing, err := s.tenants.FindByEmail(tenant.Email)
	if err != nil {
		return nil, fmt.Errorf("查询租客失败: %w", err)
	}
	if existing != nil {
		return nil, errors.ErrEmailExists
	}

	tenant.PublicID = uuid.NewString()
	tenant.RoomNo = nil // 新租客未分配房间，分配走分配引擎
	if err := s.tenants.Save(tenant); err != nil {
		return nil, fmt.Errorf("保存租客失败: %w", err)
	}
	return tenant, nil
}

// GetByID 按主键获取租客，不存在时返回(nil, nil)
func (s *TenantService) GetByID(id uint) (*models.Tenant, error) {
	return s.tenants.FindByID(id)
}

// GetByEmail 按邮箱获取租客，不存在时返回(nil, nil)
func (s *TenantService) GetByEmail(email string) (*models.Tenant, error) {
	return s.tenants.FindByEmail(email)
}

// GetAll 获取全部租客
func (s *TenantService) GetAll() ([]models.Tenant, error) {
	return s.tenants.FindAll()
}

// Update 更新租客基本信息
// RoomNo和PublicID不在此处修改：房间走分配引擎，PublicID不可变
func (s *TenantService) Update(id uint, updated *models.Tenant) (*models.Tenant, error) {
	tenant, err := s.tenants.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("查询租客失败: %w", err)
	}
	if tenant == nil {
		return nil, nil
	}

	if updated.Email != tenant.Email {
		existing, err := s.tenants.FindByEmail(updated.Email)
		if err != nil {
			return nil, fmt.Errorf("查询租客失败: %w", err)
		}
		if existing != nil && existing.ID != id {
			return nil, errors.ErrEmailExists
		}
	}

	tenant.Name = updated.Name
	tenant.Email = updated.Email
	tenant.Phone = updated.Phone
	tenant.PictureURL = updated.PictureURL
	tenant.MealPreference = updated.MealPreference
	tenant.IsActive = updated.IsActive
	tenant.Due = updated.Due
	tenant.ContinuousStay = updated.ContinuousStay
	tenant.RenewalDate = updated.RenewalDate

	if err := s.tenants.Save(tenant); err != nil {
		return nil, fmt.Errorf("保存租客失败: %w", err)
	}
	return tenant, nil
}

// UpdateStatus 更新在住状态
func (s *TenantService) UpdateStatus(id uint, isActive bool) (*models.Tenant, error) {
	tenant, err := s.tenants.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("查询租客失败: %w", err)
	}
	if tenant == nil {
		return nil, nil
	}

	tenant.IsActive = isActive
	if err := s.tenants.Save(tenant); err != nil {
		return nil, fmt.Errorf("保存租客失败: %w", err)
	}
	return tenant, nil
}

// UpdateProfile 局部更新租客档案
// 更新续期日同时清除到期标记，等待下一轮评估重新判定
func (s *TenantService) UpdateProfile(id uint, update *TenantProfileUpdate) (*models.Tenant, error) {
	tenant, err := s.tenants.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("查询租客失败: %w", err)
	}
	if tenant == nil {
		return nil, nil
	}

	if update.Phone != nil {
		tenant.Phone = *update.Phone
	}
	if update.MealPreference != nil {
		tenant.MealPreference = *update.MealPreference
	}
	if update.RenewalDateSet {
		tenant.RenewalDate = update.RenewalDate
		tenant.Due = false
	}
	if update.ContinuousStay != nil {
		tenant.ContinuousStay = *update.ContinuousStay
	}
	if update.Due != nil {
		tenant.Due = *update.Due
	}

	if err := s.tenants.Save(tenant); err != nil {
		return nil, fmt.Errorf("保存租客失败: %w", err)
	}
	return tenant, nil
}

// Delete 删除租客
// 已分配房间的先经分配引擎释放床位，保持房间计数一致
func (s *TenantService) Delete(id uint) error {
	tenant, err := s.tenants.FindByID(id)
	if err != nil {
		return fmt.Errorf("查询租客失败: %w", err)
	}
	if tenant == nil {
		return nil
	}

	if tenant.RoomNo != nil {
		if _, err := s.allocation.ReassignRoom(tenant, nil); err != nil {
			return err
		}
	}

	return s.tenants.Delete(id)
}
