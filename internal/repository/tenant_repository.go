package repository

import (
	"errors"

	"pgmgmt/internal/models"

	"gorm.io/gorm"
)

// GormTenantStore 租客存储的gorm实现
type GormTenantStore struct {
	db *gorm.DB
}

func NewGormTenantStore(db *gorm.DB) *GormTenantStore {
	return &GormTenantStore{db: db}
}

func (s *GormTenantStore) FindByID(id uint) (*models.Tenant, error) {
	var tenant models.Tenant
	err := s.db.First(&tenant, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

func (s *GormTenantStore) FindByEmail(email string) (*models.Tenant, error) {
	var tenant models.Tenant
	err := s.db.Where("email = ?", email).First(&tenant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

func (s *GormTenantStore) FindAll() ([]models.Tenant, error) {
	var tenants []models.Tenant
	err := s.db.Order("name").Find(&tenants).Error
	return tenants, err
}

func (s *GormTenantStore) Save(tenant *models.Tenant) error {
	return s.db.Save(tenant).Error
}

func (s *GormTenantStore) SaveAll(tenants []*models.Tenant) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, tenant := range tenants {
			if err := tx.Save(tenant).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *GormTenantStore) Delete(id uint) error {
	return s.db.Delete(&models.Tenant{}, id).Error
}

func (s *GormTenantStore) FindDueEligible() ([]models.Tenant, error) {
	var tenants []models.Tenant
	err := s.db.
		Where("due = ? AND renewal_date IS NOT NULL AND continuous_stay = ?", false, true).
		Find(&tenants).Error
	return tenants, err
}

func (s *GormTenantStore) FindActiveAssigned() ([]models.Tenant, error) {
	var tenants []models.Tenant
	err := s.db.
		Where("is_active = ? AND room_no IS NOT NULL", true).
		Find(&tenants).Error
	return tenants, err
}

func (s *GormTenantStore) FindVacateAlert() ([]models.Tenant, error) {
	var tenants []models.Tenant
	err := s.db.
		Where("continuous_stay = ? AND room_no IS NOT NULL AND renewal_date IS NOT NULL", false).
		Order("renewal_date ASC").
		Find(&tenants).Error
	return tenants, err
}

func (s *GormTenantStore) FindPendingPayment() ([]models.Tenant, error) {
	var tenants []models.Tenant
	err := s.db.
		Where("continuous_stay = ? AND room_no IS NOT NULL AND due = ?", true, true).
		Order("renewal_date ASC").
		Find(&tenants).Error
	return tenants, err
}
