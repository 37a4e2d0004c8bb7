package repository

import (
	"errors"
	"time"

	"pgmgmt/internal/models"

	"gorm.io/gorm"
)

// GormAllocationStatStore 占用快照存储的gorm实现
type GormAllocationStatStore struct {
	db *gorm.DB
}

func NewGormAllocationStatStore(db *gorm.DB) *GormAllocationStatStore {
	return &GormAllocationStatStore{db: db}
}

func (s *GormAllocationStatStore) FindByStatDate(statDate time.Time) (*models.AllocationStat, error) {
	var stat models.AllocationStat
	err := s.db.Where("stat_date = ?", statDate).First(&stat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &stat, nil
}

func (s *GormAllocationStatStore) Save(stat *models.AllocationStat) error {
	return s.db.Save(stat).Error
}

func (s *GormAllocationStatStore) FindAllChronological() ([]models.AllocationStat, error) {
	var stats []models.AllocationStat
	err := s.db.Order("stat_date ASC").Find(&stats).Error
	return stats, err
}

// GormMealStatStore 餐饮快照存储的gorm实现
type GormMealStatStore struct {
	db *gorm.DB
}

func NewGormMealStatStore(db *gorm.DB) *GormMealStatStore {
	return &GormMealStatStore{db: db}
}

func (s *GormMealStatStore) FindByStatDateAndMealNo(statDate time.Time, mealNo int) (*models.MealStat, error) {
	var stat models.MealStat
	err := s.db.Where("stat_date = ? AND meal_no = ?", statDate, mealNo).First(&stat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &stat, nil
}

func (s *GormMealStatStore) Save(stat *models.MealStat) error {
	return s.db.Save(stat).Error
}

func (s *GormMealStatStore) FindAllChronological() ([]models.MealStat, error) {
	var stats []models.MealStat
	err := s.db.Order("stat_date ASC, meal_no ASC").Find(&stats).Error
	return stats, err
}
