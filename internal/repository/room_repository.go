package repository

import (
	"errors"

	"pgmgmt/internal/models"

	"gorm.io/gorm"
)

// GormRoomStore 房间存储的gorm实现
type GormRoomStore struct {
	db *gorm.DB
}

func NewGormRoomStore(db *gorm.DB) *GormRoomStore {
	return &GormRoomStore{db: db}
}

func (s *GormRoomStore) FindByRoomNo(roomNo string) (*models.Room, error) {
	var room models.Room
	err := s.db.Where("room_no = ?", roomNo).First(&room).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (s *GormRoomStore) FindAll() ([]models.Room, error) {
	var rooms []models.Room
	err := s.db.Order("room_no").Find(&rooms).Error
	return rooms, err
}

func (s *GormRoomStore) Save(room *models.Room) error {
	return s.db.Save(room).Error
}

func (s *GormRoomStore) Delete(id uint) error {
	return s.db.Delete(&models.Room{}, id).Error
}
