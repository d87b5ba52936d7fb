package repo

import (
	"gorm.io/gorm"

	"github.com/yadhuu06/bitcode-backend/global"
	"github.com/yadhuu06/bitcode-backend/model"
)

type RoomRepo struct {
	DB *gorm.DB
}

func NewRoomRepo(db *gorm.DB) *RoomRepo {
	return &RoomRepo{DB: db}
}

func (r *RoomRepo) Create(room *model.Room) error {
	return r.DB.Create(room).Error
}

func (r *RoomRepo) GetByID(id int64) (model.Room, error) {
	var room model.Room
	err := r.DB.Where("id = ?", id).First(&room).Error
	return room, err
}

func (r *RoomRepo) List(offset, limit int, status *int8) ([]model.Room, int64, error) {
	query := r.DB.Model(&model.Room{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}
	var rooms []model.Room
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&rooms).Error
	return rooms, count, err
}

func (r *RoomRepo) ListActive() ([]model.Room, error) {
	var rooms []model.Room
	err := r.DB.Where("status = ?", global.ROOM_STATUS_ACTIVE).Order("created_at asc").Find(&rooms).Error
	return rooms, err
}

// Start 等待中的房间置为进行中并写入开始时间，返回是否由本次调用完成转换
func (r *RoomRepo) Start(id int64, startTime int64) (bool, error) {
	result := r.DB.Model(&model.Room{}).
		Where("id = ? AND status = ?", id, global.ROOM_STATUS_WAITING).
		Updates(map[string]interface{}{
			"status":     global.ROOM_STATUS_ACTIVE,
			"start_time": startTime,
		})
	return result.RowsAffected > 0, result.Error
}

// Complete 进行中的房间置为已结束，CAS保证超时与满额两条路径只有一个生效
func (r *RoomRepo) Complete(id int64, endTime int64) (bool, error) {
	result := r.DB.Model(&model.Room{}).
		Where("id = ? AND status = ?", id, global.ROOM_STATUS_ACTIVE).
		Updates(map[string]interface{}{
			"status":   global.ROOM_STATUS_COMPLETED,
			"end_time": endTime,
		})
	return result.RowsAffected > 0, result.Error
}
