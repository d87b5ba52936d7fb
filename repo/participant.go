package repo

import (
	"gorm.io/gorm"

	"github.com/yadhuu06/bitcode-backend/model"
)

type ParticipantRepo struct {
	DB *gorm.DB
}

func NewParticipantRepo(db *gorm.DB) *ParticipantRepo {
	return &ParticipantRepo{DB: db}
}

func (r *ParticipantRepo) Create(participant *model.RoomParticipant) error {
	return r.DB.Create(participant).Error
}

func (r *ParticipantRepo) GetByRoomUser(roomID, userID int64) (model.RoomParticipant, error) {
	var participant model.RoomParticipant
	err := r.DB.Where("room_id = ? AND user_id = ?", roomID, userID).First(&participant).Error
	return participant, err
}

func (r *ParticipantRepo) ListByRoom(roomID int64) ([]model.RoomParticipant, error) {
	var participants []model.RoomParticipant
	err := r.DB.Where("room_id = ?", roomID).Order("created_at asc").Find(&participants).Error
	return participants, err
}

func (r *ParticipantRepo) CountByRoom(roomID int64) (int64, error) {
	var count int64
	err := r.DB.Model(&model.RoomParticipant{}).Where("room_id = ?", roomID).Count(&count).Error
	return count, err
}

func (r *ParticipantRepo) Delete(roomID, userID int64) error {
	return r.DB.Where("room_id = ? AND user_id = ?", roomID, userID).Delete(&model.RoomParticipant{}).Error
}

func (r *ParticipantRepo) UpdatePosition(roomID, userID int64, position int) error {
	return r.DB.Model(&model.RoomParticipant{}).
		Where("room_id = ? AND user_id = ?", roomID, userID).
		Update("position", position).Error
}
