package repo

import (
	"gorm.io/gorm"

	"github.com/yadhuu06/bitcode-backend/model"
)

type BattleResultRepo struct {
	DB *gorm.DB
}

func NewBattleResultRepo(db *gorm.DB) *BattleResultRepo {
	return &BattleResultRepo{DB: db}
}

// GetOrCreate 首个通过的提交创建台账，之后的提交复用同一条记录
func (r *BattleResultRepo) GetOrCreate(roomID, questionID int64) (model.BattleResult, error) {
	var result model.BattleResult
	err := r.DB.Where(model.BattleResult{RoomID: roomID, QuestionID: questionID}).
		Attrs(model.BattleResult{Results: "[]"}).
		FirstOrCreate(&result).Error
	return result, err
}

func (r *BattleResultRepo) Get(roomID, questionID int64) (model.BattleResult, error) {
	var result model.BattleResult
	err := r.DB.Where("room_id = ? AND question_id = ?", roomID, questionID).First(&result).Error
	return result, err
}

func (r *BattleResultRepo) GetLatestByRoom(roomID int64) (model.BattleResult, error) {
	var result model.BattleResult
	err := r.DB.Where("room_id = ?", roomID).Order("created_at desc").First(&result).Error
	return result, err
}

func (r *BattleResultRepo) UpdateResults(id int64, results string) error {
	return r.DB.Model(&model.BattleResult{}).Where("id = ?", id).Update("results", results).Error
}
