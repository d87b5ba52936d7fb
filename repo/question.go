package repo

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yadhuu06/bitcode-backend/model"
)

type QuestionRepo struct {
	DB *gorm.DB
}

func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{DB: db}
}

func (r *QuestionRepo) GetByID(id int64) (model.Question, error) {
	var question model.Question
	err := r.DB.Where("id = ?", id).First(&question).Error
	return question, err
}

func (r *QuestionRepo) ListTestCases(questionID int64) ([]model.TestCase, error) {
	var testcases []model.TestCase
	err := r.DB.Where("question_id = ?", questionID).Order("id asc").Find(&testcases).Error
	return testcases, err
}

func (r *QuestionRepo) ListVisibleTestCases(questionID int64) ([]model.TestCase, error) {
	var testcases []model.TestCase
	err := r.DB.Where("question_id = ? AND hidden = ?", questionID, false).Order("id asc").Find(&testcases).Error
	return testcases, err
}

func (r *QuestionRepo) Create(question *model.Question) error {
	return r.DB.Create(question).Error
}

func (r *QuestionRepo) CreateTestCases(testcases []model.TestCase) error {
	if len(testcases) == 0 {
		return nil
	}
	return r.DB.Create(&testcases).Error
}

// Upsert 批量导入题目，已存在的按ID覆盖
func (r *QuestionRepo) Upsert(questions []model.Question) error {
	if len(questions) == 0 {
		return nil
	}
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "description", "difficulty"}),
	}).Create(&questions).Error
}
