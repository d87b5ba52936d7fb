package repo

import (
	"gorm.io/gorm"

	"github.com/yadhuu06/bitcode-backend/model"
)

type UserRepo struct {
	DB *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{DB: db}
}

func (r *UserRepo) GetByEmail(email string) (model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	return user, err
}

func (r *UserRepo) GetByUsername(username string) (model.User, error) {
	var user model.User
	err := r.DB.Where("username = ?", username).First(&user).Error
	return user, err
}

func (r *UserRepo) GetByID(id int64) (model.User, error) {
	var user model.User
	err := r.DB.Where("id = ?", id).First(&user).Error
	return user, err
}

func (r *UserRepo) ListByIDs(ids []int64) ([]model.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var users []model.User
	err := r.DB.Where("id IN ?", ids).Find(&users).Error
	return users, err
}

func (r *UserRepo) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepo) UpdateProfile(user model.User) error {
	return r.DB.Model(&model.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
		"username": user.Username,
	}).Error
}

// RecordWin 累计获胜次数并记录获胜时间
func (r *UserRepo) RecordWin(id int64, winTime int64) error {
	return r.DB.Model(&model.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"battles_won": gorm.Expr("battles_won + ?", 1),
		"last_win":    winTime,
	}).Error
}
