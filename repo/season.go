package repo

import (
	"gorm.io/gorm"

	"github.com/yadhuu06/bitcode-backend/model"
)

type SeasonRepo struct {
	DB *gorm.DB
}

func NewSeasonRepo(db *gorm.DB) *SeasonRepo {
	return &SeasonRepo{DB: db}
}

func (r *SeasonRepo) GetActive() (model.Season, error) {
	var season model.Season
	err := r.DB.Where("is_active = ?", true).First(&season).Error
	return season, err
}

func (r *SeasonRepo) Create(season *model.Season) error {
	return r.DB.Create(season).Error
}
