package repo

import (
	"gorm.io/gorm"

	"github.com/yadhuu06/bitcode-backend/global"
	"github.com/yadhuu06/bitcode-backend/model"
)

type RankingRepo struct {
	DB *gorm.DB
}

func NewRankingRepo(db *gorm.DB) *RankingRepo {
	return &RankingRepo{DB: db}
}

func (r *RankingRepo) GetOrCreate(userID, seasonID int64) (model.Ranking, error) {
	var ranking model.Ranking
	err := r.DB.Where(model.Ranking{UserID: userID, SeasonID: seasonID}).
		Attrs(model.Ranking{Rating: global.DEFAULT_RATING}).
		FirstOrCreate(&ranking).Error
	return ranking, err
}

func (r *RankingRepo) GetByUserSeason(userID, seasonID int64) (model.Ranking, error) {
	var ranking model.Ranking
	err := r.DB.Where("user_id = ? AND season_id = ?", userID, seasonID).First(&ranking).Error
	return ranking, err
}

func (r *RankingRepo) Update(ranking model.Ranking) error {
	return r.DB.Model(&model.Ranking{}).Where("id = ?", ranking.ID).Updates(map[string]interface{}{
		"rating":        ranking.Rating,
		"wins":          ranking.Wins,
		"losses":        ranking.Losses,
		"total_matches": ranking.TotalMatches,
	}).Error
}

func (r *RankingRepo) Top(seasonID int64, limit int) ([]model.Ranking, error) {
	var rankings []model.Ranking
	err := r.DB.Where("season_id = ?", seasonID).Order("rating desc").Limit(limit).Find(&rankings).Error
	return rankings, err
}
