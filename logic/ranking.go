package logic

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/yadhuu06/bitcode-backend/global"
	"github.com/yadhuu06/bitcode-backend/repo"
	"github.com/yadhuu06/bitcode-backend/response"
	"github.com/yadhuu06/bitcode-backend/types"
)

const globalRankingLimit = 100

type RankingLogic struct {
}

func NewRankingLogic() *RankingLogic {
	return &RankingLogic{}
}

// GetSeasonRanking 查自己在当前赛季的rating档案
func (l *RankingLogic) GetSeasonRanking(ctx context.Context, userID int64) (resp types.SeasonRankingResp, err error) {
	_ = ctx
	if userID == 0 {
		return resp, response.ErrResp(errors.New("param blank"), response.PARAM_NOT_COMPLETE)
	}
	user, err := repo.NewUserRepo(global.DB).GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return resp, response.ErrResp(err, response.MEMBER_NOT_EXIST)
		}
		return resp, response.ErrResp(err, response.DATABASE_ERROR)
	}
	season, err := repo.NewSeasonRepo(global.DB).GetActive()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return resp, response.ErrResp(err, response.SEASON_NOT_EXIST)
		}
		return resp, response.ErrResp(err, response.DATABASE_ERROR)
	}
	ranking, err := repo.NewRankingRepo(global.DB).GetByUserSeason(userID, season.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return resp, response.ErrResp(err, response.RANKING_NOT_EXIST)
		}
		return resp, response.ErrResp(err, response.DATABASE_ERROR)
	}
	return types.SeasonRankingResp{
		Username:     user.Username,
		Season:       season.Name,
		Rating:       ranking.Rating,
		Wins:         ranking.Wins,
		Losses:       ranking.Losses,
		TotalMatches: ranking.TotalMatches,
	}, nil
}

// GetGlobalRanking 当前赛季rating榜前100
func (l *RankingLogic) GetGlobalRanking(ctx context.Context) (resp types.GlobalRankingResp, err error) {
	_ = ctx
	season, err := repo.NewSeasonRepo(global.DB).GetActive()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return resp, response.ErrResp(err, response.SEASON_NOT_EXIST)
		}
		return resp, response.ErrResp(err, response.DATABASE_ERROR)
	}
	rankings, err := repo.NewRankingRepo(global.DB).Top(season.ID, globalRankingLimit)
	if err != nil {
		return resp, response.ErrResp(err, response.DATABASE_ERROR)
	}
	userIDs := make([]int64, 0, len(rankings))
	for _, ranking := range rankings {
		userIDs = append(userIDs, ranking.UserID)
	}
	users, err := repo.NewUserRepo(global.DB).ListByIDs(userIDs)
	if err != nil {
		return resp, response.ErrResp(err, response.DATABASE_ERROR)
	}
	usernames := make(map[int64]string, len(users))
	for _, user := range users {
		usernames[user.ID] = user.Username
	}
	items := make([]types.GlobalRankingItem, 0, len(rankings))
	for i, ranking := range rankings {
		items = append(items, types.GlobalRankingItem{
			Rank:     i + 1,
			Username: usernames[ranking.UserID],
			Rating:   ranking.Rating,
			Wins:     ranking.Wins,
		})
	}
	resp.Season = season.Name
	resp.Rankings = items
	return resp, nil
}
