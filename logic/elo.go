package logic

import (
	"context"
	"errors"
	"math"

	"gorm.io/gorm"

	"github.com/yadhuu06/bitcode-backend/model"
	"github.com/yadhuu06/bitcode-backend/repo"
	"github.com/yadhuu06/bitcode-backend/response"
)

// BattleMode 按房间容量解析一次，之后显式传递，不在引擎内部再按容量分支
type BattleMode int8

const (
	ModeOneVsOne BattleMode = iota + 1
	ModeSquad
	ModeTeam
)

func ModeForCapacity(capacity int) BattleMode {
	switch {
	case capacity <= 2:
		return ModeOneVsOne
	case capacity <= 5:
		return ModeSquad
	default:
		return ModeTeam
	}
}

const eloKFactor = 32.0

// Standing 结算输入：一名参赛者及其名次。
// 团队模式下Position为所在队伍的名次，同队成员相同。
type Standing struct {
	UserID   int64
	Username string
	TeamID   int64
	Position int
}

type RatingLogic struct {
	db *gorm.DB
}

func NewRatingLogic(db *gorm.DB) *RatingLogic {
	return &RatingLogic{db: db}
}

// expectedScore 标准Elo期望胜率
func expectedScore(rating, opponent float64) float64 {
	return 1 / (1 + math.Pow(10, (opponent-rating)/400))
}

// positionScore 名次映射到[0,1]：第1名1.0，最后一名0.0
func positionScore(total, position int) float64 {
	if total <= 1 {
		return 1
	}
	return float64(total-position) / float64(total-1)
}

// Settle 对一个房间做一次rating结算，每个房间只允许结算一次，由调用方的完成CAS保证
func (l *RatingLogic) Settle(ctx context.Context, mode BattleMode, seasonID int64, standings []Standing, winnerID int64) error {
	_ = ctx
	switch mode {
	case ModeOneVsOne:
		return l.settleOneVsOne(seasonID, standings, winnerID)
	case ModeSquad:
		return l.settleSquad(seasonID, standings)
	case ModeTeam:
		return l.settleTeam(seasonID, standings)
	default:
		return response.ErrResp(errors.New("unknown battle mode"), response.INTERNAL_ERROR)
	}
}

func (l *RatingLogic) settleOneVsOne(seasonID int64, standings []Standing, winnerID int64) error {
	if len(standings) != 2 {
		return response.ErrResp(errors.New("1v1 room must have exactly 2 participants"), response.INVALID_PARTICIPANTS)
	}
	var winner, loser Standing
	if standings[0].UserID == winnerID {
		winner, loser = standings[0], standings[1]
	} else if standings[1].UserID == winnerID {
		winner, loser = standings[1], standings[0]
	} else {
		return response.ErrResp(errors.New("winner is not a participant"), response.INVALID_PARTICIPANTS)
	}
	rankingRepo := repo.NewRankingRepo(l.db)
	winnerRank, err := rankingRepo.GetOrCreate(winner.UserID, seasonID)
	if err != nil {
		return response.ErrResp(err, response.DATABASE_ERROR)
	}
	loserRank, err := rankingRepo.GetOrCreate(loser.UserID, seasonID)
	if err != nil {
		return response.ErrResp(err, response.DATABASE_ERROR)
	}

	expectedWinner := expectedScore(winnerRank.Rating, loserRank.Rating)
	expectedLoser := expectedScore(loserRank.Rating, winnerRank.Rating)
	winnerRank.Rating += eloKFactor * (1 - expectedWinner)
	loserRank.Rating += eloKFactor * (0 - expectedLoser)
	winnerRank.Wins++
	loserRank.Losses++
	winnerRank.TotalMatches++
	loserRank.TotalMatches++

	return l.persist([]model.Ranking{winnerRank, loserRank})
}

func (l *RatingLogic) settleSquad(seasonID int64, standings []Standing) error {
	if len(standings) < 2 {
		return response.ErrResp(errors.New("squad room needs at least 2 participants"), response.INVALID_PARTICIPANTS)
	}
	rankings, err := l.loadRankings(seasonID, standings)
	if err != nil {
		return err
	}
	// 先读完全部rating再计算，避免把同一次结算中已更新的值当作对手的当前分
	ratings := make([]float64, len(standings))
	for i, standing := range standings {
		ratings[i] = rankings[standing.UserID].Rating
	}
	for i, standing := range standings {
		expected := 0.0
		for j := range standings {
			if j == i {
				continue
			}
			expected += expectedScore(ratings[i], ratings[j])
		}
		expected /= float64(len(standings) - 1)
		actual := positionScore(len(standings), standing.Position)

		ranking := rankings[standing.UserID]
		ranking.Rating += eloKFactor * (actual - expected)
		ranking.TotalMatches++
		if standing.Position == 1 {
			ranking.Wins++
		} else {
			ranking.Losses++
		}
		rankings[standing.UserID] = ranking
	}
	return l.persistMap(rankings, standings)
}

func (l *RatingLogic) settleTeam(seasonID int64, standings []Standing) error {
	teams := make(map[int64][]Standing)
	order := make([]int64, 0)
	for _, standing := range standings {
		if _, ok := teams[standing.TeamID]; !ok {
			order = append(order, standing.TeamID)
		}
		teams[standing.TeamID] = append(teams[standing.TeamID], standing)
	}
	if len(teams) < 2 {
		return response.ErrResp(errors.New("team room needs at least 2 teams"), response.INVALID_PARTICIPANTS)
	}
	rankings, err := l.loadRankings(seasonID, standings)
	if err != nil {
		return err
	}

	// 队伍分为成员当前rating的平均值
	teamRatings := make(map[int64]float64, len(teams))
	for teamID, members := range teams {
		total := 0.0
		for _, member := range members {
			total += rankings[member.UserID].Rating
		}
		teamRatings[teamID] = total / float64(len(members))
	}

	for _, teamID := range order {
		members := teams[teamID]
		expected := 0.0
		for _, oppTeamID := range order {
			if oppTeamID == teamID {
				continue
			}
			expected += expectedScore(teamRatings[teamID], teamRatings[oppTeamID])
		}
		expected /= float64(len(teams) - 1)
		teamPosition := members[0].Position
		actual := positionScore(len(teams), teamPosition)
		delta := eloKFactor * (actual - expected)

		// 同队成员拿到完全相同的rating变化
		for _, member := range members {
			ranking := rankings[member.UserID]
			ranking.Rating += delta
			ranking.TotalMatches++
			if teamPosition == 1 {
				ranking.Wins++
			} else {
				ranking.Losses++
			}
			rankings[member.UserID] = ranking
		}
	}
	return l.persistMap(rankings, standings)
}

func (l *RatingLogic) loadRankings(seasonID int64, standings []Standing) (map[int64]model.Ranking, error) {
	rankingRepo := repo.NewRankingRepo(l.db)
	rankings := make(map[int64]model.Ranking, len(standings))
	for _, standing := range standings {
		ranking, err := rankingRepo.GetOrCreate(standing.UserID, seasonID)
		if err != nil {
			return nil, response.ErrResp(err, response.DATABASE_ERROR)
		}
		rankings[standing.UserID] = ranking
	}
	return rankings, nil
}

func (l *RatingLogic) persist(rankings []model.Ranking) error {
	err := l.db.Transaction(func(tx *gorm.DB) error {
		txRepo := repo.NewRankingRepo(tx)
		for _, ranking := range rankings {
			if err := txRepo.Update(ranking); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return response.ErrResp(err, response.DATABASE_ERROR)
	}
	return nil
}

func (l *RatingLogic) persistMap(rankings map[int64]model.Ranking, standings []Standing) error {
	items := make([]model.Ranking, 0, len(standings))
	for _, standing := range standings {
		items = append(items, rankings[standing.UserID])
	}
	return l.persist(items)
}
