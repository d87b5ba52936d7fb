package logic

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yadhuu06/bitcode-backend/model"
	"github.com/yadhuu06/bitcode-backend/repo"
	"github.com/yadhuu06/bitcode-backend/response"
	"github.com/yadhuu06/bitcode-backend/types"
)

func TestModeForCapacity(t *testing.T) {
	assert.Equal(t, ModeOneVsOne, ModeForCapacity(2))
	assert.Equal(t, ModeSquad, ModeForCapacity(3))
	assert.Equal(t, ModeSquad, ModeForCapacity(5))
	assert.Equal(t, ModeTeam, ModeForCapacity(6))
	assert.Equal(t, ModeTeam, ModeForCapacity(10))
}

func TestExpectedScore(t *testing.T) {
	assert.InDelta(t, 0.5, expectedScore(1000, 1000), 1e-9)
	// 互为对手的期望胜率之和为1
	assert.InDelta(t, 1.0, expectedScore(1200, 1000)+expectedScore(1000, 1200), 1e-9)
	assert.Greater(t, expectedScore(1200, 1000), 0.75)
}

func TestPositionScore(t *testing.T) {
	assert.InDelta(t, 1.0, positionScore(4, 1), 1e-9)
	assert.InDelta(t, 0.0, positionScore(4, 4), 1e-9)
	assert.InDelta(t, 2.0/3.0, positionScore(4, 2), 1e-9)
	// 单人退化为满分
	assert.InDelta(t, 1.0, positionScore(1, 1), 1e-9)
}

func seedRating(t *testing.T, db *gorm.DB, userID, seasonID int64, rating float64) {
	t.Helper()
	rankingRepo := repo.NewRankingRepo(db)
	ranking, err := rankingRepo.GetOrCreate(userID, seasonID)
	require.NoError(t, err)
	ranking.Rating = rating
	require.NoError(t, rankingRepo.Update(ranking))
}

func getRating(t *testing.T, db *gorm.DB, userID, seasonID int64) model.Ranking {
	t.Helper()
	ranking, err := repo.NewRankingRepo(db).GetByUserSeason(userID, seasonID)
	require.NoError(t, err)
	return ranking
}

func TestSettleOneVsOne(t *testing.T) {
	db := setupTestDB(t)
	seasonID := int64(1)
	seedRating(t, db, 101, seasonID, 1200)
	seedRating(t, db, 102, seasonID, 1000)

	standings := []Standing{
		{UserID: 101, Username: "alice", Position: 1},
		{UserID: 102, Username: "bob", Position: 2},
	}
	err := NewRatingLogic(db).Settle(context.Background(), ModeOneVsOne, seasonID, standings, 101)
	require.NoError(t, err)

	winner := getRating(t, db, 101, seasonID)
	loser := getRating(t, db, 102, seasonID)
	// K=32，1200对1000的期望约0.76，胜者约+7.69
	assert.InDelta(t, 1207.69, winner.Rating, 0.01)
	assert.InDelta(t, 992.31, loser.Rating, 0.01)
	assert.Equal(t, 1, winner.Wins)
	assert.Equal(t, 0, winner.Losses)
	assert.Equal(t, 1, loser.Losses)
	assert.Equal(t, 1, winner.TotalMatches)
	assert.Equal(t, 1, loser.TotalMatches)
}

func TestSettleOneVsOneRejectsBadParticipants(t *testing.T) {
	db := setupTestDB(t)
	ratingLogic := NewRatingLogic(db)

	err := ratingLogic.Settle(context.Background(), ModeOneVsOne, 1, []Standing{
		{UserID: 101, Position: 1},
		{UserID: 102, Position: 2},
		{UserID: 103, Position: 3},
	}, 101)
	require.Error(t, err)
	assert.Equal(t, response.INVALID_PARTICIPANTS.Code, response.CodeOf(err).Code)

	err = ratingLogic.Settle(context.Background(), ModeOneVsOne, 1, []Standing{
		{UserID: 101, Position: 1},
		{UserID: 102, Position: 2},
	}, 999)
	require.Error(t, err)
	assert.Equal(t, response.INVALID_PARTICIPANTS.Code, response.CodeOf(err).Code)
}

func TestSettleSquadByPosition(t *testing.T) {
	db := setupTestDB(t)
	seasonID := int64(1)
	standings := []Standing{
		{UserID: 201, Username: "p1", Position: 1},
		{UserID: 202, Username: "p2", Position: 2},
		{UserID: 203, Username: "p3", Position: 3},
		{UserID: 204, Username: "p4", Position: 4},
	}
	err := NewRatingLogic(db).Settle(context.Background(), ModeSquad, seasonID, standings, 0)
	require.NoError(t, err)

	// 等分起步时期望全是0.5，delta = 32*((4-pos)/3 - 0.5)
	assert.InDelta(t, 1016, getRating(t, db, 201, seasonID).Rating, 0.01)
	assert.InDelta(t, 1000+32.0/6.0, getRating(t, db, 202, seasonID).Rating, 0.01)
	assert.InDelta(t, 1000-32.0/6.0, getRating(t, db, 203, seasonID).Rating, 0.01)
	assert.InDelta(t, 984, getRating(t, db, 204, seasonID).Rating, 0.01)

	// 零和
	total := 0.0
	for _, standing := range standings {
		total += getRating(t, db, standing.UserID, seasonID).Rating
	}
	assert.InDelta(t, 4000, total, 0.01)

	assert.Equal(t, 1, getRating(t, db, 201, seasonID).Wins)
	assert.Equal(t, 1, getRating(t, db, 204, seasonID).Losses)
}

func TestSettleTeamSharesDelta(t *testing.T) {
	db := setupTestDB(t)
	seasonID := int64(1)
	standings := []Standing{
		{UserID: 301, Username: "a1", TeamID: 1, Position: 1},
		{UserID: 302, Username: "a2", TeamID: 1, Position: 1},
		{UserID: 303, Username: "a3", TeamID: 1, Position: 1},
		{UserID: 304, Username: "b1", TeamID: 2, Position: 2},
		{UserID: 305, Username: "b2", TeamID: 2, Position: 2},
		{UserID: 306, Username: "b3", TeamID: 2, Position: 2},
	}
	err := NewRatingLogic(db).Settle(context.Background(), ModeTeam, seasonID, standings, 0)
	require.NoError(t, err)

	// 两队等分起步：胜队每人+16，负队每人-16，同队delta完全一致
	for _, userID := range []int64{301, 302, 303} {
		ranking := getRating(t, db, userID, seasonID)
		assert.InDelta(t, 1016, ranking.Rating, 0.01)
		assert.Equal(t, 1, ranking.Wins)
	}
	for _, userID := range []int64{304, 305, 306} {
		ranking := getRating(t, db, userID, seasonID)
		assert.InDelta(t, 984, ranking.Rating, 0.01)
		assert.Equal(t, 1, ranking.Losses)
	}
}

func TestSettleTeamNeedsTwoTeams(t *testing.T) {
	db := setupTestDB(t)
	err := NewRatingLogic(db).Settle(context.Background(), ModeTeam, 1, []Standing{
		{UserID: 301, TeamID: 1, Position: 1},
		{UserID: 302, TeamID: 1, Position: 1},
	}, 0)
	require.Error(t, err)
	assert.Equal(t, response.INVALID_PARTICIPANTS.Code, response.CodeOf(err).Code)
}

func TestBuildStandingsRanksUnfinishedLast(t *testing.T) {
	participants := []model.RoomParticipant{
		{UserID: 1, Username: "alice"},
		{UserID: 2, Username: "bob"},
		{UserID: 3, Username: "carol"},
		{UserID: 4, Username: "dave"},
	}
	results := []types.ParticipantResult{
		{Username: "carol", Position: 1},
		{Username: "alice", Position: 2},
	}
	standings, winnerID := buildStandings(ModeSquad, participants, results)
	require.Len(t, standings, 4)
	byName := make(map[string]Standing)
	for _, standing := range standings {
		byName[standing.Username] = standing
	}
	assert.Equal(t, 1, byName["carol"].Position)
	assert.Equal(t, 2, byName["alice"].Position)
	// 未完赛者并列在完赛者之后
	assert.Equal(t, 3, byName["bob"].Position)
	assert.Equal(t, 3, byName["dave"].Position)
	assert.Equal(t, int64(3), winnerID)
}

func TestBuildStandingsTeamOrder(t *testing.T) {
	participants := []model.RoomParticipant{
		{UserID: 1, Username: "a1", TeamID: 10},
		{UserID: 2, Username: "a2", TeamID: 10},
		{UserID: 3, Username: "b1", TeamID: 20},
		{UserID: 4, Username: "b2", TeamID: 20},
		{UserID: 5, Username: "c1", TeamID: 30},
		{UserID: 6, Username: "c2", TeamID: 30},
	}
	results := []types.ParticipantResult{
		{Username: "b2", Position: 1},
		{Username: "a1", Position: 2},
	}
	standings, _ := buildStandings(ModeTeam, participants, results)
	byName := make(map[string]Standing)
	for _, standing := range standings {
		byName[standing.Username] = standing
	}
	// 队伍名次按队内首个过题的顺序
	assert.Equal(t, 2, byName["a1"].Position)
	assert.Equal(t, 2, byName["a2"].Position)
	assert.Equal(t, 1, byName["b1"].Position)
	assert.Equal(t, 1, byName["b2"].Position)
	// 无人过题的队伍垫底
	assert.Equal(t, 3, byName["c1"].Position)
	assert.Equal(t, 3, byName["c2"].Position)
}
