package logic

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yadhuu06/bitcode-backend/response"
)

func TestGetSeasonRanking(t *testing.T) {
	db := setupTestDB(t)
	season := createTestSeason(t, db)
	user := createTestUser(t, db, "alice")
	rankingLogic := NewRankingLogic()

	// 还没打过排位
	_, err := rankingLogic.GetSeasonRanking(context.Background(), user.ID)
	require.Error(t, err)
	assert.Equal(t, response.RANKING_NOT_EXIST.Code, response.CodeOf(err).Code)

	seedRating(t, db, user.ID, season.ID, 1234)
	resp, err := rankingLogic.GetSeasonRanking(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, season.Name, resp.Season)
	assert.InDelta(t, 1234, resp.Rating, 1e-9)
}

func TestGetGlobalRanking(t *testing.T) {
	db := setupTestDB(t)
	season := createTestSeason(t, db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")
	seedRating(t, db, alice.ID, season.ID, 1100)
	seedRating(t, db, bob.ID, season.ID, 1300)
	seedRating(t, db, carol.ID, season.ID, 900)

	resp, err := NewRankingLogic().GetGlobalRanking(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Rankings, 3)
	// rating降序，rank从1连续编号
	assert.Equal(t, "bob", resp.Rankings[0].Username)
	assert.Equal(t, 1, resp.Rankings[0].Rank)
	assert.Equal(t, "alice", resp.Rankings[1].Username)
	assert.Equal(t, "carol", resp.Rankings[2].Username)
	assert.Equal(t, 3, resp.Rankings[2].Rank)
}

func TestGetGlobalRankingWithoutSeason(t *testing.T) {
	setupTestDB(t)
	_, err := NewRankingLogic().GetGlobalRanking(context.Background())
	require.Error(t, err)
	assert.Equal(t, response.SEASON_NOT_EXIST.Code, response.CodeOf(err).Code)
}
