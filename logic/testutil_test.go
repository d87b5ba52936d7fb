package logic

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yadhuu06/bitcode-backend/global"
	"github.com/yadhuu06/bitcode-backend/model"
	"github.com/yadhuu06/bitcode-backend/repo"
	"github.com/yadhuu06/bitcode-backend/types"
)

func init() {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	global.Node = node
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, model.MigrateTables(db))
	global.DB = db
	t.Cleanup(func() {
		global.DB = nil
		_ = sqlDB.Close()
	})
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) model.User {
	t.Helper()
	user := model.User{
		Email:    username + "@test.local",
		Password: "x",
		Username: username,
	}
	require.NoError(t, repo.NewUserRepo(db).Create(&user))
	return user
}

func createTestQuestion(t *testing.T, db *gorm.DB) model.Question {
	t.Helper()
	question := model.Question{
		Title:       "两数之和",
		Description: "给定数组和目标值，返回两数下标",
		Difficulty:  1,
	}
	require.NoError(t, repo.NewQuestionRepo(db).Create(&question))
	testcases := []model.TestCase{
		{QuestionID: question.ID, Input: "1 2", Expected: "3"},
		{QuestionID: question.ID, Input: "4 5", Expected: "9", Hidden: true},
	}
	require.NoError(t, repo.NewQuestionRepo(db).CreateTestCases(testcases))
	return question
}

func createTestRoom(t *testing.T, db *gorm.DB, owner model.User, questionID int64, capacity, timeLimit int, ranked bool) model.Room {
	t.Helper()
	room := model.Room{
		Name:       "测试房间",
		Capacity:   capacity,
		TimeLimit:  timeLimit,
		Status:     global.ROOM_STATUS_WAITING,
		IsRanked:   ranked,
		OwnerID:    owner.ID,
		QuestionID: questionID,
	}
	require.NoError(t, repo.NewRoomRepo(db).Create(&room))
	joinTestRoom(t, db, room, owner, 0)
	return room
}

func joinTestRoom(t *testing.T, db *gorm.DB, room model.Room, user model.User, teamID int64) {
	t.Helper()
	require.NoError(t, repo.NewParticipantRepo(db).Create(&model.RoomParticipant{
		RoomID:   room.ID,
		UserID:   user.ID,
		Username: user.Username,
		TeamID:   teamID,
	}))
}

// activateTestRoom 把房间置为进行中，startedAgo控制已经开赛多久
func activateTestRoom(t *testing.T, db *gorm.DB, roomID int64, startedAgo time.Duration) {
	t.Helper()
	err := db.Model(&model.Room{}).Where("id = ?", roomID).Updates(map[string]interface{}{
		"status":     global.ROOM_STATUS_ACTIVE,
		"start_time": time.Now().Add(-startedAgo).Unix(),
	}).Error
	require.NoError(t, err)
}

func createTestSeason(t *testing.T, db *gorm.DB) model.Season {
	t.Helper()
	season := model.Season{Name: "测试赛季", IsActive: true}
	require.NoError(t, repo.NewSeasonRepo(db).Create(&season))
	return season
}

// fakeVerifier 代码包含pass即判全过
type fakeVerifier struct {
	err error
}

func (f *fakeVerifier) Verify(ctx context.Context, code, language string, testcases []model.TestCase) (types.VerifyResult, error) {
	if f.err != nil {
		return types.VerifyResult{Message: "judge unavailable"}, f.err
	}
	passed := strings.Contains(code, "pass")
	passedCases := 0
	if passed {
		passedCases = len(testcases)
	}
	return types.VerifyResult{
		AllPassed:   passed,
		TotalCases:  len(testcases),
		PassedCases: passedCases,
	}, nil
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []types.WsResponse
}

func (f *fakeNotifier) SendToRoom(roomID int64, resp types.WsResponse) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, resp)
}

func (f *fakeNotifier) eventsOfType(msgType string) []types.WsResponse {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []types.WsResponse
	for _, event := range f.events {
		if event.Type == msgType {
			out = append(out, event)
		}
	}
	return out
}
