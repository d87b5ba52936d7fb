package logic

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yadhuu06/bitcode-backend/global"
	"github.com/yadhuu06/bitcode-backend/repo"
	"github.com/yadhuu06/bitcode-backend/response"
	"github.com/yadhuu06/bitcode-backend/types"
)

func submitReq(roomID, questionID int64, code string) types.BattleSubmitReq {
	return types.BattleSubmitReq{
		RoomID:     strconv.FormatInt(roomID, 10),
		QuestionID: strconv.FormatInt(questionID, 10),
		Code:       code,
		Language:   "python",
	}
}

func TestProcessSubmissionCompletesDuel(t *testing.T) {
	db := setupTestDB(t)
	season := createTestSeason(t, db)
	userA := createTestUser(t, db, "alice")
	userB := createTestUser(t, db, "bob")
	question := createTestQuestion(t, db)
	room := createTestRoom(t, db, userA, question.ID, 2, 30, true)
	joinTestRoom(t, db, room, userB, 0)
	activateTestRoom(t, db, room.ID, time.Minute)

	notifier := &fakeNotifier{}
	battleLogic := NewBattleLogicWith(&fakeVerifier{}, notifier)

	result, err := battleLogic.ProcessSubmission(context.Background(), userA.ID, submitReq(room.ID, question.ID, "def pass(): ..."))
	require.NoError(t, err)
	assert.True(t, result.AllPassed)
	assert.Equal(t, 1, result.Position)

	// 容量2只留一个胜者名额，首个过题即完赛
	got, err := repo.NewRoomRepo(db).GetByID(room.ID)
	require.NoError(t, err)
	assert.Equal(t, global.ROOM_STATUS_COMPLETED, got.Status)
	assert.NotZero(t, got.EndTime)

	completed := notifier.eventsOfType("battle_completed")
	require.Len(t, completed, 1)
	event, ok := completed[0].Data.(types.BattleCompletedEvent)
	require.True(t, ok)
	require.Len(t, event.Winners, 1)
	assert.Equal(t, "alice", event.Winners[0].Username)
	assert.Equal(t, 2, event.RoomCapacity)
	assert.Empty(t, notifier.eventsOfType("code_verified"))

	// 排位房完赛即结算rating，胜者加分败者扣分
	rankingRepo := repo.NewRankingRepo(db)
	winnerRank, err := rankingRepo.GetByUserSeason(userA.ID, season.ID)
	require.NoError(t, err)
	loserRank, err := rankingRepo.GetByUserSeason(userB.ID, season.ID)
	require.NoError(t, err)
	assert.Greater(t, winnerRank.Rating, global.DEFAULT_RATING)
	assert.Less(t, loserRank.Rating, global.DEFAULT_RATING)
	assert.Equal(t, 1, winnerRank.Wins)
	assert.Equal(t, 1, loserRank.Losses)

	winner, err := repo.NewUserRepo(db).GetByID(userA.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, winner.BattlesWon)
}

func TestProcessSubmissionFailedRunNotRecorded(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "alice")
	question := createTestQuestion(t, db)
	room := createTestRoom(t, db, user, question.ID, 2, 30, false)
	activateTestRoom(t, db, room.ID, time.Minute)

	notifier := &fakeNotifier{}
	battleLogic := NewBattleLogicWith(&fakeVerifier{}, notifier)

	result, err := battleLogic.ProcessSubmission(context.Background(), user.ID, submitReq(room.ID, question.ID, "def wrong(): ..."))
	require.NoError(t, err)
	assert.False(t, result.AllPassed)
	assert.Zero(t, result.Position)

	// 未全过不进台账，房间保持进行中
	got, err := repo.NewRoomRepo(db).GetByID(room.ID)
	require.NoError(t, err)
	assert.Equal(t, global.ROOM_STATUS_ACTIVE, got.Status)
	_, err = repo.NewBattleResultRepo(db).Get(room.ID, question.ID)
	assert.Error(t, err)
	assert.Empty(t, notifier.events)
}

func TestDuplicateSuccessIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "alice")
	question := createTestQuestion(t, db)
	room := createTestRoom(t, db, user, question.ID, 5, 30, false)
	activateTestRoom(t, db, room.ID, time.Minute)

	notifier := &fakeNotifier{}
	battleLogic := NewBattleLogicWith(&fakeVerifier{}, notifier)

	first, err := battleLogic.ProcessSubmission(context.Background(), user.ID, submitReq(room.ID, question.ID, "pass"))
	require.NoError(t, err)
	assert.Equal(t, 1, first.Position)

	second, err := battleLogic.ProcessSubmission(context.Background(), user.ID, submitReq(room.ID, question.ID, "pass"))
	require.NoError(t, err)
	assert.True(t, second.AllPassed)
	assert.Equal(t, 1, second.Position)
	assert.NotEmpty(t, second.Message)

	record, err := repo.NewBattleResultRepo(db).Get(room.ID, question.ID)
	require.NoError(t, err)
	results, err := parseResults(record.Results)
	require.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Len(t, notifier.eventsOfType("code_verified"), 1)
}

func TestDuplicateSuccessAfterRenameStillIdempotent(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "alice")
	question := createTestQuestion(t, db)
	room := createTestRoom(t, db, user, question.ID, 5, 30, false)
	activateTestRoom(t, db, room.ID, time.Minute)

	notifier := &fakeNotifier{}
	battleLogic := NewBattleLogicWith(&fakeVerifier{}, notifier)

	first, err := battleLogic.ProcessSubmission(context.Background(), user.ID, submitReq(room.ID, question.ID, "pass"))
	require.NoError(t, err)
	assert.Equal(t, 1, first.Position)

	// 台账身份取入座时的快照，过题后改名也不能再占一个名次
	user.Username = "alice-renamed"
	require.NoError(t, repo.NewUserRepo(db).UpdateProfile(user))

	second, err := battleLogic.ProcessSubmission(context.Background(), user.ID, submitReq(room.ID, question.ID, "pass"))
	require.NoError(t, err)
	assert.Equal(t, 1, second.Position)
	assert.NotEmpty(t, second.Message)

	record, err := repo.NewBattleResultRepo(db).Get(room.ID, question.ID)
	require.NoError(t, err)
	results, err := parseResults(record.Results)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "alice", results[0].Username)
}

func TestConcurrentSubmissionsGetDensePositions(t *testing.T) {
	db := setupTestDB(t)
	question := createTestQuestion(t, db)
	owner := createTestUser(t, db, "user0")
	room := createTestRoom(t, db, owner, question.ID, 10, 30, false)
	users := []int64{owner.ID}
	for i := 1; i < 3; i++ {
		user := createTestUser(t, db, "user"+strconv.Itoa(i))
		joinTestRoom(t, db, room, user, 0)
		users = append(users, user.ID)
	}
	activateTestRoom(t, db, room.ID, time.Minute)

	notifier := &fakeNotifier{}
	battleLogic := NewBattleLogicWith(&fakeVerifier{}, notifier)

	var wg sync.WaitGroup
	for _, userID := range users {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_, err := battleLogic.ProcessSubmission(context.Background(), id, submitReq(room.ID, question.ID, "pass"))
			assert.NoError(t, err)
		}(userID)
	}
	wg.Wait()

	record, err := repo.NewBattleResultRepo(db).Get(room.ID, question.ID)
	require.NoError(t, err)
	results, err := parseResults(record.Results)
	require.NoError(t, err)
	require.Len(t, results, 3)
	seen := make(map[int]bool)
	for _, entry := range results {
		seen[entry.Position] = true
	}
	// 名次必须是连续且互不重复的1..3
	assert.Equal(t, map[int]bool{1: true, 2: true, 3: true}, seen)

	// 容量10的名额是3，第3个过题触发且只触发一次完赛广播
	got, err := repo.NewRoomRepo(db).GetByID(room.ID)
	require.NoError(t, err)
	assert.Equal(t, global.ROOM_STATUS_COMPLETED, got.Status)
	assert.Len(t, notifier.eventsOfType("battle_completed"), 1)
}

func TestSubmissionAfterTimeout(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "alice")
	question := createTestQuestion(t, db)
	room := createTestRoom(t, db, user, question.ID, 2, 1, false)
	activateTestRoom(t, db, room.ID, 2*time.Minute)

	notifier := &fakeNotifier{}
	battleLogic := NewBattleLogicWith(&fakeVerifier{}, notifier)

	_, err := battleLogic.ProcessSubmission(context.Background(), user.ID, submitReq(room.ID, question.ID, "pass"))
	require.Error(t, err)
	assert.Equal(t, response.TIME_LIMIT_EXCEEDED.Code, response.CodeOf(err).Code)

	// 超时提交触发超时完赛，空胜者广播
	got, err := repo.NewRoomRepo(db).GetByID(room.ID)
	require.NoError(t, err)
	assert.Equal(t, global.ROOM_STATUS_COMPLETED, got.Status)
	completed := notifier.eventsOfType("battle_completed")
	require.Len(t, completed, 1)
	event, ok := completed[0].Data.(types.BattleCompletedEvent)
	require.True(t, ok)
	assert.Empty(t, event.Winners)
}

func TestCompleteByTimeoutIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "alice")
	question := createTestQuestion(t, db)
	room := createTestRoom(t, db, user, question.ID, 2, 1, false)
	activateTestRoom(t, db, room.ID, 2*time.Minute)

	notifier := &fakeNotifier{}
	battleLogic := NewBattleLogicWith(&fakeVerifier{}, notifier)

	require.NoError(t, battleLogic.CompleteByTimeout(context.Background(), room.ID))
	require.NoError(t, battleLogic.CompleteByTimeout(context.Background(), room.ID))
	assert.Len(t, notifier.eventsOfType("battle_completed"), 1)

	// 完赛后房间锁条目被回收
	roomLocks.mu.Lock()
	_, held := roomLocks.locks[room.ID]
	roomLocks.mu.Unlock()
	assert.False(t, held)
}

func TestSubmissionStateGates(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "alice")
	question := createTestQuestion(t, db)
	battleLogic := NewBattleLogicWith(&fakeVerifier{}, &fakeNotifier{})

	waiting := createTestRoom(t, db, user, question.ID, 2, 30, false)
	_, err := battleLogic.ProcessSubmission(context.Background(), user.ID, submitReq(waiting.ID, question.ID, "pass"))
	require.Error(t, err)
	assert.Equal(t, response.BATTLE_NOT_STARTED.Code, response.CodeOf(err).Code)

	ended := createTestRoom(t, db, user, question.ID, 2, 30, false)
	activateTestRoom(t, db, ended.ID, time.Minute)
	_, err = repo.NewRoomRepo(db).Complete(ended.ID, time.Now().Unix())
	require.NoError(t, err)
	_, err = battleLogic.ProcessSubmission(context.Background(), user.ID, submitReq(ended.ID, question.ID, "pass"))
	require.Error(t, err)
	assert.Equal(t, response.BATTLE_ALREADY_ENDED.Code, response.CodeOf(err).Code)

	_, err = battleLogic.ProcessSubmission(context.Background(), user.ID, submitReq(404404, question.ID, "pass"))
	require.Error(t, err)
	assert.Equal(t, response.ROOM_NOT_EXIST.Code, response.CodeOf(err).Code)

	// 非房间成员不能提交
	outsider := createTestUser(t, db, "outsider")
	active := createTestRoom(t, db, user, question.ID, 2, 30, false)
	activateTestRoom(t, db, active.ID, time.Minute)
	_, err = battleLogic.ProcessSubmission(context.Background(), outsider.ID, submitReq(active.ID, question.ID, "pass"))
	require.Error(t, err)
	assert.Equal(t, response.NOT_ROOM_MEMBER.Code, response.CodeOf(err).Code)
}

func TestJudgeErrorPassthrough(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "alice")
	question := createTestQuestion(t, db)
	room := createTestRoom(t, db, user, question.ID, 2, 30, false)
	activateTestRoom(t, db, room.ID, time.Minute)

	judgeErr := errors.New("sandbox boom")
	battleLogic := NewBattleLogicWith(&fakeVerifier{err: judgeErr}, &fakeNotifier{})

	result, err := battleLogic.ProcessSubmission(context.Background(), user.ID, submitReq(room.ID, question.ID, "pass"))
	require.Error(t, err)
	assert.Equal(t, response.JUDGE_ERROR.Code, response.CodeOf(err).Code)
	// 判题服务报告的信息原样回传
	assert.Equal(t, "judge unavailable", result.Message)
}

func TestGetBattleQuestionHidesHiddenCases(t *testing.T) {
	db := setupTestDB(t)
	question := createTestQuestion(t, db)
	battleLogic := NewBattleLogicWith(&fakeVerifier{}, &fakeNotifier{})

	resp, err := battleLogic.GetBattleQuestion(context.Background(), types.BattleQuestionReq{
		QuestionID: strconv.FormatInt(question.ID, 10),
	})
	require.NoError(t, err)
	assert.Equal(t, question.Title, resp.Question.Title)
	require.Len(t, resp.TestCases, 1)
	assert.Equal(t, "1 2", resp.TestCases[0].Input)
}
