package logic

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/yadhuu06/bitcode-backend/configs"
	"github.com/yadhuu06/bitcode-backend/global"
	"github.com/yadhuu06/bitcode-backend/log/zlog"
	"github.com/yadhuu06/bitcode-backend/model"
	"github.com/yadhuu06/bitcode-backend/repo"
	"github.com/yadhuu06/bitcode-backend/response"
	"github.com/yadhuu06/bitcode-backend/types"
	"github.com/yadhuu06/bitcode-backend/utils"
)

// maxWinnersByCapacity 满额即完赛的名额表，未命中容量的房间首个过题即完赛
var maxWinnersByCapacity = map[int]int{
	2:  1,
	5:  2,
	10: 3,
}

func maxWinnersFor(capacity int) int {
	if n, ok := maxWinnersByCapacity[capacity]; ok {
		return n
	}
	return 1
}

// roomLocker 房间粒度互斥锁，台账追加和完成判定在锁内完成，
// 保证同房间并发提交拿到连续且不重复的名次
type roomLocker struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func (l *roomLocker) get(roomID int64) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	lock, ok := l.locks[roomID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[roomID] = lock
	}
	return lock
}

// release 完赛后回收锁条目。迟到的持锁者会在锁内重读到已完成状态
func (l *roomLocker) release(roomID int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.locks, roomID)
}

var roomLocks = &roomLocker{locks: make(map[int64]*sync.Mutex)}

// Notifier 房间广播出口，业务状态不依赖投递结果
type Notifier interface {
	SendToRoom(roomID int64, resp types.WsResponse)
}

type BattleLogic struct {
	verifier Verifier
	notifier Notifier
}

func NewBattleLogic() *BattleLogic {
	conf := configs.Judge{}
	if global.Config != nil {
		conf = global.Config.Judge
	}
	return &BattleLogic{
		verifier: NewJudgeClient(conf),
		notifier: GetWsHub(),
	}
}

func NewBattleLogicWith(verifier Verifier, notifier Notifier) *BattleLogic {
	return &BattleLogic{
		verifier: verifier,
		notifier: notifier,
	}
}

// ProcessSubmission 提交仲裁主流程：门禁校验、判题、通过后记账
func (l *BattleLogic) ProcessSubmission(ctx context.Context, userID int64, req types.BattleSubmitReq) (types.VerifyResult, error) {
	roomID, err := parseID(req.RoomID)
	if err != nil || userID == 0 || req.Code == "" || req.Language == "" {
		return types.VerifyResult{}, response.ErrResp(errors.New("param blank"), response.PARAM_NOT_COMPLETE)
	}
	questionID, err := parseID(req.QuestionID)
	if err != nil {
		return types.VerifyResult{}, response.ErrResp(errors.New("question id invalid"), response.PARAM_NOT_VALID)
	}
	user, err := repo.NewUserRepo(global.DB).GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.VerifyResult{}, response.ErrResp(err, response.MEMBER_NOT_EXIST)
		}
		return types.VerifyResult{}, response.ErrResp(err, response.DATABASE_ERROR)
	}
	question, err := repo.NewQuestionRepo(global.DB).GetByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.VerifyResult{}, response.ErrResp(err, response.QUESTION_NOT_EXIST)
		}
		return types.VerifyResult{}, response.ErrResp(err, response.DATABASE_ERROR)
	}
	room, err := getRoom(roomID)
	if err != nil {
		return types.VerifyResult{}, err
	}
	participant, err := repo.NewParticipantRepo(global.DB).GetByRoomUser(room.ID, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.VerifyResult{}, response.ErrResp(err, response.NOT_ROOM_MEMBER)
		}
		return types.VerifyResult{}, response.ErrResp(err, response.DATABASE_ERROR)
	}
	if err := validateActive(room); err != nil {
		return types.VerifyResult{}, err
	}
	if roomExpired(room, time.Now()) {
		// 超时与满额竞争同一个完成CAS，只会生效一次
		if err := l.CompleteByTimeout(ctx, room.ID); err != nil {
			zlog.CtxErrorf(ctx, "房间%d超时结算失败:%v", room.ID, err)
		}
		return types.VerifyResult{}, response.ErrResp(errors.New("time limit exceeded"), response.TIME_LIMIT_EXCEEDED)
	}

	testcases, err := repo.NewQuestionRepo(global.DB).ListTestCases(questionID)
	if err != nil {
		return types.VerifyResult{}, response.ErrResp(err, response.DATABASE_ERROR)
	}
	if len(testcases) == 0 {
		return types.VerifyResult{}, response.ErrResp(errors.New("no testcases"), response.NO_TEST_CASES)
	}

	result, err := l.verifier.Verify(ctx, req.Code, req.Language, testcases)
	if err != nil {
		zlog.CtxWarnf(ctx, "判题服务异常:%v", err)
		return result, response.ErrResp(err, response.JUDGE_ERROR)
	}
	if !result.AllPassed {
		// 未全过不记账，结果原样返回
		return result, nil
	}
	return l.recordSuccess(ctx, participant, room, question, result)
}

// recordSuccess 全过之后的记账：锁内查重、追加台账、满额则触发完成。
// 身份用入座时的参赛者快照，改名不影响本场台账
func (l *BattleLogic) recordSuccess(ctx context.Context, participant model.RoomParticipant, room model.Room, question model.Question, result types.VerifyResult) (types.VerifyResult, error) {
	lock := roomLocks.get(room.ID)
	lock.Lock()
	defer lock.Unlock()

	// 锁内重读，排队期间房间可能已被别人打满或超时
	room, err := getRoom(room.ID)
	if err != nil {
		return result, err
	}
	if room.Status == global.ROOM_STATUS_COMPLETED {
		roomLocks.release(room.ID)
		return result, response.ErrResp(errors.New("battle has already ended"), response.BATTLE_ALREADY_ENDED)
	}

	battleResultRepo := repo.NewBattleResultRepo(global.DB)
	record, err := battleResultRepo.GetOrCreate(room.ID, question.ID)
	if err != nil {
		return result, response.ErrResp(err, response.DATABASE_ERROR)
	}
	results, err := parseResults(record.Results)
	if err != nil {
		return result, response.ErrResp(err, response.INTERNAL_ERROR)
	}
	for _, entry := range results {
		if entry.Username == participant.Username {
			// 重复过题不改台账，按成功告知
			result.AllPassed = true
			result.Position = entry.Position
			result.Message = "已提交过正确解答"
			return result, nil
		}
	}

	now := time.Now()
	position := len(results) + 1
	results = append(results, types.ParticipantResult{
		Username:       participant.Username,
		Position:       position,
		CompletionTime: now.Format(time.RFC3339),
	})
	payload, err := utils.StuctToJson(results)
	if err != nil {
		return result, response.ErrResp(err, response.INTERNAL_ERROR)
	}
	if err := battleResultRepo.UpdateResults(record.ID, payload); err != nil {
		return result, response.ErrResp(err, response.DATABASE_ERROR)
	}
	result.Position = position
	zlog.CtxInfof(ctx, "用户%s在房间%d以第%d名过题", participant.Username, room.ID, position)

	// 名次与战绩是旁路信息，失败只记日志
	if err := repo.NewParticipantRepo(global.DB).UpdatePosition(room.ID, participant.UserID, position); err != nil {
		zlog.CtxWarnf(ctx, "更新参赛者名次失败:%v", err)
	}
	if position == 1 {
		if err := repo.NewUserRepo(global.DB).RecordWin(participant.UserID, now.Unix()); err != nil {
			zlog.CtxWarnf(ctx, "更新用户胜场失败:%v", err)
		}
	}

	if len(results) >= maxWinnersFor(room.Capacity) {
		settleErr := l.completeRoom(ctx, room, results, "对战结束")
		if settleErr != nil {
			return result, settleErr
		}
		return result, nil
	}

	l.notifier.SendToRoom(room.ID, types.WsResponse{
		Type:    "code_verified",
		Code:    response.SUCCESS.Code,
		Message: response.SUCCESS.Msg,
		Data: types.CodeVerifiedEvent{
			Username:       participant.Username,
			Position:       position,
			CompletionTime: now.Format(time.RFC3339),
		},
	})
	return result, nil
}

// CompleteByTimeout 超时完成路径，与满额路径共用completeRoom
func (l *BattleLogic) CompleteByTimeout(ctx context.Context, roomID int64) error {
	lock := roomLocks.get(roomID)
	lock.Lock()
	defer lock.Unlock()

	room, err := getRoom(roomID)
	if err != nil {
		return err
	}
	if room.Status != global.ROOM_STATUS_ACTIVE {
		if room.Status == global.ROOM_STATUS_COMPLETED {
			roomLocks.release(room.ID)
		}
		return nil
	}
	if !roomExpired(room, time.Now()) {
		return nil
	}
	record, err := repo.NewBattleResultRepo(global.DB).Get(room.ID, room.QuestionID)
	var results []types.ParticipantResult
	if err == nil {
		results, err = parseResults(record.Results)
		if err != nil {
			return response.ErrResp(err, response.INTERNAL_ERROR)
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return response.ErrResp(err, response.DATABASE_ERROR)
	}
	return l.completeRoom(ctx, room, results, "对战超时结束")
}

// completeRoom 完成状态转移：CAS赢家负责停看护、结算rating并广播，
// 输家什么都不做，保证广播和结算各只发生一次
func (l *BattleLogic) completeRoom(ctx context.Context, room model.Room, results []types.ParticipantResult, message string) error {
	won, err := repo.NewRoomRepo(global.DB).Complete(room.ID, time.Now().Unix())
	if err != nil {
		return response.ErrResp(err, response.DATABASE_ERROR)
	}
	if !won {
		return nil
	}
	GetRoomManager().StopRoom(room.ID)
	roomLocks.release(room.ID)

	var settleErr error
	if room.IsRanked && len(results) > 0 {
		if settleErr = l.settleRatings(ctx, room, results); settleErr != nil {
			zlog.CtxErrorf(ctx, "房间%d rating结算失败:%v", room.ID, settleErr)
		}
	}

	winners := results
	if limit := maxWinnersFor(room.Capacity); len(winners) > limit {
		winners = winners[:limit]
	}
	if winners == nil {
		winners = []types.ParticipantResult{}
	}
	l.notifier.SendToRoom(room.ID, types.WsResponse{
		Type:    "battle_completed",
		Code:    response.SUCCESS.Code,
		Message: response.SUCCESS.Msg,
		Data: types.BattleCompletedEvent{
			Winners:      winners,
			RoomCapacity: room.Capacity,
			QuestionID:   strconv.FormatInt(room.QuestionID, 10),
			Message:      message,
		},
	})
	return settleErr
}

// settleRatings 把台账换算成名次表后交给rating引擎，未完赛者并列垫底
func (l *BattleLogic) settleRatings(ctx context.Context, room model.Room, results []types.ParticipantResult) error {
	season, err := repo.NewSeasonRepo(global.DB).GetActive()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.ErrResp(err, response.SEASON_NOT_EXIST)
		}
		return response.ErrResp(err, response.DATABASE_ERROR)
	}
	participants, err := repo.NewParticipantRepo(global.DB).ListByRoom(room.ID)
	if err != nil {
		return response.ErrResp(err, response.DATABASE_ERROR)
	}

	mode := ModeForCapacity(room.Capacity)
	standings, winnerID := buildStandings(mode, participants, results)
	return NewRatingLogic(global.DB).Settle(ctx, mode, season.ID, standings, winnerID)
}

// buildStandings 名次来源是台账：完赛者按过题顺序，未完赛者并列在其后。
// 团队模式名次按队伍首个过题成员的出现顺序，同队成员同名次。
func buildStandings(mode BattleMode, participants []model.RoomParticipant, results []types.ParticipantResult) ([]Standing, int64) {
	finished := make(map[string]int, len(results))
	for _, entry := range results {
		finished[entry.Username] = entry.Position
	}

	var winnerID int64
	standings := make([]Standing, 0, len(participants))
	if mode == ModeTeam {
		// 队伍名次：第一个有成员过题的队伍第1，依此类推
		teamPosition := make(map[int64]int)
		memberTeam := make(map[string]int64, len(participants))
		for _, p := range participants {
			memberTeam[p.Username] = p.TeamID
		}
		next := 1
		for _, entry := range results {
			teamID := memberTeam[entry.Username]
			if _, ok := teamPosition[teamID]; !ok {
				teamPosition[teamID] = next
				next++
			}
		}
		unfinishedPos := next
		for _, p := range participants {
			pos, ok := teamPosition[p.TeamID]
			if !ok {
				pos = unfinishedPos
			}
			standings = append(standings, Standing{
				UserID:   p.UserID,
				Username: p.Username,
				TeamID:   p.TeamID,
				Position: pos,
			})
		}
		return standings, winnerID
	}

	unfinishedPos := len(results) + 1
	for _, p := range participants {
		pos, ok := finished[p.Username]
		if !ok {
			pos = unfinishedPos
		}
		if pos == 1 {
			winnerID = p.UserID
		}
		standings = append(standings, Standing{
			UserID:   p.UserID,
			Username: p.Username,
			TeamID:   p.TeamID,
			Position: pos,
		})
	}
	return standings, winnerID
}

func parseResults(raw string) ([]types.ParticipantResult, error) {
	if raw == "" {
		return nil, nil
	}
	var results []types.ParticipantResult
	if err := utils.JsonToStruct(raw, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// GetBattleQuestion 取题面和可见样例，隐藏用例不出网
func (l *BattleLogic) GetBattleQuestion(ctx context.Context, req types.BattleQuestionReq) (resp types.BattleQuestionResp, err error) {
	_ = ctx
	questionID, err := parseID(req.QuestionID)
	if err != nil {
		return resp, response.ErrResp(errors.New("param blank"), response.PARAM_NOT_COMPLETE)
	}
	questionRepo := repo.NewQuestionRepo(global.DB)
	question, err := questionRepo.GetByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return resp, response.ErrResp(err, response.QUESTION_NOT_EXIST)
		}
		return resp, response.ErrResp(err, response.DATABASE_ERROR)
	}
	testcases, err := questionRepo.ListVisibleTestCases(questionID)
	if err != nil {
		return resp, response.ErrResp(err, response.DATABASE_ERROR)
	}
	resp.Question = types.QuestionInfo{
		QuestionID:  question.ID,
		Title:       question.Title,
		Description: question.Description,
		Difficulty:  question.Difficulty,
	}
	resp.TestCases = make([]types.TestCaseInfo, 0, len(testcases))
	for _, testcase := range testcases {
		resp.TestCases = append(resp.TestCases, types.TestCaseInfo{
			Input:    testcase.Input,
			Expected: testcase.Expected,
		})
	}
	return resp, nil
}
