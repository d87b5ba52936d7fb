package logic

import (
	"context"
	"errors"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/yadhuu06/bitcode-backend/global"
	"github.com/yadhuu06/bitcode-backend/model"
	"github.com/yadhuu06/bitcode-backend/repo"
	"github.com/yadhuu06/bitcode-backend/response"
	"github.com/yadhuu06/bitcode-backend/types"
)

type RoomLogic struct {
}

func NewRoomLogic() *RoomLogic {
	return &RoomLogic{}
}

func (l *RoomLogic) CreateRoom(ctx context.Context, userID int64, req types.RoomCreateReq) (resp types.RoomCreateResp, err error) {
	_ = ctx
	if userID == 0 || req.Name == "" || req.QuestionID == "" {
		return resp, response.ErrResp(errors.New("param blank"), response.PARAM_NOT_COMPLETE)
	}
	if req.Capacity < 2 || req.Capacity > 10 {
		return resp, response.ErrResp(errors.New("capacity out of range"), response.PARAM_NOT_VALID)
	}
	questionID, err := parseID(req.QuestionID)
	if err != nil {
		return resp, response.ErrResp(errors.New("question id invalid"), response.PARAM_NOT_VALID)
	}
	user, err := repo.NewUserRepo(global.DB).GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return resp, response.ErrResp(err, response.MEMBER_NOT_EXIST)
		}
		return resp, response.ErrResp(err, response.DATABASE_ERROR)
	}
	if _, err := repo.NewQuestionRepo(global.DB).GetByID(questionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return resp, response.ErrResp(err, response.QUESTION_NOT_EXIST)
		}
		return resp, response.ErrResp(err, response.DATABASE_ERROR)
	}
	isRanked := true
	if req.IsRanked != nil {
		isRanked = *req.IsRanked
	}
	timeLimit := req.TimeLimit
	if timeLimit < 0 {
		timeLimit = 0
	}
	room := model.Room{
		Name:       req.Name,
		Capacity:   req.Capacity,
		TimeLimit:  timeLimit,
		Status:     global.ROOM_STATUS_WAITING,
		IsRanked:   isRanked,
		OwnerID:    userID,
		QuestionID: questionID,
	}
	if err := repo.NewRoomRepo(global.DB).Create(&room); err != nil {
		return resp, response.ErrResp(err, response.DATABASE_ERROR)
	}
	// 房主自动入座
	participant := model.RoomParticipant{
		RoomID:   room.ID,
		UserID:   userID,
		Username: user.Username,
	}
	if err := repo.NewParticipantRepo(global.DB).Create(&participant); err != nil {
		return resp, response.ErrResp(err, response.DATABASE_ERROR)
	}
	resp.Room, err = l.buildRoomInfo(room)
	return resp, err
}

func (l *RoomLogic) JoinRoom(ctx context.Context, userID int64, req types.RoomJoinReq) (types.RoomInfo, error) {
	_ = ctx
	roomID, err := parseID(req.RoomID)
	if userID == 0 || err != nil {
		return types.RoomInfo{}, response.ErrResp(errors.New("param blank"), response.PARAM_NOT_COMPLETE)
	}
	room, err := getRoom(roomID)
	if err != nil {
		return types.RoomInfo{}, err
	}
	if room.Status != global.ROOM_STATUS_WAITING {
		return types.RoomInfo{}, response.ErrResp(errors.New("room already started"), response.PARAM_NOT_VALID)
	}
	user, err := repo.NewUserRepo(global.DB).GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.RoomInfo{}, response.ErrResp(err, response.MEMBER_NOT_EXIST)
		}
		return types.RoomInfo{}, response.ErrResp(err, response.DATABASE_ERROR)
	}
	participantRepo := repo.NewParticipantRepo(global.DB)
	if _, err := participantRepo.GetByRoomUser(roomID, userID); err == nil {
		// 重复加入视为幂等
		return l.buildRoomInfo(room)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return types.RoomInfo{}, response.ErrResp(err, response.DATABASE_ERROR)
	}
	count, err := participantRepo.CountByRoom(roomID)
	if err != nil {
		return types.RoomInfo{}, response.ErrResp(err, response.DATABASE_ERROR)
	}
	if count >= int64(room.Capacity) {
		return types.RoomInfo{}, response.ErrResp(errors.New("room full"), response.ROOM_FULL)
	}
	participant := model.RoomParticipant{
		RoomID:   roomID,
		UserID:   userID,
		Username: user.Username,
		TeamID:   req.TeamID,
	}
	if err := participantRepo.Create(&participant); err != nil {
		return types.RoomInfo{}, response.ErrResp(err, response.DATABASE_ERROR)
	}
	return l.buildRoomInfo(room)
}

func (l *RoomLogic) LeaveRoom(ctx context.Context, userID int64, req types.RoomLeaveReq) (types.RoomInfo, error) {
	_ = ctx
	roomID, err := parseID(req.RoomID)
	if userID == 0 || err != nil {
		return types.RoomInfo{}, response.ErrResp(errors.New("param blank"), response.PARAM_NOT_COMPLETE)
	}
	room, err := getRoom(roomID)
	if err != nil {
		return types.RoomInfo{}, err
	}
	if room.Status != global.ROOM_STATUS_WAITING {
		return types.RoomInfo{}, response.ErrResp(errors.New("room already started"), response.PARAM_NOT_VALID)
	}
	if err := repo.NewParticipantRepo(global.DB).Delete(roomID, userID); err != nil {
		return types.RoomInfo{}, response.ErrResp(err, response.DATABASE_ERROR)
	}
	return l.buildRoomInfo(room)
}

// StartRoom 房主开赛：写入开始时间并拉起超时看护，开始时间只会写入一次
func (l *RoomLogic) StartRoom(ctx context.Context, userID int64, req types.RoomStartReq) (types.RoomInfo, error) {
	roomID, err := parseID(req.RoomID)
	if userID == 0 || err != nil {
		return types.RoomInfo{}, response.ErrResp(errors.New("param blank"), response.PARAM_NOT_COMPLETE)
	}
	room, err := getRoom(roomID)
	if err != nil {
		return types.RoomInfo{}, err
	}
	if room.OwnerID != userID {
		return types.RoomInfo{}, response.ErrResp(errors.New("permission denied"), response.PERMISSION_DENIED)
	}
	if room.Status == global.ROOM_STATUS_COMPLETED {
		return types.RoomInfo{}, response.ErrResp(errors.New("room completed"), response.BATTLE_ALREADY_ENDED)
	}
	startTime := time.Now().Unix()
	started, err := repo.NewRoomRepo(global.DB).Start(roomID, startTime)
	if err != nil {
		return types.RoomInfo{}, response.ErrResp(err, response.DATABASE_ERROR)
	}
	if started {
		room.Status = global.ROOM_STATUS_ACTIVE
		room.StartTime = startTime
		GetRoomManager().StartRoom(room)
		GetWsHub().SendToRoom(room.ID, types.WsResponse{
			Type:    "battle_started",
			Code:    response.SUCCESS.Code,
			Message: response.SUCCESS.Msg,
			Data: map[string]interface{}{
				"room_id":    strconv.FormatInt(room.ID, 10),
				"start_time": startTime,
				"time_limit": room.TimeLimit,
			},
		})
	} else {
		// 并发开赛只生效一次，读回真实状态
		room, err = getRoom(roomID)
		if err != nil {
			return types.RoomInfo{}, err
		}
	}
	return l.buildRoomInfo(room)
}

func (l *RoomLogic) GetRoomInfo(ctx context.Context, req types.RoomInfoReq) (resp types.RoomInfoResp, err error) {
	_ = ctx
	roomID, err := parseID(req.RoomID)
	if err != nil {
		return resp, response.ErrResp(errors.New("param blank"), response.PARAM_NOT_COMPLETE)
	}
	room, err := getRoom(roomID)
	if err != nil {
		return resp, err
	}
	resp.Room, err = l.buildRoomInfo(room)
	return resp, err
}

func (l *RoomLogic) ListRooms(ctx context.Context, req types.RoomListReq) (resp types.RoomListResp, err error) {
	_ = ctx
	limit := req.Limit
	if limit <= 0 {
		limit = 20
	}
	page := req.Page
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit
	rooms, total, err := repo.NewRoomRepo(global.DB).List(offset, limit, req.Status)
	if err != nil {
		return resp, response.ErrResp(err, response.DATABASE_ERROR)
	}
	participantRepo := repo.NewParticipantRepo(global.DB)
	items := make([]types.RoomListItem, 0, len(rooms))
	for _, room := range rooms {
		count, err := participantRepo.CountByRoom(room.ID)
		if err != nil {
			return resp, response.ErrResp(err, response.DATABASE_ERROR)
		}
		items = append(items, types.RoomListItem{
			RoomID:           room.ID,
			Name:             room.Name,
			Capacity:         room.Capacity,
			Status:           room.Status,
			IsRanked:         room.IsRanked,
			ParticipantCount: int(count),
		})
	}
	resp.Total = total
	resp.Rooms = items
	return resp, nil
}

func (l *RoomLogic) buildRoomInfo(room model.Room) (types.RoomInfo, error) {
	participants, err := repo.NewParticipantRepo(global.DB).ListByRoom(room.ID)
	if err != nil {
		return types.RoomInfo{}, response.ErrResp(err, response.DATABASE_ERROR)
	}
	infos := make([]types.RoomParticipantInfo, 0, len(participants))
	for _, p := range participants {
		infos = append(infos, types.RoomParticipantInfo{
			UserID:   p.UserID,
			Username: p.Username,
			TeamID:   p.TeamID,
			Position: p.Position,
			JoinAt:   p.CreatedAt.Unix(),
		})
	}
	return types.RoomInfo{
		RoomID:       room.ID,
		Name:         room.Name,
		Capacity:     room.Capacity,
		TimeLimit:    room.TimeLimit,
		StartTime:    room.StartTime,
		EndTime:      room.EndTime,
		Status:       room.Status,
		IsRanked:     room.IsRanked,
		OwnerID:      room.OwnerID,
		QuestionID:   room.QuestionID,
		Participants: infos,
	}, nil
}

func getRoom(roomID int64) (model.Room, error) {
	room, err := repo.NewRoomRepo(global.DB).GetByID(roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return room, response.ErrResp(err, response.ROOM_NOT_EXIST)
		}
		return room, response.ErrResp(err, response.DATABASE_ERROR)
	}
	return room, nil
}

func parseID(value string) (int64, error) {
	if value == "" {
		return 0, errors.New("param blank")
	}
	return strconv.ParseInt(value, 10, 64)
}

// validateActive 状态机校验：未开始或已结束的房间拒绝提交
func validateActive(room model.Room) error {
	if room.StartTime == 0 || room.Status == global.ROOM_STATUS_WAITING {
		return response.ErrResp(errors.New("battle has not started"), response.BATTLE_NOT_STARTED)
	}
	if room.Status == global.ROOM_STATUS_COMPLETED {
		return response.ErrResp(errors.New("battle has already ended"), response.BATTLE_ALREADY_ENDED)
	}
	return nil
}

// roomExpired 超时判定：time_limit<=0表示不限时
func roomExpired(room model.Room, now time.Time) bool {
	if room.TimeLimit <= 0 || room.StartTime == 0 {
		return false
	}
	elapsed := now.Sub(time.Unix(room.StartTime, 0))
	return elapsed.Minutes() > float64(room.TimeLimit)
}
