package types

type RoomCreateReq struct {
	Name       string `json:"name" form:"name"`
	Capacity   int    `json:"capacity" form:"capacity"`
	TimeLimit  int    `json:"time_limit" form:"time_limit"`
	IsRanked   *bool  `json:"is_ranked" form:"is_ranked"`
	QuestionID string `json:"question_id" form:"question_id"`
}

type RoomCreateResp struct {
	Room RoomInfo `json:"room"`
}

type RoomInfoReq struct {
	RoomID string `form:"room_id" json:"room_id"`
}

type RoomInfoResp struct {
	Room RoomInfo `json:"room"`
}

type RoomJoinReq struct {
	RoomID string `json:"room_id" form:"room_id"`
	TeamID int64  `json:"team_id" form:"team_id"`
}

type RoomLeaveReq struct {
	RoomID string `json:"room_id" form:"room_id"`
}

type RoomStartReq struct {
	RoomID string `json:"room_id" form:"room_id"`
}

type RoomListReq struct {
	Page   int   `form:"page" json:"page"`
	Limit  int   `form:"limit" json:"limit"`
	Status *int8 `form:"status" json:"status"`
}

type RoomListResp struct {
	Total int64          `json:"total"`
	Rooms []RoomListItem `json:"rooms"`
}

type RoomListItem struct {
	RoomID           int64  `json:"room_id,string"`
	Name             string `json:"name"`
	Capacity         int    `json:"capacity"`
	Status           int8   `json:"status"`
	IsRanked         bool   `json:"is_ranked"`
	ParticipantCount int    `json:"participant_count"`
}

type RoomInfo struct {
	RoomID       int64                 `json:"room_id,string"`
	Name         string                `json:"name"`
	Capacity     int                   `json:"capacity"`
	TimeLimit    int                   `json:"time_limit"`
	StartTime    int64                 `json:"start_time"`
	EndTime      int64                 `json:"end_time"`
	Status       int8                  `json:"status"`
	IsRanked     bool                  `json:"is_ranked"`
	OwnerID      int64                 `json:"owner_id,string"`
	QuestionID   int64                 `json:"question_id,string"`
	Participants []RoomParticipantInfo `json:"participants"`
}

type RoomParticipantInfo struct {
	UserID   int64  `json:"user_id,string"`
	Username string `json:"username"`
	TeamID   int64  `json:"team_id"`
	Position int    `json:"position"`
	JoinAt   int64  `json:"join_at"`
}
