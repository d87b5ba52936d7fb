package model

type Room struct {
	CommonModel
	Name       string `gorm:"column:name;type:varchar(100);not null"`
	Capacity   int    `gorm:"column:capacity;type:int;not null;comment:房间人数上限(2/5/10)"`
	TimeLimit  int    `gorm:"column:time_limit;type:int;default:0;comment:时间限制(分钟,<=0不限时)"`
	StartTime  int64  `gorm:"column:start_time;type:bigint;default:0;comment:开始时间戳,0表示未开始"`
	EndTime    int64  `gorm:"column:end_time;type:bigint;default:0;index:idx_room_end_time"`
	Status     int8   `gorm:"column:status;type:tinyint;default:0;index:idx_room_status;comment:房间状态(0等待,1进行中,2已结束)"`
	IsRanked   bool   `gorm:"column:is_ranked;type:tinyint(1);default:1;comment:是否计入排位"`
	OwnerID    int64  `gorm:"column:owner_id;type:bigint;not null;index:idx_room_owner_id"`
	QuestionID int64  `gorm:"column:question_id;type:bigint;not null;comment:对战题目ID"`
}

func (r *Room) TableName() string {
	return "rooms"
}

type RoomParticipant struct {
	CommonModel
	RoomID   int64  `gorm:"column:room_id;type:bigint;not null;uniqueIndex:idx_room_participant,priority:1"`
	UserID   int64  `gorm:"column:user_id;type:bigint;not null;uniqueIndex:idx_room_participant,priority:2"`
	Username string `gorm:"column:username;type:varchar(100);not null"`
	TeamID   int64  `gorm:"column:team_id;type:bigint;default:0;comment:团队模式下的队伍编号"`
	Position int    `gorm:"column:position;type:int;default:0;comment:完成名次,0表示未完成"`
}

func (p *RoomParticipant) TableName() string {
	return "room_participants"
}
