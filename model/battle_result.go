package model

type BattleResult struct {
	CommonModel
	RoomID     int64  `gorm:"column:room_id;type:bigint;not null;uniqueIndex:idx_battle_result_room_question,priority:1"`
	QuestionID int64  `gorm:"column:question_id;type:bigint;not null;uniqueIndex:idx_battle_result_room_question,priority:2"`
	Results    string `gorm:"column:results;type:json;comment:完成记录JSON"`
}

func (b *BattleResult) TableName() string {
	return "battle_results"
}
