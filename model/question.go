package model

type Question struct {
	CommonModel
	Title       string `gorm:"column:title;type:varchar(255);not null"`
	Description string `gorm:"column:description;type:text;comment:题面"`
	Difficulty  int    `gorm:"column:difficulty;type:int;default:0;index:idx_question_difficulty"`
}

func (q *Question) TableName() string {
	return "questions"
}

type TestCase struct {
	CommonModel
	QuestionID int64  `gorm:"column:question_id;type:bigint;not null;index:idx_test_case_question_id"`
	Input      string `gorm:"column:input;type:text"`
	Expected   string `gorm:"column:expected;type:text"`
	Hidden     bool   `gorm:"column:hidden;type:tinyint(1);default:0;comment:是否对选手隐藏"`
}

func (t *TestCase) TableName() string {
	return "test_cases"
}
