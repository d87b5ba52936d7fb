package model

type User struct {
	CommonModel
	Email      string `gorm:"column:email;type:varchar(255);not null;uniqueIndex"`
	Password   string `gorm:"column:password;type:varchar(255);not null"`
	Username   string `gorm:"column:username;type:varchar(100);not null;uniqueIndex"`
	BattlesWon int    `gorm:"column:battles_won;type:int;default:0;comment:累计获胜场次"`
	LastWin    int64  `gorm:"column:last_win;type:bigint;default:0;comment:最近一次获胜时间戳"`
}

func (u *User) TableName() string {
	return "users"
}
