package model

type Season struct {
	CommonModel
	Name     string `gorm:"column:name;type:varchar(100);not null"`
	IsActive bool   `gorm:"column:is_active;type:tinyint(1);default:0;index:idx_season_is_active;comment:是否为当前赛季"`
}

func (s *Season) TableName() string {
	return "seasons"
}

type Ranking struct {
	CommonModel
	UserID       int64   `gorm:"column:user_id;type:bigint;not null;uniqueIndex:idx_ranking_user_season,priority:1"`
	SeasonID     int64   `gorm:"column:season_id;type:bigint;not null;uniqueIndex:idx_ranking_user_season,priority:2"`
	Rating       float64 `gorm:"column:rating;type:double;default:1000;comment:赛季rating"`
	Wins         int     `gorm:"column:wins;type:int;default:0"`
	Losses       int     `gorm:"column:losses;type:int;default:0"`
	TotalMatches int     `gorm:"column:total_matches;type:int;default:0"`
}

func (r *Ranking) TableName() string {
	return "rankings"
}
