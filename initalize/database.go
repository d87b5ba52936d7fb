package initalize

import (
	"errors"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/yadhuu06/bitcode-backend/configs"
	"github.com/yadhuu06/bitcode-backend/global"
	"github.com/yadhuu06/bitcode-backend/log/zlog"
	"github.com/yadhuu06/bitcode-backend/model"
	"github.com/yadhuu06/bitcode-backend/repo"
)

func InitDataBase(config configs.Config) {
	db, err := gorm.Open(mysql.Open(config.Database.DSN()), &gorm.Config{})
	if err != nil {
		zlog.Errorf("连接数据库失败：%v", err)
		panic(err.Error())
	}
	global.DB = db
	if err := model.MigrateTables(db); err != nil {
		zlog.Errorf("数据库迁移失败：%v", err)
		panic(err.Error())
	}
	if err := ensureActiveSeason(db); err != nil {
		zlog.Errorf("初始化赛季失败：%v", err)
		panic(err.Error())
	}
}

// ensureActiveSeason rating结算依赖一个进行中的赛季，首次启动时补一个
func ensureActiveSeason(db *gorm.DB) error {
	seasonRepo := repo.NewSeasonRepo(db)
	_, err := seasonRepo.GetActive()
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return seasonRepo.Create(&model.Season{
		Name:     "第一赛季",
		IsActive: true,
	})
}
