package initalize

import (
	"path/filepath"

	"github.com/yadhuu06/bitcode-backend/cmd/flags"
	"github.com/yadhuu06/bitcode-backend/configs"
	"github.com/yadhuu06/bitcode-backend/global"
	"github.com/yadhuu06/bitcode-backend/log/zlog"
)

func InitConfig() {
	path := flags.ConfigPath
	if path == "" {
		path = filepath.Join(global.Path, "config.yaml")
	}
	config, err := configs.Load(path)
	if err != nil {
		zlog.Errorf("加载配置文件失败：%v", err)
		panic(err.Error())
	}
	global.Config = config
}
