package initalize

import (
	"github.com/yadhuu06/bitcode-backend/configs"
	"github.com/yadhuu06/bitcode-backend/log/zlog"
)

func InitLog(config *configs.Config) {
	if err := zlog.Init(config.Log.Level, config.Log.Path); err != nil {
		panic(err.Error())
	}
}
