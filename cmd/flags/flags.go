package flags

import (
	"flag"
	"os"

	"github.com/yadhuu06/bitcode-backend/global"
	"github.com/yadhuu06/bitcode-backend/log/zlog"
	"github.com/yadhuu06/bitcode-backend/model"
)

var (
	// ConfigPath -c 指定配置文件路径，为空时使用根目录下的config.yaml
	ConfigPath string
	// Migrate -m 只执行建表迁移后退出
	Migrate bool
)

func Parse() {
	flag.StringVar(&ConfigPath, "c", "", "配置文件路径")
	flag.BoolVar(&Migrate, "m", false, "执行数据库迁移后退出")
	flag.Parse()
}

// Run 处理需要在初始化完成后执行的命令行动作
func Run() {
	if Migrate {
		if err := model.MigrateTables(global.DB); err != nil {
			zlog.Errorf("数据库迁移失败：%v", err)
			os.Exit(1)
		}
		zlog.Infof("数据库迁移完成")
		os.Exit(0)
	}
}
