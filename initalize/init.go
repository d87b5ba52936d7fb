package initalize

import (
	"github.com/yadhuu06/bitcode-backend/cmd/flags"
	"github.com/yadhuu06/bitcode-backend/global"
	"github.com/yadhuu06/bitcode-backend/log/zlog"
	"github.com/yadhuu06/bitcode-backend/logic"
	"github.com/yadhuu06/bitcode-backend/utils"
)

func Init() {
	// 解析命令行参数
	flags.Parse()

	// 启动前缀展示
	introduce()

	// 初始化根目录
	InitPath()

	// 加载配置文件
	InitConfig()

	// 正式初始化日志
	InitLog(global.Config)

	// 初始化数据库
	InitDataBase(*global.Config)
	InitRedis(*global.Config)

	// 初始化全局雪花ID生成器
	InitSnowflake()

	// 对命令行参数进行处理
	flags.Run()

	// 恢复进行中房间的超时看护
	if err := logic.GetRoomManager().StartAllActiveRooms(); err != nil {
		zlog.Warnf("恢复进行中房间失败：%v", err)
	}
}

func InitPath() {
	global.Path = utils.GetRootPath("")
}

// Eve 退出前的收尾
func Eve() {
	if global.Rdb != nil {
		_ = global.Rdb.Close()
	}
	zlog.Sync()
}

func introduce() {
	zlog.Infof("BitCode Battle Backend starting...")
}
