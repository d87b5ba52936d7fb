package initalize

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yadhuu06/bitcode-backend/configs"
	"github.com/yadhuu06/bitcode-backend/global"
	"github.com/yadhuu06/bitcode-backend/log/zlog"
)

func InitRedis(config configs.Config) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     config.Redis.Addr(),
		Password: config.Redis.Password,
		DB:       config.Redis.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		zlog.Errorf("连接Redis失败：%v", err)
		panic(err.Error())
	}
	global.Rdb = rdb
}
