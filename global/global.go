package global

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yadhuu06/bitcode-backend/configs"
)

var (
	Path   string
	Config *configs.Config
	DB     *gorm.DB
	Rdb    *redis.Client
	Node   *snowflake.Node
)

const (
	TOKEN_USER_ID = "user_id"
	TOKEN_ROLE    = "role"
)

const (
	ROLE_USER  = 1
	ROLE_ADMIN = 9
)

const (
	ATOKEN_EFFECTIVE_TIME = 24 * time.Hour
)

// 房间状态
const (
	ROOM_STATUS_WAITING   int8 = 0
	ROOM_STATUS_ACTIVE    int8 = 1
	ROOM_STATUS_COMPLETED int8 = 2
)

// 新用户的默认赛季rating
const DEFAULT_RATING = 1000.0
