package manager

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/yadhuu06/bitcode-backend/global"
	"github.com/yadhuu06/bitcode-backend/log/zlog"
)

// RouteManager 按业务域划分路由组
type RouteManager struct {
	commonGroup  *gin.RouterGroup
	loginGroup   *gin.RouterGroup
	roomGroup    *gin.RouterGroup
	battleGroup  *gin.RouterGroup
	rankingGroup *gin.RouterGroup
}

func NewRouteManager(r *gin.Engine) *RouteManager {
	return &RouteManager{
		commonGroup:  r.Group("/api"),
		loginGroup:   r.Group("/api/auth"),
		roomGroup:    r.Group("/api/room"),
		battleGroup:  r.Group("/api/battle"),
		rankingGroup: r.Group("/api/ranking"),
	}
}

func (rm *RouteManager) RegisterCommonRoutes(register func(rg *gin.RouterGroup)) {
	register(rm.commonGroup)
}

func (rm *RouteManager) RegisterLoginRoutes(register func(rg *gin.RouterGroup)) {
	register(rm.loginGroup)
}

func (rm *RouteManager) RegisterRoomRoutes(register func(rg *gin.RouterGroup)) {
	register(rm.roomGroup)
}

func (rm *RouteManager) RegisterBattleRoutes(register func(rg *gin.RouterGroup)) {
	register(rm.battleGroup)
}

func (rm *RouteManager) RegisterRankingRoutes(register func(rg *gin.RouterGroup)) {
	register(rm.rankingGroup)
}

// RequestGlobalMiddleware 给每个请求生成trace_id并绑定日志上下文
func RequestGlobalMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		traceID := c.GetHeader("X-Trace-Id")
		if traceID == "" && global.Node != nil {
			traceID = global.Node.Generate().String()
		}
		ctx := zlog.NewCtx(context.Background(), traceID)
		zlog.BindGin(c, ctx)
		c.Header("X-Trace-Id", traceID)
		c.Next()
	})
}
