package routerg

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/yadhuu06/bitcode-backend/configs"
	"github.com/yadhuu06/bitcode-backend/global"
	"github.com/yadhuu06/bitcode-backend/internal/api"
	"github.com/yadhuu06/bitcode-backend/log/zlog"
	"github.com/yadhuu06/bitcode-backend/manager"
	"github.com/yadhuu06/bitcode-backend/middleware"
)

// RunServer 启动服务器 路由层
func RunServer() {
	r, err := listen()
	if err != nil {
		zlog.Errorf("Listen error: %v", err)
		panic(err.Error())
	}
	r.Run(fmt.Sprintf("%s:%d", configs.Conf.App.Host, configs.Conf.App.Port)) // 启动 Gin 服务器
}

// listen 配置 Gin 服务器
func listen() (*gin.Engine, error) {
	r := gin.Default() // 创建默认的 Gin 引擎
	// 注册全局中间件（例如获取 Trace ID）
	manager.RequestGlobalMiddleware(r)
	// 创建 RouteManager 实例
	routeManager := manager.NewRouteManager(r)
	// 注册各业务路由组的具体路由
	registerRoutes(routeManager)
	return r, nil
}

// registerRoutes 注册各业务路由的具体处理函数
func registerRoutes(routeManager *manager.RouteManager) {

	routeManager.RegisterCommonRoutes(func(rg *gin.RouterGroup) {
		rg.GET("/profile", middleware.Limiter(rate.Every(time.Second)*5, 10), middleware.Authentication(global.ROLE_USER), api.GetProfile)
		rg.POST("/profile", middleware.Limiter(rate.Every(time.Second)*3, 6), middleware.Authentication(global.ROLE_USER), api.UpdateProfile)
		rg.GET("/ws", middleware.Authentication(global.ROLE_USER), api.WebsocketConnect)
	})

	routeManager.RegisterLoginRoutes(func(rg *gin.RouterGroup) {
		rg.POST("/send-code", middleware.Limiter(rate.Every(time.Minute), 4), api.SendCode)
		rg.POST("/register", middleware.Limiter(rate.Every(time.Minute), 5), api.Register)
		rg.POST("/login", middleware.Limiter(rate.Every(time.Minute), 10), api.Login)
	})

	routeManager.RegisterRoomRoutes(func(rg *gin.RouterGroup) {
		rg.POST("", middleware.Authentication(global.ROLE_USER), api.CreateRoom)
		rg.GET("", api.GetRoomInfo)
		rg.GET("/list", api.ListRooms)
		rg.POST("/join", middleware.Authentication(global.ROLE_USER), api.JoinRoom)
		rg.POST("/leave", middleware.Authentication(global.ROLE_USER), api.LeaveRoom)
		rg.POST("/start", middleware.Authentication(global.ROLE_USER), api.StartRoom)
	})

	routeManager.RegisterBattleRoutes(func(rg *gin.RouterGroup) {
		rg.POST("/verify", middleware.Limiter(rate.Every(time.Second), 3), middleware.Authentication(global.ROLE_USER), api.SubmitCode)
		rg.GET("/question", middleware.Authentication(global.ROLE_USER), api.GetBattleQuestion)
	})

	routeManager.RegisterRankingRoutes(func(rg *gin.RouterGroup) {
		rg.GET("/season", middleware.Authentication(global.ROLE_USER), api.GetSeasonRanking)
		rg.GET("/global", api.GetGlobalRanking)
	})
}
