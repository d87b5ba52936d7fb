package api

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yadhuu06/bitcode-backend/log/zlog"
	"github.com/yadhuu06/bitcode-backend/logic"
	"github.com/yadhuu06/bitcode-backend/response"
	"github.com/yadhuu06/bitcode-backend/utils/jwtUtils"
)

func WebsocketConnect(c *gin.Context) {
	ctx := zlog.GetCtxFromGin(c)
	userID := jwtUtils.GetUserId(c)
	if userID == 0 {
		response.NewResponse(c).Error(response.USER_NOT_LOGIN)
		return
	}
	roomID := parseRoomID(c)
	if err := logic.GetWsHub().Serve(ctx, c.Writer, c.Request, userID, roomID); err != nil {
		zlog.CtxErrorf(ctx, "websocket连接失败:%v", err)
	}
}

func parseRoomID(c *gin.Context) int64 {
	roomIDStr := c.Query("room_id")
	if roomIDStr == "" {
		return 0
	}
	roomID, err := strconv.ParseInt(roomIDStr, 10, 64)
	if err != nil {
		return 0
	}
	return roomID
}
