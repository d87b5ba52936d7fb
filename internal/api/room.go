package api

import (
	"github.com/gin-gonic/gin"

	"github.com/yadhuu06/bitcode-backend/log/zlog"
	"github.com/yadhuu06/bitcode-backend/logic"
	"github.com/yadhuu06/bitcode-backend/response"
	"github.com/yadhuu06/bitcode-backend/types"
	"github.com/yadhuu06/bitcode-backend/utils/jwtUtils"
)

func CreateRoom(c *gin.Context) {
	ctx := zlog.GetCtxFromGin(c)
	req, err := types.BindReq[types.RoomCreateReq](c)
	if err != nil {
		return
	}
	userID := jwtUtils.GetUserId(c)
	resp, err := logic.NewRoomLogic().CreateRoom(ctx, userID, req)
	response.Response(c, resp, err)
}

func JoinRoom(c *gin.Context) {
	ctx := zlog.GetCtxFromGin(c)
	req, err := types.BindReq[types.RoomJoinReq](c)
	if err != nil {
		return
	}
	userID := jwtUtils.GetUserId(c)
	resp, err := logic.NewRoomLogic().JoinRoom(ctx, userID, req)
	response.Response(c, resp, err)
}

func LeaveRoom(c *gin.Context) {
	ctx := zlog.GetCtxFromGin(c)
	req, err := types.BindReq[types.RoomLeaveReq](c)
	if err != nil {
		return
	}
	userID := jwtUtils.GetUserId(c)
	resp, err := logic.NewRoomLogic().LeaveRoom(ctx, userID, req)
	response.Response(c, resp, err)
}

func StartRoom(c *gin.Context) {
	ctx := zlog.GetCtxFromGin(c)
	req, err := types.BindReq[types.RoomStartReq](c)
	if err != nil {
		return
	}
	userID := jwtUtils.GetUserId(c)
	resp, err := logic.NewRoomLogic().StartRoom(ctx, userID, req)
	response.Response(c, resp, err)
}

func GetRoomInfo(c *gin.Context) {
	ctx := zlog.GetCtxFromGin(c)
	req, err := types.BindReq[types.RoomInfoReq](c)
	if err != nil {
		return
	}
	resp, err := logic.NewRoomLogic().GetRoomInfo(ctx, req)
	response.Response(c, resp, err)
}

func ListRooms(c *gin.Context) {
	ctx := zlog.GetCtxFromGin(c)
	req, err := types.BindReq[types.RoomListReq](c)
	if err != nil {
		return
	}
	resp, err := logic.NewRoomLogic().ListRooms(ctx, req)
	response.Response(c, resp, err)
}
