package api

import (
	"github.com/gin-gonic/gin"

	"github.com/yadhuu06/bitcode-backend/log/zlog"
	"github.com/yadhuu06/bitcode-backend/logic"
	"github.com/yadhuu06/bitcode-backend/response"
	"github.com/yadhuu06/bitcode-backend/types"
	"github.com/yadhuu06/bitcode-backend/utils/jwtUtils"
)

func SendCode(c *gin.Context) {
	ctx := zlog.GetCtxFromGin(c)
	req, err := types.BindReq[types.SendCodeReq](c)
	if err != nil {
		return
	}
	resp, err := logic.NewLoginLogic().SendCode(ctx, req)
	response.Response(c, resp, err)
}

func Register(c *gin.Context) {
	ctx := zlog.GetCtxFromGin(c)
	req, err := types.BindReq[types.RegisterReq](c)
	if err != nil {
		return
	}
	resp, err := logic.NewLoginLogic().Register(ctx, req)
	response.Response(c, resp, err)
}

func Login(c *gin.Context) {
	ctx := zlog.GetCtxFromGin(c)
	req, err := types.BindReq[types.LoginReq](c)
	if err != nil {
		return
	}
	resp, err := logic.NewLoginLogic().Login(ctx, req)
	response.Response(c, resp, err)
}

func GetProfile(c *gin.Context) {
	ctx := zlog.GetCtxFromGin(c)
	userID := jwtUtils.GetUserId(c)
	resp, err := logic.NewLoginLogic().GetProfile(ctx, userID)
	response.Response(c, resp, err)
}

func UpdateProfile(c *gin.Context) {
	ctx := zlog.GetCtxFromGin(c)
	req, err := types.BindReq[types.UpdateProfileReq](c)
	if err != nil {
		return
	}
	userID := jwtUtils.GetUserId(c)
	resp, err := logic.NewLoginLogic().UpdateProfile(ctx, userID, req)
	response.Response(c, resp, err)
}
