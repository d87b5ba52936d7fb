package api

import (
	"github.com/gin-gonic/gin"

	"github.com/yadhuu06/bitcode-backend/log/zlog"
	"github.com/yadhuu06/bitcode-backend/logic"
	"github.com/yadhuu06/bitcode-backend/response"
	"github.com/yadhuu06/bitcode-backend/types"
	"github.com/yadhuu06/bitcode-backend/utils/jwtUtils"
)

func SubmitCode(c *gin.Context) {
	ctx := zlog.GetCtxFromGin(c)
	req, err := types.BindReq[types.BattleSubmitReq](c)
	if err != nil {
		return
	}
	userID := jwtUtils.GetUserId(c)
	resp, err := logic.NewBattleLogic().ProcessSubmission(ctx, userID, req)
	response.Response(c, resp, err)
}

func GetBattleQuestion(c *gin.Context) {
	ctx := zlog.GetCtxFromGin(c)
	req, err := types.BindReq[types.BattleQuestionReq](c)
	if err != nil {
		return
	}
	resp, err := logic.NewBattleLogic().GetBattleQuestion(ctx, req)
	response.Response(c, resp, err)
}
