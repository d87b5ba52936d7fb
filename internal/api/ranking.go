package api

import (
	"github.com/gin-gonic/gin"

	"github.com/yadhuu06/bitcode-backend/log/zlog"
	"github.com/yadhuu06/bitcode-backend/logic"
	"github.com/yadhuu06/bitcode-backend/response"
	"github.com/yadhuu06/bitcode-backend/utils/jwtUtils"
)

func GetSeasonRanking(c *gin.Context) {
	ctx := zlog.GetCtxFromGin(c)
	userID := jwtUtils.GetUserId(c)
	resp, err := logic.NewRankingLogic().GetSeasonRanking(ctx, userID)
	response.Response(c, resp, err)
}

func GetGlobalRanking(c *gin.Context) {
	ctx := zlog.GetCtxFromGin(c)
	resp, err := logic.NewRankingLogic().GetGlobalRanking(ctx)
	response.Response(c, resp, err)
}
