package types

import (
	"github.com/gin-gonic/gin"

	"github.com/yadhuu06/bitcode-backend/log/zlog"
	"github.com/yadhuu06/bitcode-backend/response"
)

// BindReq 统一参数绑定，失败时直接响应参数错误
func BindReq[T any](c *gin.Context) (T, error) {
	var req T
	if err := c.ShouldBind(&req); err != nil {
		zlog.CtxWarnf(zlog.GetCtxFromGin(c), "参数绑定失败:%v", err)
		response.NewResponse(c).Error(response.PARAM_NOT_VALID)
		return req, err
	}
	return req, nil
}
