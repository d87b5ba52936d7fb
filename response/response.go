package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RespCode 业务码，Status为对应的HTTP状态码
type RespCode struct {
	Code   int    `json:"code"`
	Msg    string `json:"msg"`
	Status int    `json:"-"`
}

var (
	SUCCESS     = RespCode{Code: 200, Msg: "成功", Status: http.StatusOK}
	COMMON_FAIL = RespCode{Code: 10000, Msg: "请求失败", Status: http.StatusBadRequest}

	PARAM_NOT_COMPLETE = RespCode{Code: 10001, Msg: "参数缺失", Status: http.StatusBadRequest}
	PARAM_NOT_VALID    = RespCode{Code: 10002, Msg: "参数无效", Status: http.StatusBadRequest}
	INTERNAL_ERROR     = RespCode{Code: 10003, Msg: "服务内部错误", Status: http.StatusInternalServerError}
	DATABASE_ERROR     = RespCode{Code: 10004, Msg: "数据库异常", Status: http.StatusInternalServerError}
	REDIS_ERROR        = RespCode{Code: 10005, Msg: "缓存服务异常", Status: http.StatusInternalServerError}
	REQUEST_FREQUENTLY = RespCode{Code: 10006, Msg: "请求过于频繁", Status: http.StatusTooManyRequests}
	MESSAGE_NOT_EXIST  = RespCode{Code: 10007, Msg: "消息类型不存在", Status: http.StatusNotFound}

	TOKEN_IS_BLANK      = RespCode{Code: 20001, Msg: "token为空", Status: http.StatusUnauthorized}
	TOKEN_FORMAT_ERROR  = RespCode{Code: 20002, Msg: "token格式错误", Status: http.StatusUnauthorized}
	TOKEN_IS_EXPIRED    = RespCode{Code: 20003, Msg: "token已过期", Status: http.StatusUnauthorized}
	USER_NOT_LOGIN      = RespCode{Code: 20004, Msg: "用户未登录", Status: http.StatusUnauthorized}
	PERMISSION_DENIED   = RespCode{Code: 20005, Msg: "权限不足", Status: http.StatusForbidden}
	MEMBER_NOT_EXIST    = RespCode{Code: 20006, Msg: "用户不存在", Status: http.StatusNotFound}
	USER_ALREADY_EXISTS = RespCode{Code: 20007, Msg: "用户已存在", Status: http.StatusBadRequest}
	PASSWORD_ERROR      = RespCode{Code: 20008, Msg: "密码错误", Status: http.StatusBadRequest}
	EMAIL_NOT_VALID     = RespCode{Code: 20009, Msg: "邮箱格式错误", Status: http.StatusBadRequest}
	EMAIL_SEND_ERROR    = RespCode{Code: 20010, Msg: "邮件发送失败", Status: http.StatusInternalServerError}
	VERIFY_CODE_VALID   = RespCode{Code: 20011, Msg: "验证码错误或已过期", Status: http.StatusBadRequest}

	QUESTION_NOT_EXIST   = RespCode{Code: 30001, Msg: "题目不存在", Status: http.StatusNotFound}
	ROOM_NOT_EXIST       = RespCode{Code: 30002, Msg: "房间不存在", Status: http.StatusNotFound}
	BATTLE_NOT_STARTED   = RespCode{Code: 30003, Msg: "对战尚未开始", Status: http.StatusBadRequest}
	BATTLE_ALREADY_ENDED = RespCode{Code: 30004, Msg: "对战已经结束", Status: http.StatusBadRequest}
	TIME_LIMIT_EXCEEDED  = RespCode{Code: 30005, Msg: "已超出时间限制", Status: http.StatusBadRequest}
	NO_TEST_CASES        = RespCode{Code: 30006, Msg: "题目没有可用测试用例", Status: http.StatusBadRequest}
	JUDGE_ERROR          = RespCode{Code: 30007, Msg: "判题服务异常", Status: http.StatusBadRequest}
	ROOM_FULL            = RespCode{Code: 30008, Msg: "房间已满", Status: http.StatusBadRequest}
	NOT_ROOM_MEMBER      = RespCode{Code: 30009, Msg: "不在房间中", Status: http.StatusBadRequest}

	INVALID_PARTICIPANTS = RespCode{Code: 40001, Msg: "参赛人数不合法", Status: http.StatusInternalServerError}
	SEASON_NOT_EXIST     = RespCode{Code: 40002, Msg: "没有进行中的赛季", Status: http.StatusInternalServerError}
	RANKING_NOT_EXIST    = RespCode{Code: 40003, Msg: "当前赛季暂无排名", Status: http.StatusNotFound}
)

// CodeError 带业务码的error，logic层统一用ErrResp包装
type CodeError struct {
	Code RespCode
	Err  error
}

func (e *CodeError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Code.Msg
}

func (e *CodeError) Unwrap() error {
	return e.Err
}

func ErrResp(err error, code RespCode) error {
	return &CodeError{Code: code, Err: err}
}

// CodeOf 取出error对应的业务码，非CodeError一律视为内部错误
func CodeOf(err error) RespCode {
	var codeErr *CodeError
	if errors.As(err, &codeErr) {
		return codeErr.Code
	}
	return INTERNAL_ERROR
}

type body struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data,omitempty"`
}

// Response handler层统一出口
func Response(c *gin.Context, resp interface{}, err error) {
	if err == nil {
		c.JSON(http.StatusOK, body{
			Code: SUCCESS.Code,
			Msg:  SUCCESS.Msg,
			Data: resp,
		})
		return
	}
	code := CodeOf(err)
	msg := code.Msg
	if code == INTERNAL_ERROR && err.Error() != "" {
		msg = err.Error()
	}
	c.JSON(code.Status, body{
		Code: code.Code,
		Msg:  msg,
		Data: resp,
	})
}

type Responder struct {
	c *gin.Context
}

func NewResponse(c *gin.Context) *Responder {
	return &Responder{c: c}
}

func (r *Responder) Success(data interface{}) {
	r.c.JSON(http.StatusOK, body{
		Code: SUCCESS.Code,
		Msg:  SUCCESS.Msg,
		Data: data,
	})
}

func (r *Responder) Error(code RespCode) {
	r.c.JSON(code.Status, body{
		Code: code.Code,
		Msg:  code.Msg,
	})
}
