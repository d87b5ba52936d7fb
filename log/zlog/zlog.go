package zlog

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey string

const (
	TraceIDKey ctxKey = "trace_id"
	ginCtxKey  string = "zlog_ctx"
)

var sugar *zap.SugaredLogger

func init() {
	// 未初始化前兜底，Init之后会被替换
	logger, _ := zap.NewDevelopment(zap.AddCallerSkip(1))
	sugar = logger.Sugar()
}

// Init 根据配置初始化日志，path为空时仅输出到控制台
func Init(level string, path string) error {
	zapLevel := zapcore.InfoLevel
	if err := zapLevel.Set(level); err != nil {
		zapLevel = zapcore.InfoLevel
	}
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig),
			zapcore.AddSync(os.Stdout),
			zapLevel,
		),
	}
	if path != "" {
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig),
			zapcore.AddSync(file),
			zapLevel,
		))
	}
	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1))
	sugar = logger.Sugar()
	return nil
}

func Sync() {
	_ = sugar.Sync()
}

// NewCtx 注入trace id，由全局中间件调用
func NewCtx(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// BindGin 把带trace id的ctx挂到gin上
func BindGin(c *gin.Context, ctx context.Context) {
	c.Set(ginCtxKey, ctx)
}

// GetCtxFromGin 从gin上取出带trace id的ctx
func GetCtxFromGin(c *gin.Context) context.Context {
	if value, exists := c.Get(ginCtxKey); exists {
		if ctx, ok := value.(context.Context); ok {
			return ctx
		}
	}
	return c.Request.Context()
}

func traceField(ctx context.Context) []interface{} {
	if ctx == nil {
		return nil
	}
	if traceID, ok := ctx.Value(TraceIDKey).(string); ok && traceID != "" {
		return []interface{}{"trace_id", traceID}
	}
	return nil
}

func Debugf(format string, args ...interface{}) {
	sugar.Debugf(format, args...)
}

func Infof(format string, args ...interface{}) {
	sugar.Infof(format, args...)
}

func Warnf(format string, args ...interface{}) {
	sugar.Warnf(format, args...)
}

func Errorf(format string, args ...interface{}) {
	sugar.Errorf(format, args...)
}

func CtxDebugf(ctx context.Context, format string, args ...interface{}) {
	sugar.With(traceField(ctx)...).Debugf(format, args...)
}

func CtxInfof(ctx context.Context, format string, args ...interface{}) {
	sugar.With(traceField(ctx)...).Infof(format, args...)
}

func CtxWarnf(ctx context.Context, format string, args ...interface{}) {
	sugar.With(traceField(ctx)...).Warnf(format, args...)
}

func CtxErrorf(ctx context.Context, format string, args ...interface{}) {
	sugar.With(traceField(ctx)...).Errorf(format, args...)
}
