package utils

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yadhuu06/bitcode-backend/log/zlog"
)

/*
GetRootPath 获取项目根目录。
优先尝试获取当前可执行文件所在的目录，如果失败则返回当前工作目录。
*/
func GetRootPath(myPath string) string {
	// 获取当前可执行文件的路径
	exePath, err := os.Executable()
	if err != nil {
		// 如果获取失败，回退到当前工作目录
		wd, _ := os.Getwd()
		return filepath.Join(wd, myPath)
	}

	rootPath := filepath.Dir(exePath)

	// 包含 go-build 通常意味着是在 go run 的临时构建目录中
	if filepath.Base(rootPath) == "exe" || filepath.Base(rootPath) == "main" || strings.Contains(rootPath, "go-build") {
		wd, _ := os.Getwd()
		return filepath.Join(wd, myPath)
	}

	return filepath.Join(rootPath, myPath)
}

// StuctToJson
//
//	@Description: struct to json
//	@param value
//	@return string
//	@return error
func StuctToJson(value interface{}) (string, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return "", err
	}
	return string(data), err
}

// JsonToStruct
//
//	@Description: json to struct
//	@param str
//	@param value
//	@return error
func JsonToStruct(str string, value interface{}) error {
	return json.Unmarshal([]byte(str), value)
}

// RecordTime a tool to record time
// e.g [defer utils.RecordTime(time.Now())()]
func RecordTime(start time.Time) func() {
	return func() {
		end := time.Now()
		zlog.Debugf("use time:%d", end.Unix()-start.Unix())
	}
}
