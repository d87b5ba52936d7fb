package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"

	"github.com/yadhuu06/bitcode-backend/global"
	"github.com/yadhuu06/bitcode-backend/initalize"
	"github.com/yadhuu06/bitcode-backend/log/zlog"
	"github.com/yadhuu06/bitcode-backend/model"
	"github.com/yadhuu06/bitcode-backend/repo"
)

// go run ./script/question_import.go -c ./config.yaml -f ./questions.json

var inputPath = flag.String("f", "questions.json", "题库JSON文件路径")

type importQuestion struct {
	ID          int64            `json:"id,string"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Difficulty  int              `json:"difficulty"`
	TestCases   []importTestCase `json:"testcases"`
}

type importTestCase struct {
	Input    string `json:"input"`
	Expected string `json:"expected"`
	Hidden   bool   `json:"hidden"`
}

func main() {
	initalize.Init()
	defer initalize.Eve()

	ctx := context.Background()
	data, err := os.ReadFile(*inputPath)
	if err != nil {
		zlog.CtxErrorf(ctx, "读取题库文件失败：%v", err)
		return
	}
	var items []importQuestion
	if err := json.Unmarshal(data, &items); err != nil {
		zlog.CtxErrorf(ctx, "解析题库文件失败：%v", err)
		return
	}
	if len(items) == 0 {
		zlog.CtxInfof(ctx, "未解析到可写入的题目")
		return
	}

	questionRepo := repo.NewQuestionRepo(global.DB)
	questions := make([]model.Question, 0, len(items))
	for _, item := range items {
		question := model.Question{
			Title:       item.Title,
			Description: item.Description,
			Difficulty:  item.Difficulty,
		}
		question.ID = item.ID
		questions = append(questions, question)
	}
	if err := questionRepo.Upsert(questions); err != nil {
		zlog.CtxErrorf(ctx, "写入题目失败：%v", err)
		return
	}

	total := 0
	for i, item := range items {
		if len(item.TestCases) == 0 {
			continue
		}
		questionID := questions[i].ID
		// 重跑导入时用例整组重建
		err := global.DB.WithContext(ctx).
			Where("question_id = ?", questionID).
			Delete(&model.TestCase{}).Error
		if err != nil {
			zlog.CtxErrorf(ctx, "清理旧用例失败：%v", err)
			return
		}
		testcases := make([]model.TestCase, 0, len(item.TestCases))
		for _, tc := range item.TestCases {
			testcases = append(testcases, model.TestCase{
				QuestionID: questionID,
				Input:      tc.Input,
				Expected:   tc.Expected,
				Hidden:     tc.Hidden,
			})
		}
		if err := questionRepo.CreateTestCases(testcases); err != nil {
			zlog.CtxErrorf(ctx, "写入用例失败：%v", err)
			return
		}
		total += len(testcases)
	}

	zlog.CtxInfof(ctx, "写入完成，题目：%d，用例：%d", len(questions), total)
}
