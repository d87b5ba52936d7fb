package logic

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/yadhuu06/bitcode-backend/configs"
	"github.com/yadhuu06/bitcode-backend/model"
	"github.com/yadhuu06/bitcode-backend/types"
	"github.com/yadhuu06/bitcode-backend/utils"
)

const judgeDefaultTimeout = 30 * time.Second

// ErrJudgeReported 判题服务自身报告的错误，原样透传给选手
var ErrJudgeReported = errors.New("judge reported error")

// Verifier 外部判题服务
type Verifier interface {
	Verify(ctx context.Context, code, language string, testcases []model.TestCase) (types.VerifyResult, error)
}

type JudgeClient struct {
	url    string
	key    string
	client *http.Client
}

func NewJudgeClient(conf configs.Judge) *JudgeClient {
	timeout := judgeDefaultTimeout
	if conf.Timeout > 0 {
		timeout = time.Duration(conf.Timeout) * time.Second
	}
	return &JudgeClient{
		url: conf.URL,
		key: conf.Key,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

type judgeRequest struct {
	Code      string          `json:"code"`
	Language  string          `json:"language"`
	TestCases []judgeTestCase `json:"testcases"`
}

type judgeTestCase struct {
	Input    string `json:"input"`
	Expected string `json:"expected"`
}

type judgeResponse struct {
	AllPassed   bool                   `json:"all_passed"`
	TotalCases  int                    `json:"total_cases"`
	PassedCases int                    `json:"passed_cases"`
	Results     []types.TestCaseResult `json:"results"`
	Error       string                 `json:"error"`
}

func (j *JudgeClient) Verify(ctx context.Context, code, language string, testcases []model.TestCase) (types.VerifyResult, error) {
	defer utils.RecordTime(time.Now())()

	cases := make([]judgeTestCase, 0, len(testcases))
	for _, testcase := range testcases {
		cases = append(cases, judgeTestCase{
			Input:    testcase.Input,
			Expected: testcase.Expected,
		})
	}
	payload, err := json.Marshal(judgeRequest{
		Code:      code,
		Language:  language,
		TestCases: cases,
	})
	if err != nil {
		return types.VerifyResult{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, j.url+"/verify", bytes.NewReader(payload))
	if err != nil {
		return types.VerifyResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if j.key != "" {
		req.Header.Set("X-Auth-Token", j.key)
	}
	resp, err := j.client.Do(req)
	if err != nil {
		return types.VerifyResult{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return types.VerifyResult{}, fmt.Errorf("HTTP状态码异常:%d", resp.StatusCode)
	}
	var data judgeResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return types.VerifyResult{}, err
	}
	if data.Error != "" {
		return types.VerifyResult{Message: data.Error}, fmt.Errorf("%w:%s", ErrJudgeReported, data.Error)
	}
	return types.VerifyResult{
		AllPassed:   data.AllPassed,
		TotalCases:  data.TotalCases,
		PassedCases: data.PassedCases,
		Results:     data.Results,
	}, nil
}
