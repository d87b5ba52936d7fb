package types

type BattleSubmitReq struct {
	RoomID     string `json:"room_id" form:"room_id"`
	QuestionID string `json:"question_id" form:"question_id"`
	Code       string `json:"code" form:"code"`
	Language   string `json:"language" form:"language"`
}

type TestCaseResult struct {
	Input    string `json:"input"`
	Expected string `json:"expected"`
	Output   string `json:"output"`
	Passed   bool   `json:"passed"`
}

// VerifyResult 判题服务的返回，通过时附加position后原样回给选手
type VerifyResult struct {
	AllPassed   bool             `json:"all_passed"`
	TotalCases  int              `json:"total_cases"`
	PassedCases int              `json:"passed_cases"`
	Results     []TestCaseResult `json:"results,omitempty"`
	Message     string           `json:"message,omitempty"`
	Position    int              `json:"position,omitempty"`
}

// ParticipantResult 台账中的单条完成记录
type ParticipantResult struct {
	Username       string `json:"username"`
	Position       int    `json:"position"`
	CompletionTime string `json:"completion_time"`
}

type BattleQuestionReq struct {
	QuestionID string `form:"question_id" json:"question_id"`
}

type QuestionInfo struct {
	QuestionID  int64  `json:"question_id,string"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Difficulty  int    `json:"difficulty"`
}

type TestCaseInfo struct {
	Input    string `json:"input"`
	Expected string `json:"expected"`
}

type BattleQuestionResp struct {
	Question  QuestionInfo   `json:"question"`
	TestCases []TestCaseInfo `json:"testcases"`
}

// CodeVerifiedEvent 过题进度事件，只携带提交者自己的名次
type CodeVerifiedEvent struct {
	Username       string `json:"username"`
	Position       int    `json:"position"`
	CompletionTime string `json:"completion_time"`
}

// BattleCompletedEvent 对战结束事件
type BattleCompletedEvent struct {
	Winners      []ParticipantResult `json:"winners"`
	RoomCapacity int                 `json:"room_capacity"`
	QuestionID   string              `json:"question_id,omitempty"`
	Message      string              `json:"message"`
}
