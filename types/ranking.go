package types

type SeasonRankingResp struct {
	Username     string  `json:"username"`
	Season       string  `json:"season"`
	Rating       float64 `json:"rating"`
	Wins         int     `json:"wins"`
	Losses       int     `json:"losses"`
	TotalMatches int     `json:"total_matches"`
}

type GlobalRankingItem struct {
	Rank     int     `json:"rank"`
	Username string  `json:"username"`
	Rating   float64 `json:"rating"`
	Wins     int     `json:"wins"`
}

type GlobalRankingResp struct {
	Season   string              `json:"season"`
	Rankings []GlobalRankingItem `json:"rankings"`
}
