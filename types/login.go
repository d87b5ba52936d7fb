package types

type SendCodeReq struct {
	Email string `json:"email" form:"email"`
}

type SendCodeResp struct {
}

type RegisterReq struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	Username string `json:"username" form:"username"`
	Code     string `json:"code" form:"code"`
}

type LoginReq struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type UserInfo struct {
	ID         int64  `json:"id,string"`
	Email      string `json:"email"`
	Username   string `json:"username"`
	BattlesWon int    `json:"battles_won"`
	LastWin    int64  `json:"last_win"`
}

type LoginResp struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}

type UpdateProfileReq struct {
	Username string `json:"username" form:"username"`
}

type ProfileResp struct {
	User UserInfo `json:"user"`
}
