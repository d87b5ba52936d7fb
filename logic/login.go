package logic

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"regexp"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yadhuu06/bitcode-backend/global"
	"github.com/yadhuu06/bitcode-backend/log/zlog"
	"github.com/yadhuu06/bitcode-backend/model"
	"github.com/yadhuu06/bitcode-backend/repo"
	"github.com/yadhuu06/bitcode-backend/response"
	"github.com/yadhuu06/bitcode-backend/types"
	"github.com/yadhuu06/bitcode-backend/utils/email"
	"github.com/yadhuu06/bitcode-backend/utils/jwtUtils"
)

type LoginLogic struct {
}

const (
	EMAIL_REGEX      = "^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\\.[a-zA-Z]{2,}$"
	REDIS_EMAIL_CODE = "login:email:%s:code"
)

func NewLoginLogic() *LoginLogic {
	return &LoginLogic{}
}

func (l *LoginLogic) SendCode(ctx context.Context, req types.SendCodeReq) (resp types.SendCodeResp, err error) {
	if req.Email == "" {
		return resp, response.ErrResp(errors.New("param blank"), response.PARAM_NOT_COMPLETE)
	}
	re := regexp.MustCompile(EMAIL_REGEX)
	if isMatch := re.MatchString(req.Email); !isMatch {
		return resp, response.ErrResp(err, response.EMAIL_NOT_VALID)
	}
	if global.Rdb == nil {
		return resp, response.ErrResp(errors.New("redis not init"), response.REDIS_ERROR)
	}
	code := rand.Intn(1000000)
	err = global.Rdb.Set(ctx, fmt.Sprintf(REDIS_EMAIL_CODE, req.Email), code, 5*time.Minute).Err()
	if err != nil {
		return resp, response.ErrResp(err, response.REDIS_ERROR)
	}
	err = email.SendCode(req.Email, int64(code))
	if err != nil {
		return resp, response.ErrResp(err, response.EMAIL_SEND_ERROR)
	}
	return resp, nil
}

func (l *LoginLogic) Register(ctx context.Context, req types.RegisterReq) (resp types.LoginResp, err error) {
	if req.Email == "" || req.Password == "" || req.Username == "" || req.Code == "" {
		return resp, response.ErrResp(errors.New("param blank"), response.PARAM_NOT_COMPLETE)
	}
	re := regexp.MustCompile(EMAIL_REGEX)
	if isMatch := re.MatchString(req.Email); !isMatch {
		return resp, response.ErrResp(err, response.EMAIL_NOT_VALID)
	}
	if global.Rdb == nil {
		return resp, response.ErrResp(errors.New("redis not init"), response.REDIS_ERROR)
	}
	code, err := global.Rdb.Get(ctx, fmt.Sprintf(REDIS_EMAIL_CODE, req.Email)).Int()
	if err != nil {
		return resp, response.ErrResp(err, response.VERIFY_CODE_VALID)
	}
	if fmt.Sprintf("%06d", code) != req.Code {
		return resp, response.ErrResp(err, response.VERIFY_CODE_VALID)
	}
	userRepo := repo.NewUserRepo(global.DB)
	exist, err := userRepo.GetByEmail(req.Email)
	if err == nil && exist.ID != 0 {
		return resp, response.ErrResp(errors.New("user exists"), response.USER_ALREADY_EXISTS)
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		zlog.CtxErrorf(ctx, "GetByEmail err: %v", err)
		return resp, response.ErrResp(err, response.DATABASE_ERROR)
	}
	// 用户名是台账和榜单里的身份，必须唯一
	exist, err = userRepo.GetByUsername(req.Username)
	if err == nil && exist.ID != 0 {
		return resp, response.ErrResp(errors.New("username taken"), response.USER_ALREADY_EXISTS)
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		zlog.CtxErrorf(ctx, "GetByUsername err: %v", err)
		return resp, response.ErrResp(err, response.DATABASE_ERROR)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		zlog.CtxErrorf(ctx, "bcrypt err: %v", err)
		return resp, response.ErrResp(err, response.INTERNAL_ERROR)
	}
	user := model.User{
		Email:    req.Email,
		Password: string(hashed),
		Username: req.Username,
	}
	if err = userRepo.Create(&user); err != nil {
		zlog.CtxErrorf(ctx, "Create user err: %v", err)
		return resp, response.ErrResp(err, response.DATABASE_ERROR)
	}
	token, err := jwtUtils.GenToken(user.ID, user.Username, global.ROLE_USER, global.ATOKEN_EFFECTIVE_TIME)
	if err != nil {
		zlog.CtxErrorf(ctx, "GenToken err: %v", err)
		return resp, response.ErrResp(err, response.INTERNAL_ERROR)
	}
	return types.LoginResp{
		Token: token,
		User:  toUserInfo(user),
	}, nil
}

func (l *LoginLogic) Login(ctx context.Context, req types.LoginReq) (resp types.LoginResp, err error) {
	if req.Email == "" || req.Password == "" {
		return resp, response.ErrResp(errors.New("param blank"), response.PARAM_NOT_COMPLETE)
	}
	userRepo := repo.NewUserRepo(global.DB)
	user, err := userRepo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return resp, response.ErrResp(err, response.MEMBER_NOT_EXIST)
		}
		zlog.CtxErrorf(ctx, "GetByEmail err: %v", err)
		return resp, response.ErrResp(err, response.DATABASE_ERROR)
	}
	if err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return resp, response.ErrResp(err, response.PASSWORD_ERROR)
	}
	token, err := jwtUtils.GenToken(user.ID, user.Username, global.ROLE_USER, global.ATOKEN_EFFECTIVE_TIME)
	if err != nil {
		zlog.CtxErrorf(ctx, "GenToken err: %v", err)
		return resp, response.ErrResp(err, response.INTERNAL_ERROR)
	}
	return types.LoginResp{
		Token: token,
		User:  toUserInfo(user),
	}, nil
}

func (l *LoginLogic) GetProfile(ctx context.Context, userID int64) (resp types.ProfileResp, err error) {
	_ = ctx
	if userID == 0 {
		return resp, response.ErrResp(errors.New("param blank"), response.PARAM_NOT_COMPLETE)
	}
	user, err := repo.NewUserRepo(global.DB).GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return resp, response.ErrResp(err, response.MEMBER_NOT_EXIST)
		}
		return resp, response.ErrResp(err, response.DATABASE_ERROR)
	}
	resp.User = toUserInfo(user)
	return resp, nil
}

func (l *LoginLogic) UpdateProfile(ctx context.Context, userID int64, req types.UpdateProfileReq) (resp types.ProfileResp, err error) {
	if userID == 0 || req.Username == "" {
		return resp, response.ErrResp(errors.New("param blank"), response.PARAM_NOT_COMPLETE)
	}
	userRepo := repo.NewUserRepo(global.DB)
	user, err := userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return resp, response.ErrResp(err, response.MEMBER_NOT_EXIST)
		}
		return resp, response.ErrResp(err, response.DATABASE_ERROR)
	}
	exist, err := userRepo.GetByUsername(req.Username)
	if err == nil && exist.ID != userID {
		return resp, response.ErrResp(errors.New("username taken"), response.USER_ALREADY_EXISTS)
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return resp, response.ErrResp(err, response.DATABASE_ERROR)
	}
	user.Username = req.Username
	if err = userRepo.UpdateProfile(user); err != nil {
		zlog.CtxErrorf(ctx, "UpdateProfile err: %v", err)
		return resp, response.ErrResp(err, response.DATABASE_ERROR)
	}
	resp.User = toUserInfo(user)
	return resp, nil
}

func toUserInfo(user model.User) types.UserInfo {
	return types.UserInfo{
		ID:         user.ID,
		Email:      user.Email,
		Username:   user.Username,
		BattlesWon: user.BattlesWon,
		LastWin:    user.LastWin,
	}
}
