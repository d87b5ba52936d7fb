package logic

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yadhuu06/bitcode-backend/configs"
	"github.com/yadhuu06/bitcode-backend/global"
	"github.com/yadhuu06/bitcode-backend/model"
	"github.com/yadhuu06/bitcode-backend/repo"
	"github.com/yadhuu06/bitcode-backend/response"
	"github.com/yadhuu06/bitcode-backend/types"
)

func setupTestConfig(t *testing.T) {
	t.Helper()
	global.Config = &configs.Config{
		JWT: configs.JWT{Secret: "test-secret"},
	}
	t.Cleanup(func() {
		global.Config = nil
	})
}

func TestLogin(t *testing.T) {
	db := setupTestDB(t)
	setupTestConfig(t)
	hashed, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.DefaultCost)
	require.NoError(t, err)
	user := model.User{
		Email:    "alice@test.local",
		Password: string(hashed),
		Username: "alice",
	}
	require.NoError(t, repo.NewUserRepo(db).Create(&user))

	loginLogic := NewLoginLogic()
	resp, err := loginLogic.Login(context.Background(), types.LoginReq{
		Email:    "alice@test.local",
		Password: "s3cret",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "alice", resp.User.Username)

	_, err = loginLogic.Login(context.Background(), types.LoginReq{
		Email:    "alice@test.local",
		Password: "wrong",
	})
	require.Error(t, err)
	assert.Equal(t, response.PASSWORD_ERROR.Code, response.CodeOf(err).Code)

	_, err = loginLogic.Login(context.Background(), types.LoginReq{
		Email:    "nobody@test.local",
		Password: "s3cret",
	})
	require.Error(t, err)
	assert.Equal(t, response.MEMBER_NOT_EXIST.Code, response.CodeOf(err).Code)
}

func TestUpdateProfile(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "alice")

	loginLogic := NewLoginLogic()
	resp, err := loginLogic.UpdateProfile(context.Background(), user.ID, types.UpdateProfileReq{
		Username: "alice2",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice2", resp.User.Username)

	got, err := loginLogic.GetProfile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice2", got.User.Username)
}

func TestUpdateProfileRejectsTakenUsername(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice")
	createTestUser(t, db, "bob")

	loginLogic := NewLoginLogic()
	// 用户名是台账身份，不允许撞名
	_, err := loginLogic.UpdateProfile(context.Background(), alice.ID, types.UpdateProfileReq{
		Username: "bob",
	})
	require.Error(t, err)
	assert.Equal(t, response.USER_ALREADY_EXISTS.Code, response.CodeOf(err).Code)

	// 改回自己当前的名字不算撞名
	resp, err := loginLogic.UpdateProfile(context.Background(), alice.ID, types.UpdateProfileReq{
		Username: "alice",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", resp.User.Username)
}
