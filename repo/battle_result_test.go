package repo

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yadhuu06/bitcode-backend/global"
	"github.com/yadhuu06/bitcode-backend/model"
)

func init() {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	global.Node = node
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, model.MigrateTables(db))
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}

func TestBattleResultGetOrCreate(t *testing.T) {
	db := setupTestDB(t)
	battleResultRepo := NewBattleResultRepo(db)

	first, err := battleResultRepo.GetOrCreate(1, 2)
	require.NoError(t, err)
	assert.Equal(t, "[]", first.Results)

	// 同一(room,question)只会有一条台账
	second, err := battleResultRepo.GetOrCreate(1, 2)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	require.NoError(t, battleResultRepo.UpdateResults(first.ID, `[{"username":"alice","position":1}]`))
	got, err := battleResultRepo.Get(1, 2)
	require.NoError(t, err)
	assert.Contains(t, got.Results, "alice")
	assert.Equal(t, first.ID, got.ID)
}

func TestRoomStatusTransitions(t *testing.T) {
	db := setupTestDB(t)
	roomRepo := NewRoomRepo(db)
	room := model.Room{
		Name:       "房",
		Capacity:   2,
		Status:     global.ROOM_STATUS_WAITING,
		OwnerID:    1,
		QuestionID: 1,
	}
	require.NoError(t, roomRepo.Create(&room))

	startTime := time.Now().Unix()
	started, err := roomRepo.Start(room.ID, startTime)
	require.NoError(t, err)
	assert.True(t, started)

	// 开赛CAS只生效一次
	started, err = roomRepo.Start(room.ID, startTime+100)
	require.NoError(t, err)
	assert.False(t, started)
	got, err := roomRepo.GetByID(room.ID)
	require.NoError(t, err)
	assert.Equal(t, startTime, got.StartTime)

	completed, err := roomRepo.Complete(room.ID, time.Now().Unix())
	require.NoError(t, err)
	assert.True(t, completed)

	// 完成CAS同样只生效一次
	completed, err = roomRepo.Complete(room.ID, time.Now().Unix())
	require.NoError(t, err)
	assert.False(t, completed)

	// 已完成不可回到进行中
	started, err = roomRepo.Start(room.ID, time.Now().Unix())
	require.NoError(t, err)
	assert.False(t, started)
}
