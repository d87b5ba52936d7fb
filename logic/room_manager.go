package logic

import (
	"context"
	"sync"
	"time"

	"github.com/yadhuu06/bitcode-backend/global"
	"github.com/yadhuu06/bitcode-backend/log/zlog"
	"github.com/yadhuu06/bitcode-backend/model"
	"github.com/yadhuu06/bitcode-backend/repo"
)

const roomCheckInterval = 5 * time.Second

// RoomManager 给每个进行中的房间挂一个超时看护协程，
// 到点后走与满额完成同一条完成路径
type RoomManager struct {
	mu      sync.Mutex
	workers map[int64]*roomWorker
}

type roomWorker struct {
	manager *RoomManager
	room    model.Room
	stopCh  chan struct{}
}

var roomManagerOnce sync.Once
var roomManager *RoomManager

func GetRoomManager() *RoomManager {
	roomManagerOnce.Do(func() {
		roomManager = &RoomManager{
			workers: make(map[int64]*roomWorker),
		}
	})
	return roomManager
}

func (m *RoomManager) StartRoom(room model.Room) {
	if room.TimeLimit <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.workers[room.ID]; ok {
		return
	}
	worker := &roomWorker{
		manager: m,
		room:    room,
		stopCh:  make(chan struct{}),
	}
	m.workers[room.ID] = worker
	go worker.run()
}

func (m *RoomManager) StopRoom(roomID int64) {
	m.mu.Lock()
	worker, ok := m.workers[roomID]
	if ok {
		delete(m.workers, roomID)
	}
	m.mu.Unlock()
	if ok {
		close(worker.stopCh)
	}
}

// StartAllActiveRooms 服务重启后恢复所有进行中房间的看护
func (m *RoomManager) StartAllActiveRooms() error {
	rooms, err := repo.NewRoomRepo(global.DB).ListActive()
	if err != nil {
		return err
	}
	for _, room := range rooms {
		m.StartRoom(room)
	}
	if len(rooms) > 0 {
		zlog.Infof("恢复%d个进行中房间的超时看护", len(rooms))
	}
	return nil
}

func (w *roomWorker) run() {
	ticker := time.NewTicker(roomCheckInterval)
	defer ticker.Stop()
	for {
		select {
		case <-w.stopCh:
			return
		case now := <-ticker.C:
			if !roomExpired(w.room, now) {
				continue
			}
			ctx := zlog.NewCtx(context.Background(), "")
			if err := NewBattleLogic().CompleteByTimeout(ctx, w.room.ID); err != nil {
				zlog.CtxErrorf(ctx, "房间%d超时结算失败:%v", w.room.ID, err)
			}
			w.manager.StopRoom(w.room.ID)
			return
		}
	}
}
