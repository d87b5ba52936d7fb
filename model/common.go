package model

import (
	"time"

	"gorm.io/gorm"

	"github.com/yadhuu06/bitcode-backend/global"
)

type CommonModel struct {
	ID        int64     `gorm:"column:id;type:bigint;primaryKey;autoIncrement:false"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// BeforeCreate 通过雪花算法生成全局唯一ID
func (m *CommonModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == 0 && global.Node != nil {
		m.ID = global.Node.Generate().Int64()
	}
	return nil
}
