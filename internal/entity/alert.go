package entity

import (
	"time"
)

// Alert 已发送的提醒记录
type Alert struct {
	Id          int64  `gorm:"primaryKey;autoIncrement"`
	SignalId    int64  `gorm:"index"`
	Symbol      string `gorm:"index"`
	Kind        string `gorm:"index"`
	TargetIndex int
	Level       string
	Observed    string
	CreatedAt   time.Time `gorm:"index"`
}

const (
	AlertKindTarget = "target"
	AlertKindStop   = "stop"
)
