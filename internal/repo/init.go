package repo

import (
	"github.com/KNICEX/signal-tracker/internal/entity"
	"gorm.io/gorm"
)

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(&entity.Alert{})
}
