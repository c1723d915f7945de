package repo

import (
	"context"

	"github.com/KNICEX/signal-tracker/internal/entity"
	"gorm.io/gorm"
)

type AlertRepo interface {
	Create(ctx context.Context, alert entity.Alert) (int64, error)
	FindBySignal(ctx context.Context, signalId int64) ([]entity.Alert, error)
	FindByKind(ctx context.Context, kind string) ([]entity.Alert, error)
}

type alertRepo struct {
	db *gorm.DB
}

func NewAlertRepo(db *gorm.DB) AlertRepo {
	return &alertRepo{
		db: db,
	}
}

func (r *alertRepo) Create(ctx context.Context, alert entity.Alert) (int64, error) {
	err := r.db.WithContext(ctx).Create(&alert).Error
	if err != nil {
		return 0, err
	}
	return alert.Id, nil
}

func (r *alertRepo) FindBySignal(ctx context.Context, signalId int64) ([]entity.Alert, error) {
	var alerts []entity.Alert
	err := r.db.WithContext(ctx).Where("signal_id = ?", signalId).Order("id").Find(&alerts).Error
	if err != nil {
		return nil, err
	}
	return alerts, nil
}

func (r *alertRepo) FindByKind(ctx context.Context, kind string) ([]entity.Alert, error) {
	var alerts []entity.Alert
	err := r.db.WithContext(ctx).Where("kind = ?", kind).Order("id").Find(&alerts).Error
	if err != nil {
		return nil, err
	}
	return alerts, nil
}
