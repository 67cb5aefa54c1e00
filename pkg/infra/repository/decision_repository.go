package repository

import (
	"context"

	"github.com/govmind/decisions-api/pkg/domain/decision"
	"gorm.io/gorm"
)

type decisionRepository struct {
	db *gorm.DB
}

func NewDecisionRepository(db *gorm.DB) decision.Repository {
	return &decisionRepository{db: db}
}

func (r *decisionRepository) List(ctx context.Context, offset, limit int) ([]decision.Decision, error) {
	var decisions []decision.Decision
	err := r.db.WithContext(ctx).Model(&decision.Decision{}).
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&decisions).Error
	if err != nil {
		return nil, err
	}
	return decisions, nil
}

func (r *decisionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&decision.Decision{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *decisionRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
