package implementation

import (
	"context"

	"plans-assistant-be/internal/model"
	"plans-assistant-be/internal/repository/contract"

	"gorm.io/gorm"
)

type PlanRepositoryImpl struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) contract.PlanRepository {
	return &PlanRepositoryImpl{db: db}
}

func (r *PlanRepositoryImpl) FindAll(ctx context.Context) ([]model.Plan, error) {
	var plans []model.Plan
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *PlanRepositoryImpl) FindByCategory(ctx context.Context, category string) ([]model.Plan, error) {
	var plans []model.Plan
	err := r.db.WithContext(ctx).
		Where("category = ?", category).
		Order("id ASC").
		Find(&plans).Error
	if err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *PlanRepositoryImpl) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).
		Model(&model.Plan{}).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *PlanRepositoryImpl) CreateBulk(ctx context.Context, plans []model.Plan) error {
	if len(plans) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&plans).Error
}

func (r *PlanRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Plan{}).Count(&count).Error
	return count, err
}
