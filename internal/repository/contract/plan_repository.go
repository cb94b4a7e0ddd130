package contract

import (
	"context"

	"plans-assistant-be/internal/model"
)

type PlanRepository interface {
	FindAll(ctx context.Context) ([]model.Plan, error)
	FindByCategory(ctx context.Context, category string) ([]model.Plan, error)
	Categories(ctx context.Context) ([]string, error)
	CreateBulk(ctx context.Context, plans []model.Plan) error
	Count(ctx context.Context) (int64, error)
}
