// FILE: internal/service/plan_service.go
package service

import (
	"context"
	"fmt"

	"plans-assistant-be/internal/dto"
	"plans-assistant-be/internal/model"
	"plans-assistant-be/internal/repository/contract"
)

type PlanService interface {
	GetAllPlans(ctx context.Context) ([]dto.PlanResponse, error)
	GetPlansByCategory(ctx context.Context, category string) ([]dto.PlanResponse, error)
	GetCategories(ctx context.Context) ([]string, error)
}

type planService struct {
	plans contract.PlanRepository
}

func NewPlanService(plans contract.PlanRepository) PlanService {
	return &planService{plans: plans}
}

func toPlanResponses(records []model.Plan) []dto.PlanResponse {
	out := make([]dto.PlanResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, dto.PlanResponse{
			Id:          rec.Id,
			Category:    rec.Category,
			Plans:       rec.Plans,
			Price:       rec.Price,
			Description: rec.Description,
		})
	}
	return out
}

func (s *planService) GetAllPlans(ctx context.Context) ([]dto.PlanResponse, error) {
	records, err := s.plans.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch plans: %w", err)
	}
	return toPlanResponses(records), nil
}

func (s *planService) GetPlansByCategory(ctx context.Context, category string) ([]dto.PlanResponse, error) {
	records, err := s.plans.FindByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch plans for category %s: %w", category, err)
	}
	return toPlanResponses(records), nil
}

func (s *planService) GetCategories(ctx context.Context) ([]string, error) {
	categories, err := s.plans.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	return categories, nil
}
