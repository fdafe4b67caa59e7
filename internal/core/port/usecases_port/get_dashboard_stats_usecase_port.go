package usecases_port

import (
	"context"
	"listings-service/internal/core/domain"
)

type GetDashboardStatsUseCasePort interface {
	Execute(ctx context.Context, requester domain.Claims) (*domain.DashboardStats, error)
}
