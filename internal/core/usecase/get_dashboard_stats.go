package usecase

import (
	"context"
	"listings-service/internal/contextkeys"
	"listings-service/internal/core/domain"
	"listings-service/internal/core/port"

	"golang.org/x/sync/errgroup"
)

type GetDashboardStatsUseCase struct {
	listings  port.ListingStoragePort
	profiles  port.ProfileStoragePort
	inquiries port.InquiryStoragePort
	views     port.ViewEventStoragePort
}

func NewGetDashboardStatsUseCase(
	listings port.ListingStoragePort,
	profiles port.ProfileStoragePort,
	inquiries port.InquiryStoragePort,
	views port.ViewEventStoragePort,
) *GetDashboardStatsUseCase {
	return &GetDashboardStatsUseCase{
		listings:  listings,
		profiles:  profiles,
		inquiries: inquiries,
		views:     views,
	}
}

// Execute собирает сводку счетчиков для дашборда. Независимые подсчеты
// выполняются параллельно и соединяются общим ожиданием; первая же ошибка
// отменяет остальные запросы группы.
func (uc *GetDashboardStatsUseCase) Execute(ctx context.Context, requester domain.Claims) (*domain.DashboardStats, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "GetDashboardStats",
		"user_id":  requester.UserID.String(),
		"role":     requester.Role,
	})

	ucLogger.Info("Use case started", nil)

	stats := &domain.DashboardStats{Role: requester.Role}
	g, gctx := errgroup.WithContext(ctx)

	switch requester.Role {
	case domain.RoleAdmin:
		admin := &domain.AdminStats{}
		stats.Admin = admin
		g.Go(func() (err error) {
			admin.TotalListings, err = uc.listings.CountAll(gctx)
			return err
		})
		g.Go(func() (err error) {
			admin.TotalProfiles, err = uc.profiles.CountAll(gctx)
			return err
		})
		g.Go(func() (err error) {
			admin.TotalInquiries, err = uc.inquiries.CountAll(gctx)
			return err
		})

	case domain.RoleAgent:
		agent := &domain.AgentStats{}
		stats.Agent = agent
		g.Go(func() (err error) {
			agent.ManagedListings, err = uc.listings.CountByAgent(gctx, requester.UserID)
			return err
		})
		g.Go(func() (err error) {
			agent.AssignedInquiries, err = uc.inquiries.CountByListingAgent(gctx, requester.UserID)
			return err
		})

	case domain.RoleLandlord:
		landlord := &domain.LandlordStats{}
		stats.Landlord = landlord
		g.Go(func() (err error) {
			landlord.OwnedListings, err = uc.listings.CountByOwner(gctx, requester.UserID)
			return err
		})
		g.Go(func() (err error) {
			landlord.ReceivedInquiries, err = uc.inquiries.CountByListingOwner(gctx, requester.UserID)
			return err
		})
		// Зависимая цепочка: сначала разрешаем идентификаторы объявлений
		// владельца, затем считаем просмотры по этому набору. Пустой набор
		// дает 0, а не ошибку.
		g.Go(func() error {
			ids, err := uc.listings.IDsByOwner(gctx, requester.UserID)
			if err != nil {
				return err
			}
			if len(ids) == 0 {
				landlord.ListingViews = 0
				return nil
			}
			landlord.ListingViews, err = uc.views.CountForListings(gctx, ids)
			return err
		})

	default:
		// Клиент видит количество объявлений, просмотренных им самим.
		client := &domain.ClientStats{}
		stats.Client = client
		g.Go(func() (err error) {
			client.ViewedListings, err = uc.views.CountByViewer(gctx, requester.UserID)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		ucLogger.Error("One of the stat queries failed", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", nil)
	return stats, nil
}
