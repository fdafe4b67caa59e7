package postgres_adapter

import (
	"context"
	"errors"
	"fmt"
	"listings-service/internal/contextkeys"
	"listings-service/internal/core/domain"
	"listings-service/internal/core/port"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresViewEventRepository - реализация ViewEventStoragePort для PostgreSQL.
type PostgresViewEventRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresViewEventRepository - конструктор.
func NewPostgresViewEventRepository(pool *pgxpool.Pool) (*PostgresViewEventRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresViewEventRepository{pool: pool}, nil
}

// Record добавляет событие просмотра. Пара (listing_id, ip_address)
// ограничена уникальным индексом: повторный просмотр с того же адреса
// не создает новой записи и не считается ошибкой.
func (r *PostgresViewEventRepository) Record(ctx context.Context, event *domain.ViewEvent) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":  "PostgresViewEventRepository",
		"method":     "Record",
		"listing_id": event.ListingID.String(),
	})

	query := `INSERT INTO view_events (id, listing_id, ip_address, user_agent, viewer_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, query,
		event.ID, event.ListingID, event.IPAddress, event.UserAgent, event.ViewerID, event.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // 23505 - unique_violation
			repoLogger.Debug("View already recorded for this listing and address.", nil)
			return nil
		}
		repoLogger.Error("Failed to insert view event", err, port.Fields{"query": query})
		return fmt.Errorf("failed to insert view event: %w", err)
	}

	repoLogger.Debug("View event recorded.", nil)
	return nil
}

// CountForListings считает просмотры по набору объявлений.
// Пустой набор дает 0 без обращения к базе.
func (r *PostgresViewEventRepository) CountForListings(ctx context.Context, listingIDs []uuid.UUID) (int64, error) {
	if len(listingIDs) == 0 {
		return 0, nil
	}

	var total int64
	query := "SELECT COUNT(*) FROM view_events WHERE listing_id = ANY($1)"
	if err := r.pool.QueryRow(ctx, query, listingIDs).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count view events for listings: %w", err)
	}
	return total, nil
}

func (r *PostgresViewEventRepository) CountByViewer(ctx context.Context, viewerID uuid.UUID) (int64, error) {
	var total int64
	query := "SELECT COUNT(*) FROM view_events WHERE viewer_id = $1"
	if err := r.pool.QueryRow(ctx, query, viewerID).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count view events by viewer: %w", err)
	}
	return total, nil
}
