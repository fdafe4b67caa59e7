package postgres_adapter

import (
	"context"
	"errors"
	"fmt"
	"listings-service/internal/contextkeys"
	"listings-service/internal/core/domain"
	"listings-service/internal/core/port"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const inquiryColumns = `i.id, i.listing_id, i.inquirer_id, i.message, i.status, i.created_at, i.updated_at`

// Заявка отдается вместе с облегченной проекцией объявления,
// поэтому все выборки идут через JOIN к listings.
const inquiryWithListingQuery = `SELECT ` + inquiryColumns + `,
		l.id, l.title, l.location, l.price, l.price_type, l.images
	FROM inquiries i
	JOIN listings l ON l.id = i.listing_id`

// PostgresInquiryRepository - реализация InquiryStoragePort для PostgreSQL.
type PostgresInquiryRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresInquiryRepository - конструктор.
func NewPostgresInquiryRepository(pool *pgxpool.Pool) (*PostgresInquiryRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresInquiryRepository{pool: pool}, nil
}

// Create сохраняет новую заявку.
func (r *PostgresInquiryRepository) Create(ctx context.Context, inquiry *domain.Inquiry) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":  "PostgresInquiryRepository",
		"method":     "Create",
		"inquiry_id": inquiry.ID.String(),
	})

	query := `INSERT INTO inquiries (id, listing_id, inquirer_id, message, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		inquiry.ID, inquiry.ListingID, inquiry.InquirerID, inquiry.Message,
		inquiry.Status, inquiry.CreatedAt, inquiry.UpdatedAt,
	)
	if err != nil {
		repoLogger.Error("Failed to insert inquiry", err, port.Fields{"query": query})
		return fmt.Errorf("failed to insert inquiry: %w", err)
	}

	repoLogger.Debug("Inquiry inserted.", nil)
	return nil
}

// GetByID возвращает заявку без проекции объявления.
func (r *PostgresInquiryRepository) GetByID(ctx context.Context, inquiryID uuid.UUID) (*domain.Inquiry, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":  "PostgresInquiryRepository",
		"method":     "GetByID",
		"inquiry_id": inquiryID.String(),
	})

	query := fmt.Sprintf("SELECT %s FROM inquiries i WHERE i.id = $1", inquiryColumns)

	inquiry := &domain.Inquiry{}
	err := r.pool.QueryRow(ctx, query, inquiryID).Scan(
		&inquiry.ID, &inquiry.ListingID, &inquiry.InquirerID, &inquiry.Message,
		&inquiry.Status, &inquiry.CreatedAt, &inquiry.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			repoLogger.Warn("Inquiry not found.", nil)
			return nil, domain.ErrInquiryNotFound
		}
		repoLogger.Error("Failed to get inquiry", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to get inquiry: %w", err)
	}

	return inquiry, nil
}

// FindAll возвращает все заявки (область видимости администратора).
func (r *PostgresInquiryRepository) FindAll(ctx context.Context) ([]domain.InquiryWithListing, error) {
	query := inquiryWithListingQuery + " ORDER BY i.created_at DESC"
	return r.findWithListing(ctx, "FindAll", query)
}

// FindByListingOwner возвращает заявки по объявлениям владельца.
func (r *PostgresInquiryRepository) FindByListingOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.InquiryWithListing, error) {
	query := inquiryWithListingQuery + " WHERE l.owner_id = $1 ORDER BY i.created_at DESC"
	return r.findWithListing(ctx, "FindByListingOwner", query, ownerID)
}

// FindByListingAgent возвращает заявки по объявлениям, где назначен агент.
func (r *PostgresInquiryRepository) FindByListingAgent(ctx context.Context, agentID uuid.UUID) ([]domain.InquiryWithListing, error) {
	query := inquiryWithListingQuery + " WHERE l.agent_id = $1 ORDER BY i.created_at DESC"
	return r.findWithListing(ctx, "FindByListingAgent", query, agentID)
}

func (r *PostgresInquiryRepository) findWithListing(ctx context.Context, method, query string, args ...interface{}) ([]domain.InquiryWithListing, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "PostgresInquiryRepository",
		"method":    method,
	})

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		repoLogger.Error("Failed to query inquiries", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to query inquiries: %w", err)
	}
	defer rows.Close()

	result := make([]domain.InquiryWithListing, 0)
	for rows.Next() {
		var item domain.InquiryWithListing
		if err := rows.Scan(
			&item.ID, &item.ListingID, &item.InquirerID, &item.Message,
			&item.Status, &item.CreatedAt, &item.UpdatedAt,
			&item.Listing.ID, &item.Listing.Title, &item.Listing.Location,
			&item.Listing.Price, &item.Listing.PriceType, &item.Listing.Images,
		); err != nil {
			repoLogger.Error("Failed to scan inquiry row", err, nil)
			return nil, fmt.Errorf("failed to scan inquiry: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		repoLogger.Error("Error during inquiries rows iteration", err, nil)
		return nil, err
	}

	repoLogger.Debug("Successfully found inquiries.", port.Fields{"count": len(result)})
	return result, nil
}

// UpdateStatus меняет статус заявки и возвращает обновленную запись.
func (r *PostgresInquiryRepository) UpdateStatus(ctx context.Context, inquiryID uuid.UUID, status domain.InquiryStatus) (*domain.Inquiry, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":  "PostgresInquiryRepository",
		"method":     "UpdateStatus",
		"inquiry_id": inquiryID.String(),
		"new_status": status,
	})

	query := `UPDATE inquiries i SET status = $2, updated_at = now()
		WHERE i.id = $1
		RETURNING ` + inquiryColumns

	inquiry := &domain.Inquiry{}
	err := r.pool.QueryRow(ctx, query, inquiryID, status).Scan(
		&inquiry.ID, &inquiry.ListingID, &inquiry.InquirerID, &inquiry.Message,
		&inquiry.Status, &inquiry.CreatedAt, &inquiry.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			repoLogger.Warn("Inquiry to update not found.", nil)
			return nil, domain.ErrInquiryNotFound
		}
		repoLogger.Error("Failed to update inquiry status", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to update inquiry status: %w", err)
	}

	repoLogger.Debug("Inquiry status updated.", nil)
	return inquiry, nil
}

func (r *PostgresInquiryRepository) CountAll(ctx context.Context) (int64, error) {
	return r.count(ctx, "SELECT COUNT(*) FROM inquiries")
}

func (r *PostgresInquiryRepository) CountByListingOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	return r.count(ctx, "SELECT COUNT(*) FROM inquiries i JOIN listings l ON l.id = i.listing_id WHERE l.owner_id = $1", ownerID)
}

func (r *PostgresInquiryRepository) CountByListingAgent(ctx context.Context, agentID uuid.UUID) (int64, error) {
	return r.count(ctx, "SELECT COUNT(*) FROM inquiries i JOIN listings l ON l.id = i.listing_id WHERE l.agent_id = $1", agentID)
}

func (r *PostgresInquiryRepository) count(ctx context.Context, query string, args ...interface{}) (int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count inquiries: %w", err)
	}
	return total, nil
}
