package postgres_adapter

import (
	"context"
	"errors"
	"fmt"
	"listings-service/internal/contextkeys"
	"listings-service/internal/core/domain"
	"listings-service/internal/core/port"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mmcloughlin/geohash"
)

// Точность геохэша: ~5 км, достаточно для группировки по району.
const geohashPrecision = 5

const listingColumns = `l.id, l.title, l.description, l.price, l.price_type, l.category, l.location,
	l.bedrooms, l.bathrooms, l.area, l.rating, l.images, l.is_available, l.is_featured, l.is_verified,
	l.owner_id, l.agent_id, l.latitude, l.longitude, l.geohash, l.created_at, l.updated_at`

// PostgresListingRepository - реализация ListingStoragePort для PostgreSQL.
type PostgresListingRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresListingRepository - конструктор.
func NewPostgresListingRepository(pool *pgxpool.Pool) (*PostgresListingRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresListingRepository{pool: pool}, nil
}

// applyGeohash выводит геохэш из координат объявления.
// Без координат колонка остается пустой.
func applyGeohash(listing *domain.Listing) {
	if listing.Latitude == nil || listing.Longitude == nil {
		listing.Geohash = nil
		return
	}
	hash := geohash.EncodeWithPrecision(*listing.Latitude, *listing.Longitude, geohashPrecision)
	listing.Geohash = &hash
}

func scanListing(row pgx.Row, listing *domain.Listing) error {
	return row.Scan(
		&listing.ID, &listing.Title, &listing.Description, &listing.Price, &listing.PriceType,
		&listing.Category, &listing.Location, &listing.Bedrooms, &listing.Bathrooms,
		&listing.Area, &listing.Rating, &listing.Images, &listing.IsAvailable,
		&listing.IsFeatured, &listing.IsVerified, &listing.OwnerID, &listing.AgentID,
		&listing.Latitude, &listing.Longitude, &listing.Geohash,
		&listing.CreatedAt, &listing.UpdatedAt,
	)
}

// Create сохраняет новое объявление.
func (r *PostgresListingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":  "PostgresListingRepository",
		"method":     "Create",
		"listing_id": listing.ID.String(),
	})

	applyGeohash(listing)

	query := `INSERT INTO listings (id, title, description, price, price_type, category, location,
			bedrooms, bathrooms, area, rating, images, is_available, is_featured, is_verified,
			owner_id, agent_id, latitude, longitude, geohash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`

	_, err := r.pool.Exec(ctx, query,
		listing.ID, listing.Title, listing.Description, listing.Price, listing.PriceType,
		listing.Category, listing.Location, listing.Bedrooms, listing.Bathrooms,
		listing.Area, listing.Rating, listing.Images, listing.IsAvailable,
		listing.IsFeatured, listing.IsVerified, listing.OwnerID, listing.AgentID,
		listing.Latitude, listing.Longitude, listing.Geohash,
		listing.CreatedAt, listing.UpdatedAt,
	)
	if err != nil {
		repoLogger.Error("Failed to insert listing", err, port.Fields{"query": query})
		return fmt.Errorf("failed to insert listing: %w", err)
	}

	repoLogger.Debug("Listing inserted.", nil)
	return nil
}

// Update сохраняет изменения объявления и возвращает обновленную запись.
func (r *PostgresListingRepository) Update(ctx context.Context, listing *domain.Listing) (*domain.Listing, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":  "PostgresListingRepository",
		"method":     "Update",
		"listing_id": listing.ID.String(),
	})

	applyGeohash(listing)

	query := `UPDATE listings l SET
			title = $2, description = $3, price = $4, price_type = $5, category = $6, location = $7,
			bedrooms = $8, bathrooms = $9, area = $10, rating = $11, images = $12,
			is_available = $13, is_featured = $14, is_verified = $15, agent_id = $16,
			latitude = $17, longitude = $18, geohash = $19, updated_at = $20
		WHERE l.id = $1
		RETURNING ` + listingColumns

	updated := &domain.Listing{}
	row := r.pool.QueryRow(ctx, query,
		listing.ID, listing.Title, listing.Description, listing.Price, listing.PriceType,
		listing.Category, listing.Location, listing.Bedrooms, listing.Bathrooms,
		listing.Area, listing.Rating, listing.Images, listing.IsAvailable,
		listing.IsFeatured, listing.IsVerified, listing.AgentID,
		listing.Latitude, listing.Longitude, listing.Geohash, listing.UpdatedAt,
	)
	if err := scanListing(row, updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			repoLogger.Warn("Listing to update not found.", nil)
			return nil, domain.ErrListingNotFound
		}
		repoLogger.Error("Failed to update listing", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to update listing: %w", err)
	}

	repoLogger.Debug("Listing updated.", nil)
	return updated, nil
}

// GetByID возвращает объявление по идентификатору независимо от is_available.
func (r *PostgresListingRepository) GetByID(ctx context.Context, listingID uuid.UUID) (*domain.Listing, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":  "PostgresListingRepository",
		"method":     "GetByID",
		"listing_id": listingID.String(),
	})

	query := fmt.Sprintf("SELECT %s FROM listings l WHERE l.id = $1", listingColumns)

	listing := &domain.Listing{}
	if err := scanListing(r.pool.QueryRow(ctx, query, listingID), listing); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			repoLogger.Warn("Listing not found.", nil)
			return nil, domain.ErrListingNotFound
		}
		repoLogger.Error("Failed to get listing", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}

	return listing, nil
}

// FindWithFilters ищет доступные объявления по набору фильтров с пагинацией.
// COUNT и данные выполняются в одной транзакции, чтобы страница и общий
// счетчик были согласованы.
func (r *PostgresListingRepository) FindWithFilters(ctx context.Context, filters domain.ListingFilters, limit, offset int) (*domain.PaginatedListings, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "PostgresListingRepository",
		"method":    "FindWithFilters",
		"limit":     limit,
		"offset":    offset,
	})

	// Получаем части запроса от билдера
	whereClause, orderClause, args := applyListingFilters(filters)

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM listings l %s", whereClause)
	var totalCount int64
	if err := tx.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		repoLogger.Error("Failed to count listings with filters", err, port.Fields{"query": countQuery})
		return nil, fmt.Errorf("failed to count listings with filters: %w", err)
	}

	repoLogger.Debug("Total listings found", port.Fields{"total_count": totalCount})

	// Если ничего не найдено, нет смысла делать второй запрос
	if totalCount == 0 {
		return &domain.PaginatedListings{
			Listings:     []domain.Listing{},
			TotalCount:   0,
			CurrentPage:  offset/limit + 1,
			ItemsPerPage: limit,
		}, nil
	}

	var dataQuery strings.Builder
	dataQuery.WriteString(fmt.Sprintf("SELECT %s FROM listings l ", listingColumns))
	dataQuery.WriteString(whereClause)
	dataQuery.WriteString(" ")
	dataQuery.WriteString(orderClause)
	dataQuery.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2))

	limitOffsetArgs := append(args, limit, offset)

	rows, err := tx.Query(ctx, dataQuery.String(), limitOffsetArgs...)
	if err != nil {
		repoLogger.Error("Failed to find listings with filters", err, port.Fields{"query": dataQuery.String()})
		return nil, fmt.Errorf("failed to find listings with filters: %w", err)
	}
	defer rows.Close()

	listings := make([]domain.Listing, 0, limit)
	for rows.Next() {
		var listing domain.Listing
		if err := scanListing(rows, &listing); err != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}
		listings = append(listings, listing)
	}
	if err := rows.Err(); err != nil {
		repoLogger.Error("Error during listings rows iteration", err, nil)
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	repoLogger.Info("Successfully found listings for page", port.Fields{"count": len(listings)})

	return &domain.PaginatedListings{
		Listings:     listings,
		TotalCount:   int(totalCount),
		CurrentPage:  offset/limit + 1,
		ItemsPerPage: limit,
	}, nil
}

// IDsByOwner возвращает идентификаторы всех объявлений владельца.
func (r *PostgresListingRepository) IDsByOwner(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "PostgresListingRepository",
		"method":    "IDsByOwner",
		"owner_id":  ownerID.String(),
	})

	query := "SELECT id FROM listings WHERE owner_id = $1"
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		repoLogger.Error("Failed to query listing IDs by owner", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to query listing IDs by owner: %w", err)
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan listing ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		repoLogger.Error("Error during listing IDs iteration", err, nil)
		return nil, fmt.Errorf("error during listing IDs iteration: %w", err)
	}

	return ids, nil
}

func (r *PostgresListingRepository) CountAll(ctx context.Context) (int64, error) {
	return r.count(ctx, "SELECT COUNT(*) FROM listings")
}

func (r *PostgresListingRepository) CountByAgent(ctx context.Context, agentID uuid.UUID) (int64, error) {
	return r.count(ctx, "SELECT COUNT(*) FROM listings WHERE agent_id = $1", agentID)
}

func (r *PostgresListingRepository) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	return r.count(ctx, "SELECT COUNT(*) FROM listings WHERE owner_id = $1", ownerID)
}

func (r *PostgresListingRepository) count(ctx context.Context, query string, args ...interface{}) (int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count listings: %w", err)
	}
	return total, nil
}
