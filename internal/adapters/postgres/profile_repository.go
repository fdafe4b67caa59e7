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

const profileColumns = `p.id, p.role, p.full_name, p.company, p.avatar_url, p.phone, p.email,
	p.is_verified, p.created_at, p.updated_at`

// PostgresProfileRepository - реализация ProfileStoragePort для PostgreSQL.
type PostgresProfileRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresProfileRepository - конструктор.
func NewPostgresProfileRepository(pool *pgxpool.Pool) (*PostgresProfileRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresProfileRepository{pool: pool}, nil
}

func scanProfile(row pgx.Row, profile *domain.Profile) error {
	return row.Scan(
		&profile.ID, &profile.Role, &profile.FullName, &profile.Company,
		&profile.AvatarURL, &profile.Phone, &profile.Email, &profile.IsVerified,
		&profile.CreatedAt, &profile.UpdatedAt,
	)
}

// GetByID возвращает профиль по идентификатору.
func (r *PostgresProfileRepository) GetByID(ctx context.Context, profileID uuid.UUID) (*domain.Profile, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":  "PostgresProfileRepository",
		"method":     "GetByID",
		"profile_id": profileID.String(),
	})

	query := fmt.Sprintf("SELECT %s FROM profiles p WHERE p.id = $1", profileColumns)

	profile := &domain.Profile{}
	if err := scanProfile(r.pool.QueryRow(ctx, query, profileID), profile); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			repoLogger.Warn("Profile not found.", nil)
			return nil, domain.ErrProfileNotFound
		}
		repoLogger.Error("Failed to get profile", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return profile, nil
}

// Update сохраняет отображаемые атрибуты профиля и возвращает обновленную
// запись. Роль через этот метод не меняется.
func (r *PostgresProfileRepository) Update(ctx context.Context, profile *domain.Profile) (*domain.Profile, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":  "PostgresProfileRepository",
		"method":     "Update",
		"profile_id": profile.ID.String(),
	})

	query := `UPDATE profiles p SET
			full_name = $2, company = $3, avatar_url = $4, phone = $5, email = $6, updated_at = $7
		WHERE p.id = $1
		RETURNING ` + profileColumns

	updated := &domain.Profile{}
	row := r.pool.QueryRow(ctx, query,
		profile.ID, profile.FullName, profile.Company, profile.AvatarURL,
		profile.Phone, profile.Email, profile.UpdatedAt,
	)
	if err := scanProfile(row, updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			repoLogger.Warn("Profile to update not found.", nil)
			return nil, domain.ErrProfileNotFound
		}
		repoLogger.Error("Failed to update profile", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	repoLogger.Debug("Profile updated.", nil)
	return updated, nil
}

func (r *PostgresProfileRepository) CountAll(ctx context.Context) (int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM profiles").Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count profiles: %w", err)
	}
	return total, nil
}
