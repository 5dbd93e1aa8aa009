package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"givehaven/internal/utils"
	"givehaven/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const profileTableName = schema + ".profiles"

var profileColumns = utils.StructTagValues(types.Profile{})

type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

func (r *ProfileRepository) Profile(ctx context.Context, userID string) (*types.Profile, error) {
	query, args, err := psql().
		Select(profileColumns...).
		From(profileTableName).
		Where(sq.Eq{"id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate profile query: %w", err)
	}

	var profile types.Profile
	err = pgxscan.Get(ctx, r.pool, &profile, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}

	return &profile, nil
}

func (r *ProfileRepository) IsSuperAdmin(ctx context.Context, userID string) (bool, error) {
	query, args, err := psql().
		Select("is_super_admin").
		From(profileTableName).
		Where(sq.Eq{"id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to generate super admin query: %w", err)
	}

	var isSuperAdmin bool
	err = r.pool.QueryRow(ctx, query, args...).Scan(&isSuperAdmin)
	if err != nil {
		if pgxscan.NotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to fetch super admin flag: %w", err)
	}

	return isSuperAdmin, nil
}

func (r *ProfileRepository) CountByRole(ctx context.Context, role types.Role) (int, error) {
	query, args, err := psql().
		Select("count(*)").
		From(profileTableName).
		Where(sq.Eq{"role": role}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to generate profile count query: %w", err)
	}

	var count int
	err = r.pool.QueryRow(ctx, query, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count profiles: %w", err)
	}

	return count, nil
}

// EnsureProfile creates a donor profile for a user seen for the first time.
// Existing profiles keep their role and display name.
func (r *ProfileRepository) EnsureProfile(ctx context.Context, userID, displayName string) error {
	now := time.Now()

	query, args, err := psql().
		Insert(profileTableName).
		Columns("id", "display_name", "role", "is_super_admin", "created_at", "updated_at").
		Values(userID, nullable(strings.TrimSpace(displayName)), types.RoleDonor, false, now, now).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate ensure profile query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to ensure profile")
}

func (r *ProfileRepository) Upsert(ctx context.Context, profile *types.Profile) error {
	now := time.Now()
	profile.UpdatedAt = now
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}

	query, args, err := psql().
		Insert(profileTableName).
		SetMap(utils.StructToMap(profile)).
		Suffix("ON CONFLICT (id) DO UPDATE SET display_name = EXCLUDED.display_name, avatar_url = EXCLUDED.avatar_url, role = EXCLUDED.role, is_super_admin = EXCLUDED.is_super_admin, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate upsert profile query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to upsert profile")
}
