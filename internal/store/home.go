package store

import (
	"context"
	"fmt"
	"time"

	"givehaven/internal/utils"
	"givehaven/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const homeTableName = schema + ".homes"

var homeColumns = utils.StructTagValues(types.Home{})

type HomeRepository struct {
	pool *pgxpool.Pool
}

func NewHomeRepository(pool *pgxpool.Pool) *HomeRepository {
	return &HomeRepository{pool: pool}
}

func (r *HomeRepository) Home(ctx context.Context, homeID string) (*types.Home, error) {
	return r.homeWhere(ctx, sq.Eq{"id": homeID})
}

func (r *HomeRepository) HomeByOwner(ctx context.Context, ownerID string) (*types.Home, error) {
	return r.homeWhere(ctx, sq.Eq{"owner_id": ownerID})
}

func (r *HomeRepository) homeWhere(ctx context.Context, pred sq.Eq) (*types.Home, error) {
	query, args, err := psql().
		Select(homeColumns...).
		From(homeTableName).
		Where(pred).
		OrderBy("created_at ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate home query: %w", err)
	}

	var home types.Home
	err = pgxscan.Get(ctx, r.pool, &home, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrHomeNotFound
		}
		return nil, fmt.Errorf("failed to fetch home: %w", err)
	}

	return &home, nil
}

func (r *HomeRepository) HomesByVerificationStatus(ctx context.Context, statuses ...string) ([]*types.Home, error) {
	query, args, err := psql().
		Select(homeColumns...).
		From(homeTableName).
		Where(sq.Eq{"verification_status": statuses}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate homes by status query: %w", err)
	}

	homes := make([]*types.Home, 0)
	err = pgxscan.Select(ctx, r.pool, &homes, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch homes by status: %w", err)
	}

	return homes, nil
}

func (r *HomeRepository) CountHomes(ctx context.Context, statuses ...string) (int, error) {
	builder := psql().Select("count(*)").From(homeTableName)
	if len(statuses) > 0 {
		builder = builder.Where(sq.Eq{"verification_status": statuses})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to generate home count query: %w", err)
	}

	var count int
	err = r.pool.QueryRow(ctx, query, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count homes: %w", err)
	}

	return count, nil
}

func (r *HomeRepository) UpdateVerificationStatus(ctx context.Context, homeID, status string) error {
	query, args, err := psql().
		Update(homeTableName).
		Set("verification_status", status).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": homeID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update verification status query for home %s: %w", homeID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update verification status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return types.ErrHomeNotFound
	}

	return nil
}

func (r *HomeRepository) UpdateLogo(ctx context.Context, homeID, logoKey string) error {
	query, args, err := psql().
		Update(homeTableName).
		Set("logo_url", nullable(logoKey)).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": homeID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update logo query for home %s: %w", homeID, err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to update home logo")
}

func (r *HomeRepository) Upsert(ctx context.Context, home *types.Home) error {
	now := time.Now()
	home.UpdatedAt = now
	if home.CreatedAt.IsZero() {
		home.CreatedAt = now
	}

	query, args, err := psql().
		Insert(homeTableName).
		SetMap(utils.StructToMap(home)).
		Suffix("ON CONFLICT (id) DO UPDATE SET owner_id = EXCLUDED.owner_id, name = EXCLUDED.name, logo_url = EXCLUDED.logo_url, address = EXCLUDED.address, verification_status = EXCLUDED.verification_status, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate upsert home query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to upsert home")
}
