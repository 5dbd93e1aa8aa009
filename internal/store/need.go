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

const needTableName = schema + ".needs"

var needColumns = utils.StructTagValues(types.Need{})

type NeedRepository struct {
	pool *pgxpool.Pool
}

func NewNeedRepository(pool *pgxpool.Pool) *NeedRepository {
	return &NeedRepository{pool: pool}
}

func (r *NeedRepository) Need(ctx context.Context, needID string) (*types.Need, error) {
	query, args, err := psql().
		Select(needColumns...).
		From(needTableName).
		Where(sq.Eq{"id": needID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate need query: %w", err)
	}

	var need = new(types.Need)
	err = pgxscan.Get(ctx, r.pool, need, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrNeedNotFound
		}
		return nil, fmt.Errorf("failed to fetch need: %w", err)
	}

	return need, nil
}

// OpenNeedCards returns open needs of verified homes, most urgent first.
func (r *NeedRepository) OpenNeedCards(ctx context.Context, limit uint64) ([]*types.NeedCard, error) {
	columns := append(
		utils.PrefixSliceOfStrings("n", needColumns),
		"h.name AS home_name",
		"h.logo_url AS home_logo_url",
	)

	query, args, err := psql().
		Select(columns...).
		From(needTableName + " n").
		Join(homeTableName + " h ON h.id = n.home_id").
		Where(sq.Eq{"n.status": types.NeedStatusOpen, "h.verification_status": []string{"verified", "approved"}}).
		OrderBy("CASE n.urgency WHEN 'high' THEN 0 WHEN 'medium' THEN 1 ELSE 2 END", "n.created_at DESC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate open needs query: %w", err)
	}

	cards := make([]*types.NeedCard, 0)
	err = pgxscan.Select(ctx, r.pool, &cards, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch open needs: %w", err)
	}

	return cards, nil
}

func (r *NeedRepository) NeedsByHome(ctx context.Context, homeID string) ([]*types.Need, error) {
	query, args, err := psql().
		Select(needColumns...).
		From(needTableName).
		Where(sq.Eq{"home_id": homeID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate needs by home query: %w", err)
	}

	needs := make([]*types.Need, 0)
	err = pgxscan.Select(ctx, r.pool, &needs, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch needs by home: %w", err)
	}

	return needs, nil
}

func (r *NeedRepository) CountByStatus(ctx context.Context, status types.NeedStatus) (int, error) {
	query, args, err := psql().
		Select("count(*)").
		From(needTableName).
		Where(sq.Eq{"status": status}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to generate need count query: %w", err)
	}

	var count int
	err = r.pool.QueryRow(ctx, query, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count needs: %w", err)
	}

	return count, nil
}

func (r *NeedRepository) Upsert(ctx context.Context, need *types.Need) error {
	now := time.Now()
	need.UpdatedAt = now
	if need.CreatedAt.IsZero() {
		need.CreatedAt = now
	}
	if need.ID == "" {
		need.ID = utils.NanoID()
	}

	query, args, err := psql().
		Insert(needTableName).
		SetMap(utils.StructToMap(need)).
		Suffix("ON CONFLICT (id) DO UPDATE SET title = EXCLUDED.title, description = EXCLUDED.description, category = EXCLUDED.category, urgency = EXCLUDED.urgency, quantity = EXCLUDED.quantity, status = EXCLUDED.status, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate upsert need query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to upsert need")
}

// DeleteByDescriptionPrefix removes needs whose description starts with prefix
// and returns how many were deleted. Only the seed command uses it.
func (r *NeedRepository) DeleteByDescriptionPrefix(ctx context.Context, prefix string) (int64, error) {
	query, args, err := psql().
		Delete(needTableName).
		Where(sq.Like{"description": prefix + "%"}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to generate delete needs query: %w", err)
	}

	result, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete needs: %w", err)
	}

	return result.RowsAffected(), nil
}
