package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"givehaven/internal/utils"
	"givehaven/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	chatRoomTableName    = schema + ".chat_rooms"
	chatMessageTableName = schema + ".chat_messages"
)

var (
	chatRoomColumns    = utils.StructTagValues(types.ChatRoom{})
	chatMessageColumns = utils.StructTagValues(types.ChatMessage{})
)

type ChatRepository struct {
	pool *pgxpool.Pool
}

func NewChatRepository(pool *pgxpool.Pool) *ChatRepository {
	return &ChatRepository{pool: pool}
}

// DonorChats lists the rooms a donor has opened by pledging, counterpart is the home.
func (r *ChatRepository) DonorChats(ctx context.Context, donorID string) ([]*types.ChatRoomSummary, error) {
	query, args, err := psql().
		Select(
			"c.id", "c.created_at", "c.need_id",
			"n.title AS need_title", "n.status AS need_status",
			"h.name AS counterpart_name", "h.logo_url AS counterpart_image_url",
		).
		From(chatRoomTableName + " c").
		Join(needTableName + " n ON n.id = c.need_id").
		Join(homeTableName + " h ON h.id = c.home_id").
		Where(sq.Eq{"c.donor_id": donorID}).
		OrderBy("c.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate donor chats query: %w", err)
	}

	chats := make([]*types.ChatRoomSummary, 0)
	err = pgxscan.Select(ctx, r.pool, &chats, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch donor chats: %w", err)
	}

	return chats, nil
}

// HomeChatRooms lists the rooms of every home owned by ownerID, counterpart is the donor.
func (r *ChatRepository) HomeChatRooms(ctx context.Context, ownerID string) ([]*types.ChatRoomSummary, error) {
	query, args, err := psql().
		Select(
			"c.id", "c.created_at", "c.need_id",
			"n.title AS need_title", "n.status AS need_status",
			"p.display_name AS counterpart_name", "p.avatar_url AS counterpart_image_url",
		).
		From(chatRoomTableName + " c").
		Join(needTableName + " n ON n.id = c.need_id").
		Join(homeTableName + " h ON h.id = c.home_id").
		LeftJoin(profileTableName + " p ON p.id = c.donor_id").
		Where(sq.Eq{"h.owner_id": ownerID}).
		OrderBy("c.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate home chat rooms query: %w", err)
	}

	chats := make([]*types.ChatRoomSummary, 0)
	err = pgxscan.Select(ctx, r.pool, &chats, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch home chat rooms: %w", err)
	}

	return chats, nil
}

func (r *ChatRepository) ChatRoom(ctx context.Context, roomID string) (*types.ChatRoom, error) {
	query, args, err := psql().
		Select(chatRoomColumns...).
		From(chatRoomTableName).
		Where(sq.Eq{"id": roomID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate chat room query: %w", err)
	}

	var room types.ChatRoom
	err = pgxscan.Get(ctx, r.pool, &room, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrChatRoomNotFound
		}
		return nil, fmt.Errorf("failed to fetch chat room: %w", err)
	}

	return &room, nil
}

// CreateForPledge claims an open need for a donor and opens the room for it.
// The need must still be open when the transaction runs.
func (r *ChatRepository) CreateForPledge(ctx context.Context, need *types.Need, donorID string) (*types.ChatRoom, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin pledge transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	now := time.Now()

	claimQuery, claimArgs, err := psql().
		Update(needTableName).
		Set("status", types.NeedStatusPendingPickup).
		Set("updated_at", now).
		Where(sq.Eq{"id": need.ID, "status": types.NeedStatusOpen}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate claim need query: %w", err)
	}

	tag, err := tx.Exec(ctx, claimQuery, claimArgs...)
	if err != nil {
		return nil, fmt.Errorf("failed to claim need: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, types.ErrNeedNotOpen
	}

	room := &types.ChatRoom{
		ID:        utils.NanoID(),
		NeedID:    need.ID,
		DonorID:   donorID,
		HomeID:    need.HomeID,
		CreatedAt: now,
	}

	roomQuery, roomArgs, err := psql().
		Insert(chatRoomTableName).
		SetMap(utils.StructToMap(room)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate insert chat room query: %w", err)
	}

	if _, err = tx.Exec(ctx, roomQuery, roomArgs...); err != nil {
		return nil, fmt.Errorf("failed to create chat room: %w", err)
	}

	if err = tx.Commit(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return nil, fmt.Errorf("failed to commit pledge: %w", err)
	}

	return room, nil
}

func (r *ChatRepository) Messages(ctx context.Context, roomID string) ([]*types.ChatMessage, error) {
	query, args, err := psql().
		Select(chatMessageColumns...).
		From(chatMessageTableName).
		Where(sq.Eq{"room_id": roomID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate chat messages query: %w", err)
	}

	messages := make([]*types.ChatMessage, 0)
	err = pgxscan.Select(ctx, r.pool, &messages, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chat messages: %w", err)
	}

	return messages, nil
}

func (r *ChatRepository) CreateMessage(ctx context.Context, message *types.ChatMessage) error {
	message.ID = utils.NanoID()
	message.CreatedAt = time.Now()

	query, args, err := psql().
		Insert(chatMessageTableName).
		SetMap(utils.StructToMap(message)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert chat message query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create chat message")
}
