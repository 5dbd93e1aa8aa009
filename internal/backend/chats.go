package backend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"givehaven/pkg/types"
)

func (c *Client) GetMyDonorChats(ctx context.Context, userID string) ([]*types.ChatRoomSummary, error) {
	chats, err := c.chats.DonorChats(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, chat := range chats {
		chat.CounterpartImageURL = c.resolveImage(chat.CounterpartImageURL)
	}

	return chats, nil
}

func (c *Client) GetMyHomeChatRooms(ctx context.Context, userID string) ([]*types.ChatRoomSummary, error) {
	chats, err := c.chats.HomeChatRooms(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, chat := range chats {
		chat.CounterpartImageURL = c.resolveImage(chat.CounterpartImageURL)
	}

	return chats, nil
}

// PledgeToNeed claims an open need for a donor and opens the chat room with the home.
func (c *Client) PledgeToNeed(ctx context.Context, donorID, needID string) (*types.ChatRoom, error) {
	need, err := c.needs.Need(ctx, needID)
	if err != nil {
		return nil, err
	}

	if need.Status != types.NeedStatusOpen {
		return nil, types.ErrNeedNotOpen
	}

	home, err := c.homes.Home(ctx, need.HomeID)
	if err != nil {
		return nil, fmt.Errorf("load home for pledge: %w", err)
	}

	if home.OwnerID == donorID {
		return nil, types.ErrPledgeOwnNeed
	}

	return c.chats.CreateForPledge(ctx, need, donorID)
}

// ChatRoom returns the room if userID is its donor or owns its home.
func (c *Client) ChatRoom(ctx context.Context, userID, roomID string) (*types.ChatRoom, error) {
	room, err := c.chats.ChatRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	if room.DonorID == userID {
		return room, nil
	}

	home, err := c.homes.Home(ctx, room.HomeID)
	if err != nil {
		if errors.Is(err, types.ErrHomeNotFound) {
			return nil, types.ErrNotChatMember
		}
		return nil, fmt.Errorf("load home for chat room: %w", err)
	}

	if home.OwnerID != userID {
		return nil, types.ErrNotChatMember
	}

	return room, nil
}

func (c *Client) ChatMessages(ctx context.Context, userID, roomID string) ([]*types.ChatMessage, error) {
	if _, err := c.ChatRoom(ctx, userID, roomID); err != nil {
		return nil, err
	}
	return c.chats.Messages(ctx, roomID)
}

func (c *Client) SendChatMessage(ctx context.Context, userID, roomID, body string) error {
	body = strings.TrimSpace(body)
	if body == "" {
		return types.ErrEmptyMessage
	}

	if _, err := c.ChatRoom(ctx, userID, roomID); err != nil {
		return err
	}

	return c.chats.CreateMessage(ctx, &types.ChatMessage{
		RoomID:   roomID,
		SenderID: userID,
		Body:     body,
	})
}
