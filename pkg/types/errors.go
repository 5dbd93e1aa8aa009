package types

import "errors"

var (
	ErrProfileNotFound    = errors.New("profile not found")
	ErrHomeNotFound       = errors.New("home not found")
	ErrNeedNotFound       = errors.New("need not found")
	ErrChatRoomNotFound   = errors.New("chat room not found")
	ErrNeedNotOpen        = errors.New("need is no longer open for pledges")
	ErrNotChatMember      = errors.New("user is not a member of this chat room")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidStatus      = errors.New("invalid verification status")
)

var (
	ErrPledgeOwnNeed = errors.New("homes cannot pledge to their own needs")
	ErrEmptyMessage  = errors.New("message body is empty")
)
