package types

import "time"

type ChatRoom struct {
	ID        string    `db:"id"`
	NeedID    string    `db:"need_id"`
	DonorID   string    `db:"donor_id"`
	HomeID    string    `db:"home_id"`
	CreatedAt time.Time `db:"created_at"`
}

// ChatRoomSummary is the list projection of a chat room as seen by one side of it.
// Counterpart is the home for a donor and the donor for a home.
type ChatRoomSummary struct {
	ID                  string     `db:"id"`
	CreatedAt           time.Time  `db:"created_at"`
	NeedID              string     `db:"need_id"`
	NeedTitle           string     `db:"need_title"`
	NeedStatus          NeedStatus `db:"need_status"`
	CounterpartName     *string    `db:"counterpart_name"`
	CounterpartImageURL *string    `db:"counterpart_image_url"`
}

type ChatMessage struct {
	ID        string    `db:"id"`
	RoomID    string    `db:"room_id"`
	SenderID  string    `db:"sender_id"`
	Body      string    `db:"body"`
	CreatedAt time.Time `db:"created_at"`
}
